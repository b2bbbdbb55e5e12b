package multisig

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/erc7824/nitrolite/multisig/pkg/sign"
)

type signature interface {
	Type() sign.Type
	Bytes() []byte
}

// MultiSignature is a signature under exactly one of the supported schemes.
//
// Values are comparable with == and can be used as map keys. The zero value holds no
// scheme and never verifies; use DefaultSignature for the canonical placeholder.
type MultiSignature struct {
	sig signature
}

func SignatureFromEd25519(sig sign.Ed25519Signature) MultiSignature { return MultiSignature{sig: sig} }
func SignatureFromSr25519(sig sign.Sr25519Signature) MultiSignature { return MultiSignature{sig: sig} }
func SignatureFromEcdsa(sig sign.EcdsaSignature) MultiSignature     { return MultiSignature{sig: sig} }

// DefaultSignature returns the placeholder signature: the Ed25519 variant with an
// all-zero payload. It is not a valid signature of anything.
func DefaultSignature() MultiSignature {
	return MultiSignature{sig: sign.Ed25519Signature{}}
}

// DecodeSignature decodes the binary form produced by MarshalBinary.
func DecodeSignature(data []byte) (MultiSignature, error) {
	var s MultiSignature
	err := s.UnmarshalBinary(data)
	return s, err
}

func signatureFromParts(t sign.Type, payload []byte) (MultiSignature, error) {
	switch t {
	case sign.TypeEd25519:
		sig, err := sign.Ed25519SignatureFromBytes(payload)
		return SignatureFromEd25519(sig), err
	case sign.TypeSr25519:
		sig, err := sign.Sr25519SignatureFromBytes(payload)
		return SignatureFromSr25519(sig), err
	case sign.TypeEcdsa:
		sig, err := sign.EcdsaSignatureFromBytes(payload)
		return SignatureFromEcdsa(sig), err
	default:
		return MultiSignature{}, fmt.Errorf("%w: %s", sign.ErrUnsupportedType, t)
	}
}

// Type returns the signature's scheme, or sign.TypeUnknown for the zero value.
func (s MultiSignature) Type() sign.Type {
	if s.sig == nil {
		return sign.TypeUnknown
	}
	return s.sig.Type()
}

// IsZero reports whether s holds no scheme.
func (s MultiSignature) IsZero() bool { return s.sig == nil }

func (s MultiSignature) Bytes() []byte {
	if s.sig == nil {
		return nil
	}
	return s.sig.Bytes()
}

func (s MultiSignature) Ed25519() (sign.Ed25519Signature, error) {
	if sig, ok := s.sig.(sign.Ed25519Signature); ok {
		return sig, nil
	}
	return sign.Ed25519Signature{}, s.wrongVariant(sign.TypeEd25519)
}

func (s MultiSignature) Sr25519() (sign.Sr25519Signature, error) {
	if sig, ok := s.sig.(sign.Sr25519Signature); ok {
		return sig, nil
	}
	return sign.Sr25519Signature{}, s.wrongVariant(sign.TypeSr25519)
}

func (s MultiSignature) Ecdsa() (sign.EcdsaSignature, error) {
	if sig, ok := s.sig.(sign.EcdsaSignature); ok {
		return sig, nil
	}
	return sign.EcdsaSignature{}, s.wrongVariant(sign.TypeEcdsa)
}

func (s MultiSignature) wrongVariant(want sign.Type) error {
	return fmt.Errorf("%w: signature is %s, not %s", ErrWrongVariant, s.Type(), want)
}

// Verify checks the signature with the default verifier. See Verifier.Verify.
func (s MultiSignature) Verify(msg Lazy, who AccountID) bool {
	return DefaultVerifier().Verify(s, msg, who)
}

func (s MultiSignature) String() string {
	if s.sig == nil {
		return sign.TypeUnknown.String()
	}
	return fmt.Sprintf("%s: %s", s.sig.Type(), hexutil.Encode(s.sig.Bytes()))
}

func (s MultiSignature) MarshalBinary() ([]byte, error) {
	if s.sig == nil {
		return nil, ErrNoVariant
	}
	return encodeTagged(s.sig.Type(), s.sig.Bytes()), nil
}

func (s *MultiSignature) UnmarshalBinary(data []byte) error {
	t, payload, err := decodeTagged(data, sign.Type.SignatureSize, "signature")
	if err != nil {
		return err
	}
	decoded, err := signatureFromParts(t, payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	*s = decoded
	return nil
}

func (s MultiSignature) MarshalJSON() ([]byte, error) {
	if s.sig == nil {
		return nil, ErrNoVariant
	}
	return marshalTaggedJSON(s.sig.Type(), s.sig.Bytes())
}

func (s *MultiSignature) UnmarshalJSON(data []byte) error {
	t, payload, err := unmarshalTaggedJSON(data, sign.Type.SignatureSize, "signature")
	if err != nil {
		return err
	}
	decoded, err := signatureFromParts(t, payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	*s = decoded
	return nil
}
