package multisig

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/erc7824/nitrolite/multisig/pkg/sign"
)

// publicKey is implemented by the public key types of every supported scheme.
type publicKey interface {
	Type() sign.Type
	Bytes() []byte
	SS58(prefix uint16) string
}

// MultiSigner is the public key of a signer under exactly one of the supported schemes.
//
// Values are comparable with == and can be used as map keys. The zero value holds no
// scheme; use DefaultSigner for the canonical placeholder.
type MultiSigner struct {
	key publicKey
}

func SignerFromEd25519(pub sign.Ed25519Public) MultiSigner { return MultiSigner{key: pub} }
func SignerFromSr25519(pub sign.Sr25519Public) MultiSigner { return MultiSigner{key: pub} }
func SignerFromEcdsa(pub sign.EcdsaPublic) MultiSigner     { return MultiSigner{key: pub} }

// SignerFromHash builds an Ed25519 signer from raw bytes without checking they form
// a valid public key.
func SignerFromHash(h [32]byte) MultiSigner {
	return MultiSigner{key: sign.Ed25519Public(h)}
}

// DefaultSigner returns the placeholder signer: the Ed25519 variant with an all-zero key.
// It corresponds to no real keypair.
func DefaultSigner() MultiSigner {
	return MultiSigner{key: sign.Ed25519Public{}}
}

// DecodeSigner decodes the binary form produced by MarshalBinary.
func DecodeSigner(data []byte) (MultiSigner, error) {
	var s MultiSigner
	err := s.UnmarshalBinary(data)
	return s, err
}

func signerFromParts(t sign.Type, payload []byte) (MultiSigner, error) {
	switch t {
	case sign.TypeEd25519:
		pub, err := sign.Ed25519PublicFromBytes(payload)
		return SignerFromEd25519(pub), err
	case sign.TypeSr25519:
		pub, err := sign.Sr25519PublicFromBytes(payload)
		return SignerFromSr25519(pub), err
	case sign.TypeEcdsa:
		pub, err := sign.EcdsaPublicFromBytes(payload)
		return SignerFromEcdsa(pub), err
	default:
		return MultiSigner{}, fmt.Errorf("%w: %s", sign.ErrUnsupportedType, t)
	}
}

// Type returns the signer's scheme, or sign.TypeUnknown for the zero value.
func (s MultiSigner) Type() sign.Type {
	if s.key == nil {
		return sign.TypeUnknown
	}
	return s.key.Type()
}

// IsZero reports whether s holds no scheme.
func (s MultiSigner) IsZero() bool { return s.key == nil }

// Bytes returns the raw public key in the scheme's native encoding.
func (s MultiSigner) Bytes() []byte {
	if s.key == nil {
		return nil
	}
	return s.key.Bytes()
}

func (s MultiSigner) Ed25519() (sign.Ed25519Public, error) {
	if pub, ok := s.key.(sign.Ed25519Public); ok {
		return pub, nil
	}
	return sign.Ed25519Public{}, s.wrongVariant(sign.TypeEd25519)
}

func (s MultiSigner) Sr25519() (sign.Sr25519Public, error) {
	if pub, ok := s.key.(sign.Sr25519Public); ok {
		return pub, nil
	}
	return sign.Sr25519Public{}, s.wrongVariant(sign.TypeSr25519)
}

func (s MultiSigner) Ecdsa() (sign.EcdsaPublic, error) {
	if pub, ok := s.key.(sign.EcdsaPublic); ok {
		return pub, nil
	}
	return sign.EcdsaPublic{}, s.wrongVariant(sign.TypeEcdsa)
}

func (s MultiSigner) wrongVariant(want sign.Type) error {
	return fmt.Errorf("%w: signer is %s, not %s", ErrWrongVariant, s.Type(), want)
}

// IntoAccount derives the account identity of the signer. Ed25519 and Sr25519 keys are
// used as is; an ECDSA key is hashed with BLAKE2b-256 over its compressed form.
// The zero value maps to the all-zero account.
func (s MultiSigner) IntoAccount() AccountID {
	switch pub := s.key.(type) {
	case sign.Ed25519Public:
		return AccountID(pub)
	case sign.Sr25519Public:
		return AccountID(pub)
	case sign.EcdsaPublic:
		return AccountID(sign.Blake2_256(pub[:]))
	default:
		return AccountID{}
	}
}

// Compare orders signers by scheme discriminant, then by key bytes.
func (s MultiSigner) Compare(other MultiSigner) int {
	if a, b := s.Type(), other.Type(); a != b {
		if a < b {
			return -1
		}
		return 1
	}
	return bytes.Compare(s.Bytes(), other.Bytes())
}

func (s MultiSigner) Less(other MultiSigner) bool { return s.Compare(other) < 0 }

// SortSigners sorts signers in place in Compare order.
func SortSigners(signers []MultiSigner) {
	slices.SortFunc(signers, MultiSigner.Compare)
}

// String renders the scheme and the SS58 form of the key, e.g. "sr25519: 5Grw...".
// It is meant for logs, not for parsing.
func (s MultiSigner) String() string {
	if s.key == nil {
		return sign.TypeUnknown.String()
	}
	return fmt.Sprintf("%s: %s", s.key.Type(), s.key.SS58(sign.DefaultSS58Prefix))
}

func (s MultiSigner) MarshalBinary() ([]byte, error) {
	if s.key == nil {
		return nil, ErrNoVariant
	}
	return encodeTagged(s.key.Type(), s.key.Bytes()), nil
}

func (s *MultiSigner) UnmarshalBinary(data []byte) error {
	t, payload, err := decodeTagged(data, sign.Type.PublicKeySize, "signer")
	if err != nil {
		return err
	}
	decoded, err := signerFromParts(t, payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	*s = decoded
	return nil
}

func (s MultiSigner) MarshalJSON() ([]byte, error) {
	if s.key == nil {
		return nil, ErrNoVariant
	}
	return marshalTaggedJSON(s.key.Type(), s.key.Bytes())
}

func (s *MultiSigner) UnmarshalJSON(data []byte) error {
	t, payload, err := unmarshalTaggedJSON(data, sign.Type.PublicKeySize, "signer")
	if err != nil {
		return err
	}
	decoded, err := signerFromParts(t, payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	*s = decoded
	return nil
}
