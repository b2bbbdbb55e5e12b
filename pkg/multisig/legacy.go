package multisig

import (
	"fmt"
	"reflect"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/erc7824/nitrolite/multisig/pkg/sign"
)

// AnySignatureSize is the size of a legacy combined signature.
const AnySignatureSize = 64

var anySignatureT = reflect.TypeOf(AnySignature{})

// AnySignature is the legacy 64-byte signature that does not record its scheme.
// It verifies as Sr25519 first and falls back to Ed25519.
//
// Prefer MultiSignature in new code.
type AnySignature [AnySignatureSize]byte

func AnySignatureFromSr25519(sig sign.Sr25519Signature) AnySignature { return AnySignature(sig) }
func AnySignatureFromEd25519(sig sign.Ed25519Signature) AnySignature { return AnySignature(sig) }

// AnySignatureFromBytes copies b into an AnySignature after checking its length.
func AnySignatureFromBytes(b []byte) (AnySignature, error) {
	var s AnySignature
	if len(b) != AnySignatureSize {
		return s, fmt.Errorf("%w: any signature must be %d bytes, got %d", sign.ErrInvalidLength, AnySignatureSize, len(b))
	}
	copy(s[:], b)
	return s, nil
}

func (s AnySignature) Bytes() []byte  { return s[:] }
func (s AnySignature) String() string { return hexutil.Encode(s[:]) }

// Verify checks the signature with the default verifier. See Verifier.VerifyAny.
func (s AnySignature) Verify(msg Lazy, signer sign.Sr25519Public) bool {
	return DefaultVerifier().VerifyAny(s, msg, signer)
}

func (s AnySignature) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), s[:]...), nil
}

func (s *AnySignature) UnmarshalBinary(data []byte) error {
	if len(data) != AnySignatureSize {
		return fmt.Errorf("%w: any signature must be %d bytes, got %d", ErrMalformedEncoding, AnySignatureSize, len(data))
	}
	copy(s[:], data)
	return nil
}

func (s AnySignature) MarshalText() ([]byte, error) {
	return hexutil.Bytes(s[:]).MarshalText()
}

func (s *AnySignature) UnmarshalJSON(input []byte) error {
	if err := hexutil.UnmarshalFixedJSON(anySignatureT, input, s[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	return nil
}

func (s *AnySignature) UnmarshalText(input []byte) error {
	if err := hexutil.UnmarshalFixedText("AnySignature", input, s[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	return nil
}

// VerifyAny reports whether sig is a valid signature of msg by signer.
//
// The signature is first tried as Sr25519. If it is not a well-formed Sr25519 signature,
// or does not verify, it is tried as Ed25519 with the signer's bytes read as an Ed25519
// key. msg is materialised at most once for both attempts.
func (v *Verifier) VerifyAny(sig AnySignature, msg Lazy, signer sign.Sr25519Public) bool {
	return v.VerifyAnyDetailed(sig, msg, signer) != sign.TypeUnknown
}

// VerifyAnyDetailed is VerifyAny returning the scheme that accepted the signature,
// or sign.TypeUnknown if none did.
func (v *Verifier) VerifyAnyDetailed(sig AnySignature, msg Lazy, signer sign.Sr25519Public) sign.Type {
	msg = msg.once()

	if v.sr25519.CheckSignature(sig[:]) == nil && v.sr25519.Verify(sig[:], msg(), signer[:]) {
		return sign.TypeSr25519
	}

	if v.ed25519.CheckSignature(sig[:]) == nil {
		pub := sign.Ed25519Public(signer)
		if v.ed25519.Verify(sig[:], msg(), pub[:]) {
			return sign.TypeEd25519
		}
	}
	return sign.TypeUnknown
}
