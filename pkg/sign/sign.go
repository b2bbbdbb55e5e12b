package sign

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidLength is returned when a key or signature has the wrong size for its scheme.
	ErrInvalidLength = errors.New("invalid length")
	// ErrRecoveryFailed is returned when a public key cannot be recovered from a signature.
	ErrRecoveryFailed = errors.New("signature recovery failed")
	// ErrMalformedSignature is returned when signature bytes are not a valid encoding for the scheme.
	ErrMalformedSignature = errors.New("malformed signature")
	// ErrUnsupportedType is returned for a scheme type this package does not know.
	ErrUnsupportedType = errors.New("unsupported signature type")
)

// Signer produces signatures under a single scheme.
type Signer interface {
	Type() Type                       // Scheme the signer produces signatures for.
	PublicKey() []byte                // Raw public key bytes in the scheme's native encoding.
	Sign(msg []byte) ([]byte, error) // Sign signs the raw message; any hashing is the scheme's own.
}

// DirectScheme verifies a signature against a known public key.
type DirectScheme interface {
	Type() Type
	// CheckSignature reports whether sig is a structurally valid signature encoding.
	// It says nothing about whether the signature verifies.
	CheckSignature(sig []byte) error
	// Verify reports whether sig is a valid signature of msg under pub.
	// Malformed inputs yield false.
	Verify(sig, msg, pub []byte) bool
}

// RecoveryScheme recovers the signer's public key from a signature over a digest.
type RecoveryScheme interface {
	Type() Type
	// Hash returns the 32-byte digest the scheme signs.
	Hash(data []byte) [32]byte
	// RecoverCompressed returns the compressed public key that produced sig over digest.
	RecoverCompressed(sig []byte, digest [32]byte) ([]byte, error)
}

// Type identifies a signature scheme. Its numeric value is the wire discriminant.
type Type uint8

const (
	TypeEd25519 Type = iota
	TypeSr25519
	TypeEcdsa
	TypeUnknown Type = 255
)

// Types lists the supported schemes in discriminant order.
var Types = []Type{TypeEd25519, TypeSr25519, TypeEcdsa}

// String returns the lowercase scheme name.
func (t Type) String() string {
	switch t {
	case TypeEd25519:
		return "ed25519"
	case TypeSr25519:
		return "sr25519"
	case TypeEcdsa:
		return "ecdsa"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the supported schemes.
func (t Type) Valid() bool {
	return t <= TypeEcdsa
}

// PublicKeySize returns the public key length for the scheme, or 0 if unknown.
func (t Type) PublicKeySize() int {
	switch t {
	case TypeEd25519:
		return Ed25519PublicKeySize
	case TypeSr25519:
		return Sr25519PublicKeySize
	case TypeEcdsa:
		return EcdsaPublicKeySize
	default:
		return 0
	}
}

// SignatureSize returns the signature length for the scheme, or 0 if unknown.
func (t Type) SignatureSize() int {
	switch t {
	case TypeEd25519:
		return Ed25519SignatureSize
	case TypeSr25519:
		return Sr25519SignatureSize
	case TypeEcdsa:
		return EcdsaSignatureSize
	default:
		return 0
	}
}

// ParseType parses a scheme name as produced by Type.String. Matching is case-insensitive.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ed25519":
		return TypeEd25519, nil
	case "sr25519":
		return TypeSr25519, nil
	case "ecdsa", "secp256k1":
		return TypeEcdsa, nil
	default:
		return TypeUnknown, fmt.Errorf("%w: %q", ErrUnsupportedType, s)
	}
}

// NewDirectScheme returns the verifier for a scheme that checks signatures against a public key.
func NewDirectScheme(t Type) (DirectScheme, error) {
	switch t {
	case TypeEd25519:
		return Ed25519Scheme{}, nil
	case TypeSr25519:
		return Sr25519Scheme{}, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a direct scheme", ErrUnsupportedType, t)
	}
}

// NewRecoveryScheme returns the verifier for a scheme that recovers the signer from the signature.
func NewRecoveryScheme(t Type) (RecoveryScheme, error) {
	switch t {
	case TypeEcdsa:
		return EcdsaScheme{}, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a recovery scheme", ErrUnsupportedType, t)
	}
}

func checkLength(what string, b []byte, want int) error {
	if len(b) != want {
		return fmt.Errorf("%w: %s must be %d bytes, got %d", ErrInvalidLength, what, want, len(b))
	}
	return nil
}
