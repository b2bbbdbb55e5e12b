package sign

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	Ed25519PublicKeySize = 32
	Ed25519SignatureSize = 64
	Sr25519PublicKeySize = 32
	Sr25519SignatureSize = 64
	// EcdsaPublicKeySize is the size of a compressed secp256k1 point.
	EcdsaPublicKeySize = 33
	// EcdsaSignatureSize is r || s || v.
	EcdsaSignatureSize = 65
)

// Ed25519Public is an Ed25519 public key.
type Ed25519Public [Ed25519PublicKeySize]byte

// Ed25519Signature is an Ed25519 signature.
type Ed25519Signature [Ed25519SignatureSize]byte

// Sr25519Public is a Schnorrkel/Ristretto public key.
type Sr25519Public [Sr25519PublicKeySize]byte

// Sr25519Signature is a Schnorrkel signature, marker bit included.
type Sr25519Signature [Sr25519SignatureSize]byte

// EcdsaPublic is a compressed secp256k1 public key.
type EcdsaPublic [EcdsaPublicKeySize]byte

// EcdsaSignature is a recoverable secp256k1 signature.
type EcdsaSignature [EcdsaSignatureSize]byte

// Ed25519PublicFromBytes copies b into an Ed25519Public after checking its length.
func Ed25519PublicFromBytes(b []byte) (Ed25519Public, error) {
	var k Ed25519Public
	if err := checkLength("ed25519 public key", b, len(k)); err != nil {
		return k, err
	}
	copy(k[:], b)
	return k, nil
}

// Ed25519SignatureFromBytes copies b into an Ed25519Signature after checking its length.
func Ed25519SignatureFromBytes(b []byte) (Ed25519Signature, error) {
	var s Ed25519Signature
	if err := checkLength("ed25519 signature", b, len(s)); err != nil {
		return s, err
	}
	copy(s[:], b)
	return s, nil
}

// Sr25519PublicFromBytes copies b into an Sr25519Public after checking its length.
func Sr25519PublicFromBytes(b []byte) (Sr25519Public, error) {
	var k Sr25519Public
	if err := checkLength("sr25519 public key", b, len(k)); err != nil {
		return k, err
	}
	copy(k[:], b)
	return k, nil
}

// Sr25519SignatureFromBytes copies b into an Sr25519Signature after checking its length.
func Sr25519SignatureFromBytes(b []byte) (Sr25519Signature, error) {
	var s Sr25519Signature
	if err := checkLength("sr25519 signature", b, len(s)); err != nil {
		return s, err
	}
	copy(s[:], b)
	return s, nil
}

// EcdsaPublicFromBytes copies b into an EcdsaPublic after checking its length.
// The point itself is not validated.
func EcdsaPublicFromBytes(b []byte) (EcdsaPublic, error) {
	var k EcdsaPublic
	if err := checkLength("ecdsa public key", b, len(k)); err != nil {
		return k, err
	}
	copy(k[:], b)
	return k, nil
}

// EcdsaSignatureFromBytes copies b into an EcdsaSignature after checking its length.
func EcdsaSignatureFromBytes(b []byte) (EcdsaSignature, error) {
	var s EcdsaSignature
	if err := checkLength("ecdsa signature", b, len(s)); err != nil {
		return s, err
	}
	copy(s[:], b)
	return s, nil
}

func (Ed25519Public) Type() Type      { return TypeEd25519 }
func (k Ed25519Public) Bytes() []byte { return k[:] }
func (k Ed25519Public) String() string {
	return hexutil.Encode(k[:])
}

// SS58 returns the key in SS58 address format under the given network prefix.
func (k Ed25519Public) SS58(prefix uint16) string { return SS58Encode(prefix, k[:]) }

func (k Ed25519Public) MarshalJSON() ([]byte, error) { return marshalHex(k[:]) }
func (k *Ed25519Public) UnmarshalJSON(data []byte) error {
	return unmarshalHex(data, k[:], "ed25519 public key")
}

func (Ed25519Signature) Type() Type      { return TypeEd25519 }
func (s Ed25519Signature) Bytes() []byte { return s[:] }
func (s Ed25519Signature) String() string {
	return hexutil.Encode(s[:])
}

func (s Ed25519Signature) MarshalJSON() ([]byte, error) { return marshalHex(s[:]) }
func (s *Ed25519Signature) UnmarshalJSON(data []byte) error {
	return unmarshalHex(data, s[:], "ed25519 signature")
}

func (Sr25519Public) Type() Type      { return TypeSr25519 }
func (k Sr25519Public) Bytes() []byte { return k[:] }
func (k Sr25519Public) String() string {
	return hexutil.Encode(k[:])
}

// SS58 returns the key in SS58 address format under the given network prefix.
func (k Sr25519Public) SS58(prefix uint16) string { return SS58Encode(prefix, k[:]) }

func (k Sr25519Public) MarshalJSON() ([]byte, error) { return marshalHex(k[:]) }
func (k *Sr25519Public) UnmarshalJSON(data []byte) error {
	return unmarshalHex(data, k[:], "sr25519 public key")
}

func (Sr25519Signature) Type() Type      { return TypeSr25519 }
func (s Sr25519Signature) Bytes() []byte { return s[:] }
func (s Sr25519Signature) String() string {
	return hexutil.Encode(s[:])
}

func (s Sr25519Signature) MarshalJSON() ([]byte, error) { return marshalHex(s[:]) }
func (s *Sr25519Signature) UnmarshalJSON(data []byte) error {
	return unmarshalHex(data, s[:], "sr25519 signature")
}

func (EcdsaPublic) Type() Type      { return TypeEcdsa }
func (k EcdsaPublic) Bytes() []byte { return k[:] }
func (k EcdsaPublic) String() string {
	return hexutil.Encode(k[:])
}

// SS58 returns the compressed key in SS58 format under the given network prefix.
// Note this is not the account address; that is derived from the key's hash.
func (k EcdsaPublic) SS58(prefix uint16) string { return SS58Encode(prefix, k[:]) }

func (k EcdsaPublic) MarshalJSON() ([]byte, error) { return marshalHex(k[:]) }
func (k *EcdsaPublic) UnmarshalJSON(data []byte) error {
	return unmarshalHex(data, k[:], "ecdsa public key")
}

func (EcdsaSignature) Type() Type      { return TypeEcdsa }
func (s EcdsaSignature) Bytes() []byte { return s[:] }
func (s EcdsaSignature) String() string {
	return hexutil.Encode(s[:])
}

func (s EcdsaSignature) MarshalJSON() ([]byte, error) { return marshalHex(s[:]) }
func (s *EcdsaSignature) UnmarshalJSON(data []byte) error {
	return unmarshalHex(data, s[:], "ecdsa signature")
}

func marshalHex(b []byte) ([]byte, error) {
	return json.Marshal(hexutil.Encode(b))
}

// unmarshalHex decodes a JSON hex string into dst, which must be filled exactly.
func unmarshalHex(data []byte, dst []byte, what string) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	decoded, err := hexutil.Decode(hexStr)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", what, err)
	}
	if err := checkLength(what, decoded, len(dst)); err != nil {
		return err
	}
	copy(dst, decoded)
	return nil
}
