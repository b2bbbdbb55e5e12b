package sign

import (
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

var _ DirectScheme = Ed25519Scheme{}
var _ Signer = (*Ed25519Signer)(nil)

// Ed25519Scheme verifies Ed25519 signatures.
type Ed25519Scheme struct{}

func (Ed25519Scheme) Type() Type { return TypeEd25519 }

// CheckSignature only checks the length: any 64 bytes decode as an Ed25519 signature.
// Non-canonical scalars are rejected later by Verify.
func (Ed25519Scheme) CheckSignature(sig []byte) error {
	return checkLength("ed25519 signature", sig, Ed25519SignatureSize)
}

func (Ed25519Scheme) Verify(sig, msg, pub []byte) bool {
	if len(sig) != Ed25519SignatureSize || len(pub) != Ed25519PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig)
}

// Ed25519Signer signs with an Ed25519 key expanded from a 32-byte seed.
type Ed25519Signer struct {
	privateKey ed25519.PrivateKey
	publicKey  Ed25519Public
}

// NewEd25519Signer creates a signer from a hex-encoded 32-byte seed.
func NewEd25519Signer(seedHex string) (*Ed25519Signer, error) {
	seed, err := hexutil.Decode("0x" + strings.TrimPrefix(seedHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("could not parse ed25519 seed: %w", err)
	}
	if err := checkLength("ed25519 seed", seed, ed25519.SeedSize); err != nil {
		return nil, err
	}

	key := ed25519.NewKeyFromSeed(seed)
	s := &Ed25519Signer{privateKey: key}
	copy(s.publicKey[:], key.Public().(ed25519.PublicKey))
	return s, nil
}

func (s *Ed25519Signer) Type() Type            { return TypeEd25519 }
func (s *Ed25519Signer) PublicKey() []byte     { return s.publicKey.Bytes() }
func (s *Ed25519Signer) Public() Ed25519Public { return s.publicKey }
func (s *Ed25519Signer) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(s.privateKey, msg), nil
}

// SignEd25519 is Sign returning the fixed-size signature type.
func (s *Ed25519Signer) SignEd25519(msg []byte) Ed25519Signature {
	var sig Ed25519Signature
	copy(sig[:], ed25519.Sign(s.privateKey, msg))
	return sig
}
