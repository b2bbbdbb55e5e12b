package sign

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
)

// Ensure our types implement the interfaces at compile time.
var _ RecoveryScheme = EcdsaScheme{}
var _ Signer = (*EcdsaSigner)(nil)

// Blake2_256 returns the 32-byte BLAKE2b digest of data.
func Blake2_256(data []byte) [32]byte {
	return blake2b.Sum256(data)
}

// EcdsaScheme recovers secp256k1 public keys from signatures over BLAKE2b-256 digests.
type EcdsaScheme struct{}

func (EcdsaScheme) Type() Type { return TypeEcdsa }

func (EcdsaScheme) Hash(data []byte) [32]byte { return Blake2_256(data) }

// RecoverCompressed recovers the compressed public key from a 65-byte signature.
// The recovery id may be given as 0/1 or in the Ethereum 27/28 form.
func (EcdsaScheme) RecoverCompressed(sig []byte, digest [32]byte) ([]byte, error) {
	pub, err := recoverPublicKey(sig, digest)
	if err != nil {
		return nil, err
	}
	return ethcrypto.CompressPubkey(pub), nil
}

func recoverPublicKey(sig []byte, digest [32]byte) (*ecdsa.PublicKey, error) {
	if len(sig) != EcdsaSignatureSize {
		return nil, fmt.Errorf("%w: invalid signature length: got %d, want %d", ErrRecoveryFailed, len(sig), EcdsaSignatureSize)
	}

	// Work on a copy so the caller's signature is never modified.
	localSig := make([]byte, EcdsaSignatureSize)
	copy(localSig, sig)
	if localSig[64] >= 27 {
		localSig[64] -= 27
	}
	if localSig[64] > 3 {
		return nil, fmt.Errorf("%w: invalid recovery id %d", ErrRecoveryFailed, sig[64])
	}

	pub, err := ethcrypto.SigToPub(digest[:], localSig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecoveryFailed, err)
	}
	return pub, nil
}

// EcdsaSigner signs BLAKE2b-256 digests of messages with a secp256k1 key.
type EcdsaSigner struct {
	privateKey *ecdsa.PrivateKey
	publicKey  EcdsaPublic
}

// NewEcdsaSigner creates a new signer from a hex-encoded secp256k1 private key.
func NewEcdsaSigner(privateKeyHex string) (*EcdsaSigner, error) {
	privateKeyHex = strings.TrimPrefix(privateKeyHex, "0x")
	key, err := ethcrypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("could not parse ecdsa private key: %w", err)
	}

	s := &EcdsaSigner{privateKey: key}
	copy(s.publicKey[:], ethcrypto.CompressPubkey(&key.PublicKey))
	return s, nil
}

func (s *EcdsaSigner) Type() Type { return TypeEcdsa }

// PublicKey returns the 33-byte compressed public key.
func (s *EcdsaSigner) PublicKey() []byte   { return s.publicKey.Bytes() }
func (s *EcdsaSigner) Public() EcdsaPublic { return s.publicKey }

// Sign hashes msg with BLAKE2b-256 and signs the digest.
func (s *EcdsaSigner) Sign(msg []byte) ([]byte, error) {
	sig, err := s.SignPrehashed(Blake2_256(msg))
	if err != nil {
		return nil, err
	}
	return sig.Bytes(), nil
}

// SignEcdsa is Sign returning the fixed-size signature type.
func (s *EcdsaSigner) SignEcdsa(msg []byte) (EcdsaSignature, error) {
	return s.SignPrehashed(Blake2_256(msg))
}

// SignPrehashed signs a digest the caller already computed.
// The recovery id in the last byte is 0 or 1.
func (s *EcdsaSigner) SignPrehashed(digest [32]byte) (EcdsaSignature, error) {
	sig, err := ethcrypto.Sign(digest[:], s.privateKey)
	if err != nil {
		return EcdsaSignature{}, fmt.Errorf("failed to sign data: %w", err)
	}
	return EcdsaSignatureFromBytes(sig)
}
