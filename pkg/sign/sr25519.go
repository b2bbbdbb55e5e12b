package sign

import (
	"fmt"
	"strings"

	schnorrkel "github.com/ChainSafe/go-schnorrkel"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Sr25519SigningContext is the transcript label all Sr25519 signatures are bound to.
var Sr25519SigningContext = []byte("substrate")

var _ DirectScheme = Sr25519Scheme{}
var _ Signer = (*Sr25519Signer)(nil)

// Sr25519Scheme verifies Schnorrkel signatures over Ristretto25519.
type Sr25519Scheme struct{}

func (Sr25519Scheme) Type() Type { return TypeSr25519 }

// CheckSignature decodes sig as a Schnorrkel signature. This rejects a missing marker bit,
// an invalid R point and a non-canonical scalar.
func (Sr25519Scheme) CheckSignature(sig []byte) error {
	_, err := decodeSr25519Signature(sig)
	return err
}

func (Sr25519Scheme) Verify(sig, msg, pub []byte) bool {
	s, err := decodeSr25519Signature(sig)
	if err != nil {
		return false
	}
	if len(pub) != Sr25519PublicKeySize {
		return false
	}

	var in [Sr25519PublicKeySize]byte
	copy(in[:], pub)
	pk := &schnorrkel.PublicKey{}
	if err := pk.Decode(in); err != nil {
		return false
	}

	ok, err := pk.Verify(s, schnorrkel.NewSigningContext(Sr25519SigningContext, msg))
	return err == nil && ok
}

func decodeSr25519Signature(sig []byte) (*schnorrkel.Signature, error) {
	if err := checkLength("sr25519 signature", sig, Sr25519SignatureSize); err != nil {
		return nil, err
	}

	var in [Sr25519SignatureSize]byte
	copy(in[:], sig)
	s := &schnorrkel.Signature{}
	if err := s.Decode(in); err != nil {
		return nil, fmt.Errorf("%w: sr25519: %v", ErrMalformedSignature, err)
	}
	return s, nil
}

// Sr25519Signer signs with a keypair expanded from a 32-byte mini secret key,
// using the Ed25519-compatible expansion.
type Sr25519Signer struct {
	secretKey *schnorrkel.SecretKey
	publicKey Sr25519Public
}

// NewSr25519Signer creates a signer from a hex-encoded 32-byte mini secret key.
func NewSr25519Signer(miniSecretHex string) (*Sr25519Signer, error) {
	raw, err := hexutil.Decode("0x" + strings.TrimPrefix(miniSecretHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("could not parse sr25519 mini secret: %w", err)
	}
	if err := checkLength("sr25519 mini secret", raw, schnorrkel.MiniSecretKeySize); err != nil {
		return nil, err
	}

	var in [schnorrkel.MiniSecretKeySize]byte
	copy(in[:], raw)
	msk, err := schnorrkel.NewMiniSecretKeyFromRaw(in)
	if err != nil {
		return nil, fmt.Errorf("could not parse sr25519 mini secret: %w", err)
	}

	return &Sr25519Signer{
		secretKey: msk.ExpandEd25519(),
		publicKey: Sr25519Public(msk.Public().Encode()),
	}, nil
}

func (s *Sr25519Signer) Type() Type            { return TypeSr25519 }
func (s *Sr25519Signer) PublicKey() []byte     { return s.publicKey.Bytes() }
func (s *Sr25519Signer) Public() Sr25519Public { return s.publicKey }

func (s *Sr25519Signer) Sign(msg []byte) ([]byte, error) {
	sig, err := s.SignSr25519(msg)
	if err != nil {
		return nil, err
	}
	return sig.Bytes(), nil
}

// SignSr25519 is Sign returning the fixed-size signature type.
// Signing is randomized, so repeated calls give different signatures.
func (s *Sr25519Signer) SignSr25519(msg []byte) (Sr25519Signature, error) {
	sig, err := s.secretKey.Sign(schnorrkel.NewSigningContext(Sr25519SigningContext, msg))
	if err != nil {
		return Sr25519Signature{}, fmt.Errorf("failed to sign data: %w", err)
	}
	return Sr25519Signature(sig.Encode()), nil
}
