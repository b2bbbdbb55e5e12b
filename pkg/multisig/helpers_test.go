package multisig

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erc7824/nitrolite/multisig/pkg/sign"
)

// Development keys with published public keys.
const (
	testEd25519Seed        = "0x9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	testEd25519Public      = "0xd75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
	aliceSr25519MiniSecret = "0xe5be9a5092b81bca64be81d212e7f2f9eba183bb7a90954f7b76361f6edb5c0a"
	aliceSr25519Public     = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	aliceEcdsaPrivKey      = "0xcb6df9de1efca7a3998a8ead4e02159d5fa99c3e0d4fd6432667390bb4726854"
	aliceEcdsaPublic       = "0x020a1091341fe5664bfa1782d5e04779689068c916b04cb365ec3153755684d9a1"
	// BLAKE2b-256 of aliceEcdsaPublic.
	aliceEcdsaAccount = "0x01e552298e47454041ea31273b4b630c64c104e4514aa3643490b8aaca9cf8ed"

	aliceSr25519Address = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	aliceEcdsaAddress   = "5C7C2Z5sWbytvHpuLTvzKunnnRwQxft1jiqrLD5rhucQ5S9X"
	testEd25519Address  = "5Gw54ghuAHodDGAS91DUxqvKa6PeT9bhDdns3ztBupY8pSyn"
)

var testMessage = []byte("transfer 100 units")

type testSigners struct {
	ed25519 *sign.Ed25519Signer
	sr25519 *sign.Sr25519Signer
	ecdsa   *sign.EcdsaSigner
}

func setupSigners(t *testing.T) testSigners {
	t.Helper()

	ed, err := sign.NewEd25519Signer(testEd25519Seed)
	require.NoError(t, err)
	sr, err := sign.NewSr25519Signer(aliceSr25519MiniSecret)
	require.NoError(t, err)
	ec, err := sign.NewEcdsaSigner(aliceEcdsaPrivKey)
	require.NoError(t, err)

	return testSigners{ed25519: ed, sr25519: sr, ecdsa: ec}
}

// signAll signs msg under every scheme and returns each signature with the signer's account.
func (s testSigners) signAll(t *testing.T, msg []byte) map[sign.Type]signedCase {
	t.Helper()

	sr, err := s.sr25519.SignSr25519(msg)
	require.NoError(t, err)
	ec, err := s.ecdsa.SignEcdsa(msg)
	require.NoError(t, err)

	return map[sign.Type]signedCase{
		sign.TypeEd25519: {
			sig:    SignatureFromEd25519(s.ed25519.SignEd25519(msg)),
			signer: SignerFromEd25519(s.ed25519.Public()),
		},
		sign.TypeSr25519: {
			sig:    SignatureFromSr25519(sr),
			signer: SignerFromSr25519(s.sr25519.Public()),
		},
		sign.TypeEcdsa: {
			sig:    SignatureFromEcdsa(ec),
			signer: SignerFromEcdsa(s.ecdsa.Public()),
		},
	}
}

type signedCase struct {
	sig    MultiSignature
	signer MultiSigner
}

// countingMessage returns a Lazy over msg and a pointer to the number of times it was called.
func countingMessage(msg []byte) (Lazy, *int) {
	calls := 0
	return func() []byte {
		calls++
		return msg
	}, &calls
}

func flipBit(b []byte, bit int) []byte {
	out := append([]byte(nil), b...)
	out[bit/8] ^= 1 << (bit % 8)
	return out
}
