// Package multisig verifies signatures that may come from any of several schemes.
//
// A MultiSignature carries a signature under exactly one of Ed25519, Sr25519 or
// secp256k1 ECDSA, and a MultiSigner carries the matching public key. Every signer
// maps to a 32-byte AccountID:
//
//   - Ed25519 and Sr25519: the public key itself
//   - ECDSA: the BLAKE2b-256 hash of the 33-byte compressed public key
//
// A Verifier checks a MultiSignature against an AccountID. The direct schemes verify
// against the account read as a public key. ECDSA recovers the signer's key and compares
// its hash with the account. A signature is never retried under another scheme.
//
// Messages are passed as a Lazy producer so callers can defer building large payloads;
// the verifier asks for the bytes at most once.
//
// AnySignature is the older, untagged 64-byte form. It is tried as Sr25519 first and as
// Ed25519 second, against a single Sr25519 signer key.
//
// Usage
//
//	signer, _ := sign.NewSr25519Signer(miniSecretHex)
//	raw, _ := signer.SignSr25519(payload)
//
//	sig := multisig.SignatureFromSr25519(raw)
//	who := multisig.SignerFromSr25519(signer.Public()).IntoAccount()
//
//	if !sig.Verify(multisig.Message(payload), who) {
//	    return errors.New("bad signature")
//	}
package multisig
