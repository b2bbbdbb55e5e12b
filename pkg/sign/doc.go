// Package sign provides the per-scheme signature primitives used by multi-scheme
// verification.
//
// Three schemes are supported, identified by Type:
//
//   - TypeEd25519: Ed25519 over Curve25519, 32-byte keys, 64-byte signatures
//   - TypeSr25519: Schnorrkel over Ristretto25519, 32-byte keys, 64-byte signatures
//   - TypeEcdsa: secp256k1 ECDSA with public key recovery, 33-byte compressed keys,
//     65-byte signatures over the BLAKE2b-256 digest of the message
//
// Each scheme has a fixed-size key and signature type (Ed25519Public, EcdsaSignature,
// ...) with hex JSON encoding, and a provider implementing one of two interfaces:
//
//   - DirectScheme: checks a signature against a known public key
//   - RecoveryScheme: recovers the public key from a signature and a digest
//
// The providers take raw byte slices and never panic on malformed input: a signature
// that cannot be decoded simply does not verify.
//
// Signers are provided for producing signatures from existing secrets. Key generation
// and key storage are deliberately out of scope.
//
// Usage
//
//	signer, err := sign.NewEcdsaSigner(privateKeyHex)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Sign a message (the signer hashes it with BLAKE2b-256)
//	sig, err := signer.Sign([]byte("hello world"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Recover the signer
//	scheme := sign.EcdsaScheme{}
//	pub, err := scheme.RecoverCompressed(sig, scheme.Hash([]byte("hello world")))
//
// Public keys can be rendered as SS58 addresses with SS58Encode or the SS58 method on
// each key type.
package sign
