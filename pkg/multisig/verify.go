package multisig

import (
	"github.com/erc7824/nitrolite/multisig/pkg/sign"
)

// Lazy produces the message to verify. Verification calls it at most once, and only
// when a scheme actually needs the bytes.
type Lazy func() []byte

// Message wraps an already materialised message.
func Message(msg []byte) Lazy {
	return func() []byte { return msg }
}

func (l Lazy) get() []byte {
	if l == nil {
		return nil
	}
	return l()
}

// once returns a Lazy that calls l on first use and caches the result.
func (l Lazy) once() Lazy {
	var (
		msg  []byte
		done bool
	)
	return func() []byte {
		if !done {
			msg, done = l.get(), true
		}
		return msg
	}
}

// Verifier dispatches a MultiSignature to the provider of its scheme.
// It holds no mutable state and is safe for concurrent use.
type Verifier struct {
	ed25519 sign.DirectScheme
	sr25519 sign.DirectScheme
	ecdsa   sign.RecoveryScheme
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithEd25519 replaces the Ed25519 provider.
func WithEd25519(s sign.DirectScheme) Option {
	return func(v *Verifier) { v.ed25519 = s }
}

// WithSr25519 replaces the Sr25519 provider.
func WithSr25519(s sign.DirectScheme) Option {
	return func(v *Verifier) { v.sr25519 = s }
}

// WithEcdsa replaces the ECDSA provider.
func WithEcdsa(s sign.RecoveryScheme) Option {
	return func(v *Verifier) { v.ecdsa = s }
}

// NewVerifier creates a Verifier backed by the pkg/sign providers unless overridden.
func NewVerifier(opts ...Option) *Verifier {
	v := &Verifier{
		ed25519: sign.Ed25519Scheme{},
		sr25519: sign.Sr25519Scheme{},
		ecdsa:   sign.EcdsaScheme{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var defaultVerifier = NewVerifier()

// DefaultVerifier returns the shared Verifier using the pkg/sign providers.
func DefaultVerifier() *Verifier { return defaultVerifier }

// Verify reports whether sig is a valid signature of msg by the account who.
//
// Ed25519 and Sr25519 signatures are checked directly against who read as a public key
// of that scheme. For ECDSA the signer's key is recovered from the signature over the
// BLAKE2b-256 digest of msg, and the signature is valid when the hash of the compressed
// key equals who. A signature is only ever checked under its own scheme.
func (v *Verifier) Verify(sig MultiSignature, msg Lazy, who AccountID) bool {
	ok, _ := v.VerifyDetailed(sig, msg, who)
	return ok
}

// VerifyDetailed is Verify that also returns why an ECDSA recovery failed, or
// ErrNoVariant for a zero signature. A nil error does not imply the signature is valid.
func (v *Verifier) VerifyDetailed(sig MultiSignature, msg Lazy, who AccountID) (bool, error) {
	switch s := sig.sig.(type) {
	case sign.Ed25519Signature:
		pub := who.Ed25519Public()
		return v.ed25519.Verify(s[:], msg.get(), pub[:]), nil
	case sign.Sr25519Signature:
		pub := who.Sr25519Public()
		return v.sr25519.Verify(s[:], msg.get(), pub[:]), nil
	case sign.EcdsaSignature:
		recovered, err := v.ecdsa.RecoverCompressed(s[:], v.ecdsa.Hash(msg.get()))
		if err != nil {
			return false, err
		}
		return v.ecdsa.Hash(recovered) == [AccountIDSize]byte(who), nil
	default:
		return false, ErrNoVariant
	}
}
