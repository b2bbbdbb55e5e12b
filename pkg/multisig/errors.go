package multisig

import "errors"

var (
	// ErrWrongVariant is returned when extracting a scheme payload the value does not hold.
	ErrWrongVariant = errors.New("wrong signature scheme variant")
	// ErrMalformedEncoding is returned when binary or JSON input is not a valid encoding.
	ErrMalformedEncoding = errors.New("malformed encoding")
	// ErrNoVariant is returned for a zero MultiSigner or MultiSignature that holds no scheme payload.
	ErrNoVariant = errors.New("value holds no scheme variant")
)
