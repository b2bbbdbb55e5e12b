package multisig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/erc7824/nitrolite/multisig/pkg/sign"
)

// The binary form of a MultiSigner or MultiSignature is the scheme discriminant
// followed by the fixed-size payload of that scheme. The JSON form is a single-key
// object mapping the scheme name to the 0x-hex payload.

func encodeTagged(t sign.Type, payload []byte) []byte {
	out := make([]byte, 0, 1+len(payload))
	out = append(out, byte(t))
	return append(out, payload...)
}

// decodeTagged splits data into its scheme and payload. size returns the payload
// length expected for a scheme.
func decodeTagged(data []byte, size func(sign.Type) int, what string) (sign.Type, []byte, error) {
	if len(data) == 0 {
		return sign.TypeUnknown, nil, fmt.Errorf("%w: empty %s", ErrMalformedEncoding, what)
	}

	t := sign.Type(data[0])
	if !t.Valid() {
		return sign.TypeUnknown, nil, fmt.Errorf("%w: unknown %s variant %d", ErrMalformedEncoding, what, data[0])
	}

	payload := data[1:]
	if want := size(t); len(payload) != want {
		return sign.TypeUnknown, nil, fmt.Errorf("%w: %s %s payload must be %d bytes, got %d",
			ErrMalformedEncoding, t, what, want, len(payload))
	}
	return t, payload, nil
}

func marshalTaggedJSON(t sign.Type, payload []byte) ([]byte, error) {
	return json.Marshal(map[string]hexutil.Bytes{t.String(): payload})
}

func unmarshalTaggedJSON(data []byte, size func(sign.Type) int, what string) (sign.Type, []byte, error) {
	name, payload, err := readSingleKeyObject(data, what)
	if err != nil {
		return sign.TypeUnknown, nil, err
	}

	t, err := sign.ParseType(name)
	if err != nil {
		return sign.TypeUnknown, nil, fmt.Errorf("%w: %s: %v", ErrMalformedEncoding, what, err)
	}
	if want := size(t); len(payload) != want {
		return sign.TypeUnknown, nil, fmt.Errorf("%w: %s %s payload must be %d bytes, got %d",
			ErrMalformedEncoding, t, what, want, len(payload))
	}
	return t, payload, nil
}

// readSingleKeyObject decodes a JSON object with exactly one hex-valued key.
// Duplicate keys are rejected rather than letting the last one win.
func readSingleKeyObject(data []byte, what string) (string, hexutil.Bytes, error) {
	malformed := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrMalformedEncoding, what, fmt.Sprintf(format, args...))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil {
		return "", nil, malformed("%v", err)
	} else if tok != json.Delim('{') {
		return "", nil, malformed("expected object, got %v", tok)
	}

	var (
		name    string
		payload hexutil.Bytes
		keys    int
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", nil, malformed("%v", err)
		}
		key, ok := tok.(string)
		if !ok {
			return "", nil, malformed("unexpected token %v", tok)
		}
		if keys > 0 && key == name {
			return "", nil, malformed("duplicate scheme key %q", key)
		}

		var value hexutil.Bytes
		if err := dec.Decode(&value); err != nil {
			return "", nil, malformed("%v", err)
		}
		name, payload = key, value
		keys++
	}

	if _, err := dec.Token(); err != nil {
		return "", nil, malformed("%v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return "", nil, malformed("trailing data after object")
	}
	if keys != 1 {
		return "", nil, fmt.Errorf("%w: %s object must have exactly one scheme key, got %d",
			ErrMalformedEncoding, what, keys)
	}
	return name, payload, nil
}
