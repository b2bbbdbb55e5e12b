package sign

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// DefaultSS58Prefix is the generic Substrate network prefix.
const DefaultSS58Prefix uint16 = 42

// MaxSS58Prefix is the largest prefix the two-byte form can carry.
const MaxSS58Prefix uint16 = 16383

// ErrInvalidSS58 is returned when a string is not a well-formed SS58 address.
var ErrInvalidSS58 = errors.New("invalid ss58 address")

var ss58ChecksumPrefix = []byte("SS58PRE")

// SS58Encode renders payload as an SS58 address under the given network prefix.
// Prefixes above MaxSS58Prefix are masked to 14 bits.
func SS58Encode(prefix uint16, payload []byte) string {
	data := append(encodeSS58Prefix(prefix), payload...)
	sum := ss58Checksum(data)
	return base58.Encode(append(data, sum[:ss58ChecksumLen(len(payload))]...))
}

// SS58Decode parses an SS58 address and returns its network prefix and payload.
func SS58Decode(s string) (uint16, []byte, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrInvalidSS58, err)
	}
	if len(raw) < 2 {
		return 0, nil, fmt.Errorf("%w: too short", ErrInvalidSS58)
	}

	var prefix uint16
	var prefixLen int
	switch {
	case raw[0] < 64:
		prefix, prefixLen = uint16(raw[0]), 1
	case raw[0] < 128:
		lower := (raw[0] << 2) | (raw[1] >> 6)
		upper := raw[1] & 0x3f
		prefix, prefixLen = uint16(lower)|uint16(upper)<<8, 2
	default:
		return 0, nil, fmt.Errorf("%w: reserved prefix byte %d", ErrInvalidSS58, raw[0])
	}

	body := raw[prefixLen:]
	var checksumLen int
	switch len(body) {
	case 32 + 2, 33 + 2:
		checksumLen = 2
	case 1 + 1, 2 + 1, 4 + 1, 8 + 1:
		checksumLen = 1
	default:
		return 0, nil, fmt.Errorf("%w: unexpected length %d", ErrInvalidSS58, len(raw))
	}

	split := len(raw) - checksumLen
	sum := ss58Checksum(raw[:split])
	if !bytes.Equal(sum[:checksumLen], raw[split:]) {
		return 0, nil, fmt.Errorf("%w: bad checksum", ErrInvalidSS58)
	}

	payload := make([]byte, split-prefixLen)
	copy(payload, raw[prefixLen:split])
	return prefix, payload, nil
}

func encodeSS58Prefix(prefix uint16) []byte {
	ident := prefix & MaxSS58Prefix
	if ident < 64 {
		return []byte{byte(ident)}
	}
	first := byte((ident&0x00fc)>>2) | 0x40
	second := byte(ident>>8) | byte(ident&0x0003)<<6
	return []byte{first, second}
}

func ss58ChecksumLen(payloadLen int) int {
	if payloadLen == 32 || payloadLen == 33 {
		return 2
	}
	return 1
}

func ss58Checksum(data []byte) [blake2b.Size]byte {
	return blake2b.Sum512(append(append([]byte{}, ss58ChecksumPrefix...), data...))
}
