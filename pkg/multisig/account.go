package multisig

import (
	"fmt"
	"reflect"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/erc7824/nitrolite/multisig/pkg/sign"
)

// AccountIDSize is the size of an account identifier in bytes.
const AccountIDSize = 32

var accountIDT = reflect.TypeOf(AccountID{})

// AccountID is the 32-byte identity a signature is verified against.
type AccountID [AccountIDSize]byte

// AccountIDFromBytes copies b into an AccountID after checking its length.
func AccountIDFromBytes(b []byte) (AccountID, error) {
	var id AccountID
	if len(b) != AccountIDSize {
		return id, fmt.Errorf("%w: account id must be %d bytes, got %d", sign.ErrInvalidLength, AccountIDSize, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// UncheckedAccountID wraps raw bytes as an AccountID.
//
// No scheme key validity check is performed: the bytes need not be a valid Ed25519 or
// Sr25519 point, nor the hash of any ECDSA key. Signatures checked against such an
// account simply fail to verify.
func UncheckedAccountID(raw [AccountIDSize]byte) AccountID {
	return AccountID(raw)
}

// ParseAccountID decodes an SS58 address of any network prefix.
func ParseAccountID(s string) (AccountID, error) {
	_, payload, err := sign.SS58Decode(s)
	if err != nil {
		return AccountID{}, err
	}
	return AccountIDFromBytes(payload)
}

func (a AccountID) Bytes() []byte { return a[:] }

// String returns the SS58 address under the generic network prefix.
func (a AccountID) String() string { return a.SS58(sign.DefaultSS58Prefix) }

// SS58 returns the SS58 address under the given network prefix.
func (a AccountID) SS58(prefix uint16) string { return sign.SS58Encode(prefix, a[:]) }

// Hex returns the 0x-prefixed hex form.
func (a AccountID) Hex() string { return hexutil.Encode(a[:]) }

// Ed25519Public reinterprets the account bytes as an Ed25519 public key.
// The result may not be a valid curve point.
func (a AccountID) Ed25519Public() sign.Ed25519Public { return sign.Ed25519Public(a) }

// Sr25519Public reinterprets the account bytes as an Sr25519 public key.
// The result may not be a valid Ristretto point.
func (a AccountID) Sr25519Public() sign.Sr25519Public { return sign.Sr25519Public(a) }

func (a AccountID) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), a[:]...), nil
}

func (a *AccountID) UnmarshalBinary(data []byte) error {
	if len(data) != AccountIDSize {
		return fmt.Errorf("%w: account id must be %d bytes, got %d", ErrMalformedEncoding, AccountIDSize, len(data))
	}
	copy(a[:], data)
	return nil
}

func (a AccountID) MarshalText() ([]byte, error) {
	return hexutil.Bytes(a[:]).MarshalText()
}

func (a *AccountID) UnmarshalJSON(input []byte) error {
	if err := hexutil.UnmarshalFixedJSON(accountIDT, input, a[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	return nil
}

func (a *AccountID) UnmarshalText(input []byte) error {
	if err := hexutil.UnmarshalFixedText("AccountID", input, a[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	return nil
}
