package sign

import (
	"bytes"
	"fmt"
	"sync"
)

var _ DirectScheme = (*MockScheme)(nil)
var _ RecoveryScheme = (*MockScheme)(nil)

// MockScheme is a scriptable scheme for tests. It records every call it receives,
// which makes it possible to check which scheme a dispatcher consulted and how often
// it materialised the message.
//
// As a DirectScheme it accepts any signature when Accept is nil. Otherwise Accept decides.
// As a RecoveryScheme it hashes by returning the first 32 bytes of the data (zero padded)
// unless HashFunc is set, and recovers Recovered (or RecoverErr).
type MockScheme struct {
	SchemeType Type

	// MalformedErr, when set, is returned by CheckSignature.
	MalformedErr error
	// Accept decides Verify. A nil Accept accepts everything.
	Accept func(sig, msg, pub []byte) bool

	HashFunc   func(data []byte) [32]byte
	Recovered  []byte
	RecoverErr error

	mu    sync.Mutex
	calls []string
}

// NewMockScheme creates a MockScheme reporting the given type.
func NewMockScheme(t Type) *MockScheme {
	return &MockScheme{SchemeType: t}
}

func (m *MockScheme) Type() Type { return m.SchemeType }

func (m *MockScheme) CheckSignature(sig []byte) error {
	m.record("check")
	if m.MalformedErr != nil {
		return m.MalformedErr
	}
	if size := m.SchemeType.SignatureSize(); size != 0 {
		return checkLength(m.SchemeType.String()+" signature", sig, size)
	}
	return nil
}

func (m *MockScheme) Verify(sig, msg, pub []byte) bool {
	m.record("verify")
	if m.Accept == nil {
		return true
	}
	return m.Accept(sig, msg, pub)
}

func (m *MockScheme) Hash(data []byte) [32]byte {
	m.record("hash")
	if m.HashFunc != nil {
		return m.HashFunc(data)
	}
	var out [32]byte
	copy(out[:], data)
	return out
}

func (m *MockScheme) RecoverCompressed(sig []byte, digest [32]byte) ([]byte, error) {
	m.record("recover")
	if m.RecoverErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecoveryFailed, m.RecoverErr)
	}
	return bytes.Clone(m.Recovered), nil
}

// Calls returns the names of the methods called so far, in order.
func (m *MockScheme) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns how many times the named method was called.
func (m *MockScheme) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (m *MockScheme) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}
