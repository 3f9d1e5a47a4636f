package mocks

import (
	"errors"
	"sync"

	"github.com/fittrack/fittrack-api/internal/service/auth"
)

// MockHashPrefix is the prefix MockPasswordHasher puts in front of a password.
const MockHashPrefix = "hashed:"

// MockPasswordHasher implements auth.PasswordHasher for testing. By default it
// returns MockHashPrefix followed by the password.
type MockPasswordHasher struct {
	HashFn func(password string) (string, error)

	mu sync.Mutex
	// HashCalledWith stores every password passed to Hash
	HashCalledWith []string
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	m.mu.Lock()
	m.HashCalledWith = append(m.HashCalledWith, password)
	m.mu.Unlock()

	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return MockHashPrefix + password, nil
}

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	// MatchMockHash makes Compare accept exactly the hashes MockPasswordHasher
	// produces for the password. It takes precedence over ShouldSucceed.
	MatchMockHash bool

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	// CompareCalledWith stores the arguments passed to Compare for verification
	CompareCalledWith struct {
		HashedPassword string
		Password       string
	}

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCalledWith.HashedPassword = hashedPassword
	m.CompareCalledWith.Password = password
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.MatchMockHash {
		if hashedPassword == MockHashPrefix+password {
			return nil
		}
		return errors.New("password mismatch")
	}
	if m.ShouldSucceed {
		return nil
	}
	return errors.New("password mismatch")
}
