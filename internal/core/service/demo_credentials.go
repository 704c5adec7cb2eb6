package service

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/mobilepub/publisher-console/internal/core/domain"
)

// DemoCredentials is the single username/password pair that unlocks a demo
// session. Only a bcrypt hash of the password is kept in memory.
type DemoCredentials struct {
	username string
	hash     []byte
}

// NewDemoCredentials hashes password and returns the pair.
func NewDemoCredentials(username, password string) (*DemoCredentials, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &DemoCredentials{username: username, hash: hash}, nil
}

// Match reports whether username and password are the demo pair. A nil
// receiver (demo login disabled) matches nothing.
func (d *DemoCredentials) Match(username, password string) bool {
	if d == nil || username == "" || password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(d.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(d.hash, []byte(password)) == nil
	return userOK && passOK
}
