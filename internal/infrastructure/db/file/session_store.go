// Package file persists the console session in a JSON file on local disk,
// the process-level counterpart of a browser's localStorage.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mobilepub/publisher-console/internal/core/domain"
	"github.com/mobilepub/publisher-console/internal/core/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps the key/value pairs in one JSON object. Writes go to a
// temporary file that is renamed over the old one, so a crash never leaves
// half a pair behind.
type SessionStore struct {
	path string
	mu   sync.Mutex
}

// NewSessionStore stores the session at path. The parent directory is
// created on first write.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

func (s *SessionStore) Load(_ context.Context) (ports.StoredSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kv, err := s.read()
	if err != nil {
		return ports.StoredSession{}, err
	}
	token, user := kv[ports.KeyAccessToken], kv[ports.KeyUser]
	if token == "" || user == "" {
		return ports.StoredSession{}, domain.ErrSessionNotFound
	}
	return ports.StoredSession{Token: token, User: user}, nil
}

func (s *SessionStore) Save(_ context.Context, st ports.StoredSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kv, err := s.read()
	if err != nil {
		kv = make(map[string]string)
	}
	kv[ports.KeyAccessToken] = st.Token
	kv[ports.KeyUser] = st.User
	return s.write(kv)
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kv, err := s.read()
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		kv = make(map[string]string)
	}
	delete(kv, ports.KeyAccessToken)
	delete(kv, ports.KeyUser)
	if len(kv) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove session file: %w", err)
		}
		return nil
	}
	return s.write(kv)
}

// Ping checks that the session directory exists or can be created.
func (s *SessionStore) Ping(_ context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	return nil
}

func (s *SessionStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	kv := make(map[string]string)
	if err := json.Unmarshal(raw, &kv); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	return kv, nil
}

func (s *SessionStore) write(kv map[string]string) error {
	raw, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
