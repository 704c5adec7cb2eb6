package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mobilepub/publisher-console/internal/core/domain"
	"github.com/mobilepub/publisher-console/internal/core/ports"
)

const defaultPrefix = "console:"

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps the session pair in two Redis strings.
// Key format: <prefix>access_token, <prefix>user. Neither key expires.
type SessionStore struct {
	client *redis.Client
	prefix string
}

// NewSessionStore wraps client. An empty prefix falls back to "console:".
func NewSessionStore(client *redis.Client, prefix string) *SessionStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &SessionStore{client: client, prefix: prefix}
}

func (s *SessionStore) Load(ctx context.Context) (ports.StoredSession, error) {
	vals, err := s.client.MGet(ctx, s.key(ports.KeyAccessToken), s.key(ports.KeyUser)).Result()
	if err != nil {
		return ports.StoredSession{}, fmt.Errorf("redis load session: %w", err)
	}

	token, okToken := vals[0].(string)
	user, okUser := vals[1].(string)
	if !okToken || !okUser || token == "" || user == "" {
		return ports.StoredSession{}, domain.ErrSessionNotFound
	}
	return ports.StoredSession{Token: token, User: user}, nil
}

// Save writes both keys in one MULTI/EXEC so readers never see half a pair.
func (s *SessionStore) Save(ctx context.Context, st ports.StoredSession) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.key(ports.KeyAccessToken), st.Token, 0)
		p.Set(ctx, s.key(ports.KeyUser), st.User, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(ports.KeyAccessToken), s.key(ports.KeyUser)).Err(); err != nil {
		return fmt.Errorf("redis clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) key(name string) string {
	return s.prefix + name
}
