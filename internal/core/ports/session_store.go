package ports

import "context"

// Storage keys shared by every SessionStore backend. The pair is always
// written together and cleared together.
const (
	KeyAccessToken = "access_token"
	KeyUser        = "user"
)

// StoredSession is the persisted half of a session: the bearer token and the
// JSON-serialized user, exactly as they sit in durable storage.
type StoredSession struct {
	Token string
	User  string
}

// SessionStore is durable key/value storage for the session pair.
type SessionStore interface {
	// Load returns domain.ErrSessionNotFound when either key is missing.
	Load(ctx context.Context) (StoredSession, error)
	Save(ctx context.Context, s StoredSession) error
	Clear(ctx context.Context) error
	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
}
