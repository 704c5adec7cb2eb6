package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mobilepub/publisher-console/internal/core/domain"
	"github.com/mobilepub/publisher-console/internal/core/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS console_session_kv (
	namespace  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, key)
)`

const upsertPair = `
INSERT INTO console_session_kv (namespace, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

const defaultNamespace = "default"

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps the session pair as two rows of a key/value table,
// written and deleted inside one transaction.
type SessionStore struct {
	db        *sql.DB
	namespace string
}

// NewSessionStore scopes the pair to namespace ("default" when empty).
func NewSessionStore(db *sql.DB, namespace string) *SessionStore {
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &SessionStore{db: db, namespace: namespace}
}

// EnsureSchema creates the key/value table when missing.
func (s *SessionStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create session table: %w", err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context) (ports.StoredSession, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM console_session_kv WHERE namespace = $1 AND key IN ($2, $3)`,
		s.namespace, ports.KeyAccessToken, ports.KeyUser)
	if err != nil {
		return ports.StoredSession{}, fmt.Errorf("load session: %w", err)
	}
	defer rows.Close()

	var st ports.StoredSession
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return ports.StoredSession{}, fmt.Errorf("scan session: %w", err)
		}
		switch key {
		case ports.KeyAccessToken:
			st.Token = value
		case ports.KeyUser:
			st.User = value
		}
	}
	if err := rows.Err(); err != nil {
		return ports.StoredSession{}, fmt.Errorf("load session: %w", err)
	}

	if st.Token == "" || st.User == "" {
		return ports.StoredSession{}, domain.ErrSessionNotFound
	}
	return st, nil
}

func (s *SessionStore) Save(ctx context.Context, st ports.StoredSession) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, upsertPair, s.namespace, ports.KeyAccessToken, st.Token); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		if _, err := tx.ExecContext(ctx, upsertPair, s.namespace, ports.KeyUser, st.User); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		return nil
	})
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM console_session_kv WHERE namespace = $1 AND key IN ($2, $3)`,
			s.namespace, ports.KeyAccessToken, ports.KeyUser)
		if err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		return nil
	})
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SessionStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
