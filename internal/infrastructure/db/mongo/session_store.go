package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mobilepub/publisher-console/internal/core/domain"
	"github.com/mobilepub/publisher-console/internal/core/ports"
)

const (
	sessionCollection = "console_sessions"
	defaultSessionID  = "current"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps the session pair in a single document so both halves
// are written and removed atomically.
type SessionStore struct {
	coll *mongo.Collection
	id   string
}

// NewSessionStore stores the session under document id. An empty id
// falls back to "current".
func NewSessionStore(db *mongo.Database, id string) *SessionStore {
	if id == "" {
		id = defaultSessionID
	}
	return &SessionStore{coll: db.Collection(sessionCollection), id: id}
}

type mongoSession struct {
	ID          string `bson:"_id"`
	AccessToken string `bson:"access_token"`
	User        string `bson:"user"`
	UpdatedAt   int64  `bson:"updated_at"`
}

func (s *SessionStore) Load(ctx context.Context) (ports.StoredSession, error) {
	var doc mongoSession
	if err := s.coll.FindOne(ctx, bson.M{"_id": s.id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ports.StoredSession{}, domain.ErrSessionNotFound
		}
		return ports.StoredSession{}, fmt.Errorf("find session: %w", err)
	}
	if doc.AccessToken == "" || doc.User == "" {
		return ports.StoredSession{}, domain.ErrSessionNotFound
	}
	return ports.StoredSession{Token: doc.AccessToken, User: doc.User}, nil
}

func (s *SessionStore) Save(ctx context.Context, st ports.StoredSession) error {
	doc := mongoSession{
		ID:          s.id,
		AccessToken: st.Token,
		User:        st.User,
		UpdatedAt:   time.Now().UTC().Unix(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.id}, doc, opts); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.id}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
