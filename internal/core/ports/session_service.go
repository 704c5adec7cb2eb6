package ports

import (
	"context"

	"github.com/mobilepub/publisher-console/internal/core/domain"
)

// SessionService is the session lifecycle as seen by the transport layer.
type SessionService interface {
	Snapshot() domain.Session
	Login(ctx context.Context, idToken string) error
	DemoLogin(ctx context.Context) error
	CredentialLogin(ctx context.Context, username, password string) error
	Logout(ctx context.Context)
	ClearError()
	Invalidate(ctx context.Context)
	Refresh(ctx context.Context) (domain.Session, error)
}
