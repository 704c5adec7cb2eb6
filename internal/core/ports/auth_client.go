package ports

import (
	"context"

	"github.com/mobilepub/publisher-console/internal/core/domain"
)

// AuthResult is the body of a successful identity-token exchange.
type AuthResult struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

// AuthClient talks to the platform's authentication endpoints.
// Non-2xx answers surface as *domain.APIError.
type AuthClient interface {
	GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}
