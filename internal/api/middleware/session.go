package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mobilepub/publisher-console/internal/core/domain"
	"github.com/mobilepub/publisher-console/internal/i18n"
)

// Context keys set by RequireSession.
const (
	ContextUser = "user"
	ContextRole = "role"
)

// SessionReader exposes the current session snapshot.
type SessionReader interface {
	Snapshot() domain.Session
}

// RequireSession lets a request through only when a user is logged in and
// injects the user and role into the context. While startup resolution is
// still running the answer is 503 so clients retry instead of redirecting to
// the login page.
func RequireSession(sessions SessionReader, loc *i18n.Localizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := sessions.Snapshot()
			switch s.Phase() {
			case domain.PhaseUnresolved:
				c.Response().Header().Set("Retry-After", "1")
				return echo.NewHTTPError(http.StatusServiceUnavailable, loc.Text(i18n.SessionResolving)).
					SetInternal(domain.ErrSessionUnresolved)
			case domain.PhaseAnonymous:
				return echo.NewHTTPError(http.StatusUnauthorized, loc.Text(i18n.NotLoggedIn)).
					SetInternal(domain.ErrUnauthorized)
			}

			c.Set(ContextUser, s.User)
			c.Set(ContextRole, string(s.User.Role))
			return next(c)
		}
	}
}
