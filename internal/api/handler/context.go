package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mobilepub/publisher-console/internal/api/middleware"
	"github.com/mobilepub/publisher-console/internal/core/domain"
)

// ctxUser extracts the user injected by RequireSession. A missing user means
// the route was mounted without the middleware; reject rather than guess.
func ctxUser(c echo.Context) (*domain.User, error) {
	u, _ := c.Get(middleware.ContextUser).(*domain.User)
	if u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session user")
	}
	return u, nil
}
