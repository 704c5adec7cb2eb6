package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mobilepub/publisher-console/internal/core/domain"
	"github.com/mobilepub/publisher-console/internal/i18n"
)

// ContextSection holds the domain.Section resolved by SectionAccess.
const ContextSection = "section"

// SectionAccess enforces the role table of the console section named by the
// :section path parameter. It must run after RequireSession.
func SectionAccess(loc *i18n.Localizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			name := c.Param("section")
			section, err := domain.FindSection(name)
			if err != nil {
				return fmt.Errorf("section %q: %w", name, err)
			}

			role, _ := c.Get(ContextRole).(string)
			if !section.Allows(domain.Role(role)) {
				return echo.NewHTTPError(http.StatusForbidden, loc.Text(i18n.SectionForbidden)).
					SetInternal(domain.ErrForbidden)
			}

			c.Set(ContextSection, section)
			return next(c)
		}
	}
}
