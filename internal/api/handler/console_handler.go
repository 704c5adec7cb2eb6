package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mobilepub/publisher-console/internal/api/middleware"
	"github.com/mobilepub/publisher-console/internal/core/domain"
)

// ErrorResponse is the canonical error envelope for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

type ConsoleHandler struct{}

func NewConsoleHandler() *ConsoleHandler {
	return &ConsoleHandler{}
}

type sectionsResponse struct {
	User     *domain.User     `json:"user"`
	Sections []domain.Section `json:"sections"`
}

// Sections lists the console sections the logged-in user may open.
//
// @Summary      Console navigation
// @Tags         console
// @Produce      json
// @Success      200  {object}  sectionsResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /console/sections [get]
func (h *ConsoleHandler) Sections(c echo.Context) error {
	u, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sectionsResponse{User: u, Sections: domain.VisibleSections(u.Role)})
}

// Section opens one console section.
//
// @Summary      Open a console section
// @Tags         console
// @Produce      json
// @Param        section  path      string  true  "Section name"
// @Success      200      {object}  domain.Section
// @Failure      401      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /console/sections/{section} [get]
func (h *ConsoleHandler) Section(c echo.Context) error {
	s, ok := c.Get(middleware.ContextSection).(domain.Section)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "section not resolved")
	}
	return c.JSON(http.StatusOK, s)
}
