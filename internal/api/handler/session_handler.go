package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mobilepub/publisher-console/internal/api/metrics"
	"github.com/mobilepub/publisher-console/internal/core/domain"
	"github.com/mobilepub/publisher-console/internal/core/ports"
	"github.com/mobilepub/publisher-console/internal/i18n"
)

type SessionHandler struct {
	sessions ports.SessionService
	loc      *i18n.Localizer
}

func NewSessionHandler(sessions ports.SessionService, loc *i18n.Localizer) *SessionHandler {
	return &SessionHandler{sessions: sessions, loc: loc}
}

type googleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type credentialLoginRequest struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required,max=128"`
}

type sessionResponse struct {
	Phase           domain.Phase `json:"phase"`
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"is_authenticated"`
	IsLoading       bool         `json:"is_loading"`
	Error           string       `json:"error,omitempty"`
}

type sessionMessageResponse struct {
	Message string          `json:"message"`
	Session sessionResponse `json:"session"`
}

func toSessionResponse(s domain.Session) sessionResponse {
	return sessionResponse{
		Phase:           s.Phase(),
		User:            s.User,
		IsAuthenticated: s.IsAuthenticated,
		IsLoading:       s.IsLoading,
		Error:           s.Error,
	}
}

// Get returns the current session.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(h.sessions.Snapshot()))
}

// GoogleLogin exchanges a Google id_token for a platform session.
//
// @Summary      Login with Google
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      googleLoginRequest  true  "Google identity token"
// @Success      200   {object}  sessionMessageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /session/google [post]
func (h *SessionHandler) GoogleLogin(c echo.Context) error {
	var req googleLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.sessions.Login(c.Request().Context(), req.IDToken)
	metrics.LoginsTotal.WithLabelValues(metrics.MethodGoogle, metrics.Outcome(err)).Inc()
	if err != nil {
		return h.loginError(err)
	}
	return h.loggedIn(c)
}

// CredentialLogin signs in with the demo username and password.
//
// @Summary      Login with demo credentials
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      credentialLoginRequest  true  "Demo credentials"
// @Success      200   {object}  sessionMessageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Router       /session/demo [post]
func (h *SessionHandler) CredentialLogin(c echo.Context) error {
	var req credentialLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.sessions.CredentialLogin(c.Request().Context(), req.Username, req.Password)
	metrics.LoginsTotal.WithLabelValues(metrics.MethodCredentials, metrics.Outcome(err)).Inc()
	if err != nil {
		return h.loginError(err)
	}
	return h.loggedIn(c)
}

// DemoLogin starts a demo administrator session without credentials.
//
// @Summary      Start a demo session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionMessageResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /session/demo/start [post]
func (h *SessionHandler) DemoLogin(c echo.Context) error {
	err := h.sessions.DemoLogin(c.Request().Context())
	metrics.LoginsTotal.WithLabelValues(metrics.MethodDemo, metrics.Outcome(err)).Inc()
	if err != nil {
		return h.loginError(err)
	}
	return h.loggedIn(c)
}

// Logout ends the session. It always succeeds.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionMessageResponse
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	metrics.LogoutsTotal.Inc()
	return c.JSON(http.StatusOK, sessionMessageResponse{
		Message: h.loc.Text(i18n.LoggedOut),
		Session: toSessionResponse(h.sessions.Snapshot()),
	})
}

// ClearError dismisses the last login error.
//
// @Summary      Clear login error
// @Tags         session
// @Success      204
// @Router       /session/error [delete]
func (h *SessionHandler) ClearError(c echo.Context) error {
	h.sessions.ClearError()
	return c.NoContent(http.StatusNoContent)
}

// Refresh re-reads the current user from the platform.
//
// @Summary      Refresh the session user
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /session/refresh [post]
func (h *SessionHandler) Refresh(c echo.Context) error {
	s, err := h.sessions.Refresh(c.Request().Context())
	metrics.RefreshesTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return echo.NewHTTPError(http.StatusUnauthorized, h.loc.Text(i18n.NotLoggedIn)).SetInternal(err)
		}
		return echo.NewHTTPError(http.StatusBadGateway, "platform api unavailable").SetInternal(err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(s))
}

func (h *SessionHandler) loggedIn(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionMessageResponse{
		Message: h.loc.Text(i18n.LoginSucceeded),
		Session: toSessionResponse(h.sessions.Snapshot()),
	})
}

// loginError answers with the message the failed login left in the session.
func (h *SessionHandler) loginError(err error) error {
	msg := h.sessions.Snapshot().Error
	if msg == "" {
		msg = h.loc.Text(i18n.LoginFailed)
	}
	code := http.StatusUnauthorized
	var apiErr *domain.APIError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
	case errors.Is(err, domain.ErrSessionStore):
		code = http.StatusInternalServerError
	case errors.As(err, &apiErr):
		// Platform 4xx answers are login rejections; anything else is upstream trouble.
		if apiErr.Status >= http.StatusInternalServerError {
			code = http.StatusBadGateway
		}
	default:
		// Transport failures reaching the platform.
		code = http.StatusBadGateway
	}
	return echo.NewHTTPError(code, msg).SetInternal(err)
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
