package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mobilepub/publisher-console/internal/core/domain"
	"github.com/mobilepub/publisher-console/internal/core/ports"
	"github.com/mobilepub/publisher-console/internal/i18n"
)

var _ ports.SessionService = (*SessionManager)(nil)

// Localizer renders user-facing message keys.
type Localizer interface {
	Text(key string, args ...any) string
}

// SessionManager is the single source of truth for who is logged in.
//
// Every action runs as: pure transition (domain.Reduce) → storage write →
// publish to subscribers. Actions are serialized; Snapshot never waits for a
// network call in flight.
type SessionManager struct {
	store  ports.SessionStore
	client ports.AuthClient
	demo   *DemoCredentials
	loc    Localizer
	log    zerolog.Logger
	now    func() time.Time

	// opMu serializes actions, pubMu orders notifications, mu guards state.
	opMu     sync.Mutex
	pubMu    sync.Mutex
	mu       sync.RWMutex
	state    domain.Session
	subs     []func(domain.Session)
	resolved bool
}

// NewSessionManager returns a manager in the unresolved (loading) state.
// demo may be nil to disable credential-based demo logins.
func NewSessionManager(
	store ports.SessionStore,
	client ports.AuthClient,
	demo *DemoCredentials,
	loc Localizer,
	log zerolog.Logger,
) *SessionManager {
	return &SessionManager{
		store:  store,
		client: client,
		demo:   demo,
		loc:    loc,
		log:    log,
		now:    time.Now,
		state:  domain.InitialSession(),
	}
}

// Snapshot returns a copy of the current session.
func (m *SessionManager) Snapshot() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone()
}

// Subscribe registers fn and immediately hands it the current snapshot; fn
// then sees every later snapshot in dispatch order. fn must not call back
// into the manager.
func (m *SessionManager) Subscribe(fn func(domain.Session)) {
	m.pubMu.Lock()
	defer m.pubMu.Unlock()

	m.mu.Lock()
	m.subs = append(m.subs, fn)
	snap := m.state.Clone()
	m.mu.Unlock()

	fn(snap)
}

// Resolve rehydrates the session from storage. It runs once; later calls
// return the current snapshot untouched.
func (m *SessionManager) Resolve(ctx context.Context) domain.Session {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if m.resolved {
		return m.Snapshot()
	}
	m.resolved = true

	stored, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			m.log.Warn().Err(err).Msg("session store unreadable, starting anonymous")
		}
		return m.dispatch(domain.SetLoading(false))
	}

	var cached domain.User
	if err := json.Unmarshal([]byte(stored.User), &cached); err != nil {
		m.log.Warn().Err(err).Msg("stored user unreadable, clearing session")
		return m.discard(ctx)
	}

	if domain.IsDemoToken(stored.Token) {
		m.log.Debug().Int64("user_id", cached.ID).Msg("demo session restored from storage")
		return m.dispatch(domain.LoginSuccess(&cached))
	}

	if tokenExpired(stored.Token, m.now()) {
		m.log.Info().Int64("user_id", cached.ID).Msg("stored token expired, clearing session")
		return m.discard(ctx)
	}

	user, err := m.client.CurrentUser(ctx, stored.Token)
	if err != nil {
		m.log.Info().Err(err).Msg("stored token rejected, clearing session")
		return m.discard(ctx)
	}

	if err := m.persist(ctx, stored.Token, user); err != nil {
		m.log.Warn().Err(err).Msg("failed to refresh stored user")
	}
	m.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("session restored")
	return m.dispatch(domain.LoginSuccess(user))
}

// Login exchanges an identity-provider token for a platform session.
func (m *SessionManager) Login(ctx context.Context, idToken string) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.dispatch(domain.LoginStart())

	if idToken == "" {
		m.fail(ctx, m.loc.Text(i18n.InvalidCredentials))
		return domain.ErrInvalidCredentials
	}

	res, err := m.client.GoogleLogin(ctx, idToken)
	if err == nil && (res == nil || res.AccessToken == "" || res.User == nil) {
		err = errors.New("incomplete auth response")
	}
	if err != nil {
		msg := domain.ErrorDetail(err)
		if msg == "" {
			msg = m.loc.Text(i18n.LoginFailed)
		}
		m.fail(ctx, msg)
		return fmt.Errorf("login: %w", err)
	}

	if err := m.persist(ctx, res.AccessToken, res.User); err != nil {
		m.fail(ctx, m.loc.Text(i18n.LoginFailed))
		return fmt.Errorf("login: %w", err)
	}

	m.log.Info().Int64("user_id", res.User.ID).Str("role", string(res.User.Role)).Msg("logged in")
	m.dispatch(domain.LoginSuccess(res.User))
	return nil
}

// DemoLogin starts an administrator session without contacting the platform.
// It fails only when the session cannot be stored.
func (m *SessionManager) DemoLogin(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	return m.demoLogin(ctx)
}

// CredentialLogin checks username and password against the demo pair and,
// on a match, starts a demo session. A mismatch is a failed login attempt.
func (m *SessionManager) CredentialLogin(ctx context.Context, username, password string) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if !m.demo.Match(username, password) {
		m.dispatch(domain.LoginStart())
		m.fail(ctx, m.loc.Text(i18n.InvalidCredentials))
		m.log.Info().Str("username", username).Msg("demo credentials rejected")
		return domain.ErrInvalidCredentials
	}
	return m.demoLogin(ctx)
}

func (m *SessionManager) demoLogin(ctx context.Context) error {
	m.dispatch(domain.LoginStart())

	now := m.now()
	user := domain.DemoUser(now)
	token := domain.NewDemoToken(now)

	if err := m.persist(ctx, token, user); err != nil {
		m.fail(ctx, m.loc.Text(i18n.DemoLoginFailed))
		return fmt.Errorf("demo login: %w", err)
	}

	m.log.Info().Msg("demo session started")
	m.dispatch(domain.LoginSuccess(user))
	return nil
}

// Logout ends the session. The platform is told on a best-effort basis
// (never for demo tokens); local state is cleared whatever happens.
func (m *SessionManager) Logout(ctx context.Context) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	stored, err := m.store.Load(ctx)
	switch {
	case err == nil && !domain.IsDemoToken(stored.Token):
		if err := m.client.Logout(ctx, stored.Token); err != nil {
			m.log.Warn().Err(err).Msg("platform logout failed, clearing local session anyway")
		}
	case err != nil && !errors.Is(err, domain.ErrSessionNotFound):
		m.log.Warn().Err(err).Msg("session store unreadable during logout")
	}

	m.discard(ctx)
	m.log.Info().Msg("logged out")
}

// ClearError resets the error message only.
func (m *SessionManager) ClearError() {
	m.dispatch(domain.ClearErrorAction())
}

// Invalidate reacts to an unauthorized answer from any authenticated call:
// the stored session is dropped unless it is a demo session.
func (m *SessionManager) Invalidate(ctx context.Context) {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	m.invalidate(ctx)
}

func (m *SessionManager) invalidate(ctx context.Context) {
	stored, err := m.store.Load(ctx)
	if err == nil && domain.IsDemoToken(stored.Token) {
		m.log.Debug().Msg("unauthorized answer ignored for demo session")
		return
	}
	m.log.Info().Msg("session invalidated by unauthorized answer")
	m.discard(ctx)
}

// Refresh re-reads the current user from the platform. Demo sessions and
// anonymous sessions are returned unchanged. An unauthorized answer
// invalidates the session.
func (m *SessionManager) Refresh(ctx context.Context) (domain.Session, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	stored, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return m.Snapshot(), nil
		}
		return m.Snapshot(), fmt.Errorf("refresh: %w", err)
	}
	if domain.IsDemoToken(stored.Token) {
		return m.Snapshot(), nil
	}

	user, err := m.client.CurrentUser(ctx, stored.Token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			m.invalidate(ctx)
		}
		return m.Snapshot(), fmt.Errorf("refresh: %w", err)
	}

	if err := m.persist(ctx, stored.Token, user); err != nil {
		m.log.Warn().Err(err).Msg("failed to refresh stored user")
	}
	return m.dispatch(domain.LoginSuccess(user)), nil
}

// persist writes the token and user pair through to storage.
func (m *SessionManager) persist(ctx context.Context, token string, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := m.store.Save(ctx, ports.StoredSession{Token: token, User: string(raw)}); err != nil {
		return fmt.Errorf("store session: %w: %w", domain.ErrSessionStore, err)
	}
	return nil
}

// fail records a failed login. The failure leaves the session anonymous, so
// any previously stored pair is cleared to match.
func (m *SessionManager) fail(ctx context.Context, msg string) domain.Session {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear stored session")
	}
	return m.dispatch(domain.LoginFailure(msg))
}

// discard clears storage and moves to the anonymous state.
func (m *SessionManager) discard(ctx context.Context) domain.Session {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear stored session")
	}
	return m.dispatch(domain.LogoutAction())
}

// dispatch applies a, then notifies subscribers in order.
func (m *SessionManager) dispatch(a domain.Action) domain.Session {
	m.pubMu.Lock()
	defer m.pubMu.Unlock()

	m.mu.Lock()
	m.state = domain.Reduce(m.state, a)
	snap := m.state.Clone()
	subs := make([]func(domain.Session), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snap.Clone())
	}
	return snap
}
