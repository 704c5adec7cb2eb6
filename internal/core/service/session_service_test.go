package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/mobilepub/publisher-console/internal/core/domain"
	"github.com/mobilepub/publisher-console/internal/core/ports"
	"github.com/mobilepub/publisher-console/internal/i18n"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubStore struct {
	data    map[string]string
	loadErr error
	saveErr error
	saves   int
	clears  int
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string]string)}
}

func (s *stubStore) Load(_ context.Context) (ports.StoredSession, error) {
	if s.loadErr != nil {
		return ports.StoredSession{}, s.loadErr
	}
	token, okT := s.data[ports.KeyAccessToken]
	user, okU := s.data[ports.KeyUser]
	if !okT || !okU {
		return ports.StoredSession{}, domain.ErrSessionNotFound
	}
	return ports.StoredSession{Token: token, User: user}, nil
}

func (s *stubStore) Save(_ context.Context, st ports.StoredSession) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.data[ports.KeyAccessToken] = st.Token
	s.data[ports.KeyUser] = st.User
	return nil
}

func (s *stubStore) Clear(_ context.Context) error {
	s.clears++
	delete(s.data, ports.KeyAccessToken)
	delete(s.data, ports.KeyUser)
	return nil
}

func (s *stubStore) Ping(_ context.Context) error { return nil }

func (s *stubStore) empty() bool {
	return len(s.data) == 0
}

func (s *stubStore) put(t *testing.T, token string, u *domain.User) {
	t.Helper()
	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	s.data[ports.KeyAccessToken] = token
	s.data[ports.KeyUser] = string(raw)
}

type stubAuthClient struct {
	googleFn  func(ctx context.Context, idToken string) (*ports.AuthResult, error)
	logoutFn  func(ctx context.Context, token string) error
	currentFn func(ctx context.Context, token string) (*domain.User, error)

	googleCalls  int
	logoutCalls  int
	currentCalls int
}

func (c *stubAuthClient) GoogleLogin(ctx context.Context, idToken string) (*ports.AuthResult, error) {
	c.googleCalls++
	return c.googleFn(ctx, idToken)
}

func (c *stubAuthClient) Logout(ctx context.Context, token string) error {
	c.logoutCalls++
	if c.logoutFn == nil {
		return nil
	}
	return c.logoutFn(ctx, token)
}

func (c *stubAuthClient) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	c.currentCalls++
	return c.currentFn(ctx, token)
}

func (c *stubAuthClient) calls() int {
	return c.googleCalls + c.logoutCalls + c.currentCalls
}

func newManager(t *testing.T, store *stubStore, client *stubAuthClient) *SessionManager {
	t.Helper()
	demo, err := NewDemoCredentials("anhnd", "123123123")
	if err != nil {
		t.Fatalf("demo credentials: %v", err)
	}
	return NewSessionManager(store, client, demo, i18n.New("vi"), zerolog.Nop())
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// ---------------------------------------------------------------------------
// Resolve
// ---------------------------------------------------------------------------

func TestResolve_NoStoredSession(t *testing.T) {
	store := newStubStore()
	client := &stubAuthClient{}
	m := newManager(t, store, client)

	s := m.Resolve(context.Background())

	if s.Phase() != domain.PhaseAnonymous {
		t.Fatalf("expected anonymous, got %s", s.Phase())
	}
	if client.calls() != 0 {
		t.Fatalf("expected no network calls, got %d", client.calls())
	}
}

func TestResolve_DemoTokenUsesCachedUser(t *testing.T) {
	store := newStubStore()
	cached := &domain.User{ID: 1, Email: "anhnd@demo.com", Role: domain.RoleAdmin}
	store.put(t, domain.NewDemoToken(time.Now()), cached)
	client := &stubAuthClient{}
	m := newManager(t, store, client)

	s := m.Resolve(context.Background())

	if s.Phase() != domain.PhaseAuthenticated || s.User.Email != "anhnd@demo.com" {
		t.Fatalf("unexpected session: %+v", s)
	}
	if client.calls() != 0 {
		t.Fatalf("expected no network calls, got %d", client.calls())
	}
}

func TestResolve_ServerUserReplacesCachedUser(t *testing.T) {
	store := newStubStore()
	store.put(t, "opaque-token", &domain.User{ID: 9, FullName: "Stale Name", Role: domain.RoleAnalyst})
	client := &stubAuthClient{
		currentFn: func(_ context.Context, token string) (*domain.User, error) {
			if token != "opaque-token" {
				t.Fatalf("unexpected token: %s", token)
			}
			return &domain.User{ID: 9, FullName: "Fresh Name", Role: domain.RoleExecutive}, nil
		},
	}
	m := newManager(t, store, client)

	s := m.Resolve(context.Background())

	if s.Phase() != domain.PhaseAuthenticated {
		t.Fatalf("expected authenticated, got %s", s.Phase())
	}
	if s.User.FullName != "Fresh Name" || s.User.Role != domain.RoleExecutive {
		t.Fatalf("expected server user, got %+v", s.User)
	}

	var stored domain.User
	if err := json.Unmarshal([]byte(store.data[ports.KeyUser]), &stored); err != nil {
		t.Fatalf("stored user: %v", err)
	}
	if stored.FullName != "Fresh Name" {
		t.Fatalf("expected stored user refreshed, got %+v", stored)
	}
}

func TestResolve_RejectedTokenClearsStorage(t *testing.T) {
	store := newStubStore()
	store.put(t, "opaque-token", &domain.User{ID: 9})
	client := &stubAuthClient{
		currentFn: func(context.Context, string) (*domain.User, error) {
			return nil, &domain.APIError{Status: http.StatusUnauthorized, Detail: "User not found"}
		},
	}
	m := newManager(t, store, client)

	s := m.Resolve(context.Background())

	if s.Phase() != domain.PhaseAnonymous {
		t.Fatalf("expected anonymous, got %s", s.Phase())
	}
	if !store.empty() {
		t.Fatalf("expected storage cleared, got %+v", store.data)
	}
}

func TestResolve_NetworkFailureIsNotFatal(t *testing.T) {
	store := newStubStore()
	store.put(t, "opaque-token", &domain.User{ID: 9})
	client := &stubAuthClient{
		currentFn: func(context.Context, string) (*domain.User, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	}
	m := newManager(t, store, client)

	s := m.Resolve(context.Background())

	if s.Phase() != domain.PhaseAnonymous || s.Error != "" {
		t.Fatalf("expected quiet anonymous state, got %+v", s)
	}
	if !store.empty() {
		t.Fatalf("expected storage cleared")
	}
}

func TestResolve_CorruptStoredUser(t *testing.T) {
	store := newStubStore()
	store.data[ports.KeyAccessToken] = "demo-token-1"
	store.data[ports.KeyUser] = "{not json"
	client := &stubAuthClient{}
	m := newManager(t, store, client)

	s := m.Resolve(context.Background())

	if s.Phase() != domain.PhaseAnonymous || !store.empty() {
		t.Fatalf("expected anonymous with cleared storage, got %+v", s)
	}
}

func TestResolve_ExpiredJWTSkipsNetwork(t *testing.T) {
	store := newStubStore()
	store.put(t, signedToken(t, time.Now().Add(-time.Hour)), &domain.User{ID: 42})
	client := &stubAuthClient{}
	m := newManager(t, store, client)

	s := m.Resolve(context.Background())

	if s.Phase() != domain.PhaseAnonymous || !store.empty() {
		t.Fatalf("expected anonymous with cleared storage, got %+v", s)
	}
	if client.calls() != 0 {
		t.Fatalf("expected no network calls, got %d", client.calls())
	}
}

func TestResolve_LiveJWTGoesToServer(t *testing.T) {
	store := newStubStore()
	store.put(t, signedToken(t, time.Now().Add(time.Hour)), &domain.User{ID: 42})
	client := &stubAuthClient{
		currentFn: func(context.Context, string) (*domain.User, error) {
			return &domain.User{ID: 42, Role: domain.RoleDeveloper}, nil
		},
	}
	m := newManager(t, store, client)

	if s := m.Resolve(context.Background()); s.Phase() != domain.PhaseAuthenticated {
		t.Fatalf("expected authenticated, got %s", s.Phase())
	}
	if client.currentCalls != 1 {
		t.Fatalf("expected one /auth/me call, got %d", client.currentCalls)
	}
}

func TestResolve_RunsOnce(t *testing.T) {
	store := newStubStore()
	store.put(t, "opaque-token", &domain.User{ID: 9})
	client := &stubAuthClient{
		currentFn: func(context.Context, string) (*domain.User, error) {
			return &domain.User{ID: 9}, nil
		},
	}
	m := newManager(t, store, client)

	m.Resolve(context.Background())
	m.Resolve(context.Background())

	if client.currentCalls != 1 {
		t.Fatalf("expected a single resolution, got %d calls", client.currentCalls)
	}
}

func TestSubscribe_SeesLoadingBeforeResolved(t *testing.T) {
	store := newStubStore()
	m := newManager(t, store, &stubAuthClient{})

	var seen []domain.Session
	m.Subscribe(func(s domain.Session) { seen = append(seen, s) })
	m.Resolve(context.Background())

	if len(seen) < 2 {
		t.Fatalf("expected at least two snapshots, got %d", len(seen))
	}
	if !seen[0].IsLoading || seen[0].Phase() != domain.PhaseUnresolved {
		t.Fatalf("expected first snapshot to be loading, got %+v", seen[0])
	}
	if last := seen[len(seen)-1]; last.IsLoading || last.Phase() != domain.PhaseAnonymous {
		t.Fatalf("expected last snapshot anonymous, got %+v", last)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestLogin_Success(t *testing.T) {
	store := newStubStore()
	client := &stubAuthClient{
		googleFn: func(_ context.Context, idToken string) (*ports.AuthResult, error) {
			if idToken != "google-id-token" {
				t.Fatalf("unexpected id token: %s", idToken)
			}
			return &ports.AuthResult{
				AccessToken: "platform-token",
				TokenType:   "bearer",
				User:        &domain.User{ID: 5, Email: "pm@example.com", Role: domain.RoleProductManager},
			}, nil
		},
	}
	m := newManager(t, store, client)
	m.Resolve(context.Background())

	if err := m.Login(context.Background(), "google-id-token"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	s := m.Snapshot()
	if s.Phase() != domain.PhaseAuthenticated || s.User.Email != "pm@example.com" {
		t.Fatalf("unexpected session: %+v", s)
	}
	if store.data[ports.KeyAccessToken] != "platform-token" {
		t.Fatalf("expected token persisted, got %q", store.data[ports.KeyAccessToken])
	}
}

func TestLogin_ServerDetailSurfaced(t *testing.T) {
	store := newStubStore()
	client := &stubAuthClient{
		googleFn: func(context.Context, string) (*ports.AuthResult, error) {
			return nil, &domain.APIError{Status: http.StatusUnauthorized, Detail: "Authentication failed: Invalid Google token"}
		},
	}
	m := newManager(t, store, client)
	m.Resolve(context.Background())

	err := m.Login(context.Background(), "bad")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected wrapped unauthorized error, got %v", err)
	}

	s := m.Snapshot()
	if s.Phase() != domain.PhaseAnonymous || s.IsLoading {
		t.Fatalf("unexpected session: %+v", s)
	}
	if s.Error != "Authentication failed: Invalid Google token" {
		t.Fatalf("unexpected error message: %q", s.Error)
	}
	if !store.empty() {
		t.Fatalf("expected nothing stored")
	}
}

func TestLogin_NetworkFailureUsesFallback(t *testing.T) {
	client := &stubAuthClient{
		googleFn: func(context.Context, string) (*ports.AuthResult, error) {
			return nil, errors.New("connection reset")
		},
	}
	m := newManager(t, newStubStore(), client)

	if err := m.Login(context.Background(), "tok"); err == nil {
		t.Fatalf("expected error")
	}
	if got := m.Snapshot().Error; got != "Đăng nhập thất bại" {
		t.Fatalf("expected localized fallback, got %q", got)
	}
}

func TestLogin_EmptyToken(t *testing.T) {
	client := &stubAuthClient{}
	m := newManager(t, newStubStore(), client)

	if err := m.Login(context.Background(), ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if client.calls() != 0 {
		t.Fatalf("expected no network calls")
	}
}

func TestClearError(t *testing.T) {
	client := &stubAuthClient{
		googleFn: func(context.Context, string) (*ports.AuthResult, error) {
			return nil, errors.New("boom")
		},
	}
	m := newManager(t, newStubStore(), client)
	_ = m.Login(context.Background(), "tok")

	before := m.Snapshot()
	m.ClearError()
	after := m.Snapshot()

	if after.Error != "" {
		t.Fatalf("expected error cleared")
	}
	if after.Phase() != before.Phase() {
		t.Fatalf("clear error changed phase: %s -> %s", before.Phase(), after.Phase())
	}
}

// ---------------------------------------------------------------------------
// Demo login
// ---------------------------------------------------------------------------

func TestDemoLogin_AdminWithFreshToken(t *testing.T) {
	store := newStubStore()
	client := &stubAuthClient{}
	m := newManager(t, store, client)

	if err := m.DemoLogin(context.Background()); err != nil {
		t.Fatalf("demo login: %v", err)
	}
	first := store.data[ports.KeyAccessToken]

	if err := m.DemoLogin(context.Background()); err != nil {
		t.Fatalf("demo login: %v", err)
	}
	second := store.data[ports.KeyAccessToken]

	if first == second {
		t.Fatalf("expected distinct tokens, got %s twice", first)
	}
	if !domain.IsDemoToken(first) || !domain.IsDemoToken(second) {
		t.Fatalf("expected demo tokens, got %s / %s", first, second)
	}
	s := m.Snapshot()
	if s.User == nil || s.User.Role != domain.RoleAdmin {
		t.Fatalf("expected admin session, got %+v", s)
	}
	if client.calls() != 0 {
		t.Fatalf("demo login must not hit the network")
	}
}

func TestDemoLogin_StorageFailure(t *testing.T) {
	store := newStubStore()
	store.saveErr = errors.New("disk full")
	m := newManager(t, store, &stubAuthClient{})

	if err := m.DemoLogin(context.Background()); !errors.Is(err, domain.ErrSessionStore) {
		t.Fatalf("expected ErrSessionStore, got %v", err)
	}
	s := m.Snapshot()
	if s.Phase() != domain.PhaseAnonymous || s.Error != "Đăng nhập demo thất bại" {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestCredentialLogin(t *testing.T) {
	store := newStubStore()
	m := newManager(t, store, &stubAuthClient{})

	if err := m.CredentialLogin(context.Background(), "anhnd", "123123123"); err != nil {
		t.Fatalf("expected demo credentials to succeed: %v", err)
	}
	if s := m.Snapshot(); s.User == nil || s.User.Role != domain.RoleAdmin {
		t.Fatalf("expected admin session, got %+v", s)
	}

	m.Logout(context.Background())

	for _, pair := range [][2]string{{"anhnd", "wrong"}, {"admin", "123123123"}, {"", ""}} {
		err := m.CredentialLogin(context.Background(), pair[0], pair[1])
		if err != domain.ErrInvalidCredentials {
			t.Fatalf("%v: expected ErrInvalidCredentials, got %v", pair, err)
		}
		s := m.Snapshot()
		if s.Phase() != domain.PhaseAnonymous {
			t.Fatalf("%v: expected anonymous, got %s", pair, s.Phase())
		}
		if s.Error != "Tài khoản hoặc mật khẩu không đúng" {
			t.Fatalf("%v: unexpected message %q", pair, s.Error)
		}
	}
	if !store.empty() {
		t.Fatalf("failed credential logins must not store anything")
	}
}

func TestCredentialLogin_Disabled(t *testing.T) {
	m := NewSessionManager(newStubStore(), &stubAuthClient{}, nil, i18n.New("en"), zerolog.Nop())

	if err := m.CredentialLogin(context.Background(), "anhnd", "123123123"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if got := m.Snapshot().Error; got != "Invalid username or password" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestCredentialLogin_MismatchWhileSignedInClearsStorage(t *testing.T) {
	store := newStubStore()
	m := newManager(t, store, &stubAuthClient{})
	m.Resolve(context.Background())

	if err := m.DemoLogin(context.Background()); err != nil {
		t.Fatalf("demo login: %v", err)
	}
	if err := m.CredentialLogin(context.Background(), "anhnd", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if s := m.Snapshot(); s.Phase() != domain.PhaseAnonymous {
		t.Fatalf("expected anonymous, got %s", s.Phase())
	}
	if !store.empty() {
		t.Fatalf("expected stored demo session cleared, got %+v", store.data)
	}

	restarted := newManager(t, store, &stubAuthClient{})
	if s := restarted.Resolve(context.Background()); s.Phase() != domain.PhaseAnonymous {
		t.Fatalf("expected anonymous after restart, got %s", s.Phase())
	}
}

func TestLogin_FailureWhileSignedInClearsStorage(t *testing.T) {
	store := newStubStore()
	store.put(t, "platform-token", &domain.User{ID: 5, Role: domain.RoleAnalyst})
	client := &stubAuthClient{
		currentFn: func(context.Context, string) (*domain.User, error) {
			return &domain.User{ID: 5, Role: domain.RoleAnalyst}, nil
		},
		googleFn: func(context.Context, string) (*ports.AuthResult, error) {
			return nil, &domain.APIError{Status: http.StatusBadRequest, Detail: "Invalid Google token"}
		},
	}
	m := newManager(t, store, client)
	if s := m.Resolve(context.Background()); s.Phase() != domain.PhaseAuthenticated {
		t.Fatalf("expected authenticated after resolve, got %s", s.Phase())
	}

	if err := m.Login(context.Background(), "bad"); err == nil {
		t.Fatalf("expected error")
	}
	if !store.empty() {
		t.Fatalf("expected stored session cleared, got %+v", store.data)
	}

	calls := client.currentCalls
	s, err := m.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if s.Phase() != domain.PhaseAnonymous || client.currentCalls != calls {
		t.Fatalf("refresh must not revive the session: %+v", s)
	}
}

// ---------------------------------------------------------------------------
// Logout / Invalidate / Refresh
// ---------------------------------------------------------------------------

func TestLogout_CallsServerForPlatformToken(t *testing.T) {
	store := newStubStore()
	store.put(t, "platform-token", &domain.User{ID: 3})
	var sent string
	client := &stubAuthClient{
		logoutFn: func(_ context.Context, token string) error {
			sent = token
			return nil
		},
	}
	m := newManager(t, store, client)

	m.Logout(context.Background())

	if sent != "platform-token" {
		t.Fatalf("expected logout with stored token, got %q", sent)
	}
	if !store.empty() || m.Snapshot().Phase() != domain.PhaseAnonymous {
		t.Fatalf("expected cleared anonymous session")
	}
}

func TestLogout_ServerFailureStillClears(t *testing.T) {
	store := newStubStore()
	store.put(t, "platform-token", &domain.User{ID: 3})
	client := &stubAuthClient{
		logoutFn: func(context.Context, string) error {
			return &domain.APIError{Status: http.StatusBadGateway}
		},
	}
	m := newManager(t, store, client)

	m.Logout(context.Background())

	if client.logoutCalls != 1 {
		t.Fatalf("expected one logout call, got %d", client.logoutCalls)
	}
	if !store.empty() || m.Snapshot().Phase() != domain.PhaseAnonymous {
		t.Fatalf("expected cleared anonymous session")
	}
}

func TestLogout_DemoTokenSkipsServer(t *testing.T) {
	store := newStubStore()
	client := &stubAuthClient{}
	m := newManager(t, store, client)
	if err := m.DemoLogin(context.Background()); err != nil {
		t.Fatalf("demo login: %v", err)
	}

	m.Logout(context.Background())

	if client.calls() != 0 {
		t.Fatalf("expected no network calls, got %d", client.calls())
	}
	if !store.empty() || m.Snapshot().Phase() != domain.PhaseAnonymous {
		t.Fatalf("expected cleared anonymous session")
	}
}

func TestLogout_WithoutSession(t *testing.T) {
	store := newStubStore()
	client := &stubAuthClient{}
	m := newManager(t, store, client)

	m.Logout(context.Background())

	if client.calls() != 0 || m.Snapshot().Phase() != domain.PhaseAnonymous {
		t.Fatalf("expected quiet anonymous logout")
	}
}

func TestInvalidate(t *testing.T) {
	store := newStubStore()
	store.put(t, "platform-token", &domain.User{ID: 3})
	m := newManager(t, store, &stubAuthClient{
		currentFn: func(context.Context, string) (*domain.User, error) {
			return &domain.User{ID: 3}, nil
		},
	})
	m.Resolve(context.Background())

	m.Invalidate(context.Background())

	if !store.empty() || m.Snapshot().Phase() != domain.PhaseAnonymous {
		t.Fatalf("expected invalidated session")
	}
}

func TestInvalidate_KeepsDemoSession(t *testing.T) {
	store := newStubStore()
	m := newManager(t, store, &stubAuthClient{})
	if err := m.DemoLogin(context.Background()); err != nil {
		t.Fatalf("demo login: %v", err)
	}

	m.Invalidate(context.Background())

	if store.empty() || m.Snapshot().Phase() != domain.PhaseAuthenticated {
		t.Fatalf("demo session must survive unauthorized answers")
	}
}

func TestRefresh_UnauthorizedInvalidates(t *testing.T) {
	store := newStubStore()
	store.put(t, "platform-token", &domain.User{ID: 3})
	calls := 0
	client := &stubAuthClient{
		currentFn: func(context.Context, string) (*domain.User, error) {
			calls++
			if calls == 1 {
				return &domain.User{ID: 3}, nil
			}
			return nil, &domain.APIError{Status: http.StatusUnauthorized}
		},
	}
	m := newManager(t, store, client)
	m.Resolve(context.Background())

	s, err := m.Refresh(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if s.Phase() != domain.PhaseAnonymous || !store.empty() {
		t.Fatalf("expected invalidated session, got %+v", s)
	}
}

func TestRefresh_UpdatesUser(t *testing.T) {
	store := newStubStore()
	store.put(t, "platform-token", &domain.User{ID: 3, FullName: "Old"})
	calls := 0
	client := &stubAuthClient{
		currentFn: func(context.Context, string) (*domain.User, error) {
			calls++
			if calls == 1 {
				return &domain.User{ID: 3, FullName: "Old"}, nil
			}
			return &domain.User{ID: 3, FullName: "New"}, nil
		},
	}
	m := newManager(t, store, client)
	m.Resolve(context.Background())

	s, err := m.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if s.User == nil || s.User.FullName != "New" {
		t.Fatalf("expected refreshed user, got %+v", s.User)
	}
}

func TestDemoCredentials(t *testing.T) {
	if _, err := NewDemoCredentials("", "x"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	var disabled *DemoCredentials
	if disabled.Match("anhnd", "123123123") {
		t.Fatalf("nil credentials must match nothing")
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	if !tokenExpired(signedToken(t, now.Add(-time.Minute)), now) {
		t.Fatalf("expected expired")
	}
	if tokenExpired(signedToken(t, now.Add(time.Minute)), now) {
		t.Fatalf("expected live")
	}
	if tokenExpired("opaque-token", now) {
		t.Fatalf("opaque tokens are never considered expired")
	}
}
