package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/martrack-dev/martrack/internal/cli/client"
	"github.com/martrack-dev/martrack/internal/cli/tokenstore"
)

func signedTestToken(t *testing.T, userID int, email string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func newTestStore(t *testing.T, tokens tokenstore.Store, handler http.Handler) (*Store, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	api := client.NewUserClient(srv.URL, tokens, nil, zerolog.Nop())
	admin := client.NewAdminClient(srv.URL, tokens, nil, zerolog.Nop())
	return New(tokens, api, admin, zerolog.Nop()), srv
}

func authOKHandler(t *testing.T, token string) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token": "` + token + `", "user": {"id": 7, "email": "user@example.com"}}`))
	})
}

func TestStartupSeedsFromPersistedToken(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	token := signedTestToken(t, 7, "user@example.com")
	tokens.Set(tokenstore.SlotToken, token)
	tokens.Set(tokenstore.SlotAdminToken, "admin-jwt")

	s, _ := newTestStore(t, tokens, http.NotFoundHandler())

	state := s.Snapshot()
	if state.Token != token {
		t.Errorf("expected persisted token in state, got %q", state.Token)
	}
	if state.User == nil || state.User.ID != 7 || state.User.Email != "user@example.com" {
		t.Errorf("expected user reconstructed from token payload, got %+v", state.User)
	}
	if state.AdminToken != "admin-jwt" {
		t.Errorf("expected admin token in state, got %q", state.AdminToken)
	}
}

func TestStartupClearsUndecodableToken(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	tokens.Set(tokenstore.SlotToken, "garbage")
	tokens.Set(tokenstore.SlotLegacyToken, "garbage")

	s, _ := newTestStore(t, tokens, http.NotFoundHandler())

	if s.IsAuthenticated() {
		t.Error("corrupt token must not authenticate the session")
	}
	if _, ok := tokens.Get(tokenstore.SlotToken); ok {
		t.Error("corrupt token should be cleared from the store")
	}
	if _, ok := tokens.Get(tokenstore.SlotLegacyToken); ok {
		t.Error("legacy slot should be cleared together with the corrupt token")
	}
}

func TestLoginSuccess(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	issued := signedTestToken(t, 7, "user@example.com")
	s, _ := newTestStore(t, tokens, authOKHandler(t, issued))

	if err := s.Login(context.Background(), "user@example.com", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	state := s.Snapshot()
	if state.Token != issued {
		t.Errorf("expected issued token in state, got %q", state.Token)
	}
	if state.User == nil || state.User.Email != "user@example.com" {
		t.Errorf("expected user populated from response, got %+v", state.User)
	}
	if state.Loading || state.Err != "" {
		t.Errorf("expected clean state after success, got loading=%v err=%q", state.Loading, state.Err)
	}

	// The token is persisted under the primary and the legacy key
	if value, ok := tokens.Get(tokenstore.SlotToken); !ok || value != issued {
		t.Errorf("expected token persisted, got %q (present=%v)", value, ok)
	}
	if value, ok := tokens.Get(tokenstore.SlotLegacyToken); !ok || value != issued {
		t.Errorf("expected legacy token persisted, got %q (present=%v)", value, ok)
	}
}

func TestLoginRejectedByBackend(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	s, _ := newTestStore(t, tokens, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Invalid email or password"}`))
	}))

	err := s.Login(context.Background(), "user@example.com", "wrongpassword")
	if err == nil {
		t.Fatal("expected login to fail")
	}

	state := s.Snapshot()
	if state.Err != "Invalid email or password" {
		t.Errorf("expected the backend message, got %q", state.Err)
	}
	if state.Token != "" || state.User != nil {
		t.Error("a failed login must not leave a partial session")
	}
	if s.IsAuthenticated() {
		t.Error("session must not be authenticated after a rejected login")
	}
}

func TestLoginConnectionFailure(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused

	api := client.NewUserClient(srv.URL, tokens, nil, zerolog.Nop())
	admin := client.NewAdminClient(srv.URL, tokens, nil, zerolog.Nop())
	s := New(tokens, api, admin, zerolog.Nop())

	err := s.Login(context.Background(), "user@example.com", "password123")
	if err == nil {
		t.Fatal("expected login to fail")
	}

	if state := s.Snapshot(); state.Err != MsgConnectionFailed {
		t.Errorf("expected %q, got %q", MsgConnectionFailed, state.Err)
	}
}

func TestLoginEmptyCredentials(t *testing.T) {
	var calls atomic.Int32
	tokens := tokenstore.NewMemoryStore()
	s, _ := newTestStore(t, tokens, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	err := s.Login(context.Background(), "", "")
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("expected a *ValidationError, got %T", err)
	}
	if calls.Load() != 0 {
		t.Error("empty credentials must not reach the backend")
	}
}

func TestRegisterValidationShortCircuits(t *testing.T) {
	var calls atomic.Int32
	tokens := tokenstore.NewMemoryStore()
	s, _ := newTestStore(t, tokens, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	tests := []struct {
		name      string
		email     string
		password  string
		confirm   string
		wantField string
	}{
		{"mismatched confirmation", "user@example.com", "password123", "password124", "confirm_password"},
		{"short password", "user@example.com", "short", "short", "password"},
		{"invalid email", "not-an-email", "password123", "password123", "email"},
		{"missing email", "", "password123", "password123", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Register(context.Background(), tt.email, tt.password, tt.confirm)
			if err == nil {
				t.Fatal("expected registration to fail")
			}

			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected a *ValidationError, got %T", err)
			}
			if _, ok := verr.Fields[tt.wantField]; !ok {
				t.Errorf("expected a field error for %q, got %v", tt.wantField, verr.Fields)
			}
		})
	}

	if calls.Load() != 0 {
		t.Error("pre-flight validation failures must not reach the backend")
	}
}

func TestRegisterSuccess(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	issued := signedTestToken(t, 7, "user@example.com")
	s, _ := newTestStore(t, tokens, authOKHandler(t, issued))

	if err := s.Register(context.Background(), "user@example.com", "password123", "password123"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if !s.IsAuthenticated() {
		t.Error("expected session to be authenticated after registration")
	}
	if value, ok := tokens.Get(tokenstore.SlotToken); !ok || value != issued {
		t.Errorf("expected token persisted, got %q (present=%v)", value, ok)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	s, _ := newTestStore(t, tokens, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Email is already registered"}`))
	}))

	err := s.Register(context.Background(), "user@example.com", "password123", "password123")
	if err == nil {
		t.Fatal("expected registration to fail")
	}

	if state := s.Snapshot(); state.Err != "Email is already registered" {
		t.Errorf("expected the backend message, got %q", state.Err)
	}
}

func TestAdminLoginDoesNotTouchUserSession(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	userToken := signedTestToken(t, 7, "user@example.com")
	tokens.Set(tokenstore.SlotToken, userToken)

	s, _ := newTestStore(t, tokens, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "admin-jwt", "admin": {"username": "admin"}}`))
	}))

	if err := s.AdminLogin(context.Background(), "admin", "adminpass"); err != nil {
		t.Fatalf("admin login failed: %v", err)
	}

	state := s.Snapshot()
	if state.AdminToken != "admin-jwt" {
		t.Errorf("expected admin token in state, got %q", state.AdminToken)
	}
	if state.Token != userToken {
		t.Error("admin login must not disturb the user session")
	}
	if value, ok := tokens.Get(tokenstore.SlotAdminToken); !ok || value != "admin-jwt" {
		t.Errorf("expected admin token persisted, got %q (present=%v)", value, ok)
	}
}

func TestAdminLoginRejected(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	s, _ := newTestStore(t, tokens, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Invalid credentials"}`))
	}))

	err := s.AdminLogin(context.Background(), "admin", "wrong")
	if err == nil {
		t.Fatal("expected admin login to fail")
	}

	state := s.Snapshot()
	if state.Err != "Invalid credentials" {
		t.Errorf("expected the backend message, got %q", state.Err)
	}
	if s.IsAdminAuthenticated() {
		t.Error("session must not be admin-authenticated after a rejection")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	tokens.Set(tokenstore.SlotToken, signedTestToken(t, 7, "user@example.com"))
	tokens.Set(tokenstore.SlotLegacyToken, "dup")
	tokens.Set(tokenstore.SlotAdminToken, "admin-jwt")
	tokens.Set(tokenstore.SlotTheme, "dark")

	s, _ := newTestStore(t, tokens, http.NotFoundHandler())

	s.Logout()

	if s.IsAuthenticated() || s.IsAdminAuthenticated() {
		t.Error("expected no session after logout")
	}
	for _, slot := range []tokenstore.Slot{tokenstore.SlotToken, tokenstore.SlotLegacyToken, tokenstore.SlotAdminToken} {
		if _, ok := tokens.Get(slot); ok {
			t.Errorf("expected slot %q to be cleared by logout", slot)
		}
	}
	// Theme is a preference, not a credential
	if value, ok := tokens.Get(tokenstore.SlotTheme); !ok || value != "dark" {
		t.Error("logout must not clear the theme preference")
	}

	// Idempotent
	s.Logout()
	if s.IsAuthenticated() {
		t.Error("repeated logout must stay logged out")
	}
}

func TestAdminLogoutKeepsUserSession(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	userToken := signedTestToken(t, 7, "user@example.com")
	tokens.Set(tokenstore.SlotToken, userToken)
	tokens.Set(tokenstore.SlotAdminToken, "admin-jwt")

	s, _ := newTestStore(t, tokens, http.NotFoundHandler())

	s.AdminLogout()

	if s.IsAdminAuthenticated() {
		t.Error("expected no admin session after admin logout")
	}
	if !s.IsAuthenticated() {
		t.Error("admin logout must leave the user session in place")
	}
	if _, ok := tokens.Get(tokenstore.SlotToken); !ok {
		t.Error("user token must survive admin logout")
	}
}

func TestSyncPicksUpExternalClears(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	tokens.Set(tokenstore.SlotToken, signedTestToken(t, 7, "user@example.com"))
	tokens.Set(tokenstore.SlotAdminToken, "admin-jwt")

	s, _ := newTestStore(t, tokens, http.NotFoundHandler())

	// Simulate the HTTP client clearing slots after a 401
	tokens.Clear(tokenstore.SlotToken)
	tokens.Clear(tokenstore.SlotAdminToken)

	s.Sync()

	if s.IsAuthenticated() {
		t.Error("expected Sync to drop the user session after an external clear")
	}
	if s.IsAdminAuthenticated() {
		t.Error("expected Sync to drop the admin session after an external clear")
	}
}

func TestSnapshotCopiesFieldErrors(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	s, _ := newTestStore(t, tokens, http.NotFoundHandler())

	s.Register(context.Background(), "bad", "short", "short")

	first := s.Snapshot()
	first.FieldErrors["email"] = "mutated"

	second := s.Snapshot()
	if second.FieldErrors["email"] == "mutated" {
		t.Error("mutating a snapshot must not affect the stored state")
	}
}
