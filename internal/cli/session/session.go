// Package session holds the single authoritative in-memory record of who is
// logged in. State changes only through the transitions defined here; every
// mutation is applied fully before the next begins.
package session

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/martrack-dev/martrack/internal/cli/client"
	"github.com/martrack-dev/martrack/internal/cli/tokenstore"
)

// User is the profile attached to the user session. It comes from the
// login/register response, or is reconstructed from the token payload at
// startup (best-effort, non-authoritative).
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// State is a snapshot of the session. Token present means the user side is
// authenticated; AdminToken present means admin views are reachable. The
// two are independent.
type State struct {
	User        *User
	Token       string
	AdminToken  string
	Loading     bool
	Err         string
	FieldErrors map[string]string
}

// Generic user-facing messages. Raw failures are logged, never displayed.
const (
	MsgLoginFailed      = "Login failed"
	MsgRegisterFailed   = "Registration failed"
	MsgAdminLoginFailed = "Admin login failed"
	MsgConnectionFailed = "Could not connect to the server"
	MsgProcessingFailed = "Something went wrong while processing the request"
)

var validate = validator.New()

// credentials carries the pre-flight validation rules for registration
type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// Store owns the session state and applies transitions to it
type Store struct {
	mu     sync.Mutex
	state  State
	tokens tokenstore.Store
	api    *client.Client
	admin  *client.Client
	log    zerolog.Logger
}

// New seeds the session from the token store. A persisted user token is
// decoded (unverified, display-only) to repopulate the profile; a token
// that fails to decode is treated as corrupt and cleared. This is not
// re-authentication — the first backend call returning 401 is authoritative.
func New(tokens tokenstore.Store, api, admin *client.Client, log zerolog.Logger) *Store {
	s := &Store{
		tokens: tokens,
		api:    api,
		admin:  admin,
		log:    log,
	}

	if token, ok := tokens.Get(tokenstore.SlotToken); ok {
		user, err := decodeUserClaims(token)
		if err != nil {
			log.Warn().Err(err).Msg("Persisted token is not decodable, clearing it")
			_ = tokens.Clear(tokenstore.SlotToken)
			_ = tokens.Clear(tokenstore.SlotLegacyToken)
		} else {
			s.state.Token = token
			s.state.User = user
		}
	}

	if adminToken, ok := tokens.Get(tokenstore.SlotAdminToken); ok {
		s.state.AdminToken = adminToken
	}

	return s
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	if s.state.FieldErrors != nil {
		state.FieldErrors = make(map[string]string, len(s.state.FieldErrors))
		for k, v := range s.state.FieldErrors {
			state.FieldErrors[k] = v
		}
	}
	return state
}

// IsAuthenticated reports whether the user side of the session holds a token
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token != ""
}

// IsAdminAuthenticated reports whether the admin token is present
func (s *Store) IsAdminAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AdminToken != ""
}

func (s *Store) begin() {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Err = ""
	s.state.FieldErrors = nil
	s.mu.Unlock()
}

// fail records a failure without touching User/Token (no partial login)
func (s *Store) fail(msg string, fields map[string]string) {
	s.mu.Lock()
	s.state.Loading = false
	s.state.Err = msg
	s.state.FieldErrors = fields
	s.mu.Unlock()
}

// failure maps a client error onto the user-facing taxonomy: the backend's
// message for HTTP failures (field errors kept as their own channel), a
// generic connection message when the request never completed, and a
// generic processing message for everything else.
func failure(err error, fallback string) (string, map[string]string) {
	if cerr, ok := client.AsError(err); ok {
		switch cerr.Kind {
		case client.KindHTTP:
			msg := cerr.Message
			if msg == "" {
				msg = fallback
			}
			return msg, cerr.Fields
		case client.KindNetwork, client.KindTimeout:
			return MsgConnectionFailed, nil
		}
	}
	return MsgProcessingFailed, nil
}

// storeUserToken persists the issued token under the primary and legacy keys
func (s *Store) storeUserToken(token string) {
	if err := s.tokens.Set(tokenstore.SlotToken, token); err != nil {
		s.log.Error().Err(err).Msg("Failed to persist session token")
	}
	if err := s.tokens.Set(tokenstore.SlotLegacyToken, token); err != nil {
		s.log.Error().Err(err).Msg("Failed to persist legacy session token")
	}
}

func (s *Store) applyAuthSuccess(resp *client.AuthResponse) {
	s.storeUserToken(resp.Token)

	s.mu.Lock()
	s.state.Loading = false
	s.state.Token = resp.Token
	s.state.User = &User{ID: resp.User.ID, Email: resp.User.Email}
	s.state.Err = ""
	s.state.FieldErrors = nil
	s.mu.Unlock()
}

// Login authenticates with the backend and stores the issued token.
// On failure User/Token are left untouched.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		s.fail(MsgLoginFailed, map[string]string{"credentials": "Email and password are required"})
		return &ValidationError{}
	}

	s.begin()

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		msg, fields := failure(err, MsgLoginFailed)
		s.fail(msg, fields)
		return err
	}

	s.applyAuthSuccess(resp)
	s.log.Info().Str("email", resp.User.Email).Msg("Logged in")
	return nil
}

// Register validates locally first: the password and its confirmation must
// match and the password must be at least 8 characters. A violation
// short-circuits with field errors and makes no network call.
func (s *Store) Register(ctx context.Context, email, password, confirm string) error {
	if fields := validateRegistration(email, password, confirm); len(fields) > 0 {
		s.fail(MsgRegisterFailed, fields)
		return &ValidationError{Fields: fields}
	}

	s.begin()

	resp, err := s.api.Register(ctx, email, password)
	if err != nil {
		msg, fields := failure(err, MsgRegisterFailed)
		s.fail(msg, fields)
		return err
	}

	s.applyAuthSuccess(resp)
	s.log.Info().Str("email", resp.User.Email).Msg("Registered")
	return nil
}

// AdminLogin authenticates against the admin credential pair and populates
// only the admin token. The user session is never touched.
func (s *Store) AdminLogin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		s.fail(MsgAdminLoginFailed, map[string]string{"credentials": "Username and password are required"})
		return &ValidationError{}
	}

	s.begin()

	resp, err := s.admin.AdminLogin(ctx, username, password)
	if err != nil {
		msg, fields := failure(err, MsgAdminLoginFailed)
		s.fail(msg, fields)
		return err
	}

	if err := s.tokens.Set(tokenstore.SlotAdminToken, resp.Token); err != nil {
		s.log.Error().Err(err).Msg("Failed to persist admin token")
	}

	s.mu.Lock()
	s.state.Loading = false
	s.state.AdminToken = resp.Token
	s.state.Err = ""
	s.state.FieldErrors = nil
	s.mu.Unlock()

	s.log.Info().Str("username", username).Msg("Admin logged in")
	return nil
}

// Logout is purely local and unconditional: no backend call, cannot fail,
// idempotent. It clears the user token, its legacy duplicate and — current
// behavior, intentional or not — the admin token as well (single sign-out).
func (s *Store) Logout() {
	_ = s.tokens.Clear(tokenstore.SlotToken)
	_ = s.tokens.Clear(tokenstore.SlotLegacyToken)
	_ = s.tokens.Clear(tokenstore.SlotAdminToken)

	s.mu.Lock()
	s.state.User = nil
	s.state.Token = ""
	s.state.AdminToken = ""
	s.state.Err = ""
	s.state.FieldErrors = nil
	s.state.Loading = false
	s.mu.Unlock()

	s.log.Info().Msg("Logged out")
}

// AdminLogout clears only the admin session, leaving the user session alone
func (s *Store) AdminLogout() {
	_ = s.tokens.Clear(tokenstore.SlotAdminToken)

	s.mu.Lock()
	s.state.AdminToken = ""
	s.mu.Unlock()
}

// ClearError resets the error channels without touching the session
func (s *Store) ClearError() {
	s.mu.Lock()
	s.state.Err = ""
	s.state.FieldErrors = nil
	s.mu.Unlock()
}

// Sync re-reads the token slots, picking up changes made behind the state's
// back (the HTTP client clears slots on 401).
func (s *Store) Sync() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens.Get(tokenstore.SlotToken); !ok {
		s.state.Token = ""
		s.state.User = nil
	}
	if _, ok := s.tokens.Get(tokenstore.SlotAdminToken); !ok {
		s.state.AdminToken = ""
	}
}

// ValidationError marks a failure caught before any network call was made
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func validateRegistration(email, password, confirm string) map[string]string {
	fields := make(map[string]string)

	if err := validate.Struct(credentials{Email: email, Password: password}); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				switch fe.Field() {
				case "Email":
					if fe.Tag() == "required" {
						fields["email"] = "Email is required"
					} else {
						fields["email"] = "Must be a valid email address"
					}
				case "Password":
					if fe.Tag() == "required" {
						fields["password"] = "Password is required"
					} else {
						fields["password"] = "Password must be at least 8 characters"
					}
				}
			}
		} else {
			fields["credentials"] = "Invalid registration data"
		}
	}

	if password != confirm {
		fields["confirm_password"] = "Passwords do not match"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
