package commands

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/martrack-dev/martrack/internal/cli/client"
	"github.com/martrack-dev/martrack/internal/cli/guard"
	"github.com/martrack-dev/martrack/internal/cli/session"
	"github.com/martrack-dev/martrack/internal/cli/tokenstore"
	"github.com/martrack-dev/martrack/internal/config"
)

// App bundles the dependencies shared by all commands. Tests build one by
// hand with in-memory stores and httptest-backed clients.
type App struct {
	Config  *config.Config
	Log     zerolog.Logger
	Tokens  tokenstore.Store
	Nav     *Navigator
	API     *client.Client
	Admin   *client.Client
	Session *session.Store
	Out     io.Writer
}

// NewApp wires the production dependency graph: file-backed token store,
// user and admin clients sharing one navigator, and a session seeded from
// persisted tokens.
func NewApp(cfg *config.Config, log zerolog.Logger) (*App, error) {
	tokens, err := openTokenStore(cfg)
	if err != nil {
		return nil, err
	}

	nav := NewNavigator()
	api := client.NewUserClient(cfg.APIBaseURL, tokens, nav, log)
	admin := client.NewAdminClient(cfg.APIBaseURL, tokens, nav, log)

	return &App{
		Config:  cfg,
		Log:     log,
		Tokens:  tokens,
		Nav:     nav,
		API:     api,
		Admin:   admin,
		Session: session.New(tokens, api, admin, log),
		Out:     os.Stdout,
	}, nil
}

func openTokenStore(cfg *config.Config) (tokenstore.Store, error) {
	if cfg.CredentialBackend == "keyring" {
		return tokenstore.NewKeyringStore(), nil
	}

	credsPath, err := tokenstore.DefaultPath()
	if err != nil {
		return nil, err
	}

	tokens, err := tokenstore.NewFileStore(credsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	return tokens, nil
}

// enter places the app on a virtual path and runs the route guard for it.
// A redirect decision maps to a user-facing instruction instead of a
// navigation, since a CLI has nowhere to navigate.
func (a *App) enter(location string, kind guard.RouteKind) error {
	a.Nav.SetLocation(location)

	decision := guard.Evaluate(a.Session.Snapshot(), kind)
	if decision.Allow {
		return nil
	}

	switch decision.RedirectTo {
	case client.LoginPath:
		return fmt.Errorf("not authenticated. Run 'martrack login' first")
	case client.AdminLoginPath:
		return fmt.Errorf("admin session required. Run 'martrack admin login' first")
	default:
		return fmt.Errorf("already logged in. Run 'martrack logout' first")
	}
}

// reportExpiry prints a hint when a 401 handler redirected mid-command
func (a *App) reportExpiry() {
	if target, ok := a.Nav.Redirected(); ok {
		if target == client.AdminLoginPath {
			fmt.Fprintln(a.Out, "Admin session expired. Run 'martrack admin login' to sign in again.")
		} else {
			fmt.Fprintln(a.Out, "Session expired. Run 'martrack login' to sign in again.")
		}
		a.Session.Sync()
	}
}

// printFailure renders the session error channels: the single message plus
// any per-field feedback
func (a *App) printFailure() {
	st := a.Session.Snapshot()
	if st.Err != "" {
		fmt.Fprintf(a.Out, "Error: %s\n", st.Err)
	}
	if len(st.FieldErrors) > 0 {
		fields := make([]string, 0, len(st.FieldErrors))
		for field := range st.FieldErrors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(a.Out, "  %s: %s\n", field, st.FieldErrors[field])
		}
	}
}
