// Package guard decides navigational reachability from the current session
// state. Evaluation is synchronous, happens before a guarded view renders,
// and produces a redirect instruction rather than a partial render.
package guard

import "github.com/martrack-dev/martrack/internal/cli/session"

// RouteKind classifies a route for guarding purposes
type RouteKind int

const (
	// RoutePublic is reachable without a session but bounces an
	// authenticated user back to the dashboard (login, register)
	RoutePublic RouteKind = iota
	// RouteProtected requires the user session token
	RouteProtected
	// RouteAdminProtected requires the admin session token
	RouteAdminProtected
	// RouteAdminLogin is never gated
	RouteAdminLogin
)

const (
	loginPath      = "/login"
	dashboardPath  = "/dashboard"
	adminLoginPath = "/admin/login"
)

// Decision is the outcome of a guard evaluation. When Allow is false,
// RedirectTo names the navigation target.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Evaluate applies the guarding rules to a session snapshot:
//
//   - protected routes need a user token, otherwise redirect to /login
//   - public routes redirect to /dashboard when a user token is present
//   - admin-protected routes need the admin token, otherwise /admin/login
//   - the admin login route is never gated
func Evaluate(state session.State, kind RouteKind) Decision {
	switch kind {
	case RouteProtected:
		if state.Token == "" {
			return Decision{RedirectTo: loginPath}
		}
	case RoutePublic:
		if state.Token != "" {
			return Decision{RedirectTo: dashboardPath}
		}
	case RouteAdminProtected:
		if state.AdminToken == "" {
			return Decision{RedirectTo: adminLoginPath}
		}
	case RouteAdminLogin:
		// always reachable
	}
	return Decision{Allow: true}
}
