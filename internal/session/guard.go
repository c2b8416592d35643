package session

import (
	"strings"

	"github.com/tgienger/tms/internal/models"
)

// Route identifies a navigable screen
type Route string

const (
	RouteLogin     Route = "/login"
	RouteRegister  Route = "/register"
	RouteHome      Route = "/homepage"
	RouteEmployees Route = "/employee"
	RouteAssign    Route = "/assign"
	RouteInventory Route = "/inventory"
	RouteWorkTodo  Route = "/worktodo"
	RouteAbout     Route = "/about"
)

// DefaultRoute is where signed-in users land
const DefaultRoute = RouteHome

// ProtectedRoutes require a session
var ProtectedRoutes = []Route{
	RouteHome,
	RouteEmployees,
	RouteAssign,
	RouteInventory,
	RouteWorkTodo,
	RouteAbout,
}

// ParseRoute normalizes a stored or typed route; unknown values map to ""
func ParseRoute(s string) Route {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	r := Route(strings.TrimRight(s, "/"))
	switch r {
	case RouteLogin, RouteRegister:
		return r
	}
	for _, p := range ProtectedRoutes {
		if r == p || strings.HasPrefix(string(r), string(p)+"/") {
			return p
		}
	}
	return ""
}

// IsProtected reports whether route requires a session
func (r Route) IsProtected() bool {
	for _, p := range ProtectedRoutes {
		if r == p {
			return true
		}
	}
	return false
}

// Decision is the outcome of a navigation check
type Decision struct {
	Route         Route
	Redirected    bool
	Authenticated bool
	Session       models.Session
}

// Guard decides, per navigation, whether a session is required
type Guard struct {
	sessions *Context
}

// NewGuard creates a guard reading from sessions
func NewGuard(sessions *Context) *Guard {
	return &Guard{sessions: sessions}
}

// Resolve returns the route the user should actually see
func (g *Guard) Resolve(route Route) Decision {
	s, ok := g.sessions.Get()
	d := Decision{Route: route, Authenticated: ok, Session: s}

	switch {
	case route == "":
		d.Route = RouteLogin
		if ok {
			d.Route = DefaultRoute
		}
		d.Redirected = true
	case route.IsProtected() && !ok:
		d.Route = RouteLogin
		d.Redirected = true
	case route == RouteLogin && ok:
		d.Route = DefaultRoute
		d.Redirected = true
	}
	return d
}
