package gate

import (
	"strings"
	"sync"
)

const (
	// LoginPath is where unauthenticated sessions are sent.
	LoginPath = "/login"
	// HomePath is the landing route of an authenticated session.
	HomePath = "/dashboard"
)

// protectedPrefixes are routes that need a token before anything is fetched.
var protectedPrefixes = []string{
	"/dashboard",
	"/admin-info",
	"/user-info",
	"/approval",
	"/attendance",
	"/department-management",
	"/profile",
}

// Intent is a navigation the policy wants performed. The zero Intent means stay.
type Intent struct {
	Redirect string
}

func (i Intent) IsZero() bool {
	return i.Redirect == ""
}

// Resolve applies the redirect policy to a snapshot and the current path.
// Nothing is decided while the gate is loading.
func Resolve(s Snapshot, path string) Intent {
	if s.IsLoading() {
		return Intent{}
	}
	if !s.IsAuthenticated() && path != LoginPath {
		return Intent{Redirect: LoginPath}
	}
	if s.IsAuthenticated() && path == LoginPath {
		return Intent{Redirect: HomePath}
	}
	return Intent{}
}

// IsProtectedRoute reports whether path requires a session token.
func IsProtectedRoute(path string) bool {
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// PreflightIntent is the token-only check made before the session is validated.
func PreflightIntent(hasToken bool, path string) Intent {
	if !hasToken && IsProtectedRoute(path) {
		return Intent{Redirect: LoginPath}
	}
	if hasToken && path == LoginPath {
		return Intent{Redirect: HomePath}
	}
	return Intent{}
}

// Navigator performs navigation. It is the mechanism; Resolve is the policy.
type Navigator interface {
	Navigate(target string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(target string)

func (f NavigatorFunc) Navigate(target string) { f(target) }

// Router tracks the current route and re-applies Resolve whenever the gate
// changes state or the route changes.
type Router struct {
	gate   *Gate
	nav    Navigator
	cancel func()

	mu   sync.Mutex
	path string
}

// NewRouter starts tracking g from path. Close stops it.
func NewRouter(g *Gate, nav Navigator, path string) *Router {
	r := &Router{gate: g, nav: nav, path: path}
	r.cancel = g.Subscribe(r.onState)
	return r
}

// Path returns the current route.
func (r *Router) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

// Navigate moves to path and returns the redirect, if any, that followed.
func (r *Router) Navigate(path string) Intent {
	r.mu.Lock()
	r.path = path
	r.mu.Unlock()
	return r.evaluate(r.gate.Snapshot())
}

// Close unsubscribes from the gate.
func (r *Router) Close() {
	if r.cancel != nil {
		r.cancel()
	}
}

// onState re-reads the stored snapshot; notifications from overlapping
// CheckAuth calls may arrive out of order.
func (r *Router) onState(Snapshot) {
	r.evaluate(r.gate.Snapshot())
}

func (r *Router) evaluate(s Snapshot) Intent {
	r.mu.Lock()
	intent := Resolve(s, r.path)
	if !intent.IsZero() {
		r.path = intent.Redirect
	}
	r.mu.Unlock()

	if !intent.IsZero() && r.nav != nil {
		r.nav.Navigate(intent.Redirect)
	}
	return intent
}
