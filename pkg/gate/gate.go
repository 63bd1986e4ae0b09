// Package gate decides whether the current session is usable and what it may do.
//
// A Gate reads the session token from a token store, loads the caller's
// identity and the role catalog from the API, and resolves the effective
// permission set. Consumers (menu construction, route guards, CLI
// commands) ask it HasPermission and subscribe to its state transitions.
//
// The checks here only shape what the client shows. The API server
// enforces the real authorization decisions.
package gate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SuperAdminRole is the role name that passes every permission check.
const SuperAdminRole = "超级管理员"

// ErrSessionInvalid wraps the cause when CheckAuth had to drop the session.
var ErrSessionInvalid = errors.New("session invalid")

// State is the position of the gate in its lifecycle.
type State int

const (
	StateInitializing State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SessionSource loads what the gate needs from the API.
// *sdk.Client satisfies it.
type SessionSource interface {
	GetUserInfo(ctx context.Context) (*sdk.Identity, error)
	FetchRoles(ctx context.Context) (*sdk.RoleCatalog, error)
}

// Snapshot is an immutable view of the gate at one point in time.
type Snapshot struct {
	State       State
	Identity    *sdk.Identity
	Role        string
	Permissions []sdk.Permission
}

func (s Snapshot) IsLoading() bool {
	return s.State == StateInitializing
}

func (s Snapshot) IsAuthenticated() bool {
	return s.State == StateAuthenticated
}

// HasPermission reports whether the snapshot grants the named permission.
// Nothing is granted while loading or unauthenticated.
func (s Snapshot) HasPermission(name string) bool {
	if s.State != StateAuthenticated {
		return false
	}
	if s.Role == SuperAdminRole {
		return true
	}
	for _, p := range s.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

// PermissionNames lists the effective permission names in catalog order.
func (s Snapshot) PermissionNames() []string {
	names := make([]string, 0, len(s.Permissions))
	for _, p := range s.Permissions {
		names = append(names, p.Name)
	}
	return names
}

func (s Snapshot) clone() Snapshot {
	out := s
	if s.Identity != nil {
		id := *s.Identity
		out.Identity = &id
	}
	if s.Permissions != nil {
		out.Permissions = append([]sdk.Permission(nil), s.Permissions...)
	}
	return out
}

// ResolvePermissions returns the permissions of the catalog role named role,
// or nil when the catalog has no such role.
func ResolvePermissions(role string, catalog *sdk.RoleCatalog) []sdk.Permission {
	matched, ok := catalog.RoleByName(role)
	if !ok {
		return nil
	}
	return append([]sdk.Permission(nil), matched.Permissions...)
}

// Gate owns the session state of one application instance.
// It is safe for concurrent use.
type Gate struct {
	source SessionSource
	tokens sdk.TokenStore
	logger *zap.Logger

	mu        sync.RWMutex
	snap      Snapshot
	listeners map[int]func(Snapshot)
	nextID    int
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the gate logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

// New returns a gate in StateInitializing. Call CheckAuth to settle it.
func New(source SessionSource, tokens sdk.TokenStore, opts ...Option) *Gate {
	g := &Gate{
		source:    source,
		tokens:    tokens,
		logger:    zap.NewNop(),
		snap:      Snapshot{State: StateInitializing},
		listeners: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CheckAuth validates the stored token against the API and settles the
// gate in StateAuthenticated or StateUnauthenticated.
//
// A missing token is not an error. When either the identity or the role
// catalog cannot be loaded the token is removed and the returned error
// wraps ErrSessionInvalid; the gate is already unauthenticated by then.
func (g *Gate) CheckAuth(ctx context.Context) error {
	g.publish(Snapshot{State: StateInitializing})

	tok, err := g.tokens.LoadToken()
	if err != nil || tok == nil || tok.Value == "" {
		if err != nil && !errors.Is(err, sdk.ErrNotLoggedIn) {
			g.logger.Warn("unable to read session token", zap.Error(err))
		}
		g.publish(Snapshot{State: StateUnauthenticated})
		return nil
	}

	var (
		identity *sdk.Identity
		catalog  *sdk.RoleCatalog
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		id, err := g.source.GetUserInfo(egCtx)
		if err != nil {
			return fmt.Errorf("failed to load identity: %w", err)
		}
		identity = id
		return nil
	})
	eg.Go(func() error {
		cat, err := g.source.FetchRoles(egCtx)
		if err != nil {
			return fmt.Errorf("failed to load role catalog: %w", err)
		}
		catalog = cat
		return nil
	})
	if err := eg.Wait(); err != nil {
		g.invalidate(err)
		return fmt.Errorf("%w: %w", ErrSessionInvalid, err)
	}
	if identity == nil || catalog == nil {
		err := errors.New("empty identity or role catalog")
		g.invalidate(err)
		return fmt.Errorf("%w: %w", ErrSessionInvalid, err)
	}

	perms := ResolvePermissions(identity.Role, catalog)
	if _, ok := catalog.RoleByName(identity.Role); !ok && identity.Role != SuperAdminRole {
		g.logger.Warn("role not found in catalog; no permissions granted",
			zap.String("employee_id", identity.EmployeeID),
			zap.String("role", identity.Role),
		)
	}

	g.publish(Snapshot{
		State:       StateAuthenticated,
		Identity:    identity,
		Role:        identity.Role,
		Permissions: perms,
	})
	g.logger.Debug("session authenticated",
		zap.String("employee_id", identity.EmployeeID),
		zap.String("role", identity.Role),
		zap.Int("permissions", len(perms)),
	)
	return nil
}

// Logout removes the stored token and marks the gate unauthenticated.
func (g *Gate) Logout() error {
	err := g.tokens.DeleteToken()
	g.publish(Snapshot{State: StateUnauthenticated})
	if err != nil {
		return fmt.Errorf("failed to remove session token: %w", err)
	}
	return nil
}

func (g *Gate) invalidate(cause error) {
	g.logger.Warn("session validation failed", zap.Error(cause))
	if err := g.tokens.DeleteToken(); err != nil {
		g.logger.Error("failed to remove session token", zap.Error(err))
	}
	g.publish(Snapshot{State: StateUnauthenticated})
}

// HasPermission reports whether the current session grants the named permission.
func (g *Gate) HasPermission(name string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snap.HasPermission(name)
}

func (g *Gate) IsLoading() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snap.IsLoading()
}

func (g *Gate) IsAuthenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snap.IsAuthenticated()
}

// Snapshot returns a copy of the current state.
func (g *Gate) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snap.clone()
}

// Subscribe registers fn to receive every new snapshot. The returned func
// removes the subscription.
func (g *Gate) Subscribe(fn func(Snapshot)) (cancel func()) {
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.listeners[id] = fn
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.listeners, id)
		g.mu.Unlock()
	}
}

// publish stores snap and notifies listeners outside the lock.
func (g *Gate) publish(snap Snapshot) {
	g.mu.Lock()
	g.snap = snap
	fns := make([]func(Snapshot), 0, len(g.listeners))
	for _, fn := range g.listeners {
		fns = append(fns, fn)
	}
	g.mu.Unlock()

	for _, fn := range fns {
		fn(snap.clone())
	}
}
