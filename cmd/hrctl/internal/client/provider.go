package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/auth"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/gate"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/menu"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

// ErrLoginRequired is returned when a command needs a session and none is usable.
var ErrLoginRequired = errors.New("not logged in; please run `hrctl auth login`")

// Provider lazily builds the token store, SDK client and session gate
// shared by every command of one hrctl invocation.
type Provider struct {
	serverURL string
	timeout   time.Duration
	logger    *zap.Logger
	token     string // ephemeral token that bypasses the session file

	storeOnce sync.Once
	store     sdk.TokenStore
	storeErr  error

	sdkOnce   sync.Once
	sdkClient *sdk.Client

	gateOnce sync.Once
	gate     *gate.Gate

	warnOnce sync.Once
}

// Option configures a Provider.
type Option func(*Provider)

// WithTokenStore replaces the ~/.hrctl session file.
func WithTokenStore(store sdk.TokenStore) Option {
	return func(p *Provider) {
		p.store = store
		p.storeOnce.Do(func() {})
	}
}

// WithLogger sets the logger passed to the SDK and the gate.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Provider) {
		p.timeout = timeout
	}
}

// NewProvider constructs a new Provider bound to the given server URL.
func NewProvider(serverURL string, opts ...Option) *Provider {
	p := &Provider{
		serverURL: serverURL,
		timeout:   10 * time.Second,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetToken injects an ephemeral session token (bypasses the session file).
func (p *Provider) SetToken(token string) {
	p.token = token
}

// ServerURL returns the API base URL.
func (p *Provider) ServerURL() string {
	return p.serverURL
}

// TokenStore returns the session token store.
func (p *Provider) TokenStore() (sdk.TokenStore, error) {
	p.storeOnce.Do(func() {
		if p.token != "" {
			p.store = sdk.NewMemoryStore(sdk.NewToken(p.token, time.Now()))
			return
		}
		store, err := auth.NewFileStore()
		if err != nil {
			p.storeErr = fmt.Errorf("failed to create token store: %w", err)
			return
		}
		p.store = store
	})
	if p.storeErr != nil {
		return nil, p.storeErr
	}
	return p.store, nil
}

// SDKClient returns the API client. It shares the provider's token store,
// so a 401 on any call clears the stored session.
func (p *Provider) SDKClient() (*sdk.Client, error) {
	store, err := p.TokenStore()
	if err != nil {
		return nil, err
	}
	p.sdkOnce.Do(func() {
		p.sdkClient = sdk.NewClient(p.serverURL,
			sdk.WithTokenStore(store),
			sdk.WithLogger(p.logger.Named("sdk")),
			sdk.WithTimeout(p.timeout),
			sdk.WithUnauthorizedHandler(p.onUnauthorized),
		)
	})
	return p.sdkClient, nil
}

// Gate returns the session gate of this invocation. It starts in the
// initializing state; Session or Gate().CheckAuth settle it.
func (p *Provider) Gate() (*gate.Gate, error) {
	client, err := p.SDKClient()
	if err != nil {
		return nil, err
	}
	p.gateOnce.Do(func() {
		p.gate = gate.New(client, p.store, gate.WithLogger(p.logger.Named("gate")))
	})
	return p.gate, nil
}

// HasToken reports whether a session token is stored, without contacting the API.
func (p *Provider) HasToken() bool {
	store, err := p.TokenStore()
	if err != nil {
		return false
	}
	tok, err := store.LoadToken()
	return err == nil && tok != nil
}

// Session opens the screen at path the way the browser shell would: a
// token-only preflight, then CheckAuth, then the redirect policy and the
// menu permission guarding the screen. It returns the client and the
// settled snapshot when the screen may be shown.
func (p *Provider) Session(ctx context.Context, path string) (*sdk.Client, gate.Snapshot, error) {
	if intent := gate.PreflightIntent(p.HasToken(), path); intent.Redirect == gate.LoginPath {
		return nil, gate.Snapshot{}, ErrLoginRequired
	}

	g, err := p.Gate()
	if err != nil {
		return nil, gate.Snapshot{}, err
	}
	if err := g.CheckAuth(ctx); err != nil {
		return nil, g.Snapshot(), fmt.Errorf("%w: %w", ErrLoginRequired, err)
	}

	snap := g.Snapshot()
	if intent := gate.Resolve(snap, path); intent.Redirect == gate.LoginPath {
		return nil, snap, ErrLoginRequired
	}
	if perm, ok := menu.RequiredPermission(path); ok && perm != "" && !snap.HasPermission(perm) {
		return nil, snap, &PermissionError{Path: path, Permission: perm, Role: snap.Role}
	}

	client, err := p.SDKClient()
	if err != nil {
		return nil, snap, err
	}
	return client, snap, nil
}

// PermissionError reports a screen the session's role may not open.
type PermissionError struct {
	Path       string
	Permission string
	Role       string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("role %q lacks permission %q required for %s", e.Role, e.Permission, e.Path)
}

func (p *Provider) onUnauthorized() {
	p.warnOnce.Do(func() {
		pterm.Warning.Println("The server rejected the session token; please run `hrctl auth login`.")
	})
}
