package gate_test

import (
	"context"
	"sync"
	"testing"

	"github.com/SoloCapybara/HRMS-NEXT/pkg/gate"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	loading := gate.Snapshot{State: gate.StateInitializing}
	anon := gate.Snapshot{State: gate.StateUnauthenticated}
	authed := gate.Snapshot{State: gate.StateAuthenticated, Role: "HR专员"}

	tests := []struct {
		name string
		snap gate.Snapshot
		path string
		want string
	}{
		{"loading never redirects", loading, "/dashboard", ""},
		{"loading on login page", loading, gate.LoginPath, ""},
		{"anonymous to protected page", anon, "/department-management", gate.LoginPath},
		{"anonymous to unlisted page", anon, "/leave-request", gate.LoginPath},
		{"anonymous on login page stays", anon, gate.LoginPath, ""},
		{"authenticated on login page goes home", authed, gate.LoginPath, gate.HomePath},
		{"authenticated elsewhere stays", authed, "/approval/leave", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gate.Resolve(tt.snap, tt.path)
			assert.Equal(t, tt.want, got.Redirect)
			assert.Equal(t, tt.want == "", got.IsZero())
		})
	}
}

func TestIsProtectedRoute(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/dashboard", true},
		{"/approval/leave", true},
		{"/attendance", true},
		{"/profile", true},
		{"/profile/edit", true},
		{"/profiles", false},
		{"/login", false},
		{"/", false},
		{"/attendance-management", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.IsProtectedRoute(tt.path))
		})
	}
}

func TestPreflightIntent(t *testing.T) {
	assert.Equal(t, gate.LoginPath, gate.PreflightIntent(false, "/user-info").Redirect)
	assert.True(t, gate.PreflightIntent(false, "/login").IsZero())
	assert.True(t, gate.PreflightIntent(false, "/leave-request").IsZero())
	assert.Equal(t, gate.HomePath, gate.PreflightIntent(true, "/login").Redirect)
	assert.True(t, gate.PreflightIntent(true, "/dashboard").IsZero())
}

type recordingNavigator struct {
	mu      sync.Mutex
	targets []string
}

func (n *recordingNavigator) Navigate(target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.targets = append(n.targets, target)
}

func (n *recordingNavigator) Targets() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.targets...)
}

func TestRouter_FollowsGate(t *testing.T) {
	store := loggedIn()
	g := gate.New(&fakeSource{
		identity: &sdk.Identity{EmployeeID: "1001", Role: "HR专员"},
		catalog:  hrCatalog(),
	}, store)

	nav := &recordingNavigator{}
	r := gate.NewRouter(g, nav, gate.LoginPath)
	defer r.Close()

	// Loading: no decision yet.
	assert.True(t, r.Navigate(gate.LoginPath).IsZero())

	require.NoError(t, g.CheckAuth(context.Background()))
	assert.Equal(t, gate.HomePath, r.Path())

	assert.True(t, r.Navigate("/approval/leave").IsZero())
	assert.Equal(t, "/approval/leave", r.Path())

	require.NoError(t, g.Logout())
	assert.Equal(t, gate.LoginPath, r.Path())

	intent := r.Navigate("/dashboard")
	assert.Equal(t, gate.LoginPath, intent.Redirect)

	assert.Equal(t, []string{gate.HomePath, gate.LoginPath, gate.LoginPath}, nav.Targets())
}

func TestRouter_CloseStopsTracking(t *testing.T) {
	g := gate.New(&fakeSource{}, sdk.NewMemoryStore(nil))
	nav := &recordingNavigator{}
	r := gate.NewRouter(g, nav, "/dashboard")
	r.Close()

	require.NoError(t, g.CheckAuth(context.Background()))
	assert.Equal(t, "/dashboard", r.Path())
	assert.Empty(t, nav.Targets())
}
