package gate_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SoloCapybara/HRMS-NEXT/pkg/gate"
	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is a scripted SessionSource.
type fakeSource struct {
	identity    *sdk.Identity
	identityErr error
	catalog     *sdk.RoleCatalog
	catalogErr  error

	calls atomic.Int32
}

func (f *fakeSource) GetUserInfo(context.Context) (*sdk.Identity, error) {
	f.calls.Add(1)
	if f.identityErr != nil {
		return nil, f.identityErr
	}
	return f.identity, nil
}

func (f *fakeSource) FetchRoles(context.Context) (*sdk.RoleCatalog, error) {
	f.calls.Add(1)
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	return f.catalog, nil
}

func hrCatalog() *sdk.RoleCatalog {
	return &sdk.RoleCatalog{
		Roles: []sdk.Role{
			{ID: 1, Name: gate.SuperAdminRole, IsSystem: true},
			{ID: 2, Name: "HR专员", Permissions: []sdk.Permission{
				{ID: 10, Name: "人事管理"},
				{ID: 11, Name: "公告管理"},
			}},
			{ID: 3, Name: "普通员工"},
		},
		Permissions: []sdk.Permission{
			{ID: 10, Name: "人事管理"},
			{ID: 11, Name: "公告管理"},
			{ID: 12, Name: "用户管理"},
		},
	}
}

func loggedIn() *sdk.MemoryStore {
	return sdk.NewMemoryStore(sdk.NewToken("tok", time.Now()))
}

func TestGate_StartsInitializing(t *testing.T) {
	g := gate.New(&fakeSource{}, sdk.NewMemoryStore(nil))
	assert.True(t, g.IsLoading())
	assert.False(t, g.IsAuthenticated())
	assert.False(t, g.HasPermission("人事管理"), "nothing is granted while loading")
}

func TestGate_CheckAuth_NoToken(t *testing.T) {
	source := &fakeSource{identity: &sdk.Identity{EmployeeID: "1001", Role: "HR专员"}, catalog: hrCatalog()}
	g := gate.New(source, sdk.NewMemoryStore(nil))

	require.NoError(t, g.CheckAuth(context.Background()))

	snap := g.Snapshot()
	assert.Equal(t, gate.StateUnauthenticated, snap.State)
	assert.Nil(t, snap.Identity)
	assert.Empty(t, snap.Permissions)
	assert.Zero(t, source.calls.Load(), "no API call is made without a token")
}

func TestGate_CheckAuth_Roles(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		wantPerms []string
		allowed   []string
		denied    []string
	}{
		{
			name:      "catalog role grants its permissions",
			role:      "HR专员",
			wantPerms: []string{"人事管理", "公告管理"},
			allowed:   []string{"人事管理", "公告管理"},
			denied:    []string{"用户管理", ""},
		},
		{
			name:    "super admin passes every check",
			role:    gate.SuperAdminRole,
			allowed: []string{"人事管理", "用户管理", "anything-not-a-real-permission"},
		},
		{
			name:      "role without permissions",
			role:      "普通员工",
			wantPerms: []string{},
			denied:    []string{"人事管理", "公告管理", "用户管理"},
		},
		{
			name:      "role missing from catalog",
			role:      "临时工",
			wantPerms: []string{},
			denied:    []string{"人事管理"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := loggedIn()
			g := gate.New(&fakeSource{
				identity: &sdk.Identity{EmployeeID: "1001", Username: "alice", Role: tt.role},
				catalog:  hrCatalog(),
			}, store)

			require.NoError(t, g.CheckAuth(context.Background()))

			snap := g.Snapshot()
			assert.Equal(t, gate.StateAuthenticated, snap.State)
			require.NotNil(t, snap.Identity)
			assert.Equal(t, "alice", snap.Identity.Username)
			assert.Equal(t, tt.role, snap.Role)
			if tt.wantPerms != nil {
				assert.Equal(t, tt.wantPerms, snap.PermissionNames())
			}
			for _, p := range tt.allowed {
				assert.True(t, g.HasPermission(p), "expected %q to be granted", p)
			}
			for _, p := range tt.denied {
				assert.False(t, g.HasPermission(p), "expected %q to be denied", p)
			}

			_, err := store.LoadToken()
			assert.NoError(t, err, "a valid session keeps its token")
		})
	}
}

func TestGate_CheckAuth_FailureDropsSession(t *testing.T) {
	rejected := &sdk.APIError{Op: "GET /roles", Code: 0, Message: "NOT_LOGIN", Err: sdk.ErrRejected}

	tests := []struct {
		name   string
		source *fakeSource
	}{
		{
			name:   "identity fails",
			source: &fakeSource{identityErr: rejected, catalog: hrCatalog()},
		},
		{
			name:   "catalog fails",
			source: &fakeSource{identity: &sdk.Identity{EmployeeID: "1001", Role: "HR专员"}, catalogErr: rejected},
		},
		{
			name:   "both fail",
			source: &fakeSource{identityErr: errors.New("dial tcp: refused"), catalogErr: rejected},
		},
		{
			name:   "empty identity",
			source: &fakeSource{catalog: hrCatalog()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := loggedIn()
			g := gate.New(tt.source, store)

			err := g.CheckAuth(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, gate.ErrSessionInvalid)

			assert.Equal(t, gate.StateUnauthenticated, g.Snapshot().State)
			assert.False(t, g.HasPermission("人事管理"))

			_, err = store.LoadToken()
			assert.ErrorIs(t, err, sdk.ErrNotLoggedIn, "token is removed")
		})
	}
}

func TestGate_CheckAuth_Idempotent(t *testing.T) {
	source := &fakeSource{identity: &sdk.Identity{EmployeeID: "1001", Role: "HR专员"}, catalog: hrCatalog()}
	g := gate.New(source, loggedIn())

	require.NoError(t, g.CheckAuth(context.Background()))
	first := g.Snapshot()
	require.NoError(t, g.CheckAuth(context.Background()))
	second := g.Snapshot()

	assert.Equal(t, first, second)
	assert.Equal(t, int32(4), source.calls.Load())
}

func TestGate_SubscribeSeesTransitions(t *testing.T) {
	g := gate.New(&fakeSource{
		identity: &sdk.Identity{EmployeeID: "1001", Role: "HR专员"},
		catalog:  hrCatalog(),
	}, loggedIn())

	var (
		mu     sync.Mutex
		states []gate.State
	)
	cancel := g.Subscribe(func(s gate.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, s.State)
		if s.State == gate.StateInitializing {
			assert.False(t, s.HasPermission("人事管理"))
		}
	})

	require.NoError(t, g.CheckAuth(context.Background()))
	require.NoError(t, g.Logout())

	cancel()
	require.NoError(t, g.CheckAuth(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []gate.State{
		gate.StateInitializing,
		gate.StateAuthenticated,
		gate.StateUnauthenticated,
	}, states)
}

func TestGate_Logout(t *testing.T) {
	store := loggedIn()
	g := gate.New(&fakeSource{
		identity: &sdk.Identity{EmployeeID: "1001", Role: gate.SuperAdminRole},
		catalog:  hrCatalog(),
	}, store)
	require.NoError(t, g.CheckAuth(context.Background()))
	require.True(t, g.HasPermission("用户管理"))

	require.NoError(t, g.Logout())
	assert.False(t, g.IsAuthenticated())
	assert.False(t, g.HasPermission("用户管理"))
	_, err := store.LoadToken()
	assert.ErrorIs(t, err, sdk.ErrNotLoggedIn)
}

func TestSnapshot_IsolatedFromCallers(t *testing.T) {
	g := gate.New(&fakeSource{
		identity: &sdk.Identity{EmployeeID: "1001", Role: "HR专员"},
		catalog:  hrCatalog(),
	}, loggedIn())
	require.NoError(t, g.CheckAuth(context.Background()))

	snap := g.Snapshot()
	snap.Permissions[0].Name = "用户管理"
	snap.Identity.Role = gate.SuperAdminRole

	assert.False(t, g.HasPermission("用户管理"))
	assert.Equal(t, "HR专员", g.Snapshot().Identity.Role)
}

func TestResolvePermissions(t *testing.T) {
	assert.Nil(t, gate.ResolvePermissions("HR专员", nil))
	assert.Nil(t, gate.ResolvePermissions("nobody", hrCatalog()))
	assert.Len(t, gate.ResolvePermissions("HR专员", hrCatalog()), 2)
}

// TestGate_WithClient runs the gate against the real client and a fake API.
func TestGate_WithClient(t *testing.T) {
	writeJSON := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}

	t.Run("valid token", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/getEmpInfo/personal", func(w http.ResponseWriter, req *http.Request) {
			if req.Header.Get(sdk.TokenHeader) != "tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeJSON(w, `{"code":1,"msg":"success","data":{"employeeId":"1001","username":"alice","role":"HR专员"}}`)
		})
		r.Get("/roles", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, `{"code":1,"msg":"success","data":{"roles":[{"id":2,"name":"HR专员","permissions":[{"id":10,"name":"人事管理"}]}],"permissions":[{"id":10,"name":"人事管理"}]}}`)
		})
		server := httptest.NewServer(r)
		t.Cleanup(server.Close)

		store := loggedIn()
		client := sdk.NewClient(server.URL, sdk.WithTokenStore(store))
		g := gate.New(client, store)

		require.NoError(t, g.CheckAuth(context.Background()))
		assert.True(t, g.HasPermission("人事管理"))
		assert.False(t, g.HasPermission("用户管理"))
	})

	t.Run("server rejects token", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/getEmpInfo/personal", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, `{"code":0,"msg":"NOT_LOGIN","data":null}`)
		})
		r.Get("/roles", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, `{"code":1,"msg":"success","data":{"roles":[],"permissions":[]}}`)
		})
		server := httptest.NewServer(r)
		t.Cleanup(server.Close)

		store := loggedIn()
		client := sdk.NewClient(server.URL, sdk.WithTokenStore(store))
		g := gate.New(client, store)

		err := g.CheckAuth(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, sdk.ErrRejected)
		assert.Equal(t, gate.StateUnauthenticated, g.Snapshot().State)

		_, err = store.LoadToken()
		assert.ErrorIs(t, err, sdk.ErrNotLoggedIn)
	})

	t.Run("identity payload missing", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/getEmpInfo/personal", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, `{"code":1,"msg":"success","data":null}`)
		})
		r.Get("/roles", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, `{"code":1,"msg":"success","data":{"roles":[],"permissions":[]}}`)
		})
		server := httptest.NewServer(r)
		t.Cleanup(server.Close)

		store := loggedIn()
		client := sdk.NewClient(server.URL, sdk.WithTokenStore(store))
		g := gate.New(client, store)

		err := g.CheckAuth(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, gate.ErrSessionInvalid)
		assert.ErrorIs(t, err, sdk.ErrRejected)
		assert.False(t, g.IsAuthenticated())
		assert.Empty(t, g.Snapshot().Role)

		_, err = store.LoadToken()
		assert.ErrorIs(t, err, sdk.ErrNotLoggedIn)
	})
}
