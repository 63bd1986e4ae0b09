package gate

import (
	"testing"

	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/stretchr/testify/assert"
)

func TestRouter_StaleNotificationFollowsStoredState(t *testing.T) {
	g := New(nil, sdk.NewMemoryStore(nil))
	var targets []string
	r := NewRouter(g, NavigatorFunc(func(target string) {
		targets = append(targets, target)
	}), HomePath)
	defer r.Close()

	g.publish(Snapshot{State: StateAuthenticated, Role: "HR专员"})

	// An older CheckAuth delivering its unauthenticated result late.
	r.onState(Snapshot{State: StateUnauthenticated})

	assert.Empty(t, targets)
	assert.Equal(t, HomePath, r.Path())
}
