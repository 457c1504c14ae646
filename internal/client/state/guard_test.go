package state_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexcart/storefront/internal/client/state"
	"github.com/cortexcart/storefront/internal/client/storage"
)

func TestGuard_HydratingUntilStorageLoads(t *testing.T) {
	srv := httptest404(t)
	session, _ := newTestSessionNoHydrate(t, srv)
	guard := state.NewGuard(session)

	assert.Equal(t, state.GuardHydrating, guard.State(),
		"no redirect decision before hydration, even if storage is empty")
	assert.False(t, guard.Allows())

	session.Hydrate()
	assert.Equal(t, state.GuardUnauthenticated, guard.State())
}

func TestGuard_AuthenticatedNeedsFlagAndToken(t *testing.T) {
	srv := httptest404(t)

	// Flag without token: insufficient.
	session, store := newTestSessionNoHydrate(t, srv)
	require.NoError(t, store.SaveSession(storage.Session{IsAuthenticated: true}))
	session.Hydrate()
	guard := state.NewGuard(session)
	assert.Equal(t, state.GuardUnauthenticated, guard.State())

	// Token without flag: insufficient.
	session2, store2 := newTestSessionNoHydrate(t, srv)
	require.NoError(t, store2.SaveSession(storage.Session{Token: "tok-1"}))
	session2.Hydrate()
	guard2 := state.NewGuard(session2)
	assert.Equal(t, state.GuardUnauthenticated, guard2.State())

	// Both: authenticated.
	session3, store3 := newTestSessionNoHydrate(t, srv)
	require.NoError(t, store3.SaveSession(storage.Session{Token: "tok-1", IsAuthenticated: true}))
	session3.Hydrate()
	guard3 := state.NewGuard(session3)
	assert.Equal(t, state.GuardAuthenticated, guard3.State())
	assert.True(t, guard3.Allows())
}

func TestGuard_FollowsSessionTransitions(t *testing.T) {
	session, _ := newTestSessionNoHydrate(t, authBackend(t, joUserJSON))
	session.Hydrate()
	guard := state.NewGuard(session)
	assert.Equal(t, state.GuardUnauthenticated, guard.State())

	require.NoError(t, session.Login(context.Background(), "jo@example.com", "pw"))
	assert.Equal(t, state.GuardAuthenticated, guard.State())

	session.Logout()
	assert.Equal(t, state.GuardUnauthenticated, guard.State())

	require.NoError(t, session.Login(context.Background(), "jo@example.com", "pw"))
	assert.Equal(t, state.GuardAuthenticated, guard.State())

	// A 401-triggered clear flips the guard as well.
	session.HandleUnauthorized()
	assert.Equal(t, state.GuardUnauthenticated, guard.State())
}

func TestGuardState_String(t *testing.T) {
	assert.Equal(t, "hydrating", state.GuardHydrating.String())
	assert.Equal(t, "unauthenticated", state.GuardUnauthenticated.String())
	assert.Equal(t, "authenticated", state.GuardAuthenticated.String())
}

// httptest404 is a backend for tests that should not hit the network.
func httptest404(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})
}
