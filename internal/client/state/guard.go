package state

// GuardState is the navigation guard's decision for protected views.
type GuardState int

const (
	// GuardHydrating means persisted state has not finished loading.
	// The guard renders nothing: deciding before hydration would flash
	// a redirect to the login view even when a stored session exists.
	GuardHydrating GuardState = iota
	// GuardUnauthenticated means the protected view must redirect to
	// the login view.
	GuardUnauthenticated
	// GuardAuthenticated means the protected view may render.
	GuardAuthenticated
)

// String implements fmt.Stringer.
func (s GuardState) String() string {
	switch s {
	case GuardHydrating:
		return "hydrating"
	case GuardUnauthenticated:
		return "unauthenticated"
	case GuardAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Guard gates access to authenticated views based on the session.
type Guard struct {
	session *Session
}

// NewGuard constructs a Guard over the given session container.
func NewGuard(session *Session) *Guard {
	return &Guard{session: session}
}

// State computes the current decision from the session snapshot, so
// every session change (logout, 401 clear) is reflected on the next
// evaluation. Authentication requires both the authenticated flag and a
// non-empty token; either alone is insufficient.
func (g *Guard) State() GuardState {
	if !g.session.HasHydrated() {
		return GuardHydrating
	}
	if g.session.IsAuthenticated() && g.session.Token() != "" {
		return GuardAuthenticated
	}
	return GuardUnauthenticated
}

// Allows reports whether the protected content may render now.
func (g *Guard) Allows() bool {
	return g.State() == GuardAuthenticated
}
