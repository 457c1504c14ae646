package state

import "sync"

// UI holds local-only view state with no persistence and no network
// access.
type UI struct {
	mu            sync.Mutex
	sidebarOpen   bool
	globalLoading bool
	loginRedirect bool
}

// NewUI constructs a UI container.
func NewUI() *UI {
	return &UI{}
}

// SetSidebarOpen records whether the navigation sidebar is open.
func (u *UI) SetSidebarOpen(open bool) {
	u.mu.Lock()
	u.sidebarOpen = open
	u.mu.Unlock()
}

// SidebarOpen reports whether the navigation sidebar is open.
func (u *UI) SidebarOpen() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.sidebarOpen
}

// SetGlobalLoading records whether a global loading indicator shows.
func (u *UI) SetGlobalLoading(loading bool) {
	u.mu.Lock()
	u.globalLoading = loading
	u.mu.Unlock()
}

// GlobalLoading reports whether a global loading indicator shows.
func (u *UI) GlobalLoading() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.globalLoading
}

// RequestLoginRedirect asks the navigation layer to move to the login
// view. Set by the global 401 handling.
func (u *UI) RequestLoginRedirect() {
	u.mu.Lock()
	u.loginRedirect = true
	u.mu.Unlock()
}

// ConsumeLoginRedirect returns and clears the pending redirect request.
func (u *UI) ConsumeLoginRedirect() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	pending := u.loginRedirect
	u.loginRedirect = false
	return pending
}
