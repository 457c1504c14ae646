// Package state holds the client-side containers: each owns an
// in-memory snapshot of one slice of application data, mutates it
// through explicit operations and persists what must survive restarts.
// The snapshots are the single source of truth for rendering.
package state

import (
	"context"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"github.com/cortexcart/storefront/internal/client/api"
	"github.com/cortexcart/storefront/internal/client/storage"
	"github.com/cortexcart/storefront/internal/models"
)

// RegisterInput is the new-account payload collected from the signup form.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Address  string
	DOB      string
	Role     models.Role
}

// ProfileUpdate carries the editable profile fields. Empty fields are
// omitted from the request.
type ProfileUpdate struct {
	Name    string
	Address string
	Phone   string
}

// Session owns the user identity, the credential token and the admin
// user listing. All authentication transitions go through it.
type Session struct {
	api   *api.Client
	store *storage.Storage
	log   *zap.Logger

	mu            sync.Mutex
	user          *models.User
	token         string
	authenticated bool
	hydrated      bool
	users         []models.User
	lastErr       string
}

// NewSession constructs a Session backed by the given API client and
// durable storage.
func NewSession(client *api.Client, store *storage.Storage, log *zap.Logger) *Session {
	return &Session{api: client, store: store, log: log}
}

// Hydrate restores the persisted session. It must be called once at
// startup; until it runs, HasHydrated reports false and the guard
// renders nothing. Corrupt or missing storage degrades to a signed-out
// session.
func (s *Session) Hydrate() {
	sess, err := s.store.LoadSession()
	if err != nil {
		s.log.Warn("session storage unreadable, starting signed out", zap.Error(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hydrated {
		return
	}
	s.user = sess.User
	s.token = sess.Token
	s.authenticated = sess.IsAuthenticated
	s.hydrated = true
}

// Login submits credentials, stores the returned token and fetches the
// normalized identity. On failure the prior session is left unchanged
// and the error is recorded and returned.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.clearErr()

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := s.api.PostForm(ctx, "/auth/login", form, &resp); err != nil {
		s.setErr(api.Detail(err, "Login failed"))
		return err
	}

	// The identity fetch needs the fresh token on the wire, so persist
	// it before calling /auth/me. Roll the write back if the fetch fails.
	prev := s.snapshot()
	if err := s.store.SaveSession(storage.Session{Token: resp.AccessToken}); err != nil {
		s.setErr("Login failed")
		return err
	}

	var user models.User
	if err := s.api.Get(ctx, "/auth/me", &user); err != nil {
		if restoreErr := s.store.SaveSession(prev); restoreErr != nil {
			s.log.Error("failed to restore session state", zap.Error(restoreErr))
		}
		s.setErr(api.Detail(err, "Login failed"))
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.token = resp.AccessToken
	s.authenticated = true
	s.mu.Unlock()

	if err := s.store.SaveSession(s.snapshot()); err != nil {
		s.log.Error("failed to persist session", zap.Error(err))
	}
	s.log.Info("logged in", zap.String("user", user.ID))
	return nil
}

// Register submits a new-account payload and, on success, logs in with
// the same credentials: registration itself does not establish a session.
func (s *Session) Register(ctx context.Context, in RegisterInput) error {
	s.clearErr()

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	payload := map[string]any{
		"username":  in.Email,
		"email":     in.Email,
		"password":  in.Password,
		"full_name": in.Name,
		"role":      role,
	}
	if in.Phone != "" {
		payload["contact_number"] = in.Phone
	}
	if in.Address != "" {
		payload["address"] = in.Address
	}
	if in.DOB != "" {
		payload["dob"] = in.DOB
	}

	if err := s.api.Post(ctx, "/auth/signup", payload, nil); err != nil {
		s.setErr(api.Detail(err, "Registration failed"))
		return err
	}
	return s.Login(ctx, in.Email, in.Password)
}

// Logout clears the identity, the token and the persisted session entry.
func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.lastErr = ""
	s.mu.Unlock()

	if err := s.store.ClearSession(); err != nil {
		s.log.Error("failed to clear persisted session", zap.Error(err))
	}
	s.log.Info("logged out")
}

// FetchCurrentUser re-validates the stored token against /auth/me. A 401
// means the session expired: the session is cleared silently, without
// recording an error. Any other failure records an error and preserves
// the session.
func (s *Session) FetchCurrentUser(ctx context.Context) error {
	s.clearErr()

	var user models.User
	if err := s.api.Get(ctx, "/auth/me", &user); err != nil {
		if api.IsUnauthorized(err) {
			s.HandleUnauthorized()
			return nil
		}
		s.setErr(api.Detail(err, "Failed to fetch user"))
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.authenticated = true
	s.mu.Unlock()

	if err := s.store.SaveSession(s.snapshot()); err != nil {
		s.log.Error("failed to persist session", zap.Error(err))
	}
	return nil
}

// UpdateProfile submits only the fields present in upd and replaces the
// stored identity with the server's normalized response.
func (s *Session) UpdateProfile(ctx context.Context, upd ProfileUpdate) error {
	s.clearErr()

	payload := map[string]string{}
	if upd.Name != "" {
		payload["full_name"] = upd.Name
	}
	if upd.Address != "" {
		payload["address"] = upd.Address
	}
	if upd.Phone != "" {
		payload["contact_number"] = upd.Phone
	}

	var user models.User
	if err := s.api.Put(ctx, "/auth/profile", payload, &user); err != nil {
		s.setErr(api.Detail(err, "Failed to update profile"))
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	if err := s.store.SaveSession(s.snapshot()); err != nil {
		s.log.Error("failed to persist session", zap.Error(err))
	}
	return nil
}

// FetchUsers retrieves the admin user listing.
func (s *Session) FetchUsers(ctx context.Context) error {
	s.clearErr()

	var users []models.User
	if err := s.api.Get(ctx, "/admin/users", &users); err != nil {
		s.setErr(api.Detail(err, "Failed to fetch users"))
		return err
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return nil
}

// ToggleUserStatus flips one user's active flag. On success only the
// matching entry in the local listing is updated; the list is not
// re-fetched.
func (s *Session) ToggleUserStatus(ctx context.Context, userID string) error {
	s.clearErr()

	var resp struct {
		UserID   string `json:"user_id"`
		IsActive bool   `json:"is_active"`
	}
	if err := s.api.Patch(ctx, "/admin/users/"+userID+"/toggle-status", nil, &resp); err != nil {
		s.setErr(api.Detail(err, "Failed to toggle user status"))
		return err
	}

	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == userID {
			s.users[i].IsActive = resp.IsActive
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// HandleUnauthorized clears the session after an authentication-failure
// response. It is wired as the API client's 401 handler and never
// records an error: expiry is not a reportable failure.
func (s *Session) HandleUnauthorized() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.mu.Unlock()

	if err := s.store.ClearSession(); err != nil {
		s.log.Error("failed to clear persisted session", zap.Error(err))
	}
	s.log.Info("session expired")
}

// ClearError resets the error field. Views call it on transitions so
// stale errors do not reappear.
func (s *Session) ClearError() { s.clearErr() }

// User returns a copy of the current identity, or nil when signed out.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current credential token.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether a login has succeeded.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// HasHydrated reports whether persisted state has been restored.
func (s *Session) HasHydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// Users returns a copy of the admin user listing.
func (s *Session) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// Err returns the last recorded error message, empty when none.
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) snapshot() storage.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.Session{
		User:            s.user,
		Token:           s.token,
		IsAuthenticated: s.authenticated,
	}
}

func (s *Session) setErr(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

func (s *Session) clearErr() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}
