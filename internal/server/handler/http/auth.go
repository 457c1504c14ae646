package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/cortexcart/storefront/internal/middleware"
	"github.com/cortexcart/storefront/internal/models"
	"github.com/cortexcart/storefront/internal/server/store"
	"github.com/cortexcart/storefront/internal/server/token"
)

// AuthHandler handles HTTP requests for signup, login and profile access.
type AuthHandler struct {
	// Store is the account data layer.
	Store *store.Memory
	// Tokens issues and verifies access tokens.
	Tokens *token.Manager
}

// SignupRequest represents the JSON payload for account creation.
type SignupRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	DOB           string `json:"dob"`
	Role          string `json:"role"`
	ProfilePhoto  string `json:"profile_photo"`
}

// Signup creates a new account. It does not establish a session: the
// client logs in afterwards with the same credentials.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	user, err := h.Store.CreateUser(store.User{
		Username:      req.Username,
		Email:         req.Email,
		FullName:      req.FullName,
		Role:          string(models.ParseRole(req.Role)),
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		DOB:           req.DOB,
		ProfilePhoto:  req.ProfilePhoto,
		IsActive:      true,
		PasswordHash:  hashed,
	})
	if err != nil {
		if errors.Is(err, store.ErrExists) {
			writeError(w, http.StatusBadRequest, "User with this email or username already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Login verifies form-encoded credentials and issues an access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.Store.UserByUsername(username)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Incorrect credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Incorrect credentials")
		return
	}
	if !user.IsActive {
		writeError(w, http.StatusForbidden, "Inactive user.")
		return
	}

	accessToken, err := h.Tokens.Issue(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated user's record.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	user, err := h.Store.UserByID(userID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "could not validate credentials")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// ProfileRequest is the JSON payload for profile updates. Absent fields
// are left untouched.
type ProfileRequest struct {
	FullName      string `json:"full_name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
}

// UpdateProfile applies the present fields and returns the updated record.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	user, err := h.Store.UpdateUser(userID, func(u *store.User) {
		if req.FullName != "" {
			u.FullName = req.FullName
		}
		if req.Address != "" {
			u.Address = req.Address
		}
		if req.ContactNumber != "" {
			u.ContactNumber = req.ContactNumber
		}
	})
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}
