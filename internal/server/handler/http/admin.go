package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cortexcart/storefront/internal/middleware"
	"github.com/cortexcart/storefront/internal/models"
	"github.com/cortexcart/storefront/internal/server/store"
)

// AdminHandler handles the admin-only user management endpoints.
type AdminHandler struct {
	// Store is the account data layer.
	Store *store.Memory
}

// RequireAdmin rejects callers whose account role is not admin. Role
// comparison goes through the normalized enum, so stored "Admin" and
// "admin" are both accepted.
func (h *AdminHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.GetUserIDFromContext(r.Context())
		user, err := h.Store.UserByID(userID)
		if err != nil || models.ParseRole(user.Role) != models.RoleAdmin {
			writeError(w, http.StatusForbidden, "Admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Users lists every account.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users := h.Store.Users()
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

// ToggleStatus flips one account's active flag.
func (h *AdminHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	isActive, err := h.Store.ToggleUserStatus(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":   id,
		"is_active": isActive,
	})
}

// Stats returns overview counts for the admin dashboard.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	s := h.Store.Stats()
	writeJSON(w, http.StatusOK, map[string]int{
		"total_users":    s.TotalUsers,
		"active_users":   s.ActiveUsers,
		"total_products": s.TotalProducts,
		"total_orders":   s.TotalOrders,
	})
}
