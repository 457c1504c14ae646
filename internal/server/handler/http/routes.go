package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cortexcart/storefront/internal/middleware"
	"github.com/cortexcart/storefront/internal/server/store"
	"github.com/cortexcart/storefront/internal/server/token"
)

// NewRouter constructs the development API server's handler. Routes are
// mounted under /api/v1, matching the production API prefix:
//
//	POST  /api/v1/auth/login                        (public, form-encoded)
//	POST  /api/v1/auth/signup                       (public)
//	GET   /api/v1/auth/me                           (bearer)
//	PUT   /api/v1/auth/profile                      (bearer)
//	GET   /api/v1/products                          (public)
//	GET   /api/v1/products/{id}                     (public)
//	POST  /api/v1/products                          (bearer)
//	GET   /api/v1/orders/my-orders                  (bearer)
//	POST  /api/v1/orders/checkout                   (bearer)
//	GET   /api/v1/orders/all                        (admin)
//	GET   /api/v1/admin/users                       (admin)
//	PATCH /api/v1/admin/users/{id}/toggle-status    (admin)
//	GET   /api/v1/admin/stats                       (admin)
func NewRouter(mem *store.Memory, tokens *token.Manager, logger *zap.Logger) http.Handler {
	auth := &AuthHandler{Store: mem, Tokens: tokens}
	products := &ProductsHandler{Store: mem}
	orders := &OrdersHandler{Store: mem}
	admin := &AdminHandler{Store: mem}

	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/login", auth.Login)
		r.Post("/auth/signup", auth.Signup)
		r.Get("/products", products.List)
		r.Get("/products/{id}", products.Get)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(tokens))

			r.Get("/auth/me", auth.Me)
			r.Put("/auth/profile", auth.UpdateProfile)
			r.Post("/products", products.Create)
			r.Get("/orders/my-orders", orders.MyOrders)
			r.Post("/orders/checkout", orders.Checkout)

			// Admin-only group
			r.Group(func(r chi.Router) {
				r.Use(admin.RequireAdmin)

				r.Get("/orders/all", orders.AllOrders)
				r.Get("/admin/users", admin.Users)
				r.Patch("/admin/users/{id}/toggle-status", admin.ToggleStatus)
				r.Get("/admin/stats", admin.Stats)
			})
		})
	})

	return r
}
