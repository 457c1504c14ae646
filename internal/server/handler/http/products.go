package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cortexcart/storefront/internal/middleware"
	"github.com/cortexcart/storefront/internal/server/store"
)

// ProductsHandler handles catalog reads and admin product creation.
type ProductsHandler struct {
	// Store is the catalog data layer.
	Store *store.Memory
}

// List returns the full catalog.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products := h.Store.Products()
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get returns a single catalog entry.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.ProductByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

// ProductRequest is the JSON payload for product creation.
type ProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
}

// Create stores a new catalog entry. The response carries the created
// product; the client does not merge it locally and re-fetches instead.
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	p, err := h.Store.CreateProduct(store.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Images:      req.Images,
		CreatedBy:   middleware.GetUserIDFromContext(r.Context()),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(p))
}
