package state

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/cortexcart/storefront/internal/client/api"
	"github.com/cortexcart/storefront/internal/models"
)

// ProductInput is the creation payload for a new catalog entry.
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images,omitempty"`
}

// Products is a read-only cache of the product catalog.
type Products struct {
	api *api.Client
	log *zap.Logger

	mu       sync.Mutex
	products []models.Product
	lastErr  string
}

// NewProducts constructs a Products container.
func NewProducts(client *api.Client, log *zap.Logger) *Products {
	return &Products{api: client, log: log}
}

// FetchProducts replaces the snapshot with the server listing. On
// failure the prior data stays in place and an error is recorded.
func (p *Products) FetchProducts(ctx context.Context) error {
	p.clearErr()

	var products []models.Product
	if err := p.api.Get(ctx, "/products", &products); err != nil {
		p.setErr(api.Detail(err, "Failed to fetch products"))
		return err
	}

	p.mu.Lock()
	p.products = products
	p.mu.Unlock()
	return nil
}

// FetchProduct retrieves a single catalog entry without touching the
// cached listing.
func (p *Products) FetchProduct(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	if err := p.api.Get(ctx, "/products/"+id, &product); err != nil {
		p.setErr(api.Detail(err, "Failed to fetch product"))
		return models.Product{}, err
	}
	return product, nil
}

// AddProduct submits a creation request. Success does not append the
// new entity to the local snapshot: callers re-fetch to observe it.
func (p *Products) AddProduct(ctx context.Context, in ProductInput) error {
	p.clearErr()

	if err := p.api.Post(ctx, "/products", in, nil); err != nil {
		p.setErr(api.Detail(err, "Failed to add product"))
		return err
	}
	return nil
}

// ClearError resets the error field.
func (p *Products) ClearError() { p.clearErr() }

// Products returns a copy of the cached catalog.
func (p *Products) Products() []models.Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Product, len(p.products))
	copy(out, p.products)
	return out
}

// Err returns the last recorded error message, empty when none.
func (p *Products) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *Products) setErr(msg string) {
	p.mu.Lock()
	p.lastErr = msg
	p.mu.Unlock()
}

func (p *Products) clearErr() {
	p.mu.Lock()
	p.lastErr = ""
	p.mu.Unlock()
}
