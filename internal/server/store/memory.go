// Package store is the development API server's in-memory data layer.
// Everything lives for the lifetime of the process; there is no durable
// backend because the server only exists for local development and
// integration tests.
package store

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrNotFound means no record matches the given identifier.
	ErrNotFound = errors.New("not found")
	// ErrExists means a unique constraint (username/email) is violated.
	ErrExists = errors.New("already exists")
)

// User is a stored account, including the credential hash the client
// never sees.
type User struct {
	ID            string
	Username      string
	Email         string
	FullName      string
	Role          string
	ContactNumber string
	Address       string
	DOB           string
	ProfilePhoto  string
	IsActive      bool
	PasswordHash  []byte
}

// Product is a stored catalog entry.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       int
	Images      []string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderItem is one purchased line inside a stored order.
type OrderItem struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}

// Order is a stored purchase.
type Order struct {
	ID              string
	UserID          string
	Items           []OrderItem
	TotalAmount     float64
	Status          string
	ShippingAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CheckoutLine is one requested purchase line.
type CheckoutLine struct {
	ProductID string
	Quantity  int
}

// Memory holds all records behind one mutex. Operations that span
// several records (checkout) run atomically under it.
type Memory struct {
	mu       sync.Mutex
	users    map[string]*User
	products map[string]*Product
	orders   []*Order
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]*User),
		products: make(map[string]*Product),
	}
}

// NewID returns a fresh 24-hex-character identifier, the same format
// the production backend issues.
func NewID() string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// CreateUser stores a new account. Username and email must be unique.
func (m *Memory) CreateUser(u User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return User{}, ErrExists
		}
	}
	if u.ID == "" {
		u.ID = NewID()
	}
	m.users[u.ID] = &u
	return u, nil
}

// UserByID returns the account with the given id.
func (m *Memory) UserByID(id string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return *u, nil
}

// UserByUsername returns the account with the given username.
func (m *Memory) UserByUsername(username string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return *u, nil
		}
	}
	return User{}, ErrNotFound
}

// UpdateUser applies fn to the stored account and returns the result.
func (m *Memory) UpdateUser(id string, fn func(*User)) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	fn(u)
	return *u, nil
}

// Users returns every stored account.
func (m *Memory) Users() []User {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out
}

// ToggleUserStatus flips the account's active flag and returns the new
// value.
func (m *Memory) ToggleUserStatus(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return false, ErrNotFound
	}
	u.IsActive = !u.IsActive
	return u.IsActive, nil
}

// CreateProduct stores a new catalog entry.
func (m *Memory) CreateProduct(p Product) (Product, error) {
	if p.Price < 0 {
		return Product{}, fmt.Errorf("price must not be negative")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = NewID()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.products[p.ID] = &p
	return p, nil
}

// ProductByID returns the catalog entry with the given id.
func (m *Memory) ProductByID(id string) (Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return *p, nil
}

// Products returns every catalog entry.
func (m *Memory) Products() []Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out
}

// PlaceOrder validates stock for every requested line, decrements it,
// computes the total from stored prices and records the order. The
// whole operation is atomic: a failing line leaves no stock change
// behind.
func (m *Memory) PlaceOrder(userID, shippingAddress string, lines []CheckoutLine) (Order, error) {
	if len(lines) == 0 {
		return Order{}, fmt.Errorf("cart is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]OrderItem, 0, len(lines))
	total := 0.0
	for _, line := range lines {
		p, ok := m.products[line.ProductID]
		if !ok {
			return Order{}, fmt.Errorf("product %s: %w", line.ProductID, ErrNotFound)
		}
		if line.Quantity <= 0 {
			return Order{}, fmt.Errorf("invalid quantity for %s", p.Name)
		}
		if p.Stock < line.Quantity {
			return Order{}, fmt.Errorf("insufficient stock for %s, available: %d", p.Name, p.Stock)
		}
		items = append(items, OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  line.Quantity,
		})
		total += p.Price * float64(line.Quantity)
	}

	// All lines validated, now commit the stock changes.
	for _, line := range lines {
		m.products[line.ProductID].Stock -= line.Quantity
	}

	now := time.Now().UTC()
	order := &Order{
		ID:              NewID(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		Status:          "pending",
		ShippingAddress: shippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.orders = append(m.orders, order)
	return *order, nil
}

// OrdersByUser returns the orders placed by userID.
func (m *Memory) OrdersByUser(userID string) []Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out
}

// Orders returns every stored order.
func (m *Memory) Orders() []Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out
}

// Stats summarizes the store for the admin dashboard.
type Stats struct {
	TotalUsers    int
	ActiveUsers   int
	TotalProducts int
	TotalOrders   int
}

// Stats counts users, products and orders.
func (m *Memory) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Stats{
		TotalUsers:    len(m.users),
		TotalProducts: len(m.products),
		TotalOrders:   len(m.orders),
	}
	for _, u := range m.users {
		if u.IsActive {
			s.ActiveUsers++
		}
	}
	return s
}
