// Package models defines the core data structures for users, products,
// carts and orders, and normalizes the varying field names the API has
// used across server versions.
package models

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// Role is the closed set of user roles known to the application.
type Role string

const (
	// RoleUser is the default role for registered customers.
	RoleUser Role = "user"
	// RoleAdmin grants access to the admin views and endpoints.
	RoleAdmin Role = "admin"
)

// ParseRole normalizes a wire role value. Comparison is case-insensitive
// ("Admin" and "admin" are the same role); anything unknown or empty
// falls back to RoleUser.
func ParseRole(s string) Role {
	if strings.EqualFold(s, string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

// User represents an application user as rendered by the client.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Email is the user's login email.
	Email string `json:"email"`
	// Name is the user's display name.
	Name string `json:"name"`
	// Role is the normalized user role.
	Role Role `json:"role"`
	// Phone is an optional contact number.
	Phone string `json:"phone,omitempty"`
	// Address is an optional shipping address.
	Address string `json:"address,omitempty"`
	// DOB is an optional date of birth, as sent by the server.
	DOB string `json:"dob,omitempty"`
	// Photo is an optional profile photo reference.
	Photo string `json:"photo,omitempty"`
	// IsActive reports whether the account is enabled.
	IsActive bool `json:"is_active"`
}

// IsAdmin is the single comparison point gating admin-only views.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UnmarshalJSON reconciles the user representations returned by different
// server versions: "id" vs "_id", "full_name" vs "name", "contact_number"
// vs "phone", "profile_photo" vs "photo" and both spellings of the active
// flag. A missing role means a regular user, a missing active flag means
// the account is enabled.
func (u *User) UnmarshalJSON(data []byte) error {
	var w struct {
		ID            string `json:"id"`
		AltID         string `json:"_id"`
		Username      string `json:"username"`
		Email         string `json:"email"`
		FullName      string `json:"full_name"`
		Name          string `json:"name"`
		Role          string `json:"role"`
		ContactNumber string `json:"contact_number"`
		Phone         string `json:"phone"`
		Address       string `json:"address"`
		DOB           string `json:"dob"`
		ProfilePhoto  string `json:"profile_photo"`
		Photo         string `json:"photo"`
		IsActive      *bool  `json:"is_active"`
		IsActiveAlt   *bool  `json:"isActive"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	u.ID = firstNonEmpty(w.ID, w.AltID)
	u.Email = firstNonEmpty(w.Email, w.Username)
	u.Name = firstNonEmpty(w.FullName, w.Name)
	u.Role = ParseRole(w.Role)
	u.Phone = firstNonEmpty(w.ContactNumber, w.Phone)
	u.Address = w.Address
	u.DOB = w.DOB
	u.Photo = firstNonEmpty(w.ProfilePhoto, w.Photo)

	u.IsActive = true
	if w.IsActive != nil {
		u.IsActive = *w.IsActive
	} else if w.IsActiveAlt != nil {
		u.IsActive = *w.IsActiveAlt
	}
	return nil
}

// Product is one catalog entry. Products are read-only on the client:
// they are fetched and never mutated in place.
type Product struct {
	// ID is the unique identifier for the product.
	ID string `json:"id"`
	// Name is the product title.
	Name string `json:"name"`
	// Description is the long-form product text.
	Description string `json:"description"`
	// Price is the unit price. Never negative.
	Price float64 `json:"price"`
	// Category groups products in the catalog views.
	Category string `json:"category"`
	// Stock is the number of units the server reports as available.
	Stock int `json:"stock"`
	// Images holds image references for the product.
	Images []string `json:"images,omitempty"`
	// CreatedAt is when the product was created.
	CreatedAt time.Time `json:"createdAt,omitempty"`
	// UpdatedAt is when the product was last changed.
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// UnmarshalJSON reconciles "id" vs "_id" and both timestamp spellings.
func (p *Product) UnmarshalJSON(data []byte) error {
	var w struct {
		ID           string   `json:"id"`
		AltID        string   `json:"_id"`
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		Price        float64  `json:"price"`
		Category     string   `json:"category"`
		Stock        int      `json:"stock"`
		Images       []string `json:"images"`
		CreatedAt    string   `json:"createdAt"`
		CreatedAtAlt string   `json:"created_at"`
		UpdatedAt    string   `json:"updatedAt"`
		UpdatedAtAlt string   `json:"updated_at"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	p.ID = firstNonEmpty(w.ID, w.AltID)
	p.Name = w.Name
	p.Description = w.Description
	p.Price = w.Price
	p.Category = w.Category
	p.Stock = w.Stock
	p.Images = w.Images
	p.CreatedAt = parseTimestamp(firstNonEmpty(w.CreatedAt, w.CreatedAtAlt))
	p.UpdatedAt = parseTimestamp(firstNonEmpty(w.UpdatedAt, w.UpdatedAtAlt))
	return nil
}

// CartItem is one product-and-quantity pairing held in the shopping cart.
type CartItem struct {
	// Product is a snapshot of the product at the time it was added.
	Product Product `json:"product"`
	// Quantity is the number of units. Always >= 1 while the line exists.
	Quantity int `json:"quantity"`
}

// Subtotal is the line total (unit price times quantity).
func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

// objectIDRe matches the 24-hex-character product identifiers issued by
// the server. Persisted cart lines are validated against it on hydration.
var objectIDRe = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

// IsObjectID reports whether s has the expected product identifier format.
func IsObjectID(s string) bool {
	return objectIDRe.MatchString(s)
}

// firstNonEmpty returns the first non-empty string of its arguments.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseTimestamp parses the timestamp formats the server has emitted:
// RFC3339 and Python-style ISO timestamps without a zone. Returns the
// zero time when the value is empty or unparseable.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
