package store

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Seed fills an empty store with an admin account and a few catalog
// entries so the client has something to work with out of the box.
// Credentials: admin@example.com / admin123.
func Seed(m *Memory) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	if _, err := m.CreateUser(User{
		Username:     "admin@example.com",
		Email:        "admin@example.com",
		FullName:     "Store Admin",
		Role:         "admin",
		IsActive:     true,
		PasswordHash: hashed,
	}); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	seedProducts := []Product{
		{
			Name:        "Wireless Headphones",
			Description: "Over-ear wireless headphones with noise cancellation",
			Price:       2999,
			Category:    "electronics",
			Stock:       25,
		},
		{
			Name:        "Ceramic Mug",
			Description: "350ml ceramic mug, dishwasher safe",
			Price:       249,
			Category:    "home",
			Stock:       100,
		},
		{
			Name:        "Canvas Backpack",
			Description: "20L canvas backpack with laptop sleeve",
			Price:       1499,
			Category:    "accessories",
			Stock:       40,
		},
	}
	for _, p := range seedProducts {
		if _, err := m.CreateProduct(p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
	}
	return nil
}
