package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cortexcart/storefront/internal/models"
)

func TestLoadSession_FileNotExist(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	sess, err := s.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if sess.Token != "" || sess.User != nil || sess.IsAuthenticated {
		t.Errorf("expected empty session, got %+v", sess)
	}
}

func TestSaveSession_RoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	in := Session{
		User:            &models.User{ID: "u1", Email: "jo@example.com", Name: "Jo", Role: models.RoleAdmin, IsActive: true},
		Token:           "tok-1",
		IsAuthenticated: true,
	}
	if err := s.SaveSession(in); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	out, err := s.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if out.Token != "tok-1" || !out.IsAuthenticated {
		t.Errorf("unexpected session: %+v", out)
	}
	if out.User == nil || out.User.ID != "u1" || !out.User.IsAdmin() {
		t.Errorf("unexpected user: %+v", out.User)
	}
}

func TestLoadSession_CorruptFileDegrades(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	os.WriteFile(filepath.Join(dir, sessionFile), []byte("not-a-json"), 0600)

	sess, err := s.LoadSession()
	if err == nil {
		t.Error("expected a decode error for logging")
	}
	if sess.Token != "" || sess.IsAuthenticated {
		t.Errorf("expected empty session, got %+v", sess)
	}
	if s.Token() != "" {
		t.Errorf("Token = %q; want empty", s.Token())
	}
}

func TestToken_FollowsSaveAndClear(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.Token() != "" {
		t.Errorf("fresh storage Token = %q; want empty", s.Token())
	}
	if err := s.SaveSession(Session{Token: "tok-2"}); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if s.Token() != "tok-2" {
		t.Errorf("Token = %q; want tok-2", s.Token())
	}
	if err := s.ClearSession(); err != nil {
		t.Fatalf("ClearSession failed: %v", err)
	}
	if s.Token() != "" {
		t.Errorf("Token after clear = %q; want empty", s.Token())
	}
	sess, _ := s.LoadSession()
	if sess.Token != "" {
		t.Errorf("session after clear = %+v; want empty", sess)
	}
}

func TestClearSession_NoFileIsFine(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.ClearSession(); err != nil {
		t.Fatalf("ClearSession on empty dir failed: %v", err)
	}
}

func TestCart_RoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	items := []models.CartItem{
		{Product: models.Product{ID: "64f0000000000000000000aa", Name: "Mug", Price: 249}, Quantity: 2},
	}
	if err := s.SaveCart(items); err != nil {
		t.Fatalf("SaveCart failed: %v", err)
	}
	out, err := s.LoadCart()
	if err != nil {
		t.Fatalf("LoadCart failed: %v", err)
	}
	if len(out) != 1 || out[0].Product.ID != "64f0000000000000000000aa" || out[0].Quantity != 2 {
		t.Errorf("unexpected cart: %+v", out)
	}
}

func TestLoadCart_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	out, err := s.LoadCart()
	if err != nil || len(out) != 0 {
		t.Errorf("missing file: items=%v err=%v; want empty, nil", out, err)
	}

	os.WriteFile(filepath.Join(dir, cartFile), []byte("{{"), 0600)
	out, err = s.LoadCart()
	if err == nil {
		t.Error("expected a decode error for logging")
	}
	if len(out) != 0 {
		t.Errorf("corrupt file: items=%v; want empty", out)
	}
}
