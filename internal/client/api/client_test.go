package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go.uber.org/zap"
)

// staticTokens is a TokenSource returning a fixed value.
type staticTokens struct{ token string }

func (s staticTokens) Token() string { return s.token }

func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens{token: "tok-123"}, zap.NewNop())
	var out map[string]any
	if err := c.Get(context.Background(), "/products", &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q; want %q", gotAuth, "Bearer tok-123")
	}
	if gotRequestID == "" {
		t.Error("expected a request id header")
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens{}, zap.NewNop())
	_ = c.Get(context.Background(), "/products", nil)
	if gotAuth != "" {
		t.Errorf("Authorization = %q; want empty", gotAuth)
	}
}

func TestClient_UnauthorizedInvokesHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"could not validate credentials"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens{token: "stale"}, zap.NewNop())
	called := 0
	c.SetUnauthorizedHandler(func() { called++ })

	err := c.Get(context.Background(), "/auth/me", nil)
	if !IsUnauthorized(err) {
		t.Fatalf("IsUnauthorized = false; err = %v", err)
	}
	if called != 1 {
		t.Errorf("handler called %d times; want 1", called)
	}
}

func TestClient_ErrorDetailString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Cart is empty"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, zap.NewNop())
	err := c.Post(context.Background(), "/orders/checkout", map[string]any{}, nil)
	if got := Detail(err, "fallback"); got != "Cart is empty" {
		t.Errorf("Detail = %q; want %q", got, "Cart is empty")
	}
}

func TestClient_StructuredDetailFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["body","email"],"msg":"field required"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, zap.NewNop())
	err := c.Post(context.Background(), "/auth/signup", map[string]any{}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := Detail(err, "Registration failed"); got != "Registration failed" {
		t.Errorf("Detail = %q; want generic fallback", got)
	}
}

func TestClient_PostFormEncodesBody(t *testing.T) {
	var gotContentType, gotUsername string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = r.ParseForm()
		gotUsername = r.PostFormValue("username")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, zap.NewNop())
	form := url.Values{}
	form.Set("username", "jo@example.com")
	form.Set("password", "pw")
	if err := c.PostForm(context.Background(), "/auth/login", form, nil); err != nil {
		t.Fatalf("PostForm failed: %v", err)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotUsername != "jo@example.com" {
		t.Errorf("username = %q", gotUsername)
	}
}

func TestDetail_TransportError(t *testing.T) {
	c := New("http://127.0.0.1:0", nil, zap.NewNop())
	err := c.Get(context.Background(), "/products", nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	if got := Detail(err, "Failed to fetch products"); got != "Failed to fetch products" {
		t.Errorf("Detail = %q; want fallback", got)
	}
}
