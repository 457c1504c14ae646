// Package storage persists session and cart state between runs as two
// independent JSON files under a state directory.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cortexcart/storefront/internal/models"
)

const (
	sessionFile = "session.json"
	cartFile    = "cart.json"
)

// Session is the persisted slice of the session container's state.
type Session struct {
	User            *models.User `json:"user"`
	Token           string       `json:"token"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// Storage reads and writes the persisted state files. It also serves as
// the API client's token source: the token cached on the last load or
// save is what outgoing requests send, so there is exactly one write
// path for the credential.
type Storage struct {
	dir string

	mu    sync.Mutex
	token string
}

// New returns a Storage rooted at dir, creating it if needed.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Token returns the credential from the last loaded or saved session.
func (s *Storage) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// LoadSession reads the persisted session. A missing or unreadable file
// degrades to an empty session; the error is returned for logging only
// and the returned state is always usable.
func (s *Storage) LoadSession() (Session, error) {
	var sess Session
	err := s.readFile(sessionFile, &sess)
	if err != nil {
		sess = Session{}
	}
	s.mu.Lock()
	s.token = sess.Token
	s.mu.Unlock()
	return sess, err
}

// SaveSession writes the session file and updates the cached token.
func (s *Storage) SaveSession(sess Session) error {
	if err := s.writeFile(sessionFile, sess); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = sess.Token
	s.mu.Unlock()
	return nil
}

// ClearSession removes the session file and the cached token.
func (s *Storage) ClearSession() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// LoadCart reads the persisted cart lines. Missing or unreadable data
// degrades to an empty cart.
func (s *Storage) LoadCart() ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.readFile(cartFile, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveCart writes the cart lines.
func (s *Storage) SaveCart(items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	return s.writeFile(cartFile, items)
}

func (s *Storage) readFile(name string, out any) error {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Storage) writeFile(name string, v any) error {
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}
