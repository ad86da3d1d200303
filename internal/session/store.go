package session

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const CookieName = "covoit_token"

// Store persists the bearer token between runs.
type Store interface {
	Load() (string, error)
	Save(token string, expires time.Time) error
	Clear() error
}

type MemoryStore struct {
	mu      sync.Mutex
	token   string
	expires time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// WithClock replaces the time source used to expire the stored token.
func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
	return m
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.expires.IsZero() && !m.now().Before(m.expires) {
		m.token = ""
	}
	return m.token, nil
}

func (m *MemoryStore) Save(token string, expires time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.expires = expires
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.expires = time.Time{}
	return nil
}

// FileStore keeps the token as a single Set-Cookie line, with the same
// attributes a browser session would get: SameSite=Strict, HttpOnly, and
// Secure when the backend is reached over HTTPS.
type FileStore struct {
	path   string
	secure bool
	now    func() time.Time
}

func NewFileStore(path string, secure bool) *FileStore {
	return &FileStore{path: path, secure: secure, now: time.Now}
}

// WithClock replaces the time source used to expire the stored cookie.
func (f *FileStore) WithClock(now func() time.Time) *FileStore {
	f.now = now
	return f
}

func (f *FileStore) Path() string {
	return f.path
}

// Load returns the stored token, or "" when none is stored or it expired.
func (f *FileStore) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading session file: %w", err)
	}

	line := strings.TrimSpace(strings.SplitN(string(data), "\n", 2)[0])
	if line == "" {
		return "", nil
	}

	cookie, err := http.ParseSetCookie(line)
	if err != nil || cookie.Name != CookieName {
		return "", f.Clear()
	}
	if !cookie.Expires.IsZero() && !f.now().Before(cookie.Expires) {
		return "", f.Clear()
	}
	return cookie.Value, nil
}

func (f *FileStore) Save(token string, expires time.Time) error {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires.UTC(),
		Secure:   f.secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	line := cookie.String()
	if line == "" {
		return fmt.Errorf("token cannot be stored as a cookie")
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(line+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
