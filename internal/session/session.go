package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tgienger/tms/internal/models"
)

// Keys of the persisted session entries
const (
	KeyToken    = "auth_token"
	KeyUsername = "username"
	KeyPhoto    = "photo"
)

// DefaultTTL matches the one-day expiry of the web client cookies
const DefaultTTL = 24 * time.Hour

// DefaultDisplayName is shown when no username was stored
const DefaultDisplayName = "Guest"

// ErrNoSession is returned when a caller requires a session and none exists
var ErrNoSession = errors.New("not signed in")

// Store persists session entries with an expiry
type Store interface {
	GetEntry(key string, now time.Time) (string, bool, error)
	EntryExpiry(key string) (time.Time, error)
	SetEntry(key, value string, expiresAt time.Time) error
	DeleteEntry(key string) error
}

// Context is the single owner of the sign-in state. Views and commands get it
// injected instead of reading the store themselves.
type Context struct {
	mu    sync.Mutex
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// New creates a session context on top of store
func New(store Store, ttl time.Duration) *Context {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Context{store: store, ttl: ttl, now: time.Now}
}

// SetClock replaces the time source (tests)
func (c *Context) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns the current session. A missing, expired or unreadable token
// all mean "not signed in".
func (c *Context) Get() (models.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	token, ok, err := c.store.GetEntry(KeyToken, now)
	if err != nil || !ok || strings.TrimSpace(token) == "" {
		return models.Session{}, false
	}

	s := models.Session{Token: token, Username: DefaultDisplayName}
	if name, ok, err := c.store.GetEntry(KeyUsername, now); err == nil && ok && name != "" {
		s.Username = name
	}
	if photo, ok, err := c.store.GetEntry(KeyPhoto, now); err == nil && ok {
		s.Photo = photo
	}
	if exp, err := c.store.EntryExpiry(KeyToken); err == nil {
		s.ExpiresAt = exp
	}
	return s, true
}

// Token returns the current token or an empty string
func (c *Context) Token() string {
	s, ok := c.Get()
	if !ok {
		return ""
	}
	return s.Token
}

// Set stores a fresh session after a successful login
func (c *Context) Set(token, username, photo string) (models.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	token = strings.TrimSpace(token)
	if token == "" {
		return models.Session{}, fmt.Errorf("store session: empty token")
	}

	expiresAt := c.expiry(token)
	if err := c.store.SetEntry(KeyToken, token, expiresAt); err != nil {
		return models.Session{}, fmt.Errorf("store session token: %w", err)
	}
	if err := c.store.SetEntry(KeyUsername, username, expiresAt); err != nil {
		return models.Session{}, fmt.Errorf("store session username: %w", err)
	}
	if photo != "" {
		if err := c.store.SetEntry(KeyPhoto, photo, expiresAt); err != nil {
			return models.Session{}, fmt.Errorf("store session photo: %w", err)
		}
	} else if err := c.store.DeleteEntry(KeyPhoto); err != nil {
		return models.Session{}, fmt.Errorf("clear session photo: %w", err)
	}

	if username == "" {
		username = DefaultDisplayName
	}
	return models.Session{Token: token, Username: username, Photo: photo, ExpiresAt: expiresAt}, nil
}

// Clear removes every session entry (sign-out)
func (c *Context) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for _, key := range []string{KeyToken, KeyUsername, KeyPhoto} {
		if err := c.store.DeleteEntry(key); err != nil {
			errs = append(errs, fmt.Errorf("clear %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// expiry is now+ttl, shortened to the token's own exp claim when the token
// is a JWT. The claim is read without verification; the token stays opaque.
func (c *Context) expiry(token string) time.Time {
	expiresAt := c.now().Add(c.ttl)

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return expiresAt
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return expiresAt
	}
	if exp.Time.Before(expiresAt) {
		return exp.Time
	}
	return expiresAt
}
