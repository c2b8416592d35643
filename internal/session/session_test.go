package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/tms/internal/db"
)

func newTestContext(t *testing.T, now time.Time) *Context {
	t.Helper()
	database, err := db.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	c := New(database, 24*time.Hour)
	c.SetClock(func() time.Time { return now })
	return c
}

func TestContext_SetGetClear(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	c := newTestContext(t, now)

	_, ok := c.Get()
	assert.False(t, ok)

	_, err := c.Set("opaque-token", "jane", "https://cdn/jane.png")
	require.NoError(t, err)

	s, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "opaque-token", s.Token)
	assert.Equal(t, "jane", s.Username)
	assert.Equal(t, "https://cdn/jane.png", s.Photo)
	assert.WithinDuration(t, now.Add(24*time.Hour), s.ExpiresAt, time.Second)

	require.NoError(t, c.Clear())
	_, ok = c.Get()
	assert.False(t, ok)
	assert.Empty(t, c.Token())
}

func TestContext_FallsBackToDefaults(t *testing.T) {
	c := newTestContext(t, time.Now())

	_, err := c.Set("tok", "", "")
	require.NoError(t, err)

	s, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, DefaultDisplayName, s.Username)
	assert.Empty(t, s.Photo)
}

func TestContext_ExpiredSessionIsAbsent(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	c := newTestContext(t, now)

	_, err := c.Set("tok", "jane", "")
	require.NoError(t, err)

	c.SetClock(func() time.Time { return now.Add(25 * time.Hour) })
	_, ok := c.Get()
	assert.False(t, ok)
}

func TestContext_JWTExpiryShortensTTL(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	c := newTestContext(t, now)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": now.Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("server-secret"))
	require.NoError(t, err)

	s, err := c.Set(signed, "jane", "")
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), s.ExpiresAt, time.Second)
}

func TestContext_RejectsEmptyToken(t *testing.T) {
	c := newTestContext(t, time.Now())
	_, err := c.Set("  ", "jane", "")
	assert.Error(t, err)
}

func TestGuard_Resolve(t *testing.T) {
	c := newTestContext(t, time.Now())
	g := NewGuard(c)

	d := g.Resolve(RouteEmployees)
	assert.True(t, d.Redirected)
	assert.Equal(t, RouteLogin, d.Route)

	d = g.Resolve(RouteLogin)
	assert.False(t, d.Redirected)
	assert.Equal(t, RouteLogin, d.Route)

	d = g.Resolve(RouteRegister)
	assert.False(t, d.Redirected)

	_, err := c.Set("tok", "jane", "")
	require.NoError(t, err)

	d = g.Resolve(RouteEmployees)
	assert.False(t, d.Redirected)
	assert.Equal(t, RouteEmployees, d.Route)
	assert.Equal(t, "jane", d.Session.Username)

	d = g.Resolve(RouteLogin)
	assert.True(t, d.Redirected)
	assert.Equal(t, DefaultRoute, d.Route)

	d = g.Resolve("")
	assert.Equal(t, DefaultRoute, d.Route)
}

func TestParseRoute(t *testing.T) {
	assert.Equal(t, RouteEmployees, ParseRoute("employee"))
	assert.Equal(t, RouteHome, ParseRoute("/homepage/stats"))
	assert.Equal(t, RouteLogin, ParseRoute("/login/"))
	assert.Equal(t, Route(""), ParseRoute("/nowhere"))
	assert.Equal(t, Route(""), ParseRoute(""))
}
