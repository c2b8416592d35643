package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestSettings_RoundTrip(t *testing.T) {
	database := openTestDB(t)

	v, err := database.GetSetting("last_route")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, database.SetSetting("last_route", "/employee"))
	require.NoError(t, database.SetSetting("last_route", "/assign"))

	v, err = database.GetSetting("last_route")
	require.NoError(t, err)
	assert.Equal(t, "/assign", v)
}

func TestSessionEntries_Expire(t *testing.T) {
	database := openTestDB(t)
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, database.SetEntry("auth_token", "tok", now.Add(time.Hour)))

	v, ok, err := database.GetEntry("auth_token", now)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	_, ok, err = database.GetEntry("auth_token", now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := database.PurgeExpiredEntries(now.Add(2 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSessionEntries_Delete(t *testing.T) {
	database := openTestDB(t)
	now := time.Now()

	require.NoError(t, database.SetEntry("username", "jane", now.Add(time.Hour)))
	require.NoError(t, database.DeleteEntry("username"))

	_, ok, err := database.GetEntry("username", now)
	require.NoError(t, err)
	assert.False(t, ok)

	exp, err := database.EntryExpiry("username")
	require.NoError(t, err)
	assert.True(t, exp.IsZero())
}
