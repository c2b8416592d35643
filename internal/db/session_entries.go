package db

import (
	"database/sql"
	"time"
)

// GetEntry returns a session entry that has not expired yet
func (db *DB) GetEntry(key string, now time.Time) (string, bool, error) {
	var value string
	var expiresAt time.Time
	err := db.QueryRow(`
		SELECT value, expires_at FROM session_entries WHERE key = ?
	`, key).Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if !now.Before(expiresAt) {
		return "", false, nil
	}
	return value, true, nil
}

// EntryExpiry returns the expiry of a session entry
func (db *DB) EntryExpiry(key string) (time.Time, error) {
	var expiresAt time.Time
	err := db.QueryRow("SELECT expires_at FROM session_entries WHERE key = ?", key).Scan(&expiresAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	return expiresAt, err
}

// SetEntry stores a session entry with a fixed expiry
func (db *DB) SetEntry(key, value string, expiresAt time.Time) error {
	_, err := db.Exec(`
		INSERT INTO session_entries (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, value, expiresAt.UTC())
	return err
}

// DeleteEntry removes a session entry
func (db *DB) DeleteEntry(key string) error {
	_, err := db.Exec("DELETE FROM session_entries WHERE key = ?", key)
	return err
}

// PurgeExpiredEntries removes every entry that expired before now
func (db *DB) PurgeExpiredEntries(now time.Time) (int64, error) {
	result, err := db.Exec("DELETE FROM session_entries WHERE expires_at <= ?", now.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
