package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is a server-assigned identifier. The backend is not consistent about
// sending numbers or strings, so both decode to the same value and IDs are
// always compared by their string form.
type ID string

// ParseID builds an ID from user input
func ParseID(s string) ID {
	return ID(strings.TrimSpace(s))
}

// IntID builds an ID from a numeric identifier
func IntID(n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is unset
func (id ID) IsZero() bool { return id == "" }

// Equal compares two identifiers by string value
func (id ID) Equal(other ID) bool { return id.String() == other.String() }

func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	// Only canonical integers go out bare; "007" or "+5" stay strings.
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ParseID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}
