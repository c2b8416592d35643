// Package format writes command output.
package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes v as one JSON document followed by a newline
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// Envelope is the shape of every command result: the payload under data and
// paging or import details under meta.
type Envelope struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}
