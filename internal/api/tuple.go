package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// tuple is one row as the backend serves it: a bare JSON array of column
// values in positional order, straight from a database cursor.
type tuple []json.RawMessage

// String returns the column at i as a string.
// Nulls and missing columns come back empty.
func (t tuple) String(i int) string {
	if i >= len(t) {
		return ""
	}

	var s string
	if err := json.Unmarshal(t[i], &s); err == nil {
		return s
	}

	// Non-string scalar (number, bool): render its JSON form.
	raw := strings.TrimSpace(string(t[i]))
	if raw == "null" || raw == "" {
		return ""
	}
	return raw
}

// Int returns the column at i as an int, or zero
func (t tuple) Int(i int) int {
	if i >= len(t) {
		return 0
	}
	var n int
	if err := json.Unmarshal(t[i], &n); err != nil {
		return 0
	}
	return n
}

// Float returns the column at i as a float64, or zero
func (t tuple) Float(i int) float64 {
	if i >= len(t) {
		return 0
	}
	var f float64
	if err := json.Unmarshal(t[i], &f); err != nil {
		return 0
	}
	return f
}

// Cells renders every column as a display string
func (t tuple) Cells() []string {
	cells := make([]string, len(t))
	for i := range t {
		cells[i] = t.String(i)
	}
	return cells
}

// decodeTuples validates that every decoded row has at least want columns
func decodeTuples(rows []tuple, want int, what string) error {
	for i, row := range rows {
		if len(row) < want {
			return fmt.Errorf("%s row %d has %d columns, expected at least %d", what, i, len(row), want)
		}
	}
	return nil
}
