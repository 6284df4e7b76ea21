// Package pagination implements the opaque cursor used by the month listing.
// A cursor is the last-seen sort key, "<RFC 3339 UTC timestamp>_<id>", e.g.
// "2025-12-01T00:00:00.000Z_10". It is a resumption token, not a security
// boundary.
package pagination

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const separator = "_"

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type Cursor struct {
	StartDate time.Time
	ID        int64
}

func Encode(c Cursor) string {
	return c.StartDate.UTC().Format(timeLayout) + separator + strconv.FormatInt(c.ID, 10)
}

// Decode parses a cursor token. The timestamp cannot contain the separator, so
// splitting on its last occurrence is unambiguous.
func Decode(token string) (Cursor, error) {
	i := strings.LastIndex(token, separator)
	if i < 0 {
		return Cursor{}, fmt.Errorf("cursor %q: missing separator", token)
	}

	startDate, err := time.Parse(time.RFC3339, token[:i])
	if err != nil {
		return Cursor{}, fmt.Errorf("cursor %q: %w", token, err)
	}

	id, err := strconv.ParseInt(token[i+1:], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("cursor %q: %w", token, err)
	}

	return Cursor{StartDate: startDate, ID: id}, nil
}
