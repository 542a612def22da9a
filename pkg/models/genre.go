package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Genre is a film category tag.
type Genre string

const (
	GenreAction  Genre = "ACTION"
	GenreHorror  Genre = "HORROR"
	GenreRomance Genre = "ROMANCE"
)

// AllGenres lists every valid genre tag.
var AllGenres = []Genre{GenreAction, GenreHorror, GenreRomance}

// Valid reports whether the tag is a known genre.
func (g Genre) Valid() bool {
	switch g {
	case GenreAction, GenreHorror, GenreRomance:
		return true
	}
	return false
}

// ParseGenre converts a string to a Genre, case-insensitively.
func ParseGenre(s string) (Genre, error) {
	g := Genre(strings.ToUpper(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("unknown genre %q", s)
	}
	return g, nil
}

// GenreList is a set of genre tags stored as a JSON-encoded text column,
// so the same record works on postgres and sqlite.
type GenreList []Genre

// Contains reports whether the list holds the given genre.
func (l GenreList) Contains(g Genre) bool {
	for _, have := range l {
		if have == g {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer.
func (l GenreList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal genres: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *GenreList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported genres column type %T", value)
	}

	if len(data) == 0 {
		*l = nil
		return nil
	}

	return json.Unmarshal(data, l)
}
