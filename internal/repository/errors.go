package repository

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("record already exists")
)

// EscapeLike escapes LIKE wildcards so filter matches literally. Use with ESCAPE '\'.
func EscapeLike(filter string) string {
	return likeEscaper.Replace(filter)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
