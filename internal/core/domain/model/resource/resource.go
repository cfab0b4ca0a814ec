// Package resource defines the resource identifier type and the legacy-alias
// canonicalization applied at every external entry point (supplier
// registration, order and job creation, save restore). Business logic only
// ever sees canonical identifiers.
package resource

import "strings"

// ID is a canonical resource identifier such as "wood" or "iron_ore".
type ID string

// legacyAliases maps identifiers that older save files and external callers
// still use onto their canonical form. The table is consulted exactly once
// per entry point; canonical IDs pass through unchanged.
var legacyAliases = map[string]ID{
	"lumber":    "wood",
	"timber":    "wood",
	"ore":       "iron_ore",
	"iron":      "iron_ore",
	"crop":      "grain",
	"wheat":     "grain",
	"foodstuff": "food",
}

// Canonical normalizes a raw resource identifier: trims whitespace, lowers
// case, and resolves legacy aliases. An empty input stays empty so callers
// can reject it with their own required-value error.
func Canonical(raw string) ID {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := legacyAliases[normalized]; ok {
		return canonical
	}
	return ID(normalized)
}

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool {
	return id == ""
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}
