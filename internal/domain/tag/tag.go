// Package tag generates the human-readable product codes staff stick on
// garments, e.g. "SC0007" for the seventh casual shirt.
package tag

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCategory is returned when the category is not in the prefix table
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidSubcategory is returned when the subcategory does not match the category
	ErrInvalidSubcategory = errors.New("invalid subcategory")
)

// prefix is one entry of the category table: either a simple prefix or a set
// of subcategory prefixes, never both.
type prefix struct {
	simple string
	sub    map[string]string
}

// prefixes maps canonical lower-case category names to their code prefixes.
// Categories with distinct casual/official lines require a subcategory; the
// rest map straight to a prefix.
var prefixes = map[string]prefix{
	"shirt":   {sub: map[string]string{"casual": "SC", "official": "SO"}},
	"trouser": {sub: map[string]string{"casual": "TC", "official": "TO"}},
	"tshirt":  {sub: map[string]string{"casual": "TSC", "official": "TSO"}},
	"sweater": {sub: map[string]string{"casual": "SWC", "official": "SWO"}},
	"coat":    {sub: map[string]string{"casual": "CC", "official": "CO"}},
	"suit":    {sub: map[string]string{"casual": "SUC", "official": "SUO"}},
	"shoes":   {sub: map[string]string{"casual": "SHC", "official": "SHO"}},
	"tie":     {simple: "TIE"},
	"belt":    {simple: "BLT"},
	"short":   {simple: "SHRT"},
	"boxers":  {simple: "BX"},
	"vest":    {simple: "VST"},
}

// normalize folds user input onto the canonical table keys
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ResolvePrefix looks up the code prefix for a category/subcategory pair.
// Simple categories require an empty subcategory; subcategorized categories
// require a known one.
func ResolvePrefix(category, subcategory string) (string, error) {
	entry, ok := prefixes[normalize(category)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	if entry.sub == nil {
		if normalize(subcategory) != "" {
			return "", fmt.Errorf("%w: %q takes no subcategory", ErrInvalidSubcategory, category)
		}
		return entry.simple, nil
	}

	p, ok := entry.sub[normalize(subcategory)]
	if !ok {
		return "", fmt.Errorf("%w: %q for %q", ErrInvalidSubcategory, subcategory, category)
	}
	return p, nil
}

// Generate produces the product code for a category/subcategory and sequence
// number: prefix plus the sequence zero-padded to at least 4 digits. Sequence
// numbers of 10000 and above widen the suffix, they are never truncated.
func Generate(category, subcategory string, seq int) (string, error) {
	p, err := ResolvePrefix(category, subcategory)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", p, seq), nil
}

// HasSubcategories reports whether a category requires a subcategory
func HasSubcategories(category string) (bool, error) {
	entry, ok := prefixes[normalize(category)]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return entry.sub != nil, nil
}

// Categories returns the known category names, for form rendering and import
// validation
func Categories() []string {
	out := make([]string, 0, len(prefixes))
	for name := range prefixes {
		out = append(out, name)
	}
	return out
}
