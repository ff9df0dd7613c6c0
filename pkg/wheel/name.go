package wheel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidName is returned when a package name fails the PEP 503 grammar.
var ErrInvalidName = errors.New("invalid package name")

var (
	validNameRE = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9._-]*[a-zA-Z0-9])?$`)
	separatorRE = regexp.MustCompile(`[-_.]+`)
)

// NormalizeName validates and canonicalizes a package name following PEP 503:
// the name must be non-empty, start and end with an ASCII letter or digit,
// and contain only letters, digits, '.', '_' and '-' in between. On success
// every run of separators collapses to a single '-' and the result is
// lowercased.
//
// NormalizeName is idempotent: feeding a normalized name back in returns it
// unchanged.
func NormalizeName(raw string) (string, error) {
	if !validNameRE.MatchString(raw) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, raw)
	}
	return strings.ToLower(separatorRE.ReplaceAllString(raw, "-")), nil
}
