package sanitize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidName indicates the raw input could not be turned into a
// valid package name.
var ErrInvalidName = errors.New("invalid project name")

// MaxLength bounds sanitized names; matches common filesystem and
// package-index limits.
const MaxLength = 214

// Name is a validated Python package identifier: lowercase ASCII letters,
// digits, and underscores, starting with a letter. Every Name is a legal
// directory name and a legal import name on all supported platforms.
type Name string

func (n Name) String() string { return string(n) }

// pythonKeywords are the reserved words that cannot be used as a package
// name even though they are lexically valid identifiers.
var pythonKeywords = map[string]bool{
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "false": true, "finally": true,
	"for": true, "from": true, "global": true, "if": true, "import": true,
	"in": true, "is": true, "lambda": true, "none": true, "nonlocal": true,
	"not": true, "or": true, "pass": true, "raise": true, "return": true,
	"true": true, "try": true, "while": true, "with": true, "yield": true,
}

// deaccent strips combining marks after NFD decomposition, so "Café" folds
// to "Cafe" instead of degrading to an underscore. Transformers carry state,
// so each call gets a fresh chain.
func deaccent() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Clean turns freeform user text into a Name.
//
// Rules, applied in order: trim surrounding whitespace, fold diacritics,
// lower-case, replace each run of characters outside [a-z0-9_] with a single
// underscore, collapse repeated underscores, strip leading digits and
// underscores until the first letter, strip trailing underscores. Fails with
// ErrInvalidName if the result is empty, too long, or a Python keyword.
//
// Clean is deterministic, idempotent on its own output, and performs no
// filesystem or network access.
func Clean(raw string) (Name, error) {
	s := strings.TrimSpace(raw)

	if folded, _, err := transform.String(deaccent(), s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			// Underscores and invalid runes both collapse into one separator.
			pendingSep = true
		}
	}

	cleaned := b.String()
	cleaned = strings.TrimLeft(cleaned, "_0123456789")

	if cleaned == "" {
		return "", fmt.Errorf("%w: %q contains no usable characters", ErrInvalidName, raw)
	}
	if len(cleaned) > MaxLength {
		return "", fmt.Errorf("%w: %q exceeds %d characters after sanitizing", ErrInvalidName, raw, MaxLength)
	}
	if pythonKeywords[cleaned] {
		return "", fmt.Errorf("%w: %q is a Python reserved word", ErrInvalidName, cleaned)
	}

	return Name(cleaned), nil
}

// Valid reports whether s is already a fully sanitized name, i.e. Clean
// would return it unchanged.
func Valid(s string) bool {
	n, err := Clean(s)
	return err == nil && string(n) == s
}
