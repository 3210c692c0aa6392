package pathlib

import (
	"fmt"
	"strconv"
	"strings"

	platformerrors "github.com/jmgilman/go/errors"
)

// IsNumericSuffix reports whether token, stripped of its leading dot, is
// non-empty and consists entirely of decimal digits. A bare dot is not
// numeric.
func IsNumericSuffix(token string) bool {
	digits := strings.TrimPrefix(token, ".")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// HasNumericSuffix reports whether any of the path's suffixes is numeric,
// regardless of position.
//
// Example: "myfile.x.001" and "myfile.x.001.feather" both report true.
func (p Path) HasNumericSuffix() bool {
	for _, s := range p.Suffixes() {
		if IsNumericSuffix(s) {
			return true
		}
	}
	return false
}

// HasPrimaryNumericSuffix reports whether the path's last suffix is numeric.
//
// Example: "myfile.x.001" reports true, "myfile.x.001.feather" reports false.
func (p Path) HasPrimaryNumericSuffix() bool {
	return IsNumericSuffix(p.Suffix())
}

// FirstNumericSuffix returns the leftmost numeric suffix token, or false if
// the path has none.
func (p Path) FirstNumericSuffix() (string, bool) {
	for _, s := range p.Suffixes() {
		if IsNumericSuffix(s) {
			return s, true
		}
	}
	return "", false
}

// FirstNumericValue returns the integer value of the leftmost numeric
// suffix, or false if the path has none. Leading zeros are ignored in the
// value: ".007" has value 7.
func (p Path) FirstNumericValue() (int, bool) {
	token, ok := p.FirstNumericSuffix()
	if !ok {
		return 0, false
	}
	value, err := strconv.Atoi(strings.TrimPrefix(token, "."))
	if err != nil {
		return 0, false
	}
	return value, true
}

// IncreaseNumericWidth re-pads the path's last suffix with leading zeros to
// width digits. The last suffix must be numeric (ErrInvalidSuffix otherwise),
// and width must not be smaller than the current digit count
// (ErrWidthTooSmall) — padding never truncates. Re-padding to the current
// width is a no-op.
//
// Example: "myfile.rar.001" with width 4 becomes "myfile.rar.0001".
func (p Path) IncreaseNumericWidth(width int) (Path, error) {
	last := p.Suffix()
	if !IsNumericSuffix(last) {
		return Path{}, errInvalidSuffix(p, fmt.Sprintf("last suffix %q is not numeric", last))
	}
	digits := strings.TrimPrefix(last, ".")
	if width < len(digits) {
		return Path{}, platformerrors.Wrap(ErrWidthTooSmall, platformerrors.CodeInvalidInput,
			fmt.Sprintf("%s: requested width %d, have %d digits", p, width, len(digits)))
	}
	return p.WithSuffix("." + strings.Repeat("0", width-len(digits)) + digits), nil
}

// MakeNumericSuffixNonprimary moves the numeric last suffix out of the
// primary position, reinserting it immediately before the new last suffix.
// The last suffix must be numeric (ErrInvalidSuffix otherwise).
//
// Example: "myfile.x.feather.001" becomes "myfile.x.001.feather".
func (p Path) MakeNumericSuffixNonprimary() (Path, error) {
	suffixes := p.Suffixes()
	if len(suffixes) == 0 || !IsNumericSuffix(suffixes[len(suffixes)-1]) {
		return Path{}, errInvalidSuffix(p, "last suffix is not numeric")
	}
	numeric := suffixes[len(suffixes)-1]
	rest := suffixes[:len(suffixes)-1]
	at := len(rest) - 1
	if at < 0 {
		at = 0
	}
	reordered := make([]string, 0, len(suffixes))
	reordered = append(reordered, rest[:at]...)
	reordered = append(reordered, numeric)
	reordered = append(reordered, rest[at:]...)
	return p.WithSuffixes(reordered), nil
}

// MakeNumericSuffixPrimary moves the leftmost numeric suffix to the end of
// the suffix list, making it the primary suffix. The path must have at least
// one numeric suffix (ErrNoNumericSuffix otherwise).
//
// Example: "myfile.x.001.feather" becomes "myfile.x.feather.001".
//
// MakeNumericSuffixPrimary and MakeNumericSuffixNonprimary are near-inverses:
// with exactly one numeric suffix, composing them returns the token to the
// primary position, though not necessarily to its original embedded index
// (the nonprimary insertion point is always second-to-last).
func (p Path) MakeNumericSuffixPrimary() (Path, error) {
	suffixes := p.Suffixes()
	at := -1
	for i, s := range suffixes {
		if IsNumericSuffix(s) {
			at = i
			break
		}
	}
	if at < 0 {
		return Path{}, errNoNumericSuffix(p)
	}
	numeric := suffixes[at]
	reordered := make([]string, 0, len(suffixes))
	reordered = append(reordered, suffixes[:at]...)
	reordered = append(reordered, suffixes[at+1:]...)
	reordered = append(reordered, numeric)
	return p.WithSuffixes(reordered), nil
}

// WithSuffixes returns a path with the entire suffix list replaced by
// tokens, each normalized to carry a leading dot. The parent and the
// pre-suffix stem are preserved.
//
// Example: "file.suffix1.suffix2" with [".mkv", ".r00"] is "file.mkv.r00".
func (p Path) WithSuffixes(tokens []string) Path {
	var sb strings.Builder
	sb.WriteString(p.Stem())
	for _, token := range tokens {
		sb.WriteString(normalizeSuffix(token))
	}
	return p.WithName(sb.String())
}

// WithoutSuffixes returns the path with all suffixes dropped, leaving
// parent/stem.
//
// Example: "add_polling_info.py.bak.new" becomes "add_polling_info".
func (p Path) WithoutSuffixes() Path {
	return p.WithName(p.Stem())
}

// WithoutSuffix removes a single suffix from the path. An empty token
// removes the last suffix; otherwise the first suffix equal to the
// normalized token is removed. Removing a token the path does not carry
// returns the path unchanged.
//
// Example: "add_polling_info.py.bak.new" without ".bak" is
// "add_polling_info.py.new".
func (p Path) WithoutSuffix(token string) Path {
	suffixes := p.Suffixes()
	if len(suffixes) == 0 {
		return p
	}
	if token == "" {
		return p.WithSuffixes(suffixes[:len(suffixes)-1])
	}
	token = normalizeSuffix(token)
	for i, s := range suffixes {
		if s == token {
			return p.WithSuffixes(append(suffixes[:i], suffixes[i+1:]...))
		}
	}
	return p
}
