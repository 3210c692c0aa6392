package pathlib

import (
	gopath "path"
	"path/filepath"
	"strings"
)

// Path is an immutable filesystem path value. The zero value is the empty
// path; use NewPath to construct one. All transformations return a new Path,
// nothing mutates in place.
//
// Paths are slash-normalized and cleaned on construction. Two Paths are equal
// exactly when their string forms are equal, and ordering is lexicographic
// over the string form, so Path values can be used directly as map keys and
// sorted with sort.Slice or slices.SortFunc.
type Path struct {
	raw string
}

// NewPath constructs a Path by joining the given segments. With no segments
// it returns the current-directory path ".". Backslashes in segments are
// normalized to forward slashes before joining.
func NewPath(segments ...string) Path {
	if len(segments) == 0 {
		return Path{raw: "."}
	}
	normalized := make([]string, len(segments))
	for i, s := range segments {
		normalized[i] = filepath.ToSlash(s)
	}
	joined := gopath.Join(normalized...)
	if joined == "" {
		joined = "."
	}
	return Path{raw: joined}
}

// String returns the slash-normalized string form of the path.
func (p Path) String() string {
	return p.raw
}

// IsZero reports whether p is the zero value (constructed without NewPath).
func (p Path) IsZero() bool {
	return p.raw == ""
}

// Join returns a new Path with the given segments appended.
func (p Path) Join(segments ...string) Path {
	return NewPath(append([]string{p.raw}, segments...)...)
}

// Name returns the final path segment. The root path and the
// current-directory path have no name.
func (p Path) Name() string {
	base := gopath.Base(p.raw)
	if base == "/" || base == "." {
		return ""
	}
	return base
}

// Parent returns the path one level up. The parent of the root is the root
// itself.
func (p Path) Parent() Path {
	return Path{raw: gopath.Dir(p.raw)}
}

// Suffixes returns the path's extension tokens parsed left to right, each
// with its leading dot: "archive.tar.gz" yields [".tar", ".gz"]. Leading dots
// on hidden files do not start a suffix (".bashrc" has none), and a name
// ending in a bare dot has no suffixes.
func (p Path) Suffixes() []string {
	name := p.Name()
	if name == "" || strings.HasSuffix(name, ".") {
		return nil
	}
	trimmed := strings.TrimLeft(name, ".")
	parts := strings.Split(trimmed, ".")
	if len(parts) <= 1 {
		return nil
	}
	suffixes := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		suffixes = append(suffixes, "."+part)
	}
	return suffixes
}

// Suffix returns the last (primary) suffix, or "" if the path has none.
func (p Path) Suffix() string {
	suffixes := p.Suffixes()
	if len(suffixes) == 0 {
		return ""
	}
	return suffixes[len(suffixes)-1]
}

// Stem returns the name with all suffixes removed. The invariant
// Name() == Stem() + strings.Join(Suffixes(), "") always holds.
func (p Path) Stem() string {
	name := p.Name()
	total := 0
	for _, s := range p.Suffixes() {
		total += len(s)
	}
	return name[:len(name)-total]
}

// WithName returns a path with the final segment replaced by name.
func (p Path) WithName(name string) Path {
	return p.Parent().Join(name)
}

// WithParent returns the path relocated under a different parent directory,
// keeping the name.
//
// Example: NewPath("/etc/anaconda/conf.d").WithParent(NewPath("/tmp"))
// is "/tmp/conf.d".
func (p Path) WithParent(parent Path) Path {
	return parent.Join(p.Name())
}

// WithStem returns a path with a new stem, retaining only the last suffix.
//
// Example: NewPath("somedir/info.py.bak").WithStem("view") is
// "somedir/view.bak".
func (p Path) WithStem(stem string) Path {
	return p.WithName(stem + p.Suffix())
}

// Append appends s to the name just before the last suffix. A path without
// suffixes gets s appended to the name itself.
//
// Example: NewPath("report.txt").Append("-old") is "report-old.txt".
func (p Path) Append(s string) Path {
	name := p.Name()
	last := p.Suffix()
	return p.WithName(name[:len(name)-len(last)] + s + last)
}

// WithRootname returns a path with a new pre-suffix name, retaining all
// suffixes.
//
// Example: NewPath("somedir/info.py.bak").WithRootname("view") is
// "somedir/view.py.bak".
func (p Path) WithRootname(name string) Path {
	return p.WithName(name + strings.Join(p.Suffixes(), ""))
}

// WithSuffix returns a path with the last suffix replaced by token, or with
// token appended when the path has no suffix. The token is normalized to
// carry a leading dot.
func (p Path) WithSuffix(token string) Path {
	token = normalizeSuffix(token)
	suffixes := p.Suffixes()
	if len(suffixes) == 0 {
		return p.WithName(p.Name() + token)
	}
	return p.WithSuffixes(append(suffixes[:len(suffixes)-1], token))
}

// AddSuffix returns a path with token appended as the new last suffix.
//
// Example: NewPath("report.py").AddSuffix(".bak") is "report.py.bak".
func (p Path) AddSuffix(token string) Path {
	return p.WithName(p.Name() + normalizeSuffix(token))
}

// PrependSuffix returns a path with token inserted as the first suffix,
// before all existing ones.
//
// Example: NewPath("pathtools.py.xx").PrependSuffix(".new") is
// "pathtools.new.py.xx".
func (p Path) PrependSuffix(token string) Path {
	token = normalizeSuffix(token)
	return p.WithName(p.Stem() + token + strings.Join(p.Suffixes(), ""))
}

// normalizeSuffix ensures a suffix token carries its leading dot.
func normalizeSuffix(token string) string {
	if token == "" || strings.HasPrefix(token, ".") {
		return token
	}
	return "." + token
}
