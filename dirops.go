package pathlib

import (
	"fmt"
	"math/big"
	gopath "path"
	"sort"
	"strings"
	"unicode"

	"github.com/go-git/go-billy/v5/util"
	platformerrors "github.com/jmgilman/go/errors"
)

// placeholderSuffix is appended when NextUnusedPath starts from a path with
// no numeric last suffix; the first formatted counter replaces it.
const placeholderSuffix = ".ph"

// NextUnusedPath returns the next path with a numeric suffix that does not
// exist in the parent directory.
//
// If the path's last suffix is numeric, the search starts at its value plus
// one and keeps its digit width. Otherwise a numeric suffix is appended and
// the search starts at WithStart (default 0) with WithPadWidth digits
// (default 3). The counter grows past the pad width once it no longer fits.
//
// The result is advisory: nothing reserves the returned path, so a
// concurrent actor can still create it first. Callers needing exclusivity
// must layer their own reservation, for example by atomically creating a
// placeholder file at the returned path.
//
// Example: given a directory holding somefile.rar.001, somefile.rar.003 and
// somefile.rar.004, NextUnusedPath on somefile.rar.001 returns
// somefile.rar.002, and on somefile.rar.003 returns somefile.rar.005.
func (p Path) NextUnusedPath(opts ...Option) (Path, error) {
	cfg := newConfig(opts)
	return nextUnused(cfg.view(), cfg, p)
}

func nextUnused(view fsview, cfg *config, p Path) (Path, error) {
	// Suffix values carry arbitrarily many digits, so the counter is a
	// big.Int rather than a native integer.
	width := cfg.padWidth
	one := big.NewInt(1)
	counter := big.NewInt(int64(cfg.start))
	candidate := p
	if last := p.Suffix(); IsNumericSuffix(last) {
		digits := strings.TrimPrefix(last, ".")
		width = len(digits)
		counter.SetString(digits, 10)
		counter.Add(counter, one)
	} else {
		candidate = p.AddSuffix(placeholderSuffix)
	}
	for {
		candidate = candidate.WithSuffix(fmt.Sprintf(".%0*d", width, counter))
		exists, err := view.exists(candidate)
		if err != nil {
			return Path{}, err
		}
		if !exists {
			return candidate, nil
		}
		counter.Add(counter, one)
	}
}

// LastNumericalPath returns the sibling with the highest numeric last
// suffix among entries sharing this path's non-numeric base name.
//
// Any trailing numeric suffix on the receiver is stripped to form the base
// pattern, so somefile.rar.001 and somefile.rar are equivalent starting
// points. Returns ErrNotFound when no sibling with a numeric last suffix
// exists. Ties on the numeric value resolve to the lexicographically last
// name; tied names can only differ in leading-zero width.
//
// Example: given somefile.rar.001, somefile.rar.003 and somefile.rar.004,
// LastNumericalPath on somefile.rar.001 returns somefile.rar.004.
func (p Path) LastNumericalPath(opts ...Option) (Path, error) {
	cfg := newConfig(opts)
	view := cfg.view()

	base := p
	if IsNumericSuffix(base.Suffix()) {
		base = base.WithoutSuffix("")
	}
	entries, err := view.readDir(base.Parent())
	if err != nil {
		return Path{}, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	prefix := base.Name() + "."
	best := Path{}
	var bestValue *big.Int
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		sibling := base.WithName(name)
		if !IsNumericSuffix(sibling.Suffix()) {
			continue
		}
		value, ok := new(big.Int).SetString(strings.TrimPrefix(sibling.Suffix(), "."), 10)
		if !ok {
			continue
		}
		if bestValue == nil || value.Cmp(bestValue) >= 0 {
			best = sibling
			bestValue = value
		}
	}
	if bestValue == nil {
		return Path{}, platformerrors.Wrap(ErrNotFound, platformerrors.CodeNotFound,
			fmt.Sprintf("no sibling of %s with a numeric suffix", base))
	}
	return best, nil
}

// Exists reports whether the path exists.
func (p Path) Exists(opts ...Option) (bool, error) {
	return newConfig(opts).view().exists(p)
}

// IsDir reports whether the path exists and is a directory.
func (p Path) IsDir(opts ...Option) (bool, error) {
	return newConfig(opts).view().isDir(p)
}

// ListDir returns the children of the directory, sorted lexicographically.
func (p Path) ListDir(opts ...Option) ([]Path, error) {
	entries, err := newConfig(opts).view().readDir(p)
	if err != nil {
		return nil, err
	}
	children := make([]Path, 0, len(entries))
	for _, entry := range entries {
		children = append(children, p.Join(entry.Name()))
	}
	sort.Slice(children, func(i, j int) bool { return children[i].String() < children[j].String() })
	return children, nil
}

// Glob returns the paths under this directory matching pattern, sorted.
// If the receiver is an existing file, its parent directory is searched
// instead. A pattern without wildcards is wrapped as *pattern*.
func (p Path) Glob(pattern string, opts ...Option) ([]Path, error) {
	return p.glob(pattern, false, opts)
}

// GlobIgnoreCase is Glob with case-insensitive letter matching.
//
// Example: GlobIgnoreCase("readme*") matches README.md.
func (p Path) GlobIgnoreCase(pattern string, opts ...Option) ([]Path, error) {
	return p.glob(pattern, true, opts)
}

func (p Path) glob(pattern string, ignoreCase bool, opts []Option) ([]Path, error) {
	cfg := newConfig(opts)
	view := cfg.view()

	dir := p
	if isDir, err := view.isDir(p); err != nil {
		return nil, err
	} else if !isDir {
		dir = p.Parent()
	}
	if !strings.Contains(pattern, "*") {
		pattern = "*" + pattern + "*"
	}
	if ignoreCase {
		pattern = foldPattern(pattern)
	}
	resolved, err := view.resolve(dir)
	if err != nil {
		return nil, err
	}
	matches, err := util.Glob(view.fs, gopath.Join(resolved, pattern))
	if err != nil {
		return nil, wrapIO(err, "globbing "+pattern+" under "+dir.String())
	}
	paths := make([]Path, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, dir.Join(NewPath(m).Name()))
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i].String() < paths[j].String() })
	return paths, nil
}

// foldPattern rewrites every letter in a glob pattern as a two-letter
// character class so matching ignores case: "ab*" becomes "[aA][bB]*".
func foldPattern(pattern string) string {
	var sb strings.Builder
	for _, r := range pattern {
		if unicode.IsLetter(r) {
			sb.WriteRune('[')
			sb.WriteRune(unicode.ToLower(r))
			sb.WriteRune(unicode.ToUpper(r))
			sb.WriteRune(']')
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// GitRoot walks up from the path (or its parent, if the path is a file)
// until a directory containing a .git entry is found. Returns ErrNotFound
// when the filesystem root is reached without finding one.
func (p Path) GitRoot(opts ...Option) (Path, error) {
	cfg := newConfig(opts)
	view := cfg.view()

	current := p
	if view.abs {
		// Walking terminates at the filesystem root, so relative paths
		// must be anchored before the climb starts.
		name, err := view.resolve(current)
		if err != nil {
			return Path{}, err
		}
		current = NewPath(name)
	}
	if isDir, err := view.isDir(current); err != nil {
		return Path{}, err
	} else if !isDir {
		current = current.Parent()
	}
	for {
		exists, err := view.exists(current.Join(".git"))
		if err != nil {
			return Path{}, err
		}
		if exists {
			return current, nil
		}
		parent := current.Parent()
		if parent == current {
			return Path{}, platformerrors.Wrap(ErrNotFound, platformerrors.CodeNotFound,
				fmt.Sprintf("no .git directory above %s", p))
		}
		current = parent
	}
}
