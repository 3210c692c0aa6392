package pathlib

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	platformerrors "github.com/jmgilman/go/errors"
)

// fsview binds a go-billy filesystem to a path-translation rule. With an
// injected filesystem, paths pass through unchanged. With the host default
// (osfs rooted at "/"), relative paths are resolved against the current
// working directory first, matching what a plain os.Open would see.
type fsview struct {
	fs  billy.Filesystem
	abs bool
}

func (c *config) view() fsview {
	if c.fs != nil {
		return fsview{fs: c.fs}
	}
	return fsview{fs: osfs.New("/"), abs: true}
}

// resolve translates a Path into the name understood by the bound
// filesystem.
func (v fsview) resolve(p Path) (string, error) {
	if !v.abs {
		return p.String(), nil
	}
	name, err := filepath.Abs(p.String())
	if err != nil {
		return "", wrapIO(err, "resolving path against working directory")
	}
	return filepath.ToSlash(name), nil
}

// exists reports whether the path exists on the bound filesystem. Errors
// other than non-existence are returned.
func (v fsview) exists(p Path) (bool, error) {
	name, err := v.resolve(p)
	if err != nil {
		return false, err
	}
	if _, err := v.fs.Stat(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			return false, nil
		}
		return false, wrapIO(err, "checking existence of "+p.String())
	}
	return true, nil
}

// isDir reports whether the path exists and is a directory.
func (v fsview) isDir(p Path) (bool, error) {
	name, err := v.resolve(p)
	if err != nil {
		return false, err
	}
	info, err := v.fs.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			return false, nil
		}
		return false, wrapIO(err, "checking "+p.String())
	}
	return info.IsDir(), nil
}

// stat returns the metadata of the path. An absent path maps to ErrNotFound.
func (v fsview) stat(p Path) (os.FileInfo, error) {
	name, err := v.resolve(p)
	if err != nil {
		return nil, err
	}
	info, err := v.fs.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			return nil, platformerrors.Wrap(ErrNotFound, platformerrors.CodeNotFound,
				p.String()+" does not exist")
		}
		return nil, wrapIO(err, "stating "+p.String())
	}
	return info, nil
}

// readDir lists the children of dir. Enumeration order is whatever the
// backend produces; callers that need determinism must sort.
func (v fsview) readDir(dir Path) ([]os.FileInfo, error) {
	name, err := v.resolve(dir)
	if err != nil {
		return nil, err
	}
	entries, err := v.fs.ReadDir(name)
	if err != nil {
		return nil, wrapIO(err, "listing "+dir.String())
	}
	return entries, nil
}

// create opens the path for writing, creating or truncating it with the
// given mode.
func (v fsview) create(p Path, mode fs.FileMode) (billy.File, error) {
	name, err := v.resolve(p)
	if err != nil {
		return nil, err
	}
	f, err := v.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return nil, wrapIO(err, "opening "+p.String()+" for writing")
	}
	return f, nil
}

// rename atomically replaces dst with src. Atomicity holds for readers of
// dst on POSIX filesystems; racing writers are last-rename-wins.
func (v fsview) rename(src, dst Path) error {
	srcName, err := v.resolve(src)
	if err != nil {
		return err
	}
	dstName, err := v.resolve(dst)
	if err != nil {
		return err
	}
	if err := v.fs.Rename(srcName, dstName); err != nil {
		return wrapIO(err, "renaming "+src.String()+" to "+dst.String())
	}
	return nil
}

// remove deletes the path. Removing an absent path is not an error, so
// cleanup call sites stay idempotent.
func (v fsview) remove(p Path) error {
	name, err := v.resolve(p)
	if err != nil {
		return err
	}
	if err := v.fs.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) && !os.IsNotExist(err) {
		return wrapIO(err, "removing "+p.String())
	}
	return nil
}

// mkdirAll creates the directory and any missing parents.
func (v fsview) mkdirAll(p Path, mode fs.FileMode) error {
	name, err := v.resolve(p)
	if err != nil {
		return err
	}
	if err := v.fs.MkdirAll(name, mode); err != nil {
		return wrapIO(err, "creating directory "+p.String())
	}
	return nil
}

// open opens the path for reading.
func (v fsview) open(p Path) (billy.File, error) {
	name, err := v.resolve(p)
	if err != nil {
		return nil, err
	}
	f, err := v.fs.Open(name)
	if err != nil {
		return nil, wrapIO(err, "opening "+p.String())
	}
	return f, nil
}
