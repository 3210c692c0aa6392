package pathlib

import (
	"encoding/json"
	"io"
	"os"
	"time"

	platformerrors "github.com/jmgilman/go/errors"
	"gopkg.in/yaml.v3"
)

// ReadBytes returns the full content of the file.
func (p Path) ReadBytes(opts ...Option) ([]byte, error) {
	f, err := newConfig(opts).view().open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, wrapIO(err, "reading "+p.String())
	}
	return data, nil
}

// ReadString returns the full content of the file as a string.
func (p Path) ReadString(opts ...Option) (string, error) {
	data, err := p.ReadBytes(opts...)
	return string(data), err
}

// ReadJSON decodes the file's JSON content into v.
func (p Path) ReadJSON(v any, opts ...Option) error {
	data, err := p.ReadBytes(opts...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeInvalidInput,
			"decoding JSON from "+p.String())
	}
	return nil
}

// WriteJSON encodes v as JSON and writes it to the path atomically.
func (p Path) WriteJSON(v any, opts ...Option) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeInvalidInput,
			"encoding JSON for "+p.String())
	}
	return p.AtomicWrite(append(data, '\n'), opts...)
}

// ReadYAML decodes the file's YAML content into v.
func (p Path) ReadYAML(v any, opts ...Option) error {
	data, err := p.ReadBytes(opts...)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeInvalidInput,
			"decoding YAML from "+p.String())
	}
	return nil
}

// WriteYAML encodes v as YAML and writes it to the path atomically.
func (p Path) WriteYAML(v any, opts ...Option) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeInvalidInput,
			"encoding YAML for "+p.String())
	}
	return p.AtomicWrite(data, opts...)
}

// Size returns the size of the file in bytes. Returns ErrNotFound when the
// path does not exist.
func (p Path) Size(opts ...Option) (int64, error) {
	info, err := newConfig(opts).view().stat(p)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Mtime returns the last modification time of the path. Returns ErrNotFound
// when the path does not exist.
func (p Path) Mtime(opts ...Option) (time.Time, error) {
	info, err := newConfig(opts).view().stat(p)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// IsSameFile reports whether both paths refer to the same file. Paths that
// resolve to the same name match trivially; otherwise the two entries are
// compared by stat identity, so hard links and symlink targets on the host
// filesystem are recognized. Both paths must exist.
func (p Path) IsSameFile(other Path, opts ...Option) (bool, error) {
	view := newConfig(opts).view()
	a, err := view.resolve(p)
	if err != nil {
		return false, err
	}
	b, err := view.resolve(other)
	if err != nil {
		return false, err
	}
	if a == b {
		return true, nil
	}
	infoA, err := view.stat(p)
	if err != nil {
		return false, err
	}
	infoB, err := view.stat(other)
	if err != nil {
		return false, err
	}
	return os.SameFile(infoA, infoB), nil
}

// MkdirAll creates the directory and any missing parents, returning the
// path for chaining.
func (p Path) MkdirAll(opts ...Option) (Path, error) {
	if err := newConfig(opts).view().mkdirAll(p, 0o755); err != nil {
		return Path{}, err
	}
	return p, nil
}

// Remove deletes the path. Removing an absent path is not an error.
func (p Path) Remove(opts ...Option) error {
	return newConfig(opts).view().remove(p)
}

// Move renames the path and returns the destination. A directory
// destination receives the file inside it under the source's name. An
// existing file at the destination is only replaced when overwrite is set.
func (p Path) Move(dst Path, overwrite bool, opts ...Option) (Path, error) {
	view := newConfig(opts).view()
	if isDir, err := view.isDir(dst); err != nil {
		return Path{}, err
	} else if isDir {
		dst = dst.Join(p.Name())
	}
	if !overwrite {
		if exists, err := view.exists(dst); err != nil {
			return Path{}, err
		} else if exists {
			return Path{}, platformerrors.New(platformerrors.CodeAlreadyExists,
				dst.String()+" already exists")
		}
	}
	if err := view.rename(p, dst); err != nil {
		return Path{}, err
	}
	return dst, nil
}

// Copy copies the file at the path to dst and returns dst. Directories are
// copied recursively.
func (p Path) Copy(dst Path, opts ...Option) (Path, error) {
	view := newConfig(opts).view()
	if err := copyTree(view, p, dst); err != nil {
		return Path{}, err
	}
	return dst, nil
}

func copyTree(view fsview, src, dst Path) error {
	isDir, err := view.isDir(src)
	if err != nil {
		return err
	}
	if !isDir {
		return copyFile(view, src, dst)
	}
	if err := view.mkdirAll(dst, 0o755); err != nil {
		return err
	}
	entries, err := view.readDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := copyTree(view, src.Join(entry.Name()), dst.Join(entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(view fsview, src, dst Path) error {
	in, err := view.open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := view.create(dst, 0o666)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return wrapIO(err, "copying "+src.String()+" to "+dst.String())
	}
	if err := out.Close(); err != nil {
		return wrapIO(err, "closing "+dst.String())
	}
	return nil
}

// TempDir returns the system's temporary directory as a Path.
func TempDir() Path {
	return NewPath(os.TempDir())
}

// RandomPath returns a random, unused path in dir with the given name
// prefix and suffix. The zero-value dir means the system temporary
// directory. The path is not reserved: a file is briefly created to claim a
// unique name and removed again before returning. The suffix is appended
// after the claim, so a fresh name is drawn whenever the suffixed name is
// already taken.
func RandomPath(dir Path, prefix, suffix string, opts ...Option) (Path, error) {
	cfg := newConfig(opts)
	view := cfg.view()
	if dir.IsZero() {
		dir = TempDir()
	}
	name, err := view.resolve(dir)
	if err != nil {
		return Path{}, err
	}
	for {
		f, err := view.fs.TempFile(name, prefix)
		if err != nil {
			return Path{}, wrapIO(err, "creating temporary file in "+dir.String())
		}
		claimed := f.Name()
		if err := f.Close(); err != nil {
			return Path{}, wrapIO(err, "closing "+claimed)
		}
		if err := view.fs.Remove(claimed); err != nil {
			return Path{}, wrapIO(err, "removing "+claimed)
		}
		candidate := dir.Join(NewPath(claimed).Name() + suffix)
		if suffix == "" {
			return candidate, nil
		}
		exists, err := view.exists(candidate)
		if err != nil {
			return Path{}, err
		}
		if !exists {
			return candidate, nil
		}
	}
}
