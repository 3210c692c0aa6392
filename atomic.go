package pathlib

// The atomic mutation layer never writes the destination path directly.
// Content goes to a temporary sibling first and is published with a single
// rename, which is atomic with respect to readers of the destination on
// POSIX filesystems (and on go-billy's in-memory filesystem). Readers see
// either the prior content or the complete new content, never a mix. The
// rename is NOT atomic with respect to other writers publishing to the same
// destination: the last rename wins, with no conflict detection.

// tmpSuffix marks in-flight temporary siblings of a destination path.
const tmpSuffix = ".tmp"

// AtomicWrite writes data to the path atomically. The bytes are written to a
// temporary sibling (a .tmp-suffixed, numerically disambiguated name) which
// is then renamed onto the destination. On any failure the temporary file is
// removed and the destination keeps its prior content, or stays absent.
//
// File permissions are configurable with WithFileMode (default 0o666).
func (p Path) AtomicWrite(data []byte, opts ...Option) error {
	return p.AtomicWriteWith(func(tmp Path) error {
		cfg := newConfig(opts)
		f, err := cfg.view().create(tmp, cfg.fileMode)
		if err != nil {
			return err
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return wrapIO(err, "writing "+tmp.String())
		}
		if err := f.Close(); err != nil {
			return wrapIO(err, "closing "+tmp.String())
		}
		return nil
	}, opts...)
}

// AtomicWriteString writes text content atomically. See AtomicWrite.
func (p Path) AtomicWriteString(data string, opts ...Option) error {
	return p.AtomicWrite([]byte(data), opts...)
}

// AtomicWriteWith populates the destination through a caller-supplied
// function. The function receives the temporary sibling path and performs
// arbitrary writes to it; when it returns nil the temporary file is renamed
// onto the destination. When it returns an error, or the rename fails, the
// temporary artifact is removed and the error is propagated. Values beyond
// the error flow back to the caller through closure capture.
//
// Cleanup of the temporary file is best-effort: a failed removal is logged
// (see WithLogger) and never masks the original error.
func (p Path) AtomicWriteWith(write func(tmp Path) error, opts ...Option) error {
	cfg := newConfig(opts)
	view := cfg.view()

	tmp, err := nextUnused(view, cfg, p.AddSuffix(tmpSuffix))
	if err != nil {
		return err
	}

	published := false
	defer func() {
		if published {
			return
		}
		if rmErr := view.remove(tmp); rmErr != nil {
			cfg.log().Warn("failed to remove temporary file", "path", tmp.String(), "error", rmErr)
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := view.rename(tmp, p); err != nil {
		return err
	}
	published = true
	return nil
}
