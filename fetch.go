package pathlib

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	gopath "path"

	platformerrors "github.com/jmgilman/go/errors"
)

// OrDownload fetches the URL into the path atomically if no file exists
// there yet, and returns the destination path.
//
// If the path is an existing directory, the destination file name is derived
// from the URL's path component (ErrCannotDetermineFilename when it yields
// none). If the destination already exists it is returned unchanged and no
// request is made. The existence check is advisory — it is made once, not
// locked, so two callers can still race to populate the same destination;
// the rename discipline guarantees whichever publish lands last is complete.
//
// The response body is streamed to a temporary sibling and published with a
// rename, with the same cleanup guarantees as AtomicWrite. A non-2xx status,
// an I/O failure, or fewer bytes than the advertised Content-Length all
// yield ErrTransfer. The request honors ctx; cancellation mid-transfer still
// removes the temporary artifact.
//
// Progress can be observed with WithProgressCallback, and the transport
// replaced with WithHTTPClient.
func (p Path) OrDownload(ctx context.Context, rawURL string, opts ...Option) (Path, error) {
	cfg := newConfig(opts)
	view := cfg.view()

	dest := p
	if isDir, err := view.isDir(p); err != nil {
		return Path{}, err
	} else if isDir {
		name, err := filenameFromURL(rawURL)
		if err != nil {
			return Path{}, err
		}
		dest = p.Join(name)
	}

	exists, err := view.exists(dest)
	if err != nil {
		return Path{}, err
	}
	if exists {
		return dest, nil
	}

	err = dest.AtomicWriteWith(func(tmp Path) error {
		return download(ctx, cfg, view, tmp, rawURL)
	}, opts...)
	if err != nil {
		return Path{}, err
	}
	return dest, nil
}

// filenameFromURL extracts the final path segment of the URL, decoded.
// Returns ErrCannotDetermineFilename when the URL path has no usable name.
func filenameFromURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", platformerrors.Wrap(err, platformerrors.CodeInvalidInput,
			"parsing URL "+rawURL)
	}
	name := gopath.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return "", platformerrors.Wrap(ErrCannotDetermineFilename, platformerrors.CodeInvalidInput,
			rawURL)
	}
	return name, nil
}

// download streams the URL's content into tmp on the given view.
func download(ctx context.Context, cfg *config, view fsview, tmp Path, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeInvalidInput,
			"building request for "+rawURL)
	}
	resp, err := cfg.httpClient().Do(req)
	if err != nil {
		return transferError(err, "fetching "+rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return transferError(nil, fmt.Sprintf("fetching %s: status %s", rawURL, resp.Status))
	}

	f, err := view.create(tmp, cfg.fileMode)
	if err != nil {
		return err
	}
	written, err := copyWithProgress(f, resp.Body, resp.ContentLength, cfg.progress)
	if err != nil {
		f.Close()
		return transferError(err, "streaming "+rawURL)
	}
	if err := f.Close(); err != nil {
		return wrapIO(err, "closing "+tmp.String())
	}
	if resp.ContentLength >= 0 && written != resp.ContentLength {
		return transferError(nil, fmt.Sprintf("fetching %s: got %d of %d advertised bytes",
			rawURL, written, resp.ContentLength))
	}
	return nil
}

// transferError wraps (or creates) an ErrTransfer with network
// classification. cause may be nil.
func transferError(cause error, context string) error {
	if cause == nil {
		return platformerrors.Wrap(ErrTransfer, platformerrors.CodeNetwork, context)
	}
	return platformerrors.Wrap(fmt.Errorf("%w: %w", ErrTransfer, cause),
		platformerrors.CodeNetwork, context)
}

// copyWithProgress copies src to dst in fixed-size blocks, reporting the
// running byte count to progress after each block. total is passed through
// as advertised (-1 when unknown).
func copyWithProgress(dst io.Writer, src io.Reader, total int64, progress ProgressFunc) (int64, error) {
	if progress == nil {
		return io.Copy(dst, src)
	}
	var written int64
	buf := make([]byte, 32*1024)
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			wn, writeErr := dst.Write(buf[:n])
			written += int64(wn)
			progress(written, total)
			if writeErr != nil {
				return written, writeErr
			}
			if wn < n {
				return written, io.ErrShortWrite
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}
