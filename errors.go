package pathlib

import (
	"errors"
	"fmt"

	platformerrors "github.com/jmgilman/go/errors"
)

// Sentinel errors for the suffix algebra and the mutation layer. All errors
// returned by this package wrap one of these (or an underlying I/O error), so
// callers can match with errors.Is. Each sentinel is additionally classified
// with a platform error code, retrievable via platform errors.GetCode.
var (
	// ErrInvalidSuffix is returned when an operation requires a numeric
	// suffix in a specific position and it is absent or malformed.
	ErrInvalidSuffix = errors.New("suffix is not numeric")

	// ErrNoNumericSuffix is returned when no numeric suffix token exists
	// anywhere in the path's suffix list.
	ErrNoNumericSuffix = errors.New("path has no numeric suffix")

	// ErrWidthTooSmall is returned when the requested pad width is narrower
	// than the existing digit string. Width padding never truncates.
	ErrWidthTooSmall = errors.New("pad width smaller than existing digits")

	// ErrNotFound is returned when a lookup finds no matching filesystem
	// entry: no numbered sibling, no enclosing git root, or no file to stat.
	ErrNotFound = errors.New("not found")

	// ErrCannotDetermineFilename is returned when a directory destination is
	// used with a URL whose path component yields an empty file name.
	ErrCannotDetermineFilename = errors.New("cannot determine filename from URL")

	// ErrTransfer is returned when a network fetch fails or delivers fewer
	// bytes than the advertised content length.
	ErrTransfer = errors.New("transfer failed")
)

// errInvalidSuffix builds a contextualized ErrInvalidSuffix for path p.
func errInvalidSuffix(p Path, detail string) error {
	return platformerrors.Wrap(ErrInvalidSuffix, platformerrors.CodeInvalidInput,
		fmt.Sprintf("%s: %s", p, detail))
}

// errNoNumericSuffix builds a contextualized ErrNoNumericSuffix for path p.
func errNoNumericSuffix(p Path) error {
	return platformerrors.Wrap(ErrNoNumericSuffix, platformerrors.CodeInvalidInput,
		p.String())
}

// wrapIO wraps an underlying filesystem error with context, classifying it
// as an internal platform error. Returns nil if err is nil.
func wrapIO(err error, context string) error {
	if err == nil {
		return nil
	}
	return platformerrors.Wrap(err, platformerrors.CodeInternal, context)
}
