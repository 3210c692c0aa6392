package pathlib

import (
	"io/fs"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
)

// Option configures a single operation. Options that do not apply to the
// operation they are passed to are ignored.
type Option func(*config)

// config holds per-operation settings with their defaults.
type config struct {
	fs       billy.Filesystem
	logger   *log.Logger
	client   *http.Client
	progress ProgressFunc
	start    int
	padWidth int
	fileMode fs.FileMode
}

// ProgressFunc receives transfer progress updates. total is the advertised
// content length, or -1 when the server did not declare one.
type ProgressFunc func(current, total int64)

func newConfig(opts []Option) *config {
	cfg := &config{
		start:    0,
		padWidth: 3,
		fileMode: 0o666,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithFilesystem routes all filesystem access for the operation through the
// given go-billy filesystem. Paths are passed to it as-is, so they are
// interpreted relative to the filesystem's root. Without this option the
// host OS filesystem is used and relative paths are resolved against the
// current working directory.
//
// Example:
//
//	// Run against an in-memory filesystem (for testing)
//	next, err := p.NextUnusedPath(pathlib.WithFilesystem(memfs.New()))
func WithFilesystem(filesystem billy.Filesystem) Option {
	return func(c *config) {
		c.fs = filesystem
	}
}

// WithLogger sets the logger used for best-effort cleanup warnings in the
// atomic mutation layer. Defaults to the package-level charmbracelet logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHTTPClient sets the HTTP client used by OrDownload. Defaults to
// http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// WithProgressCallback registers a callback invoked with the number of bytes
// transferred so far as OrDownload streams the response body.
func WithProgressCallback(fn ProgressFunc) Option {
	return func(c *config) {
		c.progress = fn
	}
}

// WithStart sets the initial counter value NextUnusedPath uses when the path
// has no numeric suffix to seed from. Defaults to 0.
func WithStart(start int) Option {
	return func(c *config) {
		c.start = start
	}
}

// WithPadWidth sets the zero-pad width NextUnusedPath uses when the path has
// no numeric suffix to seed from. Defaults to 3. The formatted counter grows
// past the width rather than truncating once it overflows.
func WithPadWidth(width int) Option {
	return func(c *config) {
		c.padWidth = width
	}
}

// WithFileMode sets the permission bits for files created by the atomic
// mutation layer. Defaults to 0o666 (before umask).
func WithFileMode(mode fs.FileMode) Option {
	return func(c *config) {
		c.fileMode = mode
	}
}

func (c *config) log() *log.Logger {
	if c.logger != nil {
		return c.logger
	}
	return log.Default()
}

func (c *config) httpClient() *http.Client {
	if c.client != nil {
		return c.client
	}
	return http.DefaultClient
}
