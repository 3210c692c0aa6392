// Package pathlib provides an immutable filesystem path value type with an
// algebra over numeric file extensions and an atomic file mutation layer.
//
// Numeric suffixes are dot-separated, all-digit extension tokens used as
// part/version markers on file families (split archives, numbered exports):
// "archive.part.001", "archive.part.002", and so on. The algebra classifies
// these tokens, re-pads their widths, moves them between the primary (last)
// and embedded positions, and discovers the next unused or highest numbered
// sibling on disk.
//
// The mutation layer writes or downloads content through a temporary sibling
// path and publishes it with a single rename, so readers of the destination
// never observe a partially written file. See AtomicWrite, AtomicWriteWith,
// and OrDownload for the exact guarantees and their limits.
//
// All filesystem access flows through an injectable go-billy filesystem
// (WithFilesystem), which makes every operation testable against an in-memory
// filesystem. By default the host OS filesystem is used and relative paths
// are resolved against the current working directory.
package pathlib
