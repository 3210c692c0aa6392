package pathlib

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readAll reads a file's content from the test filesystem.
func readAll(t *testing.T, fs billy.Filesystem, name string) []byte {
	t.Helper()
	data, err := util.ReadFile(fs, name)
	require.NoError(t, err)
	return data
}

// dirNames returns the entry names of a directory on the test filesystem.
func dirNames(t *testing.T, fs billy.Filesystem, dir string) []string {
	t.Helper()
	entries, err := fs.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestPath_AtomicWrite(t *testing.T) {
	fs := memfs.New()
	touch(t, fs, "/data/anchor")

	err := NewPath("/data/out.txt").AtomicWrite([]byte("hello"), WithFilesystem(fs))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), readAll(t, fs, "/data/out.txt"))

	// No temporary artifact survives a successful write.
	assert.ElementsMatch(t, []string{"anchor", "out.txt"}, dirNames(t, fs, "/data"))
}

func TestPath_AtomicWrite_ReplacesExisting(t *testing.T) {
	// Run against the real OS filesystem: rename-over-existing is the
	// platform behavior the publish step depends on.
	fs := osfs.New(t.TempDir())
	p := NewPath("out.txt")

	require.NoError(t, p.AtomicWrite([]byte("old content"), WithFilesystem(fs)))
	require.NoError(t, p.AtomicWrite([]byte("new"), WithFilesystem(fs)))

	assert.Equal(t, []byte("new"), readAll(t, fs, "out.txt"))
	assert.ElementsMatch(t, []string{"out.txt"}, dirNames(t, fs, "."))
}

func TestPath_AtomicWriteString(t *testing.T) {
	fs := memfs.New()

	err := NewPath("/data/out.txt").AtomicWriteString("text content", WithFilesystem(fs))
	require.NoError(t, err)
	assert.Equal(t, "text content", string(readAll(t, fs, "/data/out.txt")))
}

func TestPath_AtomicWriteWith(t *testing.T) {
	fs := memfs.New()
	var written Path

	err := NewPath("/data/out.bin").AtomicWriteWith(func(tmp Path) error {
		written = tmp
		return util.WriteFile(fs, tmp.String(), []byte{0x1, 0x2, 0x3}, 0o644)
	}, WithFilesystem(fs))
	require.NoError(t, err)

	// The callback is handed a .tmp-derived sibling, not the destination.
	assert.Equal(t, "/data", written.Parent().String())
	assert.NotEqual(t, "/data/out.bin", written.String())
	assert.Equal(t, []byte{0x1, 0x2, 0x3}, readAll(t, fs, "/data/out.bin"))
	assert.ElementsMatch(t, []string{"out.bin"}, dirNames(t, fs, "/data"))
}

func TestPath_AtomicWriteWith_FailureKeepsDestination(t *testing.T) {
	fs := memfs.New()
	dest := NewPath("/data/out.txt")
	require.NoError(t, dest.AtomicWrite([]byte("prior content"), WithFilesystem(fs)))

	boom := errors.New("disk on fire")
	err := dest.AtomicWriteWith(func(tmp Path) error {
		// Simulate an interrupted write: partial bytes land in the
		// temporary file before the failure.
		if err := util.WriteFile(fs, tmp.String(), []byte("par"), 0o644); err != nil {
			return err
		}
		return boom
	}, WithFilesystem(fs))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// The destination keeps its prior content and the partial temporary
	// file is cleaned up.
	assert.Equal(t, []byte("prior content"), readAll(t, fs, "/data/out.txt"))
	assert.ElementsMatch(t, []string{"out.txt"}, dirNames(t, fs, "/data"))
}

func TestPath_AtomicWriteWith_FailureOnAbsentDestination(t *testing.T) {
	fs := memfs.New()
	touch(t, fs, "/data/anchor")
	dest := NewPath("/data/never-created.txt")

	err := dest.AtomicWriteWith(func(tmp Path) error {
		return errors.New("populate failed")
	}, WithFilesystem(fs))
	require.Error(t, err)

	// The destination stays absent and no artifact is left behind.
	exists, statErr := dest.Exists(WithFilesystem(fs))
	require.NoError(t, statErr)
	assert.False(t, exists)
	assert.ElementsMatch(t, []string{"anchor"}, dirNames(t, fs, "/data"))
}

func TestPath_AtomicWrite_TempNameAvoidsCollisions(t *testing.T) {
	fs := memfs.New()

	// A stale temporary from a previous crash must not be reused.
	touch(t, fs, "/data/out.txt.tmp.000")

	err := NewPath("/data/out.txt").AtomicWrite([]byte("fresh"), WithFilesystem(fs))
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), readAll(t, fs, "/data/out.txt"))
	assert.ElementsMatch(t, []string{"out.txt", "out.txt.tmp.000"}, dirNames(t, fs, "/data"))
}
