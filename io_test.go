package pathlib

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func TestPath_JSONRoundTrip(t *testing.T) {
	fs := memfs.New()
	p := NewPath("/data/sample.json")

	in := sample{Name: "widget", Count: 3}
	require.NoError(t, p.WriteJSON(in, WithFilesystem(fs)))

	var out sample
	require.NoError(t, p.ReadJSON(&out, WithFilesystem(fs)))
	assert.Equal(t, in, out)
}

func TestPath_YAMLRoundTrip(t *testing.T) {
	fs := memfs.New()
	p := NewPath("/data/sample.yaml")

	in := sample{Name: "widget", Count: 3}
	require.NoError(t, p.WriteYAML(in, WithFilesystem(fs)))

	var out sample
	require.NoError(t, p.ReadYAML(&out, WithFilesystem(fs)))
	assert.Equal(t, in, out)
}

func TestPath_ReadJSON_Malformed(t *testing.T) {
	fs := memfs.New()
	p := NewPath("/data/bad.json")
	require.NoError(t, p.AtomicWriteString("{not json", WithFilesystem(fs)))

	var out sample
	err := p.ReadJSON(&out, WithFilesystem(fs))
	require.Error(t, err)
}

func TestPath_ReadString(t *testing.T) {
	fs := memfs.New()
	p := NewPath("/data/note.txt")
	require.NoError(t, p.AtomicWriteString("line\n", WithFilesystem(fs)))

	content, err := p.ReadString(WithFilesystem(fs))
	require.NoError(t, err)
	assert.Equal(t, "line\n", content)
}

func TestPath_Move(t *testing.T) {
	fs := memfs.New()
	src := NewPath("/data/src.txt")
	require.NoError(t, src.AtomicWriteString("content", WithFilesystem(fs)))

	dst, err := src.Move(NewPath("/data/dst.txt"), false, WithFilesystem(fs))
	require.NoError(t, err)
	assert.Equal(t, "/data/dst.txt", dst.String())
	assert.Equal(t, "content", string(readAll(t, fs, "/data/dst.txt")))

	exists, err := src.Exists(WithFilesystem(fs))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPath_Move_ExistingDestination(t *testing.T) {
	fs := memfs.New()
	src := NewPath("/data/src.txt")
	dst := NewPath("/data/dst.txt")
	require.NoError(t, src.AtomicWriteString("new", WithFilesystem(fs)))
	require.NoError(t, dst.AtomicWriteString("old", WithFilesystem(fs)))

	_, err := src.Move(dst, false, WithFilesystem(fs))
	require.Error(t, err)

	moved, err := src.Move(dst, true, WithFilesystem(fs))
	require.NoError(t, err)
	assert.Equal(t, "new", string(readAll(t, fs, moved.String())))
}

func TestPath_Copy_File(t *testing.T) {
	fs := memfs.New()
	src := NewPath("/data/src.txt")
	require.NoError(t, src.AtomicWriteString("content", WithFilesystem(fs)))

	dst, err := src.Copy(NewPath("/data/copy.txt"), WithFilesystem(fs))
	require.NoError(t, err)
	assert.Equal(t, "content", string(readAll(t, fs, dst.String())))

	// The source is untouched.
	assert.Equal(t, "content", string(readAll(t, fs, src.String())))
}

func TestPath_Copy_Directory(t *testing.T) {
	fs := memfs.New()
	touch(t, fs, "/src/a.txt")
	touch(t, fs, "/src/sub/b.txt")

	_, err := NewPath("/src").Copy(NewPath("/dst"), WithFilesystem(fs))
	require.NoError(t, err)

	for _, name := range []string{"/dst/a.txt", "/dst/sub/b.txt"} {
		exists, err := NewPath(name).Exists(WithFilesystem(fs))
		require.NoError(t, err)
		assert.True(t, exists, name)
	}
}

func TestPath_Size(t *testing.T) {
	fs := memfs.New()
	p := NewPath("/data/blob.bin")
	require.NoError(t, p.AtomicWrite([]byte("12345"), WithFilesystem(fs)))

	size, err := p.Size(WithFilesystem(fs))
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
}

func TestPath_Size_NotFound(t *testing.T) {
	fs := memfs.New()

	_, err := NewPath("/data/missing.bin").Size(WithFilesystem(fs))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPath_Mtime(t *testing.T) {
	fs := osfs.New(t.TempDir())
	p := NewPath("note.txt")
	require.NoError(t, p.AtomicWriteString("x", WithFilesystem(fs)))

	mtime, err := p.Mtime(WithFilesystem(fs))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), mtime, time.Minute)
}

func TestPath_IsSameFile(t *testing.T) {
	fs := memfs.New()
	a := NewPath("/data/a.txt")
	b := NewPath("/data/b.txt")
	require.NoError(t, a.AtomicWriteString("x", WithFilesystem(fs)))
	require.NoError(t, b.AtomicWriteString("x", WithFilesystem(fs)))

	same, err := a.IsSameFile(NewPath("/data/a.txt"), WithFilesystem(fs))
	require.NoError(t, err)
	assert.True(t, same)

	same, err = a.IsSameFile(b, WithFilesystem(fs))
	require.NoError(t, err)
	assert.False(t, same)
}

func TestPath_IsSameFile_HardLink(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o666))
	require.NoError(t, os.Link(filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")))
	fs := osfs.New(dir)

	same, err := NewPath("a.txt").IsSameFile(NewPath("b.txt"), WithFilesystem(fs))
	require.NoError(t, err)
	assert.True(t, same)
}

func TestPath_Remove_Idempotent(t *testing.T) {
	fs := memfs.New()
	p := NewPath("/data/gone.txt")
	require.NoError(t, p.AtomicWriteString("x", WithFilesystem(fs)))

	require.NoError(t, p.Remove(WithFilesystem(fs)))
	require.NoError(t, p.Remove(WithFilesystem(fs)))
}

func TestRandomPath(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("/scratch", 0o755))

	p, err := RandomPath(NewPath("/scratch"), "cat_image-", ".png", WithFilesystem(fs))
	require.NoError(t, err)
	assert.Equal(t, "/scratch", p.Parent().String())
	assert.True(t, strings.HasPrefix(p.Name(), "cat_image-"))
	assert.True(t, strings.HasSuffix(p.Name(), ".png"))

	// The claimed name was released again: the path is unused.
	exists, err := p.Exists(WithFilesystem(fs))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRandomPath_SuffixedNamesStayUnused(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("/scratch", 0o755))

	dir := NewPath("/scratch")
	seen := map[string]bool{}
	for i := 0; i < 25; i++ {
		p, err := RandomPath(dir, "chunk-", ".bin", WithFilesystem(fs))
		require.NoError(t, err)

		exists, err := p.Exists(WithFilesystem(fs))
		require.NoError(t, err)
		assert.False(t, exists, p.String())
		assert.False(t, seen[p.String()], p.String())

		// Occupy the name so a later draw of the same claim would collide.
		seen[p.String()] = true
		touch(t, fs, p.String())
	}
}

func TestTempDir(t *testing.T) {
	assert.False(t, TempDir().IsZero())
}
