package locate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRequired_PicksFirstLexicographically(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "b.json", "{}")
	want := writeFile(t, tmpDir, "a.json", "{}")
	writeFile(t, tmpDir, "notes.txt", "x")

	path, err := Required(tmpDir, ".json")
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

func TestRequired_NoMatch(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "body.txt", "x")

	_, err := Required(tmpDir, ".json")
	require.Error(t, err)
	var missingErr *MissingFileError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, tmpDir, missingErr.Dir)
	assert.Equal(t, ".json", missingErr.Suffix)
	assert.Contains(t, err.Error(), "missing required file")
}

func TestRequired_IgnoresDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "data.json"), 0755))

	_, err := Required(tmpDir, ".json")
	var missingErr *MissingFileError
	assert.ErrorAs(t, err, &missingErr)
}

func TestRequired_MissingDirectory(t *testing.T) {
	_, err := Required(filepath.Join(t.TempDir(), "nope"), ".tex")
	var missingErr *MissingFileError
	assert.ErrorAs(t, err, &missingErr)
}

func TestOptional(t *testing.T) {
	tmpDir := t.TempDir()
	want := writeFile(t, tmpDir, "signature.png", "png")

	path, ok, err := Optional(tmpDir, "signature.png")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, path)

	_, ok, err = Optional(tmpDir, "other.png")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = Optional(filepath.Join(tmpDir, "missing"), "signature.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFirstAndAll(t *testing.T) {
	tmpDir := t.TempDir()
	second := writeFile(t, tmpDir, "z-cert.pdf", "")
	first := writeFile(t, tmpDir, "a-cert.pdf", "")
	writeFile(t, tmpDir, "readme.md", "")

	all, err := All(tmpDir, ".pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, all)

	path, ok, err := First(tmpDir, ".pdf")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, first, path)

	_, ok, err = First(tmpDir, ".png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAll_MissingDirectoryIsEmpty(t *testing.T) {
	all, err := All(filepath.Join(t.TempDir(), "certificates"), ".pdf")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSubdirectories(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"zeta", "acme", ".git"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, name), 0755))
	}
	writeFile(t, root, "profile.json", "{}")

	dirs, err := Subdirectories(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "acme"), filepath.Join(root, "zeta")}, dirs)
}

func TestReadText(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "body.txt", "I am interested...")

	text, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "I am interested...", text)

	_, err = ReadText(filepath.Join(tmpDir, "missing.txt"))
	var readErr *FileReadError
	assert.ErrorAs(t, err, &readErr)
}
