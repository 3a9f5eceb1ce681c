package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		fullPath := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}
}

func TestProjectScanner(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	writeFiles(t, tempDir, map[string]string{
		"file1.js":                    "a();",
		"file2.mjs":                   "export default 1;",
		"file3.cjs":                   "module.exports = 1;",
		"file4.txt":                   "This is a text file",
		"subdir/file5.js":             "b();",
		"node_modules/dep/index.js":   "c();",
		".cache/generated.js":         "d();",
		"subdir/node_modules/x/y.mjs": "e();",
	})

	scannedFiles, err := New(tempDir).Scan()
	require.NoError(t, err)

	paths := make([]string, 0, len(scannedFiles))
	for _, file := range scannedFiles {
		paths = append(paths, file.Path)
		assert.Positive(t, file.Size)
	}

	assert.Equal(t, []string{
		filepath.Join(tempDir, "file1.js"),
		filepath.Join(tempDir, "file2.mjs"),
		filepath.Join(tempDir, "file3.cjs"),
		filepath.Join(tempDir, "subdir", "file5.js"),
	}, paths)
}

func TestScannerExtensions(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	writeFiles(t, tempDir, map[string]string{
		"a.js":  "a();",
		"b.mjs": "b();",
	})

	scannedFiles, err := New(tempDir, ".mjs").Scan()
	require.NoError(t, err)
	require.Len(t, scannedFiles, 1)
	assert.Equal(t, filepath.Join(tempDir, "b.mjs"), scannedFiles[0].Path)
}

func TestIsTarget(t *testing.T) {
	t.Parallel()

	s := New(".")
	tests := []struct {
		path string
		want bool
	}{
		{"a.js", true},
		{"dir/a.mjs", true},
		{"a.cjs", true},
		{"a.ts", false},
		{"a.json", false},
		{"js", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.IsTarget(tt.path), tt.path)
	}
}

func TestScanMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := New(filepath.Join(t.TempDir(), "missing")).Scan()
	assert.Error(t, err)
}

func TestScannerDirs(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	writeFiles(t, tempDir, map[string]string{
		"a.js":                      "a();",
		"src/lib/b.js":              "b();",
		"node_modules/dep/index.js": "c();",
		".git/HEAD":                 "ref",
	})

	dirs, err := New(tempDir).Dirs()
	require.NoError(t, err)
	assert.Equal(t, []string{
		tempDir,
		filepath.Join(tempDir, "src"),
		filepath.Join(tempDir, "src", "lib"),
	}, dirs)

	assert.True(t, IsSkippedDir("node_modules"))
	assert.True(t, IsSkippedDir(".cache"))
	assert.False(t, IsSkippedDir("src"))
}
