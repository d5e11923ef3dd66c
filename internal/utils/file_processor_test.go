package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func newSourceProcessor() *FileProcessor {
	return NewFileProcessor(FileWalkOptions{
		FileFilter:      SourceFileFilter([]string{".cs"}),
		DirectoryFilter: SkipDirectoryFilter([]string{"bin", "obj"}),
	})
}

func TestFileProcessor_WalkFiles(t *testing.T) {
	root := createTree(t, map[string]string{
		"A.cs":             "class A {}",
		"B.CS":             "class B {}",
		"README.md":        "# readme",
		"sub/C.cs":         "class C {}",
		"obj/Generated.cs": "class G {}",
	})
	fp := newSourceProcessor()

	flat, err := fp.WalkFiles(root, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "A.cs"), filepath.Join(root, "B.CS")}, flat)

	deep, err := fp.WalkFiles(root, true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "A.cs"),
		filepath.Join(root, "B.CS"),
		filepath.Join(root, "sub", "C.cs"),
	}, deep)
}

func TestFileProcessor_ExpandPaths(t *testing.T) {
	root := createTree(t, map[string]string{
		"A.cs":      "class A {}",
		"sub/C.cs":  "class C {}",
		"notes.txt": "",
	})
	fp := newSourceProcessor()

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "directory",
			args:     []string{root},
			expected: []string{filepath.Join(root, "A.cs")},
		},
		{
			name:     "recursive pattern",
			args:     []string{root + "/..."},
			expected: []string{filepath.Join(root, "A.cs"), filepath.Join(root, "sub", "C.cs")},
		},
		{
			name:     "explicit file is kept regardless of extension",
			args:     []string{filepath.Join(root, "notes.txt")},
			expected: []string{filepath.Join(root, "notes.txt")},
		},
		{
			name:     "duplicates removed",
			args:     []string{filepath.Join(root, "A.cs"), root},
			expected: []string{filepath.Join(root, "A.cs")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := fp.ExpandPaths(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, files)
		})
	}

	_, err := fp.ExpandPaths([]string{filepath.Join(root, "missing")})
	assert.Error(t, err)
}

func TestFileProcessor_WriteFile(t *testing.T) {
	root := createTree(t, map[string]string{"A.cs": "old"})
	path := filepath.Join(root, "A.cs")
	require.NoError(t, os.Chmod(path, 0600))

	fp := newSourceProcessor()
	require.NoError(t, fp.WriteFile(path, "new"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}
