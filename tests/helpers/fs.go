package helpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TempDirWithFiles creates a temporary directory populated with the
// given files (name -> contents). Nested paths are allowed; parent
// directories are created as needed. The directory is cleaned up when
// the test completes.
func TempDirWithFiles(t *testing.T, files map[string]string) string {
	dirPath := t.TempDir()
	for name, contents := range files {
		WriteFile(t, filepath.Join(dirPath, name), contents)
	}

	return dirPath
}

// WriteFile writes (or overwrites) a single file, creating any missing
// parent directories first.
func WriteFile(t *testing.T, path string, contents string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "failed to create parent directory for %s", path)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644), "failed to write %s", path)
}
