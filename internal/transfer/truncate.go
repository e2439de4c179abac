package transfer

import (
	"os"
	"path/filepath"

	"github.com/oxholm/drift/pkg/logger"
)

// truncateLongNames renames any file below dir whose full path exceeds
// maxLength, cutting the base name down so that the path (extension
// included) fits. Some destination filesystems reject long paths
// outright, so this runs before any size tracking each round.
func truncateLongNames(dir string, maxLength int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Emit(logger.WARNING, "Failed to read %s during name truncation: %v\n", dir, err)
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			truncateLongNames(path, maxLength)
			continue
		}

		if len(path) <= maxLength {
			continue
		}

		ext := filepath.Ext(path)
		stem := path[:len(path)-len(ext)]
		keep := maxLength - len(ext) - 1
		if keep < 1 || keep >= len(stem) {
			continue
		}

		newPath := stem[:keep] + ext
		log.Emit(logger.INFO, "Truncating %s to %s\n", path, newPath)
		if err := os.Rename(path, newPath); err != nil {
			log.Emit(logger.WARNING, "Failed to truncate %s: %v\n", path, err)
		}
	}
}
