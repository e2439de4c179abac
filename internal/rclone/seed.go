package rclone

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oxholm/drift/pkg/logger"
)

// MaterializeConfig decodes the base64 seed and writes it to the
// configured rclone config path, creating parent directories as needed.
// A config file that already exists on disk always wins over the seed,
// so a container with a mounted config is never clobbered.
func (runner *Runner) MaterializeConfig(seed string) error {
	if seed == "" {
		return nil
	}

	if _, err := os.Stat(runner.config.ConfigPath); err == nil {
		log.Emit(logger.DEBUG, "Config file already present at %s, ignoring seed\n", runner.config.ConfigPath)
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat rclone config path %s: %w", runner.config.ConfigPath, err)
	}

	contents, err := base64.StdEncoding.DecodeString(seed)
	if err != nil {
		return fmt.Errorf("rclone config seed is not valid base64: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(runner.config.ConfigPath), 0o755); err != nil {
		return fmt.Errorf("failed to create rclone config directory: %w", err)
	}

	if err := os.WriteFile(runner.config.ConfigPath, contents, 0o600); err != nil {
		return fmt.Errorf("failed to write rclone config: %w", err)
	}

	log.Emit(logger.SUCCESS, "Materialized rclone config at %s from seed\n", runner.config.ConfigPath)
	return nil
}
