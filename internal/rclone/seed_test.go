package rclone

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedContents = "[gdrive]\ntype = drive\n"

func Test_MaterializeConfig_WritesDecodedSeed(t *testing.T) {
	t.Parallel()
	configPath := filepath.Join(t.TempDir(), "rclone", "rclone.conf")
	runner := New(Config{ConfigPath: configPath})

	seed := base64.StdEncoding.EncodeToString([]byte(seedContents))
	require.NoError(t, runner.MaterializeConfig(seed))

	written, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, seedContents, string(written))
}

func Test_MaterializeConfig_EmptySeedIsNoop(t *testing.T) {
	t.Parallel()
	configPath := filepath.Join(t.TempDir(), "rclone.conf")
	runner := New(Config{ConfigPath: configPath})

	require.NoError(t, runner.MaterializeConfig(""))
	assert.NoFileExists(t, configPath)
}

func Test_MaterializeConfig_ExistingConfigIsNeverClobbered(t *testing.T) {
	t.Parallel()
	configPath := filepath.Join(t.TempDir(), "rclone.conf")
	require.NoError(t, os.WriteFile(configPath, []byte("mounted config"), 0o600))
	runner := New(Config{ConfigPath: configPath})

	seed := base64.StdEncoding.EncodeToString([]byte(seedContents))
	require.NoError(t, runner.MaterializeConfig(seed))

	written, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "mounted config", string(written))
}

func Test_MaterializeConfig_RejectsInvalidBase64(t *testing.T) {
	t.Parallel()
	configPath := filepath.Join(t.TempDir(), "rclone.conf")
	runner := New(Config{ConfigPath: configPath})

	assert.Error(t, runner.MaterializeConfig("not-%%-base64"))
	assert.NoFileExists(t, configPath)
}
