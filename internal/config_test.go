package internal_test

import (
	"testing"

	"github.com/oxholm/drift/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadFromEnv_AppliesDefaults(t *testing.T) {
	t.Setenv("SOURCE", "/landing")
	t.Setenv("DEST", "remote:media")

	config := internal.DriftConfig{}
	require.NoError(t, config.LoadFromEnv())

	assert.Equal(t, "/landing", config.Transfer.SourcePath)
	assert.Equal(t, "remote:media", config.Transfer.DestPath)
	assert.Equal(t, 5, config.Transfer.PollSeconds)
	assert.Equal(t, 5, config.Transfer.CheckParallelism)
	assert.Equal(t, "rclone", config.Rclone.BinPath)
	assert.Equal(t, "/config/rclone/rclone.conf", config.Rclone.ConfigPath)
	assert.Equal(t, 4, config.Rclone.TPSLimit)
	assert.Equal(t, "0.0.0.0:8080", config.API.HostAddr)
}

func Test_LoadFromEnv_ParsesContainerContract(t *testing.T) {
	t.Setenv("SOURCE", "/landing")
	t.Setenv("DEST", "remote:media")
	t.Setenv("RCLONE_EXTRA_FLAGS", "--transfers,8,--fast-list")
	t.Setenv("RCLONE_SIZE_LIMIT", "1000000")
	t.Setenv("MAX_PATH_LENGTH", "180")
	t.Setenv("PLEX_URL", "http://plex:32400")
	t.Setenv("PLEX_TOKEN", "token")
	t.Setenv("PLEX_PREFIX", "/media/tv")

	config := internal.DriftConfig{}
	require.NoError(t, config.LoadFromEnv())

	assert.Equal(t, []string{"--transfers", "8", "--fast-list"}, config.Rclone.ExtraFlags)
	assert.Equal(t, int64(1000000), config.Janitor.SizeLimit)
	assert.Equal(t, "remote:media", config.Janitor.DestPath)
	assert.Equal(t, 180, config.Transfer.MaxPathLength)
	assert.Equal(t, "/media/tv", config.Transfer.MediaPathPrefix)
	assert.Equal(t, "http://plex:32400", config.Plex.URL)
}

func Test_LoadFromEnv_RequiresSourceAndDest(t *testing.T) {
	t.Setenv("DEST", "remote:media")

	config := internal.DriftConfig{}
	assert.Error(t, config.LoadFromEnv())
}

func Test_LoadFromEnv_RejectsMediaPrefixWithoutPlexURL(t *testing.T) {
	t.Setenv("SOURCE", "/landing")
	t.Setenv("DEST", "remote:media")
	t.Setenv("PLEX_PREFIX", "/media/tv")

	config := internal.DriftConfig{}
	assert.ErrorContains(t, config.LoadFromEnv(), "PLEX_PREFIX")
}
