package rclone

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_New_AppliesDefaults(t *testing.T) {
	t.Parallel()
	runner := New(Config{})

	assert.Equal(t, DefaultBinPath, runner.config.BinPath)
	assert.Equal(t, DefaultConfigPath, runner.config.ConfigPath)
	assert.Equal(t, DefaultTPSLimit, runner.config.TPSLimit)
}

func Test_ListArgs_IncludesTPSLimitAndExtraFlags(t *testing.T) {
	t.Parallel()
	runner := New(Config{TPSLimit: 7, ExtraFlags: []string{"--fast-list"}})

	assert.Equal(t, []string{
		"lsjson",
		"--recursive",
		"--files-only",
		"--no-mimetype",
		"--tpslimit", "7",
		"--fast-list",
		"remote:media/file.mkv",
	}, runner.listArgs("remote:media/file.mkv"))
}

func Test_MoveArgs_WithoutIncludes(t *testing.T) {
	t.Parallel()
	runner := New(Config{})

	assert.Equal(t, []string{
		"move",
		"--progress",
		"--delete-empty-src-dirs",
		"/landing",
		"remote:media",
	}, runner.moveArgs("/landing", "remote:media", false))
}

func Test_MoveArgs_WithIncludes_ReadsListFromStdin(t *testing.T) {
	t.Parallel()
	runner := New(Config{ExtraFlags: []string{"--transfers", "8"}})

	assert.Equal(t, []string{
		"move",
		"--transfers", "8",
		"--progress",
		"--delete-empty-src-dirs",
		"--include-from", "-",
		"/landing",
		"remote:media",
	}, runner.moveArgs("/landing", "remote:media", true))
}

func Test_SubcommandArgs_AppendExtraFlags(t *testing.T) {
	t.Parallel()
	runner := New(Config{ExtraFlags: []string{"--dry-run"}})

	assert.Equal(t, []string{"delete", "--dry-run", "remote:media/old.mkv"}, runner.subcommandArgs("delete", "remote:media/old.mkv"))
}

func Test_CommandError_ReportsArgsAndStderr(t *testing.T) {
	t.Parallel()
	inner := errors.New("exit status 3")
	err := &CommandError{Args: []string{"move", "/a", "remote:b"}, Stderr: "directory not found\n", error: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "move /a remote:b")
	assert.Contains(t, err.Error(), "directory not found")
}
