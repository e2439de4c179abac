package transfer

import "time"

// Config controls how the transfer service detects and moves files out
// of the landing directory. The env names match the contract of the
// original container image, so existing deployments keep working.
type Config struct {
	// The directory new files land in. The service watches this
	// directory and moves settled files out of it.
	SourcePath string `yaml:"source" env:"SOURCE" env-required:"true" validate:"required"`

	// The rclone destination ('remote:path') settled files are moved to.
	DestPath string `yaml:"dest" env:"DEST" env-required:"true" validate:"required"`

	// The service uses a filesystem watcher, but also polls on this
	// interval; the poll doubles as the settle detector, as a file is
	// only considered done once two consecutive polls observe the
	// same size.
	PollSeconds int `yaml:"poll_seconds" env:"POLL_SECONDS" env-default:"5"`

	// Number of workers used for checking whether settled files
	// already exist at the destination. These checks hit the remote,
	// so caution should be taken to not increase this value too high.
	CheckParallelism int `yaml:"check_parallelism" env:"CHECK_PARALLELISM" env-default:"5"`

	// File paths longer than this are truncated (keeping the
	// extension) before transfer. Zero disables truncation.
	MaxPathLength int `yaml:"max_path_length" env:"MAX_PATH_LENGTH" validate:"gte=0"`

	// Prefix substituted for SourcePath when telling the media server
	// where to scan. Empty disables media server notification.
	MediaPathPrefix string `yaml:"plex_prefix" env:"PLEX_PREFIX"`
}

func (config *Config) PollInterval() time.Duration {
	return time.Duration(config.PollSeconds) * time.Second
}
