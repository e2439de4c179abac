package internal

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/oxholm/drift/internal/api"
	"github.com/oxholm/drift/internal/janitor"
	"github.com/oxholm/drift/internal/plex"
	"github.com/oxholm/drift/internal/rclone"
	"github.com/oxholm/drift/internal/transfer"
)

// DriftConfig is the struct used to contain the various user config
// supplied by file, or by environment. The env names are the public
// contract of the container image, so they take precedence over any
// file-based value.
type DriftConfig struct {
	Transfer transfer.Config `yaml:"transfer"`
	Janitor  janitor.Config  `yaml:"janitor"`
	Rclone   rclone.Config   `yaml:"rclone"`
	Plex     plex.Config     `yaml:"plex"`
	API      api.RestConfig  `yaml:"api"`

	// Base64 encoded rclone.conf, materialized on startup when no
	// config file exists yet. Lets a deployment carry the rclone
	// remote definitions entirely in the environment.
	RcloneConfigSeed string `yaml:"rclone_config_seed" env:"RCLONE_CONFIG_SEED"`
}

// LoadFromFile loads a YAML formatted configuration file in to a
// DriftConfig, applying environment overrides on top.
func (config *DriftConfig) LoadFromFile(configPath string) error {
	if err := cleanenv.ReadConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
	}

	return config.validate()
}

// LoadFromEnv populates the DriftConfig from the environment alone,
// which is how the container image runs.
func (config *DriftConfig) LoadFromEnv() error {
	if err := cleanenv.ReadEnv(config); err != nil {
		return fmt.Errorf("failed to load configuration from environment: %w", err)
	}

	return config.validate()
}

func (config *DriftConfig) validate() error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	if config.Transfer.MediaPathPrefix != "" && config.Plex.URL == "" {
		return fmt.Errorf("configuration invalid: PLEX_PREFIX is set but PLEX_URL is not")
	}

	return nil
}
