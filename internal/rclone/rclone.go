package rclone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/oxholm/drift/pkg/logger"
)

var log = logger.Get("Rclone")

const (
	DefaultBinPath    = "rclone"
	DefaultConfigPath = "/config/rclone/rclone.conf"
	DefaultTPSLimit   = 4
)

type (
	Config struct {
		// Path to the rclone binary; resolved via $PATH when not absolute.
		BinPath string `yaml:"bin_path" env:"RCLONE_BIN_PATH" env-default:"rclone"`

		// Path the rclone configuration file is expected at; also the
		// target for config seed materialization (see MaterializeConfig).
		ConfigPath string `yaml:"config_path" env:"RCLONE_CONF_PATH" env-default:"/config/rclone/rclone.conf"`

		// Extra flags appended to every rclone invocation,
		// comma-separated in the environment.
		ExtraFlags []string `yaml:"extra_flags" env:"RCLONE_EXTRA_FLAGS" env-separator:","`

		// Limit of transactions-per-second used for listing calls, which
		// can hammer API-backed remotes when checking many paths.
		TPSLimit int `yaml:"tps_limit" env:"RCLONE_TPS_LIMIT" env-default:"4"`
	}

	// Entry is a single file returned by 'rclone lsjson'. The field names
	// match rclone's own JSON output and so deviate from Go convention.
	Entry struct {
		Path    string    `json:"Path"`
		Size    int64     `json:"Size"`
		ModTime time.Time `json:"ModTime"`
	}

	// CommandError captures a failed rclone invocation along with the
	// arguments used and anything the binary printed to stderr.
	CommandError struct {
		Args   []string
		Stderr string
		error
	}

	// Runner executes the external rclone binary. All operations accept a
	// context which, when cancelled, kills the running command.
	Runner struct {
		config Config
	}
)

func (e *CommandError) Unwrap() error { return e.error }

func (e *CommandError) Error() string {
	return fmt.Sprintf("rclone %s failed: %v (stderr: %s)", strings.Join(e.Args, " "), e.error, strings.TrimSpace(e.Stderr))
}

func New(config Config) *Runner {
	if config.BinPath == "" {
		config.BinPath = DefaultBinPath
	}
	if config.ConfigPath == "" {
		config.ConfigPath = DefaultConfigPath
	}
	if config.TPSLimit == 0 {
		config.TPSLimit = DefaultTPSLimit
	}

	return &Runner{config: config}
}

// ListJSON lists all files below the target (recursively) using
// 'rclone lsjson'. The target may be a directory, a remote path, or a
// single file; listing a path that does not exist returns an error.
func (runner *Runner) ListJSON(ctx context.Context, target string) ([]Entry, error) {
	args := runner.listArgs(target)

	stdout, err := runner.run(ctx, args, "")
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0)
	if err := json.Unmarshal(stdout, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode lsjson output for %s: %w", target, err)
	}

	return entries, nil
}

// Move runs 'rclone move' from src to dst, deleting source directories
// that are emptied as a result. When includes is non-nil only the
// relative paths listed are eligible for transfer; the include list is
// fed to rclone over stdin.
func (runner *Runner) Move(ctx context.Context, src string, dst string, includes []string) error {
	args := runner.moveArgs(src, dst, includes != nil)

	var stdin string
	if includes != nil {
		stdin = strings.Join(includes, "\n") + "\n"
	}

	log.Emit(logger.INFO, "Moving %s -> %s (%d includes)\n", src, dst, len(includes))
	_, err := runner.run(ctx, args, stdin)
	return err
}

// Delete removes a single file at the target path.
func (runner *Runner) Delete(ctx context.Context, target string) error {
	_, err := runner.run(ctx, runner.subcommandArgs("delete", target), "")
	return err
}

// Touch updates the modification time of the file at the target path.
func (runner *Runner) Touch(ctx context.Context, target string) error {
	_, err := runner.run(ctx, runner.subcommandArgs("touch", target), "")
	return err
}

// Rcat replaces the file at the target path with the contents provided,
// streamed over stdin.
func (runner *Runner) Rcat(ctx context.Context, contents string, target string) error {
	_, err := runner.run(ctx, runner.subcommandArgs("rcat", target), contents)
	return err
}

func (runner *Runner) listArgs(target string) []string {
	args := []string{
		"lsjson",
		"--recursive",
		"--files-only",
		"--no-mimetype",
		"--tpslimit", strconv.Itoa(runner.config.TPSLimit),
	}
	args = append(args, runner.config.ExtraFlags...)
	return append(args, target)
}

func (runner *Runner) moveArgs(src string, dst string, withIncludes bool) []string {
	args := []string{"move"}
	args = append(args, runner.config.ExtraFlags...)
	args = append(args, "--progress", "--delete-empty-src-dirs")
	if withIncludes {
		args = append(args, "--include-from", "-")
	}

	return append(args, src, dst)
}

func (runner *Runner) subcommandArgs(subcommand string, target string) []string {
	args := []string{subcommand}
	args = append(args, runner.config.ExtraFlags...)
	return append(args, target)
}

func (runner *Runner) run(ctx context.Context, args []string, stdin string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, runner.config.BinPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	log.Emit(logger.VERBOSE, "exec: %s %s\n", runner.config.BinPath, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return nil, &CommandError{Args: args, Stderr: stderr.String(), error: err}
	}

	return stdout.Bytes(), nil
}
