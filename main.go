package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/oxholm/drift/internal"
	"github.com/oxholm/drift/pkg/logger"
)

var log = logger.Get("Main")

// main is the entry point to the program. Configuration is primarily
// environment driven (the container contract); a YAML config file can
// be supplied for local development.
func main() {
	configPath := flag.String("config", "", "path to a YAML config file; when omitted config is read from the environment")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	flag.Parse()

	if *verbose {
		logger.SetMinLoggingLevel(logger.VERBOSE)
	}

	config := internal.DriftConfig{}
	if *configPath != "" {
		expanded, err := homedir.Expand(*configPath)
		if err != nil {
			die("Failed to expand config path: %v\n", err)
		}

		if err := config.LoadFromFile(expanded); err != nil {
			die("Failed to load configuration: %v\n", err)
		}
	} else if err := config.LoadFromEnv(); err != nil {
		die("Failed to load configuration: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go listenForInterrupt(cancel)

	if err := internal.New(config).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		die("Drift stopped due to error: %v\n", err)
	}

	log.Emit(logger.STOP, "Drift has stopped\n")
}

func listenForInterrupt(cancel context.CancelFunc) {
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)

	sig := <-signalChannel
	log.Emit(logger.STOP, "Received signal %s, shutting down...\n", sig)
	cancel()
}

func die(format string, args ...interface{}) {
	log.Emit(logger.FATAL, format, args...)
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
