package janitor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/oxholm/drift/internal/event"
	"github.com/oxholm/drift/internal/rclone"
	"github.com/oxholm/drift/pkg/logger"
)

var log = logger.Get("Janitor")

type (
	remote interface {
		ListJSON(ctx context.Context, target string) ([]rclone.Entry, error)
		Delete(ctx context.Context, target string) error
		Touch(ctx context.Context, target string) error
		Rcat(ctx context.Context, contents string, target string) error
	}

	Config struct {
		// The rclone destination the quota applies to; the same
		// remote the transfer service moves files in to.
		DestPath string `yaml:"dest" env:"DEST"`

		// Quota for the destination in bytes. Zero disables the
		// janitor entirely.
		SizeLimit int64 `yaml:"size_limit" env:"RCLONE_SIZE_LIMIT" validate:"gte=0"`
	}

	// Service keeps the destination below the configured size quota by
	// evicting the oldest files. Cleanups run one at a time; a kick
	// received while one is queued is absorbed.
	Service struct {
		remote   remote
		eventBus event.EventCoordinator
		config   Config
		kickCh   chan struct{}
	}
)

func New(config Config, remote remote, eventBus event.EventCoordinator) *Service {
	return &Service{
		remote:   remote,
		eventBus: eventBus,
		config:   config,
		kickCh:   make(chan struct{}, 1),
	}
}

// Kick requests a cleanup pass. Never blocks; if a pass is already
// queued the kick is dropped, as the queued pass will observe the same
// destination state anyway.
func (service *Service) Kick() {
	if service.config.SizeLimit <= 0 {
		return
	}

	select {
	case service.kickCh <- struct{}{}:
	default:
		log.Emit(logger.DEBUG, "Cleanup already queued, dropping kick\n")
	}
}

// Run processes cleanup kicks until the provided context is cancelled.
// Kicks are handled serially, so Run only returns once an in-flight
// cleanup has finished.
func (service *Service) Run(ctx context.Context) error {
	if service.config.SizeLimit <= 0 {
		log.Emit(logger.INFO, "No destination size limit configured, janitor is idle\n")
		<-ctx.Done()
		return nil
	}

	for {
		select {
		case <-service.kickCh:
			if err := service.runCleanup(ctx); err != nil {
				log.Emit(logger.ERROR, "Cleanup pass failed: %v\n", err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// runCleanup lists the destination and, while usage is at or above the
// quota, evicts the file with the oldest modification time. Eviction
// zeroes the file via rcat and bumps it's modtime before deleting it,
// so space is reclaimed immediately even on remotes that keep deleted
// file versions around.
func (service *Service) runCleanup(ctx context.Context) error {
	runID := uuid.New()
	service.eventBus.Dispatch(event.CLEANUP_START, runID)
	defer service.eventBus.Dispatch(event.CLEANUP_COMPLETE, runID)

	files, err := service.remote.ListJSON(ctx, service.config.DestPath)
	if err != nil {
		return fmt.Errorf("failed to list destination: %w", err)
	}

	var usage int64
	for _, f := range files {
		usage += f.Size
	}

	for usage >= service.config.SizeLimit && len(files) > 0 {
		log.Emit(logger.INFO, "Destination usage is %d, which is greater than %d, cleaning up\n", usage, service.config.SizeLimit)

		oldestIdx := 0
		for i, f := range files {
			if f.ModTime.Before(files[oldestIdx].ModTime) {
				oldestIdx = i
			}
		}
		oldest := files[oldestIdx]
		target := service.config.DestPath + "/" + oldest.Path

		log.Emit(logger.REMOVE, "Evicting %s (%d bytes, modified %s)\n", oldest.Path, oldest.Size, oldest.ModTime)
		if err := service.remote.Rcat(ctx, "", target); err != nil {
			return fmt.Errorf("failed to zero %s: %w", oldest.Path, err)
		}
		if err := service.remote.Touch(ctx, target); err != nil {
			return fmt.Errorf("failed to touch %s: %w", oldest.Path, err)
		}
		if err := service.remote.Delete(ctx, target); err != nil {
			return fmt.Errorf("failed to delete %s: %w", oldest.Path, err)
		}

		usage -= oldest.Size
		files = append(files[:oldestIdx], files[oldestIdx+1:]...)
	}

	return nil
}
