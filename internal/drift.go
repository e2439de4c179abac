package internal

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/oxholm/drift/internal/api"
	"github.com/oxholm/drift/internal/event"
	"github.com/oxholm/drift/internal/janitor"
	"github.com/oxholm/drift/internal/plex"
	"github.com/oxholm/drift/internal/rclone"
	"github.com/oxholm/drift/internal/transfer"
	"github.com/oxholm/drift/pkg/logger"
)

var log = logger.Get("Core")

type (
	RunnableService interface {
		Run(context.Context) error
	}

	TransferService interface {
		RunnableService
		GetAllTransfers() []*transfer.TransferItem
		GetTransfer(uuid.UUID) *transfer.TransferItem
		RemoveTransfer(uuid.UUID) error
		ForceScan()
	}

	JanitorService interface {
		RunnableService
		Kick()
	}
)

// Drift represents the top-level object for the daemon, and is
// responsible for initialising the embedded support services, event
// handling, et cetera...
type driftImpl struct {
	eventBus event.EventCoordinator
	config   DriftConfig
	runner   *rclone.Runner

	transferService TransferService
	janitorService  JanitorService
	activityService RunnableService
	restGateway     RunnableService
}

func New(config DriftConfig) *driftImpl {
	log.Emit(logger.DEBUG, "Bootstrapping Drift services using config: %#v\n", config)
	drift := &driftImpl{
		eventBus: event.New(),
		config:   config,
		runner:   rclone.New(config.Rclone),
	}

	drift.janitorService = janitor.New(config.Janitor, drift.runner, drift.eventBus)

	var notifier *plex.Client
	if config.Plex.URL != "" {
		notifier = plex.NewClient(config.Plex)
	}

	transferService, err := newTransferService(config.Transfer, drift.runner, notifier, drift.janitorService, drift.eventBus)
	if err != nil {
		panic(fmt.Sprintf("failed to construct transfer service due to error: %s", err.Error()))
	}
	drift.transferService = transferService

	gateway := api.NewRestGateway(&drift.config.API, drift.transferService)
	drift.restGateway = gateway
	drift.activityService = newActivityService(gateway, drift.eventBus)

	return drift
}

// newTransferService exists to keep the interface conversion for the
// optional notifier out of New; a nil *plex.Client must be passed as a
// true nil interface or the service would try to call through it.
func newTransferService(
	config transfer.Config,
	runner *rclone.Runner,
	notifier *plex.Client,
	janitorService JanitorService,
	eventBus event.EventCoordinator,
) (*transfer.Service, error) {
	if notifier == nil {
		return transfer.New(config, runner, nil, janitorService, eventBus, clockwork.NewRealClock())
	}

	return transfer.New(config, runner, notifier, janitorService, eventBus, clockwork.NewRealClock())
}

// Run will start all of Drift by bringing up all required services:
// - The transfer (watch/move) service
// - The destination janitor
// - The activity broadcaster
// - The REST gateway
//
// This function will not return until Drift is stopped. To stop Drift,
// the provided context must be cancelled. Errors from which Drift
// cannot recover will also cause it to stop.
func (drift *driftImpl) Run(parent context.Context) error {
	if err := drift.runner.MaterializeConfig(drift.config.RcloneConfigSeed); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	crashHandler := func(label string, err error) {
		log.Emit(logger.FATAL, "Service crash (%s)! %s\n", label, err.Error())
		cancel()
	}

	wg := &sync.WaitGroup{}
	drift.spawnAsyncService(ctx, wg, drift.janitorService, "janitor-service", crashHandler)
	drift.spawnAsyncService(ctx, wg, drift.transferService, "transfer-service", crashHandler)
	drift.spawnAsyncService(ctx, wg, drift.activityService, "activity-service", crashHandler)
	drift.spawnAsyncService(ctx, wg, drift.restGateway, "rest-gateway", crashHandler)
	log.Emit(logger.SUCCESS, "Drift services spawned!\n")

	wg.Wait()
	return nil
}

// spawnAsyncService will run the provided function/service as it's own
// go-routine, ensuring that the Drift service waitgroup is updated correctly
func (drift *driftImpl) spawnAsyncService(context context.Context, wg *sync.WaitGroup, service RunnableService, serviceLabel string, crashHandler func(string, error)) {
	log.Emit(logger.NEW, "Spawning %s\n", serviceLabel)
	wg.Add(1)

	go func(wg *sync.WaitGroup, label string, crash func(string, error)) {
		defer func() {
			if r := recover(); r != nil {
				crash(label, fmt.Errorf("panic %v", r))
			}
		}()

		defer wg.Done()
		if err := service.Run(context); err != nil {
			crash(label, err)
		}
	}(wg, serviceLabel, crashHandler)
}
