package internal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oxholm/drift/internal/event"
	"github.com/oxholm/drift/pkg/logger"
)

const (
	DEBOUNCE_DURATION  time.Duration = time.Millisecond * 500
	MAX_TIMER_DURATION time.Duration = time.Second * 2
)

type (
	broadcastHandler func(uuid.UUID) error

	broadcaster interface {
		BroadcastTransferUpdate(uuid.UUID) error
		BroadcastCleanupUpdate(uuid.UUID, bool) error
	}

	eventKey struct {
		ev event.Event
		id uuid.UUID
	}

	// activityService converts internal bus events in to websocket
	// pushes via the gateway's broadcaster. Transfer updates arrive in
	// rapid bursts during a scan, so they're debounced per item.
	activityService struct {
		*sync.Mutex
		broadcaster
		eventBus       event.EventHandler
		debounceTimers map[eventKey]*time.Timer
		maxTimers      map[eventKey]*time.Timer
	}
)

func newActivityService(broadcaster broadcaster, eventBus event.EventHandler) *activityService {
	return &activityService{
		Mutex:          &sync.Mutex{},
		broadcaster:    broadcaster,
		eventBus:       eventBus,
		debounceTimers: make(map[eventKey]*time.Timer),
		maxTimers:      make(map[eventKey]*time.Timer),
	}
}

func (service *activityService) Run(ctx context.Context) error {
	messageChan := make(chan event.HandlerEvent, 100)
	service.eventBus.RegisterHandlerChannel(messageChan,
		event.TRANSFER_UPDATE, event.TRANSFER_COMPLETE,
		event.CLEANUP_START, event.CLEANUP_COMPLETE)

	log.Emit(logger.NEW, "Activity service started\n")
	for {
		select {
		case ev := <-messageChan:
			if err := service.handleEvent(ev); err != nil {
				log.Emit(logger.ERROR, "Handling of event %v failed: %v\n", ev, err)
			}
		case <-ctx.Done():
			log.Emit(logger.STOP, "Activity service closed\n")
			return nil
		}
	}
}

func (service *activityService) handleEvent(ev event.HandlerEvent) error {
	resourceID, ok := ev.Payload.(uuid.UUID)
	if !ok {
		return errors.New("illegal payload (expected UUID)")
	}

	resourceKey := eventKey{id: resourceID, ev: ev.Event}

	switch ev.Event {
	case event.TRANSFER_UPDATE:
		service.scheduleEventBroadcast(resourceKey, service.BroadcastTransferUpdate)
	case event.TRANSFER_COMPLETE:
		return service.BroadcastTransferUpdate(resourceID)
	case event.CLEANUP_START:
		return service.BroadcastCleanupUpdate(resourceID, false)
	case event.CLEANUP_COMPLETE:
		return service.BroadcastCleanupUpdate(resourceID, true)
	default:
		return errors.New("unknown event type")
	}

	return nil
}

// scheduleEventBroadcast (re)sets a debounce timer for the resource,
// alongside a max timer that guarantees a broadcast eventually goes out
// even while the debounce keeps being reset by new events.
func (service *activityService) scheduleEventBroadcast(resourceKey eventKey, handler broadcastHandler) {
	service.Lock()
	defer service.Unlock()

	broadcaster := func() { service.broadcast(resourceKey, handler) }

	if t, ok := service.debounceTimers[resourceKey]; ok {
		t.Stop()
	}
	service.debounceTimers[resourceKey] = time.AfterFunc(DEBOUNCE_DURATION, broadcaster)

	if _, ok := service.maxTimers[resourceKey]; !ok {
		service.maxTimers[resourceKey] = time.AfterFunc(MAX_TIMER_DURATION, broadcaster)
	}
}

func (service *activityService) broadcast(resourceKey eventKey, handler broadcastHandler) {
	service.Lock()
	defer service.Unlock()

	if t, ok := service.debounceTimers[resourceKey]; ok {
		t.Stop()
		delete(service.debounceTimers, resourceKey)
	}

	if t, ok := service.maxTimers[resourceKey]; ok {
		t.Stop()
		delete(service.maxTimers, resourceKey)
	}

	if err := handler(resourceKey.id); err != nil {
		log.Emit(logger.ERROR, "Broadcast for %v failed: %v\n", resourceKey, err)
	}
}
