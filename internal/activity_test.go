package internal

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oxholm/drift/internal/event"
	mocks "github.com/oxholm/drift/internal/mocks"
	"github.com/stretchr/testify/assert"
)

// startActivityService runs an activity service against a fresh event
// bus; the service is stopped when the test completes.
func startActivityService(t *testing.T, broadcasterMock *mocks.MockBroadcaster) event.EventCoordinator {
	eventBus := event.New()
	service := newActivityService(broadcasterMock, eventBus)

	wg := sync.WaitGroup{}
	wg.Add(1)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer wg.Done()
		assert.NoError(t, service.Run(ctx))
	}()

	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})

	// Give Run a moment to register its handler channel before the
	// test starts dispatching.
	time.Sleep(50 * time.Millisecond)

	return eventBus
}

func Test_ActivityService_DebouncesTransferUpdateBursts(t *testing.T) {
	t.Parallel()
	broadcasterMock := mocks.NewMockBroadcaster(t)
	eventBus := startActivityService(t, broadcasterMock)

	id := uuid.New()
	broadcastDone := make(chan struct{})
	broadcasterMock.EXPECT().BroadcastTransferUpdate(id).RunAndReturn(func(uuid.UUID) error {
		close(broadcastDone)
		return nil
	}).Once()

	// A burst of updates for the same item must collapse to a single
	// broadcast, no earlier than the debounce window.
	start := time.Now()
	for i := 0; i < 5; i++ {
		eventBus.Dispatch(event.TRANSFER_UPDATE, id)
	}

	select {
	case <-broadcastDone:
	case <-time.After(MAX_TIMER_DURATION + time.Second):
		t.Fatal("timed out waiting for debounced broadcast")
	}
	assert.GreaterOrEqual(t, time.Since(start), DEBOUNCE_DURATION)
}

func Test_ActivityService_BroadcastsCompletionImmediately(t *testing.T) {
	t.Parallel()
	broadcasterMock := mocks.NewMockBroadcaster(t)
	eventBus := startActivityService(t, broadcasterMock)

	id := uuid.New()
	broadcastDone := make(chan struct{})
	broadcasterMock.EXPECT().BroadcastTransferUpdate(id).RunAndReturn(func(uuid.UUID) error {
		close(broadcastDone)
		return nil
	}).Once()

	start := time.Now()
	eventBus.Dispatch(event.TRANSFER_COMPLETE, id)

	select {
	case <-broadcastDone:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for completion broadcast")
	}
	assert.Less(t, time.Since(start), DEBOUNCE_DURATION, "completions must not be debounced")
}

func Test_ActivityService_BroadcastsCleanupLifecycle(t *testing.T) {
	t.Parallel()
	broadcasterMock := mocks.NewMockBroadcaster(t)
	eventBus := startActivityService(t, broadcasterMock)

	id := uuid.New()
	finishedDone := make(chan struct{})
	broadcasterMock.EXPECT().BroadcastCleanupUpdate(id, false).Return(nil).Once()
	broadcasterMock.EXPECT().BroadcastCleanupUpdate(id, true).RunAndReturn(func(uuid.UUID, bool) error {
		close(finishedDone)
		return nil
	}).Once()

	eventBus.Dispatch(event.CLEANUP_START, id)
	eventBus.Dispatch(event.CLEANUP_COMPLETE, id)

	select {
	case <-finishedDone:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for cleanup broadcasts")
	}
}
