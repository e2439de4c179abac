package event_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oxholm/drift/internal/event"
	"github.com/stretchr/testify/assert"
)

func Test_Dispatch_CallsRegisteredHandlerFunction(t *testing.T) {
	t.Parallel()
	bus := event.New()

	var gotEvent event.Event
	var gotPayload event.Payload
	bus.RegisterHandlerFunction(event.TRANSFER_UPDATE, func(ev event.Event, payload event.Payload) {
		gotEvent = ev
		gotPayload = payload
	})

	id := uuid.New()
	bus.Dispatch(event.TRANSFER_UPDATE, id)

	assert.Equal(t, event.TRANSFER_UPDATE, gotEvent)
	assert.Equal(t, id, gotPayload)
}

func Test_Dispatch_SendsToRegisteredChannel(t *testing.T) {
	t.Parallel()
	bus := event.New()

	handlerChan := make(event.HandlerChannel, 2)
	bus.RegisterHandlerChannel(handlerChan, event.CLEANUP_START, event.CLEANUP_COMPLETE)

	id := uuid.New()
	bus.Dispatch(event.CLEANUP_START, id)
	bus.Dispatch(event.CLEANUP_COMPLETE, id)

	first := <-handlerChan
	second := <-handlerChan
	assert.Equal(t, event.CLEANUP_START, first.Event)
	assert.Equal(t, event.CLEANUP_COMPLETE, second.Event)
	assert.Equal(t, id, first.Payload)
}

func Test_Dispatch_IgnoresEventForOtherHandlers(t *testing.T) {
	t.Parallel()
	bus := event.New()

	handlerChan := make(event.HandlerChannel, 1)
	bus.RegisterHandlerChannel(handlerChan, event.TRANSFER_COMPLETE)

	bus.Dispatch(event.TRANSFER_UPDATE, uuid.New())

	select {
	case ev := <-handlerChan:
		t.Fatalf("unexpected event %v delivered", ev)
	case <-time.After(20 * time.Millisecond):
	}
}

func Test_Dispatch_RejectsInvalidPayload(t *testing.T) {
	t.Parallel()
	bus := event.New()

	handlerChan := make(event.HandlerChannel, 1)
	bus.RegisterHandlerChannel(handlerChan, event.TRANSFER_UPDATE)

	// Payload must be a uuid; a string must never reach the handlers.
	bus.Dispatch(event.TRANSFER_UPDATE, "not-a-uuid")

	select {
	case ev := <-handlerChan:
		t.Fatalf("invalid payload %v was delivered", ev)
	case <-time.After(20 * time.Millisecond):
	}
}
