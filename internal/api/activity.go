package api

import (
	"github.com/google/uuid"
	"github.com/oxholm/drift/internal/api/transfers"
	"github.com/oxholm/drift/internal/http/websocket"
)

const (
	TitleTransferUpdate = "TRANSFER_UPDATE"
	TitleCleanupUpdate  = "CLEANUP_UPDATE"
)

type (
	TransferUpdate struct {
		TransferID uuid.UUID      `json:"transfer_id"`
		Transfer   *transfers.Dto `json:"transfer"`
	}

	CleanupUpdate struct {
		RunID    uuid.UUID `json:"run_id"`
		Finished bool      `json:"finished"`
	}

	broadcaster struct {
		socketHub       *websocket.SocketHub
		transferService transfers.Service
	}
)

func newBroadcaster(socketHub *websocket.SocketHub, transferService transfers.Service) *broadcaster {
	return &broadcaster{socketHub: socketHub, transferService: transferService}
}

// BroadcastTransferUpdate pushes the current state of the transfer with
// the given ID to all connected activity stream clients. A transfer
// that no longer exists is broadcast with a nil body so clients drop it.
func (hub *broadcaster) BroadcastTransferUpdate(id uuid.UUID) error {
	var dto *transfers.Dto
	if item := hub.transferService.GetTransfer(id); item != nil {
		dto = transfers.NewDto(item)
	}

	hub.broadcast(TitleTransferUpdate, TransferUpdate{TransferID: id, Transfer: dto})
	return nil
}

// BroadcastCleanupUpdate notifies activity stream clients that a
// cleanup pass started or finished.
func (hub *broadcaster) BroadcastCleanupUpdate(id uuid.UUID, finished bool) error {
	hub.broadcast(TitleCleanupUpdate, CleanupUpdate{RunID: id, Finished: finished})
	return nil
}

// connectionPayload furnishes newly connected clients with the set of
// transfers currently being tracked.
func (hub *broadcaster) connectionPayload() map[string]interface{} {
	items := hub.transferService.GetAllTransfers()
	dtos := make([]*transfers.Dto, len(items))
	for k, v := range items {
		dtos[k] = transfers.NewDto(v)
	}

	return map[string]interface{}{"transfers": dtos}
}

func (hub *broadcaster) broadcast(title string, update any) {
	hub.socketHub.Send(&websocket.SocketMessage{
		Title: title,
		Body:  map[string]interface{}{"arguments": update},
		Type:  websocket.Update,
	})
}
