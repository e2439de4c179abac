package transfers

import (
	"github.com/google/uuid"
	"github.com/oxholm/drift/internal/transfer"
)

type (
	// Dto is the response used by endpoints that return the items
	// being transferred (e.g., list, get).
	Dto struct {
		ID           uuid.UUID   `json:"id"`
		Path         string      `json:"source_path"`
		Size         int64       `json:"size"`
		State        StateDto    `json:"state"`
		ExistsAtDest bool        `json:"exists_at_dest"`
		Trouble      *TroubleDto `json:"trouble"`
	}

	StateDto       string
	TroubleTypeDto string

	TroubleDto struct {
		Type    TroubleTypeDto `json:"type"`
		Message string         `json:"message"`
	}
)

const (
	SETTLING     StateDto = "SETTLING"
	READY        StateDto = "READY"
	TRANSFERRING StateDto = "TRANSFERRING"
	COMPLETE     StateDto = "COMPLETE"
	TROUBLED     StateDto = "TROUBLED"

	MOVE_FAILURE    TroubleTypeDto = "MOVE_FAILURE"
	GENERIC_FAILURE TroubleTypeDto = "GENERIC_FAILURE"
)

func NewDto(item *transfer.TransferItem) *Dto {
	return &Dto{
		ID:           item.ID,
		Path:         item.RelPath,
		Size:         item.Size,
		State:        stateToDto(item.State),
		ExistsAtDest: item.ExistsAtDest,
		Trouble:      troubleToDto(item.Trouble),
	}
}

func stateToDto(state transfer.TransferItemState) StateDto {
	switch state {
	case transfer.SETTLING:
		return SETTLING
	case transfer.READY:
		return READY
	case transfer.TRANSFERRING:
		return TRANSFERRING
	case transfer.COMPLETE:
		return COMPLETE
	case transfer.TROUBLED:
		return TROUBLED
	default:
		return StateDto("UNKNOWN")
	}
}

func troubleToDto(trouble *transfer.Trouble) *TroubleDto {
	if trouble == nil {
		return nil
	}

	dtoType := GENERIC_FAILURE
	if trouble.Type() == transfer.MOVE_FAILURE {
		dtoType = MOVE_FAILURE
	}

	return &TroubleDto{Type: dtoType, Message: trouble.Error()}
}
