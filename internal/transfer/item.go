package transfer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type (
	TransferItemState int

	// TransferItem tracks a single file observed in the landing
	// directory from first sighting through to it being moved to the
	// destination.
	TransferItem struct {
		ID      uuid.UUID
		Path    string
		RelPath string
		Size    int64
		State   TransferItemState
		Trouble *Trouble

		// ExistsAtDest is set by the existence-check workers once
		// the destination has been consulted for this item. Items
		// already present at the destination are moved first, as
		// that clears the landing directory fastest.
		ExistsAtDest bool
		destChecked  bool

		// lastChangedAt records when the size of the file was last
		// observed to change; promotion to READY requires the size
		// to have been stable for at least one full poll interval.
		lastChangedAt time.Time
	}
)

const (
	SETTLING TransferItemState = iota
	READY
	TRANSFERRING
	COMPLETE
	TROUBLED
)

func (item *TransferItem) String() string {
	return fmt.Sprintf("TransferItem{ID=%s rel=%s state=%s}", item.ID, item.RelPath, item.State)
}

func (s TransferItemState) String() string {
	switch s {
	case SETTLING:
		return fmt.Sprintf("SETTLING[%d]", s)
	case READY:
		return fmt.Sprintf("READY[%d]", s)
	case TRANSFERRING:
		return fmt.Sprintf("TRANSFERRING[%d]", s)
	case COMPLETE:
		return fmt.Sprintf("COMPLETE[%d]", s)
	case TROUBLED:
		return fmt.Sprintf("TROUBLED[%d]", s)
	default:
		return fmt.Sprintf("UNKNOWN[%d]", s)
	}
}

// terminal reports whether the item has reached a state from which the
// scanner no longer tracks its size.
func (s TransferItemState) terminal() bool {
	return s == COMPLETE
}
