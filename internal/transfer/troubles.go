package transfer

import (
	"errors"
	"fmt"

	"github.com/oxholm/drift/internal/rclone"
)

type (
	TroubleType int

	// Trouble is attached to a TransferItem when its transfer fails.
	// Troubled items are not abandoned; the next scan that observes
	// the source file with an unchanged size requeues them.
	Trouble struct {
		error
		tType TroubleType
	}
)

const (
	MOVE_FAILURE TroubleType = iota
	GENERIC_FAILURE
)

var (
	ErrTransferNotFound = errors.New("no transfer could be found")
	ErrTransferActive   = errors.New("transfer is currently in progress and cannot be removed")
)

func newTrouble(err error) *Trouble {
	var cmdErr *rclone.CommandError
	if errors.As(err, &cmdErr) {
		return &Trouble{error: err, tType: MOVE_FAILURE}
	}

	return &Trouble{error: err, tType: GENERIC_FAILURE}
}

func (t *Trouble) Type() TroubleType { return t.tType }

func (t TroubleType) String() string {
	switch t {
	case MOVE_FAILURE:
		return fmt.Sprintf("MOVE_FAILURE[%d]", t)
	case GENERIC_FAILURE:
		return fmt.Sprintf("GENERIC_FAILURE[%d]", t)
	default:
		return fmt.Sprintf("UNKNOWN[%d]", t)
	}
}
