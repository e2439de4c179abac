package transfers_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oxholm/drift/internal/api/transfers"
	"github.com/oxholm/drift/internal/transfer"
	"github.com/stretchr/testify/assert"
)

func Test_NewDto_MapsItemFields(t *testing.T) {
	t.Parallel()
	item := &transfer.TransferItem{
		ID:           uuid.New(),
		Path:         "/landing/show/ep1.mkv",
		RelPath:      "show/ep1.mkv",
		Size:         42,
		State:        transfer.READY,
		ExistsAtDest: true,
	}

	dto := transfers.NewDto(item)

	assert.Equal(t, item.ID, dto.ID)
	assert.Equal(t, "show/ep1.mkv", dto.Path)
	assert.Equal(t, int64(42), dto.Size)
	assert.Equal(t, transfers.READY, dto.State)
	assert.True(t, dto.ExistsAtDest)
	assert.Nil(t, dto.Trouble)
}

func Test_StateMapping(t *testing.T) {
	t.Parallel()
	for state, expected := range map[transfer.TransferItemState]transfers.StateDto{
		transfer.SETTLING:     transfers.SETTLING,
		transfer.READY:        transfers.READY,
		transfer.TRANSFERRING: transfers.TRANSFERRING,
		transfer.COMPLETE:     transfers.COMPLETE,
		transfer.TROUBLED:     transfers.TROUBLED,
	} {
		dto := transfers.NewDto(&transfer.TransferItem{State: state})
		assert.Equal(t, expected, dto.State)
	}
}
