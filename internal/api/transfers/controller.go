package transfers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oxholm/drift/internal/transfer"
)

type (
	// Service is the surface of the transfer service this controller
	// needs; satisfied by *transfer.Service.
	Service interface {
		GetAllTransfers() []*transfer.TransferItem
		GetTransfer(uuid.UUID) *transfer.TransferItem
		RemoveTransfer(uuid.UUID) error
		ForceScan()
	}

	// Controller defines the routes for inspecting and managing the
	// files Drift is tracking in the landing directory.
	Controller struct {
		service Service
	}
)

func New(service Service) *Controller {
	return &Controller{service: service}
}

// SetRoutes accepts the Echo group for the transfer endpoints
// and sets the routes on them.
func (controller *Controller) SetRoutes(eg *echo.Group) {
	eg.GET("/", controller.list)
	eg.POST("/poll/", controller.performPoll)
	eg.GET("/:id/", controller.get)
	eg.DELETE("/:id/", controller.delete)
}

// list returns all the transfers - represented as DTOs - from the
// underlying service.
func (controller *Controller) list(ec echo.Context) error {
	items := controller.service.GetAllTransfers()
	dtos := make([]*Dto, len(items))
	for k, v := range items {
		dtos[k] = NewDto(v)
	}

	return ec.JSON(http.StatusOK, dtos)
}

// performPoll requests an immediate scan of the landing directory.
func (controller *Controller) performPoll(ec echo.Context) error {
	controller.service.ForceScan()
	return ec.NoContent(http.StatusOK)
}

// get uses the 'id' path param from the context and retrieves the
// transfer from the underlying service. If found, a DTO representing
// the transfer is returned.
func (controller *Controller) get(ec echo.Context) error {
	id, err := uuid.Parse(ec.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Transfer ID is not a valid UUID")
	}

	item := controller.service.GetTransfer(id)
	if item == nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	return ec.JSON(http.StatusOK, NewDto(item))
}

// delete uses the 'id' path param from the context and removes the
// matching transfer from the underlying service, unless it's currently
// being moved.
func (controller *Controller) delete(ec echo.Context) error {
	id, err := uuid.Parse(ec.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Transfer ID is not a valid UUID")
	}

	if err := controller.service.RemoveTransfer(id); err != nil {
		if errors.Is(err, transfer.ErrTransferNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}

		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return ec.NoContent(http.StatusOK)
}
