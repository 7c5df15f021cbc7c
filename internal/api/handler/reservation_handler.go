package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

// ReservationHandler handles reservation endpoints. Listing and mutation are
// scoped to the caller unless they are an admin.
type ReservationHandler struct {
	service ports.ReservationService
}

func NewReservationHandler(service ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

type createReservationRequest struct {
	ItemID   int64  `json:"item_id" validate:"required,gt=0"`
	LockerID *int64 `json:"locker_id"`
}

type updateReservationRequest struct {
	LockerID *int64  `json:"locker_id"`
	Status   *string `json:"status"`
}

// List returns the caller's reservations, or all reservations for admins.
//
// @Summary      List reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Reservation
// @Router       /api/reservations [get]
func (h *ReservationHandler) List(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	reservations, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservations)
}

// Get returns a single reservation.
//
// @Summary      Get a reservation by id
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Reservation id"
// @Success      200  {object}  domain.Reservation
// @Failure      404  {object}  errorResponse
// @Router       /api/reservations/{id} [get]
func (h *ReservationHandler) Get(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	reservation, err := h.service.Get(c.Request().Context(), id, caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}

// Create places a pending reservation for an item.
//
// @Summary      Create a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReservationRequest  true  "Reservation details"
// @Success      201   {object}  domain.Reservation
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	reservation, err := h.service.Create(c.Request().Context(), ports.CreateReservationInput{
		UserID:   caller.ID,
		ItemID:   req.ItemID,
		LockerID: req.LockerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reservation)
}

// Update applies a partial update, typically to fulfil or cancel.
//
// @Summary      Update a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "Reservation id"
// @Param        body  body      updateReservationRequest  true  "Fields to update"
// @Success      200   {object}  domain.Reservation
// @Failure      404   {object}  errorResponse
// @Router       /api/reservations/{id} [put]
func (h *ReservationHandler) Update(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.UpdateReservationInput{LockerID: req.LockerID}
	if req.Status != nil {
		status := domain.ReservationStatus(*req.Status)
		input.Status = &status
	}

	reservation, err := h.service.Update(c.Request().Context(), id, input, caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}

// Delete removes a reservation.
//
// @Summary      Delete a reservation
// @Tags         reservations
// @Security     BearerAuth
// @Param        id  path  int  true  "Reservation id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/reservations/{id} [delete]
func (h *ReservationHandler) Delete(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id, caller); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
