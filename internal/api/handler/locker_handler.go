package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

// LockerHandler handles locker endpoints, including the open/close actions
// issued from locker terminals.
type LockerHandler struct {
	service ports.LockerService
}

func NewLockerHandler(service ports.LockerService) *LockerHandler {
	return &LockerHandler{service: service}
}

type createLockerRequest struct {
	Number   string `json:"number"   validate:"required"`
	Location string `json:"location"`
}

type updateLockerRequest struct {
	Number   *string `json:"number"`
	Location *string `json:"location"`
	Status   *string `json:"status"`
}

// List returns all lockers.
//
// @Summary      List lockers
// @Tags         lockers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Locker
// @Router       /api/lockers [get]
func (h *LockerHandler) List(c echo.Context) error {
	lockers, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lockers)
}

// Get returns a single locker.
//
// @Summary      Get a locker by id
// @Tags         lockers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Locker id"
// @Success      200  {object}  domain.Locker
// @Failure      404  {object}  errorResponse
// @Router       /api/lockers/{id} [get]
func (h *LockerHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	locker, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locker)
}

// Create adds a locker in the available state.
//
// @Summary      Create a locker
// @Tags         lockers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLockerRequest  true  "Locker details"
// @Success      201   {object}  domain.Locker
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/lockers [post]
func (h *LockerHandler) Create(c echo.Context) error {
	var req createLockerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	locker, err := h.service.Create(c.Request().Context(), ports.CreateLockerInput{
		Number:   req.Number,
		Location: req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, locker)
}

// Update applies a partial update. Status changes go through the locker
// state machine.
//
// @Summary      Update a locker
// @Tags         lockers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Locker id"
// @Param        body  body      updateLockerRequest  true  "Fields to update"
// @Success      200   {object}  domain.Locker
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/lockers/{id} [put]
func (h *LockerHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateLockerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.UpdateLockerInput{Number: req.Number, Location: req.Location}
	if req.Status != nil {
		status := domain.LockerStatus(*req.Status)
		input.Status = &status
	}

	locker, err := h.service.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locker)
}

// Delete removes a locker without borrow history.
//
// @Summary      Delete a locker
// @Tags         lockers
// @Security     BearerAuth
// @Param        id  path  int  true  "Locker id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/lockers/{id} [delete]
func (h *LockerHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Open marks a locker occupied.
//
// @Summary      Open a locker
// @Tags         lockers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Locker id"
// @Success      200  {object}  domain.Locker
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/lockers/{id}/open [post]
func (h *LockerHandler) Open(c echo.Context) error {
	return h.action(c, h.service.Open)
}

// Close releases a locker back to available.
//
// @Summary      Close a locker
// @Tags         lockers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Locker id"
// @Success      200  {object}  domain.Locker
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/lockers/{id}/close [post]
func (h *LockerHandler) Close(c echo.Context) error {
	return h.action(c, h.service.Close)
}

func (h *LockerHandler) action(c echo.Context, fn func(ctx context.Context, id int64, actor *domain.User) (*domain.Locker, error)) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	locker, err := fn(c.Request().Context(), id, caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locker)
}
