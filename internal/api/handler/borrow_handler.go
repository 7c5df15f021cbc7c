package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

// BorrowHandler handles borrow and return endpoints.
type BorrowHandler struct {
	service ports.BorrowService
}

func NewBorrowHandler(service ports.BorrowService) *BorrowHandler {
	return &BorrowHandler{service: service}
}

type createBorrowRequest struct {
	ItemID   int64 `json:"item_id"   validate:"required,gt=0"`
	LockerID int64 `json:"locker_id" validate:"required,gt=0"`
	// UserID lets an admin borrow on behalf of another user. Ignored for
	// regular callers.
	UserID int64 `json:"user_id"`
}

type borrowListResponse struct {
	Items      []*domain.Borrow `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// Create starts a borrow: reserves the item, occupies the locker, and records
// the transaction.
//
// @Summary      Borrow an item into a locker
// @Tags         borrows
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBorrowRequest  true  "Borrow request"
// @Success      201   {object}  domain.Borrow
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/borrows [post]
func (h *BorrowHandler) Create(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createBorrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID := caller.ID
	if req.UserID != 0 && caller.Role == domain.RoleAdmin {
		userID = req.UserID
	}

	borrow, err := h.service.Borrow(c.Request().Context(), ports.BorrowInput{
		UserID:   userID,
		ItemID:   req.ItemID,
		LockerID: req.LockerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, borrow)
}

// List returns borrows with pagination. Regular users only see their own.
//
// @Summary      List borrows
// @Tags         borrows
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int   false  "Page, 1-based"
// @Param        limit   query     int   false  "Page size, max 100"
// @Param        active  query     bool  false  "Only active borrows"
// @Success      200     {object}  borrowListResponse
// @Router       /api/borrows [get]
func (h *BorrowHandler) List(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	filter := ports.ListBorrowsFilter{
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 20),
		ActiveOnly: c.QueryParam("active") == "true",
	}
	if caller.Role != domain.RoleAdmin {
		filter.UserID = caller.ID
	}

	result, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, borrowListResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get returns a single borrow. Regular users only see their own.
//
// @Summary      Get a borrow by id
// @Tags         borrows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Borrow id"
// @Success      200  {object}  domain.Borrow
// @Failure      404  {object}  errorResponse
// @Router       /api/borrows/{id} [get]
func (h *BorrowHandler) Get(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	borrow, err := h.service.Get(c.Request().Context(), id, caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, borrow)
}

// Return completes a borrow: restores the item quantity and frees the locker.
//
// @Summary      Return a borrowed item
// @Tags         borrows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Borrow id"
// @Success      200  {object}  domain.Borrow
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/borrows/{id}/return [post]
func (h *BorrowHandler) Return(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	borrow, err := h.service.Return(c.Request().Context(), id, caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, borrow)
}

func queryInt(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
