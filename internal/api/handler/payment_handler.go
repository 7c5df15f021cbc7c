package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

// PaymentHandler handles payment endpoints. Creation and mutation are wired
// behind the admin role in the router; listing is scoped per caller.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type createPaymentRequest struct {
	UserID   int64   `json:"user_id"  validate:"required,gt=0"`
	BorrowID *int64  `json:"borrow_id"`
	Amount   float64 `json:"amount"   validate:"required,gt=0"`
	Currency string  `json:"currency"`
}

type updatePaymentRequest struct {
	Amount *float64 `json:"amount"`
	Status *string  `json:"status"`
}

// List returns the caller's payments, or all payments for admins.
//
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Payment
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	payments, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// Get returns a single payment.
//
// @Summary      Get a payment by id
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Payment id"
// @Success      200  {object}  domain.Payment
// @Failure      404  {object}  errorResponse
// @Router       /api/payments/{id} [get]
func (h *PaymentHandler) Get(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	payment, err := h.service.Get(c.Request().Context(), id, caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// Create records a pending payment against a user, optionally tied to a
// borrow.
//
// @Summary      Create a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPaymentRequest  true  "Payment details"
// @Success      201   {object}  domain.Payment
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	payment, err := h.service.Create(c.Request().Context(), ports.CreatePaymentInput{
		UserID:   req.UserID,
		BorrowID: req.BorrowID,
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, payment)
}

// Update applies a partial update, typically marking a payment paid or
// refunded.
//
// @Summary      Update a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Payment id"
// @Param        body  body      updatePaymentRequest  true  "Fields to update"
// @Success      200   {object}  domain.Payment
// @Failure      404   {object}  errorResponse
// @Router       /api/payments/{id} [put]
func (h *PaymentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "amount must be greater than 0")
	}

	input := ports.UpdatePaymentInput{Amount: req.Amount}
	if req.Status != nil {
		status := domain.PaymentStatus(*req.Status)
		input.Status = &status
	}

	payment, err := h.service.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// Delete removes a payment record.
//
// @Summary      Delete a payment
// @Tags         payments
// @Security     BearerAuth
// @Param        id  path  int  true  "Payment id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/payments/{id} [delete]
func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
