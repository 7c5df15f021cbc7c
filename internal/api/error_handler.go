package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/pkg/i18n"
)

// errorResponse is the canonical error envelope for all API errors. Kind is
// the machine-readable classification; Error carries the human-readable
// message, localized from the Accept-Language header.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "kind": "<kind>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, kind, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg, Kind: kind})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	lang := i18n.Match(c.Request().Header.Get("Accept-Language"))

	// Echo's own errors (bind failures, 404 from router, validation 422s).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, kindForStatus(he.Code), fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes and kinds.
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.code, m.kind, i18n.Lookup(lang, m.msgKey)
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal", i18n.Lookup(lang, "error.internal")
}

type errorMapping struct {
	err    error
	code   int
	kind   string
	msgKey string
}

var errorTable = []errorMapping{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized", "error.invalid_credentials"},
	{domain.ErrTokenRevoked, http.StatusUnauthorized, "unauthorized", "error.token_revoked"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden", "error.forbidden"},
	{domain.ErrInvalidInput, http.StatusUnprocessableEntity, "validation_error", "error.invalid_input"},
	{domain.ErrInvalidRole, http.StatusUnprocessableEntity, "validation_error", "error.invalid_role"},
	{domain.ErrUserNotFound, http.StatusNotFound, "not_found", "error.user_not_found"},
	{domain.ErrUserExists, http.StatusConflict, "conflict", "error.user_exists"},
	{domain.ErrItemNotFound, http.StatusNotFound, "not_found", "error.item_not_found"},
	{domain.ErrLockerNotFound, http.StatusNotFound, "not_found", "error.locker_not_found"},
	{domain.ErrLockerExists, http.StatusConflict, "conflict", "error.locker_exists"},
	{domain.ErrBorrowNotFound, http.StatusNotFound, "not_found", "error.borrow_not_found"},
	{domain.ErrReservationNotFound, http.StatusNotFound, "not_found", "error.reservation_not_found"},
	{domain.ErrPaymentNotFound, http.StatusNotFound, "not_found", "error.payment_not_found"},
	{domain.ErrItemUnavailable, http.StatusConflict, "conflict", "error.item_unavailable"},
	{domain.ErrLockerUnavailable, http.StatusConflict, "conflict", "error.locker_unavailable"},
	{domain.ErrAlreadyReturned, http.StatusConflict, "conflict", "error.already_returned"},
	{domain.ErrRecordInUse, http.StatusConflict, "conflict", "error.record_in_use"},
	{domain.ErrInvalidTransition, http.StatusUnprocessableEntity, "invalid_transition", "error.invalid_transition"},
}

func kindForStatus(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusUnprocessableEntity:
		return "validation_error"
	}
	return "internal"
}
