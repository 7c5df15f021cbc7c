package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/pkg/i18n"
)

func invoke(t *testing.T, err error, acceptLanguage string) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		kind string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},
		{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{domain.ErrItemNotFound, http.StatusNotFound, "not_found"},
		{domain.ErrUserExists, http.StatusConflict, "conflict"},
		{domain.ErrItemUnavailable, http.StatusConflict, "conflict"},
		{domain.ErrLockerUnavailable, http.StatusConflict, "conflict"},
		{domain.ErrAlreadyReturned, http.StatusConflict, "conflict"},
		{domain.ErrInvalidInput, http.StatusUnprocessableEntity, "validation_error"},
		{domain.ErrInvalidRole, http.StatusUnprocessableEntity, "validation_error"},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity, "invalid_transition"},
	}
	for _, tc := range cases {
		code, resp := invoke(t, tc.err, "")
		if code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		if resp.Kind != tc.kind {
			t.Errorf("%v: expected kind %q, got %q", tc.err, tc.kind, resp.Kind)
		}
		if resp.Error == "" {
			t.Errorf("%v: empty error message", tc.err)
		}
	}
}

// Wrapped domain errors still map through errors.Is.
func TestErrorHandler_WrappedError(t *testing.T) {
	code, resp := invoke(t, fmt.Errorf("borrow: %w", domain.ErrItemUnavailable), "")
	if code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", code)
	}
	if resp.Kind != "conflict" {
		t.Fatalf("expected conflict, got %q", resp.Kind)
	}
}

func TestErrorHandler_Localized(t *testing.T) {
	_, respEN := invoke(t, domain.ErrForbidden, "en")
	_, respFR := invoke(t, domain.ErrForbidden, "fr-FR,fr;q=0.9")
	if respFR.Error != i18n.Lookup("fr", "error.forbidden") {
		t.Fatalf("expected french message, got %q", respFR.Error)
	}
	if respEN.Error == respFR.Error {
		t.Fatalf("expected translations to differ")
	}

	// Unsupported language falls back to English.
	_, respDE := invoke(t, domain.ErrForbidden, "de-DE")
	if respDE.Error != respEN.Error {
		t.Fatalf("expected english fallback, got %q", respDE.Error)
	}
}

// Unknown errors never leak their message to the client.
func TestErrorHandler_UnexpectedError(t *testing.T) {
	code, resp := invoke(t, errors.New("pq: secret table missing"), "")
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Kind != "internal" {
		t.Fatalf("expected internal, got %q", resp.Kind)
	}
	if resp.Error == "pq: secret table missing" {
		t.Fatalf("internal error detail leaked")
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, resp := invoke(t, echo.NewHTTPError(http.StatusUnprocessableEntity, "quantity must be at least 0"), "")
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	if resp.Kind != "validation_error" {
		t.Fatalf("expected validation_error, got %q", resp.Kind)
	}
	if resp.Error != "quantity must be at least 0" {
		t.Fatalf("unexpected message %q", resp.Error)
	}
}
