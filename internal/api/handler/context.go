package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

// ctxUser rebuilds the caller from the claims injected by the Auth
// middleware and fast-fails before any service call: a non-empty role proves
// the middleware ran.
func ctxUser(c echo.Context) (*domain.User, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	id, _ := c.Get("user_id").(int64)
	if id == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}

	username, _ := c.Get("username").(string)
	return &domain.User{ID: id, Username: username, Role: role}, nil
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
