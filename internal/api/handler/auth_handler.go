package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

// AuthHandler handles login, registration, logout, and the profile endpoint.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// loginRequest accepts either a username/password pair or an RFID tag.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	RFIDTag  string `json:"rfid_tag"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login with username/password or RFID tag
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	details, user, err := h.authService.Login(c.Request().Context(), ports.Credentials{
		Username: req.Username,
		Password: req.Password,
		RFIDTag:  req.RFIDTag,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: details.Token, User: user})
}

// Register creates a self-service account with the user role.
//
// @Summary      Register a new user account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Logout revokes the caller's token server-side.
//
// @Summary      Logout and revoke the current token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	jti, _ := c.Get("jti").(string)
	expiresAt, _ := c.Get("token_expires_at").(time.Time)

	if err := h.authService.Logout(c.Request().Context(), jti, expiresAt); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Profile returns the current user's profile.
//
// @Summary      Get the authenticated user's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /api/user/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
