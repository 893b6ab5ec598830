package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "taskrooms/internal/errors"
	"taskrooms/internal/service"
)

// AuthHandler handles the login endpoint.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email              string `json:"email" validate:"required"`
	PasswordCredential string `json:"passwordCredential" validate:"required"`
}

// LoginResponse carries the issued bearer token. Nothing else is returned: no
// profile, no refresh token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login godoc
// @Summary Log in and obtain a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error()})
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.PasswordCredential)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, LoginResponse{Token: token})
}
