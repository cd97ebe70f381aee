package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/taskmanager-api/internal/core/domain"
	"github.com/taskforge/taskmanager-api/internal/core/ports"
)

// AuthHandler handles registration, login, and the current-user endpoint.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account and returns a bearer token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account credentials"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		Message: "User created successfully",
		Token:   token,
		User:    userResponse{ID: user.ID, Email: user.Email},
	})
}

// Login authenticates an account and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Account credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      429   {object}  messageResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    userResponse{ID: user.ID, Email: user.Email},
	})
}

// Me returns the caller's own profile.
//
// @Summary      Get current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, userResponse{ID: user.ID, Email: user.Email})
}
