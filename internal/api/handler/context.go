package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/taskmanager-api/internal/api/middleware"
)

// CallerID extracts the verified user id injected by the Auth middleware.
// An empty id means the middleware did not run on this route; that is a
// wiring bug, surfaced as 401 rather than a panic.
func CallerID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.UserIDKey).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}
	return userID, nil
}
