package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// UserIDKey is the echo context key the verified user identifier is stored
// under. Handlers read it back via handler.CallerID.
const UserIDKey = "user_id"

// Auth validates the bearer token and injects the verified user id into
// the request context. It is a pure gate: it rejects or annotates, and
// never touches the store.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			userID, _ := claims[UserIDKey].(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}
