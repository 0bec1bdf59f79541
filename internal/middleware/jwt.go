package middleware // contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject (the user's UUID) into the request
// context. The provided secret must match the one used when issuing
// tokens. Handlers on gated routes read the identity via `c.Get("user_id")`.
//
// The middleware only validates access tokens; refresh-token rotation is
// handled by the auth endpoints, never here.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			userID, err := utils.VerifyAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}
