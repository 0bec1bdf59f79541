package handler // handler defines the HTTP handlers for the issue tracker API

import (
	"errors"
	"regexp"

	"github.com/labstack/echo/v4"
)

// emailRe is the permissive anything@anything.anything check applied at
// login and registration.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(s string) bool { return emailRe.MatchString(s) }

// getUserID extracts the requester's user id placed in context by the JWT
// middleware. Handlers behind the middleware treat a missing value as an
// unauthorized request.
func getUserID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("invalid user_id in context")
}
