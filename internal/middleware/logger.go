package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RequestLogger logs one structured line per request: method, path, status,
// remote IP and latency. Errors returned by handlers are logged and passed
// through so Echo's error handling still applies.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			ev := log.Info()
			if c.Response().Status >= 500 {
				ev = log.Error()
			}
			ev.
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Str("remote_ip", c.RealIP()).
				Dur("latency", time.Since(start)).
				Msg("request")
			return err
		}
	}
}
