package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const RequestIDHeader = "X-Request-ID"

const ctxRequestID = "request_id"

// requestIDFrom returns the id RequestID stored on the context, or "" when
// the middleware did not run.
func requestIDFrom(c echo.Context) string {
	rid, _ := c.Get(ctxRequestID).(string)
	return rid
}

// RequestID assigns each request an id, honoring one supplied by the caller,
// and echoes it back in the response headers.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.New().String()
			}
			c.Set(ctxRequestID, rid)
			c.Response().Header().Set(RequestIDHeader, rid)
			return next(c)
		}
	}
}
