package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reelsense/pkg/logger"
)

// ErrorHandler is the central echo HTTP error handler: logs the failure
// and emits a uniform JSON body.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("request failed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", code,
			"error", err,
		)
	}

	_ = c.JSON(code, map[string]string{"message": message})
}
