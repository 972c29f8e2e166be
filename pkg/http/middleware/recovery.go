package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// envelope mirrors the response envelope written by the parent http package,
// which installs this middleware and therefore cannot be imported from here.
type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Recover converts handler panics into a logged 500 envelope response.
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					log.Error().
						Err(err).
						Str("path", c.Path()).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")
					_ = c.JSON(http.StatusInternalServerError, envelope{
						Status:  http.StatusInternalServerError,
						Message: http.StatusText(http.StatusInternalServerError),
					})
				}
			}()
			return next(c)
		}
	}
}
