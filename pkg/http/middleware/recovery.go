package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "BrentLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover returns recovery middleware.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					perr, ok := r.(error)
					if !ok {
						perr = fmt.Errorf("%v", r)
					}
					l.Error("panic recovered",
						applogger.String("path", c.Request().URL.Path),
						applogger.String("stack", string(debug.Stack())),
						applogger.Error(perr),
					)
					err = echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error").SetInternal(perr)
				}
			}()
			return next(c)
		}
	}
}
