package http

import (
	"errors"
	"fmt"
	"net/http"

	applogger "BrentLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AppError represents application-level error with HTTP status.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error.
func NewAppError(code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// WithError wraps an underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// NotFoundError creates a 404 error.
func NotFoundError(message string) *AppError {
	return NewAppError("ERR_NOT_FOUND", message, http.StatusNotFound)
}

// MethodNotAllowedError creates a 405 error.
func MethodNotAllowedError(message string) *AppError {
	return NewAppError("ERR_METHOD_NOT_ALLOWED", message, http.StatusMethodNotAllowed)
}

// InternalError creates a 500 error.
func InternalError(message string) *AppError {
	return NewAppError("ERR_INTERNAL", message, http.StatusInternalServerError)
}

// FromHTTPError maps Echo's router and framework errors onto AppError.
func FromHTTPError(he *echo.HTTPError) *AppError {
	msg := http.StatusText(he.Code)
	if s, ok := he.Message.(string); ok && s != "" {
		msg = s
	}
	switch he.Code {
	case http.StatusNotFound:
		return NotFoundError(msg)
	case http.StatusMethodNotAllowed:
		return MethodNotAllowedError(msg)
	case http.StatusInternalServerError:
		return InternalError(msg)
	default:
		return NewAppError(fmt.Sprintf("ERR_HTTP_%d", he.Code), msg, he.Code)
	}
}

// ErrorHandler renders every unhandled error as the AppError envelope.
func ErrorHandler(l *applogger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			err = FromHTTPError(he)
		}
		var appErr *AppError
		if !errors.As(err, &appErr) || appErr.Status >= http.StatusInternalServerError {
			l.Error("http handler error",
				applogger.String("method", c.Request().Method),
				applogger.String("path", c.Request().URL.Path),
				applogger.Error(err),
			)
		}
		if werr := AppErrorResponse(c, err); werr != nil {
			l.Warn("http error response write failed", applogger.Error(werr))
		}
	}
}
