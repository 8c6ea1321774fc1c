package middleware

import (
	"net/http"

	"github.com/deppfellow/go-courses/internal/errs"
	"github.com/deppfellow/go-courses/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups middleware applied to every route plus the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS allows browser clients from the configured origins.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// TrailingSlash strips one trailing slash before routing, so /api/courses/
// reaches the same handler as /api/courses. Install it with Echo.Pre.
func (global *GlobalMiddlewares) TrailingSlash() echo.MiddlewareFunc {
	return middleware.RemoveTrailingSlash()
}

// Recover turns handler panics into 500 responses.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Bytes("stack", stack).
				Msg("recovered from panic")
			return err
		},
	})
}

// GlobalErrorHandler is the single place errors become responses.
//
// Every error ends up as a status code and a plain-text body carrying the
// client-facing message. Unknown errors become a generic 500; the original
// error is only logged.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError
	var status int
	var code string
	var message string

	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Status
		code = httpErr.Code
		message = httpErr.Message

	case errors.As(err, &echoErr):
		status = echoErr.Code
		// A known path with an unhandled method is reported like an unknown
		// path: every unmatched method+path pair is a 404.
		if status == http.StatusMethodNotAllowed {
			status = http.StatusNotFound
			c.Response().Header().Del(echo.HeaderAllow)
		}
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(status))

		switch msg, ok := echoErr.Message.(string); {
		case status == http.StatusNotFound:
			message = "Route not found"
		case ok:
			message = msg
		default:
			message = http.StatusText(status)
		}

	default:
		fallback := errs.NewInternalServerError()
		status = fallback.Status
		code = fallback.Code
		message = fallback.Message
	}

	logger := GetLogger(c)

	var e *zerolog.Event
	if status >= http.StatusInternalServerError {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}
	e.Err(originalErr).
		Int("status", status).
		Str("error_code", code).
		Msg(message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.String(status, message)
}
