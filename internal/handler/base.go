package handler

import (
	"time"

	"github.com/deppfellow/go-courses/internal/errs"
	"github.com/deppfellow/go-courses/internal/middleware"
	"github.com/deppfellow/go-courses/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type holding shared application dependencies.
// Concrete handlers embed it.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives its request with path
// parameters already bound and returns the value to encode as JSON.
type HandlerFunc[Req any, Res any] func(c echo.Context, req *Req) (Res, error)

// binder binds path parameters only. Bodies are decoded once by the
// body-parser pipeline stage and read with middleware.GetPayload.
var binder = &echo.DefaultBinder{}

// handleRequest is the shared execution path for every typed endpoint:
// bind, run, log with durations, report to New Relic, write JSON.
func handleRequest[Req any, Res any](c echo.Context, handler HandlerFunc[Req, Res], status int) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", "handler").
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	req := new(Req)
	if err := binder.BindPathParams(c, req); err != nil {
		logger.Error().Err(err).Msg("binding path parameters failed")
		return errs.NewBadRequestError("Invalid path parameters", nil)
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Warn().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return c.JSON(status, result)
}

// Handle wraps a typed endpoint so it can be registered on a route.
// A fresh Req is allocated for every request.
//
//	api.GET("/courses/:id", handler.Handle(h, h.GetCourse, http.StatusOK))
func Handle[Req any, Res any](h Handler, handler HandlerFunc[Req, Res], status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, handler, status)
	}
}
