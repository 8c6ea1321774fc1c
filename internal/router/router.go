// Package router builds the Echo instance: global middleware, the request
// pipeline, and every route.
package router

import (
	"net/http"

	"github.com/deppfellow/go-courses/internal/handler"
	"github.com/deppfellow/go-courses/internal/middleware"
	"github.com/deppfellow/go-courses/internal/server"
	"github.com/deppfellow/go-courses/internal/service"
	"github.com/labstack/echo/v4"
)

// NewRouter wires middleware and handlers onto a new Echo instance.
//
// A trailing slash is stripped before routing. Paths are case-sensitive.
// Global middleware order: recover, request id, New Relic transaction,
// request-scoped logger, tracing attributes, CORS. The request pipeline runs
// last, directly in front of the handler (or the 404 handler).
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Pre(middlewares.Global.TrailingSlash())

	router.Use(
		middlewares.Global.Recover(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.Global.CORS(),
		middlewares.Pipeline.Middleware(),
	)

	registerSystemRoutes(router, h)
	registerCourseRoutes(router.Group("/api"), h)

	return router
}

// New builds the full application handler for s: services, handlers and
// router.
func New(s *server.Server) *echo.Echo {
	services := service.NewServices(s, s.Repositories)
	return NewRouter(s, handler.NewHandlers(s, services))
}

func registerCourseRoutes(api *echo.Group, h *handler.Handlers) {
	courses := h.Courses

	api.GET("/courses", handler.Handle(courses.Handler, courses.ListCourses, http.StatusOK))
	api.GET("/courses/:id", handler.Handle(courses.Handler, courses.GetCourse, http.StatusOK))
	api.POST("/courses", handler.Handle(courses.Handler, courses.CreateCourse, http.StatusOK))
	api.PUT("/courses/:id", handler.Handle(courses.Handler, courses.UpdateCourse, http.StatusOK))
	api.DELETE("/courses/:id", handler.Handle(courses.Handler, courses.DeleteCourse, http.StatusOK))
}
