// Package handler is the HTTP layer: the first entry point after the router.
//
// Handlers bind path parameters, pick up the payload parsed by the request
// pipeline, call the service layer, and return values that are written as
// JSON. Errors are returned untouched to the global error handler.
package handler

import (
	"github.com/deppfellow/go-courses/internal/server"
	"github.com/deppfellow/go-courses/internal/service"
)

// Handlers groups all HTTP handlers.
type Handlers struct {
	Health  *HealthHandler
	Courses *CourseHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		Courses: NewCourseHandler(s, services.Courses),
	}
}
