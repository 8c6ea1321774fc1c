// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass raw
// request values in, services validate them, call the repositories, and
// translate repository errors into errs.HTTPError values.
package service

import (
	"github.com/deppfellow/go-courses/internal/repository"
	"github.com/deppfellow/go-courses/internal/server"
)

// Services is a container for all services.
type Services struct {
	Courses *CourseService
}

// NewServices builds every service on top of repos.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Courses: NewCourseService(s, repos.Courses),
	}
}
