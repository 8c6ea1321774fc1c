package handler

import (
	"github.com/deppfellow/go-courses/internal/middleware"
	"github.com/deppfellow/go-courses/internal/model"
	"github.com/deppfellow/go-courses/internal/server"
	"github.com/deppfellow/go-courses/internal/service"
	"github.com/labstack/echo/v4"
)

// ListCoursesRequest has no inputs.
type ListCoursesRequest struct{}

// CreateCourseRequest has no path inputs; the body is the parsed payload.
type CreateCourseRequest struct{}

// CourseIDRequest carries the raw :id path segment.
type CourseIDRequest struct {
	ID string `param:"id"`
}

// CourseHandler serves /api/courses.
type CourseHandler struct {
	Handler
	courses *service.CourseService
}

// NewCourseHandler constructs a CourseHandler.
func NewCourseHandler(s *server.Server, courses *service.CourseService) *CourseHandler {
	return &CourseHandler{
		Handler: NewHandler(s),
		courses: courses,
	}
}

func (h *CourseHandler) ListCourses(c echo.Context, _ *ListCoursesRequest) ([]model.Course, error) {
	return h.courses.List(), nil
}

func (h *CourseHandler) GetCourse(c echo.Context, req *CourseIDRequest) (model.Course, error) {
	return h.courses.Get(req.ID)
}

func (h *CourseHandler) CreateCourse(c echo.Context, _ *CreateCourseRequest) (model.Course, error) {
	return h.courses.Create(middleware.GetPayload(c))
}

func (h *CourseHandler) UpdateCourse(c echo.Context, req *CourseIDRequest) (model.Course, error) {
	return h.courses.Update(req.ID, middleware.GetPayload(c))
}

func (h *CourseHandler) DeleteCourse(c echo.Context, req *CourseIDRequest) (model.Course, error) {
	return h.courses.Delete(req.ID)
}
