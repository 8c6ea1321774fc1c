package service

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/deppfellow/go-courses/internal/errs"
	"github.com/deppfellow/go-courses/internal/model"
	"github.com/deppfellow/go-courses/internal/repository"
	"github.com/deppfellow/go-courses/internal/server"
	"github.com/deppfellow/go-courses/internal/validation"
)

// CourseService implements the course operations on top of the store.
//
// Ids arrive as the raw path segment so the not-found message can quote
// exactly what the client sent. A segment without a leading integer cannot
// match any course and is reported as not found.
type CourseService struct {
	server *server.Server
	repo   *repository.CourseRepository
}

// NewCourseService constructs a CourseService.
func NewCourseService(s *server.Server, repo *repository.CourseRepository) *CourseService {
	return &CourseService{
		server: s,
		repo:   repo,
	}
}

// List returns every course in insertion order.
func (cs *CourseService) List() []model.Course {
	return cs.repo.List()
}

// Get returns the course identified by rawID.
func (cs *CourseService) Get(rawID string) (model.Course, error) {
	id, ok := parseID(rawID)
	if !ok {
		return model.Course{}, errs.NewCourseNotFoundError(rawID)
	}

	course, err := cs.repo.GetByID(id)
	return course, notFound(err, rawID)
}

// Create validates payload and appends a new course.
func (cs *CourseService) Create(payload validation.Payload) (model.Course, error) {
	input, err := validation.ValidateCourse(payload)
	if err != nil {
		return model.Course{}, err
	}

	course := cs.repo.Create(input.Name)

	cs.server.Logger.Debug().
		Int("course_id", course.ID).
		Msg("course created")

	return course, nil
}

// Update renames the course identified by rawID.
//
// The lookup runs before validation: an unknown id is reported as 404 even
// when payload is also invalid.
func (cs *CourseService) Update(rawID string, payload validation.Payload) (model.Course, error) {
	current, err := cs.Get(rawID)
	if err != nil {
		return model.Course{}, err
	}

	input, err := validation.ValidateCourse(payload)
	if err != nil {
		return model.Course{}, err
	}

	course, err := cs.repo.Update(current.ID, input.Name)
	return course, notFound(err, rawID)
}

// Delete removes the course identified by rawID and returns it.
func (cs *CourseService) Delete(rawID string) (model.Course, error) {
	current, err := cs.Get(rawID)
	if err != nil {
		return model.Course{}, err
	}

	course, err := cs.repo.Delete(current.ID)
	return course, notFound(err, rawID)
}

// notFound maps the store's sentinel onto the client-facing 404. A course
// can vanish between Get and a write when requests race.
func notFound(err error, rawID string) error {
	if errors.Is(err, repository.ErrCourseNotFound) {
		return errs.NewCourseNotFoundError(rawID)
	}
	return err
}

// parseID reads the leading integer of a path segment: leading whitespace is
// skipped, an optional sign and a run of digits are taken, and the rest is
// ignored, so "2abc" and "2.5" both name course 2.
func parseID(raw string) (int, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	id, err := strconv.Atoi(s[:end])
	return id, err == nil
}
