package repository

import (
	"errors"
	"slices"
	"sync"

	"github.com/deppfellow/go-courses/internal/model"
)

// ErrCourseNotFound is returned when no course has the requested id.
var ErrCourseNotFound = errors.New("course not found")

// IDPolicy selects how Create assigns ids.
type IDPolicy string

const (
	// IDPolicyMonotonic hands out ids from a counter that never goes back,
	// so an id is never reused after a delete.
	IDPolicyMonotonic IDPolicy = "monotonic"

	// IDPolicyLength assigns len(courses)+1. After a delete this can collide
	// with an existing id; it exists for clients that depend on that numbering.
	IDPolicyLength IDPolicy = "length"
)

// CourseRepository is an ordered in-memory collection of courses.
//
// Insertion order is preserved. Every lookup is a linear scan, which is fine
// for the handful of records this service holds. All methods are safe for
// concurrent use; each one runs under the store's lock as a single step.
type CourseRepository struct {
	mu      sync.RWMutex
	courses []model.Course
	policy  IDPolicy
	lastID  int
}

// NewCourseRepository returns a store holding seed in the given order.
// An unknown policy falls back to IDPolicyMonotonic.
func NewCourseRepository(policy IDPolicy, seed ...model.Course) *CourseRepository {
	if policy != IDPolicyLength {
		policy = IDPolicyMonotonic
	}

	r := &CourseRepository{
		courses: slices.Clone(seed),
		policy:  policy,
	}
	for _, c := range seed {
		r.lastID = max(r.lastID, c.ID)
	}

	return r
}

// List returns a copy of every course in insertion order.
func (r *CourseRepository) List() []model.Course {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Course, len(r.courses))
	copy(out, r.courses)
	return out
}

// Count returns the number of stored courses.
func (r *CourseRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.courses)
}

// GetByID returns the course with the given id or ErrCourseNotFound.
func (r *CourseRepository) GetByID(id int) (model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Course{}, ErrCourseNotFound
	}
	return r.courses[i], nil
}

// Create appends a new course and returns it with its assigned id.
func (r *CourseRepository) Create(name string) model.Course {
	r.mu.Lock()
	defer r.mu.Unlock()

	course := model.Course{ID: r.nextID(), Name: name}
	r.courses = append(r.courses, course)
	return course
}

// Update replaces the name of the course with the given id in place.
func (r *CourseRepository) Update(id int, name string) (model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Course{}, ErrCourseNotFound
	}

	r.courses[i].Name = name
	return r.courses[i], nil
}

// Delete removes the course with the given id and returns it.
func (r *CourseRepository) Delete(id int) (model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Course{}, ErrCourseNotFound
	}

	removed := r.courses[i]
	r.courses = slices.Delete(r.courses, i, i+1)
	return removed, nil
}

// indexOf must be called with the lock held.
func (r *CourseRepository) indexOf(id int) int {
	return slices.IndexFunc(r.courses, func(c model.Course) bool {
		return c.ID == id
	})
}

// nextID must be called with the write lock held.
func (r *CourseRepository) nextID() int {
	if r.policy == IDPolicyLength {
		return len(r.courses) + 1
	}

	r.lastID++
	return r.lastID
}
