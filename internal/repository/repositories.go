// Package repository owns the application's data.
//
// There is no database behind it: courses live in an in-memory store that is
// created at startup and discarded on exit. The store sits behind the same
// constructor-and-container shape a database-backed repository would use, so
// services never touch the underlying slice directly.
package repository

import (
	"github.com/deppfellow/go-courses/internal/config"
	"github.com/deppfellow/go-courses/internal/model"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Courses *CourseRepository
}

// NewRepositories builds every repository from the store configuration.
// The course store is seeded with model.SeedCourses.
func NewRepositories(cfg config.StoreConfig) *Repositories {
	return &Repositories{
		Courses: NewCourseRepository(IDPolicy(cfg.IDPolicy), model.SeedCourses()...),
	}
}
