// Package model holds the records the API manages.
package model

import "fmt"

// Course is the single record type served under /api/courses.
type Course struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SeedCourses returns the records a fresh store starts with.
func SeedCourses() []Course {
	seed := make([]Course, 0, 3)
	for i := 1; i <= 3; i++ {
		seed = append(seed, Course{ID: i, Name: fmt.Sprintf("course%d", i)})
	}
	return seed
}
