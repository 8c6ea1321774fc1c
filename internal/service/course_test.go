package service

import (
	"net/http"
	"testing"

	"github.com/deppfellow/go-courses/internal/config"
	"github.com/deppfellow/go-courses/internal/errs"
	"github.com/deppfellow/go-courses/internal/logger"
	"github.com/deppfellow/go-courses/internal/model"
	"github.com/deppfellow/go-courses/internal/server"
	"github.com/deppfellow/go-courses/internal/validation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourseService(t *testing.T) *CourseService {
	t.Helper()

	log := zerolog.Nop()
	s, err := server.New(config.Default(), &log, &logger.LoggerService{})
	require.NoError(t, err)

	return NewServices(s, s.Repositories).Courses
}

func requireStatus(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	return httpErr
}

func TestCourseService_Get(t *testing.T) {
	cs := newCourseService(t)

	course, err := cs.Get("2")
	require.NoError(t, err)
	assert.Equal(t, model.Course{ID: 2, Name: "course2"}, course)

	for _, rawID := range []string{"2abc", "2.5", " 2"} {
		course, err := cs.Get(rawID)
		require.NoError(t, err, rawID)
		assert.Equal(t, 2, course.ID)
	}

	for _, rawID := range []string{"999", "abc", "", "-", "x2", "99999999999999999999"} {
		_, err := cs.Get(rawID)
		httpErr := requireStatus(t, err, http.StatusNotFound)
		assert.Equal(t, "The course with the given ID="+rawID+" was not found.", httpErr.Message)
	}
}

func TestCourseService_Create(t *testing.T) {
	cs := newCourseService(t)

	course, err := cs.Create(validation.Payload{"name": "course4"})
	require.NoError(t, err)
	assert.Equal(t, model.Course{ID: 4, Name: "course4"}, course)

	_, err = cs.Create(validation.Payload{"name": "ab"})
	httpErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, httpErr.Message, "at least 3 characters")
	assert.Len(t, cs.List(), 4)
}

func TestCourseService_Update(t *testing.T) {
	cs := newCourseService(t)

	course, err := cs.Update("1", validation.Payload{"name": "updated"})
	require.NoError(t, err)
	assert.Equal(t, model.Course{ID: 1, Name: "updated"}, course)

	_, err = cs.Update("1", validation.Payload{"name": "a"})
	requireStatus(t, err, http.StatusBadRequest)

	got, err := cs.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Name)
}

func TestCourseService_UpdateLookupPrecedesValidation(t *testing.T) {
	cs := newCourseService(t)

	_, err := cs.Update("999", validation.Payload{"name": "a"})
	requireStatus(t, err, http.StatusNotFound)

	_, err = cs.Update("nope", validation.Payload{})
	requireStatus(t, err, http.StatusNotFound)
}

func TestCourseService_Delete(t *testing.T) {
	cs := newCourseService(t)

	removed, err := cs.Delete("2")
	require.NoError(t, err)
	assert.Equal(t, model.Course{ID: 2, Name: "course2"}, removed)

	_, err = cs.Delete("2")
	requireStatus(t, err, http.StatusNotFound)

	_, err = cs.Get("2")
	requireStatus(t, err, http.StatusNotFound)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{raw: "3", want: 3, wantOK: true},
		{raw: "3abc", want: 3, wantOK: true},
		{raw: "2.5", want: 2, wantOK: true},
		{raw: "  7", want: 7, wantOK: true},
		{raw: "\t7 ", want: 7, wantOK: true},
		{raw: "+4", want: 4, wantOK: true},
		{raw: "-1", want: -1, wantOK: true},
		{raw: "007", want: 7, wantOK: true},
		{raw: "", wantOK: false},
		{raw: "abc", wantOK: false},
		{raw: "+", wantOK: false},
		{raw: "a1", wantOK: false},
		{raw: "1 2", want: 1, wantOK: true},
		{raw: "99999999999999999999", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseID(tt.raw)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCourseService_DeleteByNumericPrefix(t *testing.T) {
	cs := newCourseService(t)

	removed, err := cs.Delete("2.5")
	require.NoError(t, err)
	assert.Equal(t, model.Course{ID: 2, Name: "course2"}, removed)

	_, err = cs.Get("2")
	requireStatus(t, err, http.StatusNotFound)
}
