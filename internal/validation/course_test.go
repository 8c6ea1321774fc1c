package validation

import (
	"net/http"
	"testing"

	"github.com/deppfellow/go-courses/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCourse(t *testing.T) {
	tests := []struct {
		name      string
		payload   Payload
		want      CourseInput
		wantMsg   string
		wantField string
	}{
		{
			name:    "valid",
			payload: Payload{"name": "course4"},
			want:    CourseInput{Name: "course4"},
		},
		{
			name:    "exactly three characters",
			payload: Payload{"name": "abc"},
			want:    CourseInput{Name: "abc"},
		},
		{
			name:      "too short",
			payload:   Payload{"name": "ab"},
			wantMsg:   `"name" length must be at least 3 characters long`,
			wantField: "name",
		},
		{
			name:      "missing",
			payload:   Payload{},
			wantMsg:   `"name" is required`,
			wantField: "name",
		},
		{
			name:      "nil payload",
			payload:   nil,
			wantMsg:   `"name" is required`,
			wantField: "name",
		},
		{
			name:      "empty string",
			payload:   Payload{"name": ""},
			wantMsg:   `"name" is not allowed to be empty`,
			wantField: "name",
		},
		{
			name:      "number",
			payload:   Payload{"name": float64(12345)},
			wantMsg:   `"name" must be a string`,
			wantField: "name",
		},
		{
			name:      "null",
			payload:   Payload{"name": nil},
			wantMsg:   `"name" must be a string`,
			wantField: "name",
		},
		{
			name:      "unknown key after valid name",
			payload:   Payload{"name": "course4", "id": float64(9)},
			wantMsg:   `"id" is not allowed`,
			wantField: "id",
		},
		{
			name:      "rule failure wins over unknown key",
			payload:   Payload{"name": "a", "extra": true},
			wantMsg:   `"name" length must be at least 3 characters long`,
			wantField: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCourse(tt.payload)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
			require.Len(t, httpErr.Errors, 1)
			assert.Equal(t, tt.wantField, httpErr.Errors[0].Field)
		})
	}
}

func TestSchema_OptionalAndUnknown(t *testing.T) {
	schema := Schema{
		Rules:        []Rule{{Field: "title", Type: TypeString, MinLength: 2}},
		AllowUnknown: true,
	}

	valid, err := schema.Validate(Payload{"other": 1})
	require.NoError(t, err)
	assert.Empty(t, valid)

	valid, err = schema.Validate(Payload{"title": "go", "other": 1})
	require.NoError(t, err)
	assert.Equal(t, Payload{"title": "go"}, valid)
}

func TestRule_Tag(t *testing.T) {
	assert.Equal(t, "required,min=3", Rule{Required: true, MinLength: 3}.tag())
	assert.Equal(t, "min=5", Rule{MinLength: 5}.tag())
	assert.Equal(t, "", Rule{}.tag())
}
