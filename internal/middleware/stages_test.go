package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deppfellow/go-courses/internal/errs"
	"github.com/deppfellow/go-courses/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBodyContext(method, contentType, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/api/courses", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withBufferLogger(c echo.Context) *bytes.Buffer {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	c.Set(LoggerKey, &log)
	return &buf
}

func TestBodyParserStage(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        validation.Payload
		wantStatus  int
	}{
		{
			name:        "json object",
			contentType: echo.MIMEApplicationJSON,
			body:        `{"name":"course4"}`,
			want:        validation.Payload{"name": "course4"},
		},
		{
			name:        "json with charset",
			contentType: echo.MIMEApplicationJSONCharsetUTF8,
			body:        `{"name":"course4","n":2}`,
			want:        validation.Payload{"name": "course4", "n": float64(2)},
		},
		{
			name:        "json null",
			contentType: echo.MIMEApplicationJSON,
			body:        `null`,
			want:        validation.Payload{},
		},
		{
			name:        "url encoded",
			contentType: echo.MIMEApplicationForm,
			body:        "name=course4&name=ignored",
			want:        validation.Payload{"name": "course4"},
		},
		{
			name:        "unknown content type",
			contentType: echo.MIMETextPlain,
			body:        "name=course4",
			want:        validation.Payload{},
		},
		{
			name: "no body",
			want: validation.Payload{},
		},
		{
			name:        "malformed json",
			contentType: echo.MIMEApplicationJSON,
			body:        `{"name":`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "json array",
			contentType: echo.MIMEApplicationJSON,
			body:        `["course4"]`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "over limit",
			contentType: echo.MIMEApplicationJSON,
			body:        `{"name":"` + strings.Repeat("x", 2048) + `"}`,
			wantStatus:  http.StatusRequestEntityTooLarge,
		},
	}

	stage := BodyParserStage("1K")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newBodyContext(http.MethodPost, tt.contentType, tt.body)

			decision, err := stage.Before(c)

			if tt.wantStatus != 0 {
				assert.Equal(t, Terminate, decision)
				assert.Equal(t, tt.wantStatus, statusFor(c, err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, Continue, decision)
			assert.Equal(t, tt.want, GetPayload(c))
		})
	}
}

func TestBodyParserStage_StreamedBodyOverLimit(t *testing.T) {
	c, _ := newBodyContext(http.MethodPost, echo.MIMEApplicationJSON, `{"name":"`+strings.Repeat("x", 4096)+`"}`)
	c.Request().ContentLength = -1

	decision, err := BodyParserStage("1K").Before(c)

	assert.Equal(t, Terminate, decision)
	assert.ErrorIs(t, err, echo.ErrStatusRequestEntityTooLarge)
}

func TestBodyParserStage_InvalidLimitPanics(t *testing.T) {
	assert.Panics(t, func() { BodyParserStage("lots") })
}

func TestGetPayload_Default(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/")

	assert.Equal(t, validation.Payload{}, GetPayload(c))
}

func TestStaticStage(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>courses</h1>"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(root, "css"), 0o700))

	stage := StaticStage(root)

	t.Run("serves file and terminates", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/index.html")

		decision, err := stage.Before(c)
		require.NoError(t, err)
		assert.Equal(t, Terminate, decision)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "<h1>courses</h1>", rec.Body.String())
	})

	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/missing.html"},
		{http.MethodGet, "/css"},
		{http.MethodGet, "/api/courses"},
		{http.MethodPost, "/index.html"},
		{http.MethodGet, "/../../etc/passwd"},
	} {
		t.Run("continues for "+tc.method+" "+tc.target, func(t *testing.T) {
			c, _ := newContext(tc.method, tc.target)

			decision, err := stage.Before(c)
			require.NoError(t, err)
			assert.Equal(t, Continue, decision)
		})
	}

	t.Run("disabled with empty root", func(t *testing.T) {
		c, _ := newContext(http.MethodGet, "/index.html")

		decision, err := StaticStage("").Before(c)
		require.NoError(t, err)
		assert.Equal(t, Continue, decision)
	})
}

func TestSecurityHeadersStage(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/api/courses")

	decision, err := SecurityHeadersStage().Before(c)
	require.NoError(t, err)
	assert.Equal(t, Continue, decision)

	h := rec.Header()
	assert.Equal(t, "nosniff", h.Get(echo.HeaderXContentTypeOptions))
	assert.Equal(t, "SAMEORIGIN", h.Get(echo.HeaderXFrameOptions))
	assert.Equal(t, "0", h.Get(echo.HeaderXXSSProtection))
	assert.Equal(t, "no-referrer", h.Get(echo.HeaderReferrerPolicy))
	assert.Equal(t, "off", h.Get("X-DNS-Prefetch-Control"))
	assert.Equal(t, "noopen", h.Get("X-Download-Options"))
	assert.Contains(t, h.Get(echo.HeaderStrictTransportSecurity), "max-age=")
}

func TestRequestLoggerStage(t *testing.T) {
	t.Run("logs status from error", func(t *testing.T) {
		c, _ := newContext(http.MethodGet, "/api/courses/999")
		buf := withBufferLogger(c)

		p := NewPipeline(RequestLoggerStage(true))
		err := p.Run(c, func(echo.Context) error {
			return errs.NewCourseNotFoundError("999")
		})

		require.Error(t, err)
		out := buf.String()
		assert.Contains(t, out, `"status":404`)
		assert.Contains(t, out, `"method":"GET"`)
		assert.Contains(t, out, `"uri":"/api/courses/999"`)
		assert.Contains(t, out, `"latency":`)
		assert.Contains(t, out, `"level":"warn"`)
	})

	t.Run("logs written status", func(t *testing.T) {
		c, _ := newContext(http.MethodGet, "/api/courses")
		buf := withBufferLogger(c)

		p := NewPipeline(RequestLoggerStage(true))
		require.NoError(t, p.Run(c, func(c echo.Context) error {
			return c.String(http.StatusOK, "[]")
		}))

		assert.Contains(t, buf.String(), `"status":200`)
		assert.Contains(t, buf.String(), `"level":"info"`)
	})

	t.Run("disabled logs nothing", func(t *testing.T) {
		c, _ := newContext(http.MethodGet, "/api/courses")
		buf := withBufferLogger(c)

		p := NewPipeline(RequestLoggerStage(false))
		require.NoError(t, p.Run(c, func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		}))

		assert.Empty(t, buf.String())
	})
}

func TestCustomLoggerStage(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/")
	buf := withBufferLogger(c)

	decision, err := CustomLoggerStage().Before(c)

	require.NoError(t, err)
	assert.Equal(t, Continue, decision)
	assert.Contains(t, buf.String(), "Logging...")
}

func TestStatusFor(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/")

	assert.Equal(t, http.StatusBadRequest, statusFor(c, errs.NewBadRequestError("bad", nil)))
	assert.Equal(t, http.StatusMethodNotAllowed, statusFor(c, echo.ErrMethodNotAllowed))
	assert.Equal(t, http.StatusInternalServerError, statusFor(c, assert.AnError))
}
