package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/deppfellow/go-courses/internal/errs"
	"github.com/deppfellow/go-courses/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/bytes"
	"github.com/rs/zerolog"

	pkgerrors "github.com/pkg/errors"
)

const (
	// PayloadKey stores the parsed request body on the Echo context.
	PayloadKey = "payload"

	requestStartKey = "request_start"
)

// GetPayload returns the body parsed by the body-parser stage, or an empty
// payload when there was none.
func GetPayload(c echo.Context) validation.Payload {
	if p, ok := c.Get(PayloadKey).(validation.Payload); ok && p != nil {
		return p
	}
	return validation.Payload{}
}

// BodyParserStage enforces limit (e.g. "100K", "1M") and decodes JSON and
// URL-encoded bodies into a validation.Payload. Oversized bodies end the
// request with 413, malformed ones with 400, before any handler runs.
//
// It panics if limit cannot be parsed; config validation runs first.
func BodyParserStage(limit string) Stage {
	maxBytes, err := bytes.Parse(limit)
	if err != nil {
		panic(fmt.Sprintf("body-parser: invalid limit %q: %v", limit, err))
	}

	return Stage{
		Name: "body-parser",
		Before: func(c echo.Context) (Decision, error) {
			req := c.Request()
			if req.ContentLength > maxBytes {
				return Terminate, echo.ErrStatusRequestEntityTooLarge
			}
			if req.Body != nil {
				req.Body = http.MaxBytesReader(c.Response(), req.Body, maxBytes)
			}

			payload, err := parseBody(c)
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					return Terminate, echo.ErrStatusRequestEntityTooLarge
				}
				return Terminate, err
			}

			c.Set(PayloadKey, payload)
			return Continue, nil
		},
	}
}

func parseBody(c echo.Context) (validation.Payload, error) {
	req := c.Request()
	if req.ContentLength == 0 || req.Body == nil || req.Body == http.NoBody {
		return validation.Payload{}, nil
	}

	ctype := req.Header.Get(echo.HeaderContentType)
	switch {
	case strings.HasPrefix(ctype, echo.MIMEApplicationJSON):
		var payload validation.Payload
		if err := c.Echo().JSONSerializer.Deserialize(c, &payload); err != nil {
			if errors.Is(err, io.EOF) {
				return validation.Payload{}, nil
			}

			var echoErr *echo.HTTPError
			var tooLarge *http.MaxBytesError
			switch {
			case errors.As(err, &tooLarge):
				return nil, err
			case errors.As(err, &echoErr):
				return nil, echoErr
			}
			return nil, errs.NewBadRequestError(err.Error(), nil)
		}
		if payload == nil {
			payload = validation.Payload{}
		}
		return payload, nil

	case strings.HasPrefix(ctype, echo.MIMEApplicationForm):
		if err := req.ParseForm(); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, err
			}
			return nil, errs.NewBadRequestError(err.Error(), nil)
		}

		payload := make(validation.Payload, len(req.PostForm))
		for key, values := range req.PostForm {
			if len(values) > 0 {
				payload[key] = values[0]
			}
		}
		return payload, nil
	}

	return validation.Payload{}, nil
}

// StaticStage serves GET and HEAD requests for regular files under root and
// terminates the pipeline. An empty root disables the stage.
func StaticStage(root string) Stage {
	return Stage{
		Name: "static",
		Before: func(c echo.Context) (Decision, error) {
			if root == "" {
				return Continue, nil
			}

			method := c.Request().Method
			if method != http.MethodGet && method != http.MethodHead {
				return Continue, nil
			}

			// Cleaning an absolute path cannot climb above root.
			name := filepath.Join(root, filepath.FromSlash(path.Clean("/"+c.Request().URL.Path)))
			info, err := os.Stat(name)
			if err != nil || !info.Mode().IsRegular() {
				return Continue, nil
			}

			return Terminate, c.File(name)
		},
	}
}

// SecurityHeadersStage attaches hardening headers to every response.
// It never blocks.
func SecurityHeadersStage() Stage {
	secure := middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "0",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "no-referrer",
	})

	return FromMiddleware("security-headers", func(next echo.HandlerFunc) echo.HandlerFunc {
		return secure(func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-DNS-Prefetch-Control", "off")
			h.Set("X-Download-Options", "noopen")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
			h.Set(echo.HeaderStrictTransportSecurity, "max-age=15552000; includeSubDomains")
			return next(c)
		})
	})
}

// RequestLoggerStage logs method, path, status and latency once the handler
// returns. It only does anything when enabled (development mode).
func RequestLoggerStage(enabled bool) Stage {
	if !enabled {
		return Stage{Name: "request-logger"}
	}

	return Stage{
		Name: "request-logger",
		Before: func(c echo.Context) (Decision, error) {
			c.Set(requestStartKey, time.Now())
			return Continue, nil
		},
		After: func(c echo.Context, err error) {
			var latency time.Duration
			if start, ok := c.Get(requestStartKey).(time.Time); ok {
				latency = time.Since(start)
			}

			status := statusFor(c, err)
			log := GetLogger(c)

			var e *zerolog.Event
			switch {
			case status >= 500:
				e = log.Error().Err(err)
			case status >= 400:
				e = log.Warn()
			default:
				e = log.Info()
			}

			e.
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Int("status", status).
				Dur("latency", latency).
				Msg("API")
		},
	}
}

// statusFor returns the status the response will carry, derived the same
// way echo's RequestLogger does in its LogValuesFunc: from the error when
// the handler failed (nothing has been written yet), otherwise from the
// response.
func statusFor(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError
	switch {
	case pkgerrors.As(err, &httpErr):
		return httpErr.Status
	case pkgerrors.As(err, &echoErr):
		return echoErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// CustomLoggerStage records a fixed line for every request.
func CustomLoggerStage() Stage {
	return Stage{
		Name: "custom-logger",
		Before: func(c echo.Context) (Decision, error) {
			GetLogger(c).Info().Msg("Logging...")
			return Continue, nil
		},
	}
}
