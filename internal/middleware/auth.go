package middleware

import (
	"github.com/deppfellow/go-courses/internal/server"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware is the authentication step of the request pipeline.
//
// No credentials are checked yet: every request is logged and allowed
// through. The stage keeps its place in the pipeline so real checks can be
// added without changing the stage order.
type AuthMiddleware struct {
	server *server.Server
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// Stage returns the "authenticate" pipeline stage. It always continues.
func (auth *AuthMiddleware) Stage() Stage {
	return Stage{
		Name: "authenticate",
		Before: func(c echo.Context) (Decision, error) {
			GetLogger(c).Info().
				Str("function", "Authenticate").
				Str("request_id", GetRequestID(c)).
				Msg("Authenticating...")
			return Continue, nil
		},
	}
}
