package middleware

import (
	"github.com/deppfellow/go-courses/internal/server"
)

// Middlewares groups every middleware component the router installs.
type Middlewares struct {
	Global          *GlobalMiddlewares
	Auth            *AuthMiddleware
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware

	// Pipeline is the ordered request pipeline run in front of handlers.
	Pipeline *Pipeline
}

// NewMiddlewares constructs all middleware components from the container.
func NewMiddlewares(s *server.Server) *Middlewares {
	auth := NewAuthMiddleware(s)

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            auth,
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		Pipeline:        NewRequestPipeline(s, auth),
	}
}

// NewRequestPipeline returns the request pipeline in its fixed order:
//
//	body-parser -> static -> security-headers -> request-logger ->
//	custom-logger -> authenticate
func NewRequestPipeline(s *server.Server, auth *AuthMiddleware) *Pipeline {
	return NewPipeline(
		BodyParserStage(s.Config.Server.BodyLimit),
		StaticStage(s.Config.Server.StaticDir),
		SecurityHeadersStage(),
		RequestLoggerStage(s.Config.Primary.IsDevelopment()),
		CustomLoggerStage(),
		auth.Stage(),
	)
}
