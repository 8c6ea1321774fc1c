package handler

import (
	"net/http"
	"time"

	"github.com/deppfellow/go-courses/internal/middleware"
	"github.com/deppfellow/go-courses/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the service is up and its store reachable.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns 200 with the overall status, the environment and one
// entry per dependency check. The only dependency is the course store.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	storeStart := time.Now()
	count := h.server.Repositories.Courses.Count()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks": map[string]interface{}{
			"store": map[string]interface{}{
				"status":        "healthy",
				"courses":       count,
				"response_time": time.Since(storeStart).String(),
			},
		},
	}

	logger.Debug().
		Int("courses", count).
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}
