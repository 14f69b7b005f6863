package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Check probes one dependency. A failing Required check marks the service down;
// any other failure only degrades it.
type Check struct {
	Name     string
	Required bool
	Fn       func(ctx context.Context) error
}

type HealthHandler struct {
	Service string
	Checks  []Check
	Timeout time.Duration
	Logger  *logrus.Logger
}

func NewHealthHandler(service string, logger *logrus.Logger, checks ...Check) *HealthHandler {
	return &HealthHandler{Service: service, Checks: checks, Timeout: 2 * time.Second, Logger: logger}
}

type healthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	status := "ok"
	checks := make(map[string]string, len(h.Checks))
	for _, chk := range h.Checks {
		if err := chk.Fn(ctx); err != nil {
			checks[chk.Name] = "down"
			if h.Logger != nil {
				h.Logger.WithError(err).WithField("check", chk.Name).Warn("health check failed")
			}
			if chk.Required {
				status = "down"
			} else if status == "ok" {
				status = "degraded"
			}
			continue
		}
		checks[chk.Name] = "up"
	}

	code := http.StatusOK
	if status == "down" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, healthResponse{
		Status:    status,
		Service:   h.Service,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	})
}
