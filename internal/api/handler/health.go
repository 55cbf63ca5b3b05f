package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready, the readiness probe. The only
// dependency is the data directory both stores persist to, so ready means
// "writable".
type ReadinessHandler struct {
	dataDir string
}

func NewReadinessHandler(dataDir string) *ReadinessHandler {
	return &ReadinessHandler{dataDir: dataDir}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	deps := make(map[string]dependencyStatus)
	healthy := true

	probe := filepath.Join(h.dataDir, ".ready")
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		deps["datastore"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		_ = os.Remove(probe)
		deps["datastore"] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
