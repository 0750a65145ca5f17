package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	datastore Pinger
	name      string
	version   string
}

func NewHealthController(datastore Pinger, name, version string) *HealthController {
	if name == "" {
		name = "database"
	}
	return &HealthController{
		datastore: datastore,
		name:      name,
		version:   version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.datastore != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := h.datastore.Ping(ctx); err != nil {
			checks[h.name] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks[h.name] = "ok"
		}
	} else {
		checks[h.name] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

// Welcome handles GET /.
func Welcome(c *gin.Context) {
	respondMessage(c, http.StatusOK, "Hello World! Welcome to L-I-F-E!")
}
