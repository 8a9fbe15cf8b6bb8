package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// readinessTimeout bounds a full readiness probe.
const readinessTimeout = 3 * time.Second

// PingFunc checks one backing dependency.
type PingFunc func(ctx context.Context) error

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	checks map[string]PingFunc
}

// NewHealthHandler creates a new HealthHandler that probes checks on readiness.
func NewHealthHandler(checks map[string]PingFunc) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. All checks run concurrently; any failure answers 503 with
// the per-dependency results.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]string, len(h.checks))
		healthy = true
	)
	for name, ping := range h.checks {
		wg.Add(1)
		go func(name string, ping PingFunc) {
			defer wg.Done()
			err := ping(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				results[name] = name + " not reachable"
				healthy = false
				return
			}
			results[name] = "ok"
		}(name, ping)
	}
	wg.Wait()

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": results})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": results})
}
