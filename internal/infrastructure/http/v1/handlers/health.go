package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quizbank/internal/infrastructure/storage/postgres"
)

const appVersion = "0.1.0"

// HealthHandler serves the health endpoints. Liveness answers unconditionally;
// readiness and info consult the database pool.
type HealthHandler struct {
	pool    *postgres.Pool
	started time.Time
}

func NewHealthHandler(pool *postgres.Pool) *HealthHandler {
	return &HealthHandler{pool: pool, started: time.Now().UTC()}
}

// Live handles GET /health/live. Answering at all is the signal.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles GET /health/ready. Ready means the database answers a ping;
// anything else returns 503 so the orchestrator holds traffic.
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.pool.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"database": "unhealthy: " + err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"database": "healthy",
		},
	})
}

// Info handles GET /health/info: version, uptime and pool utilization.
func (h *HealthHandler) Info(c *gin.Context) {
	stat := h.pool.Stat()

	c.JSON(http.StatusOK, gin.H{
		"app":      "quizbank",
		"version":  appVersion,
		"uptime_s": int64(time.Since(h.started).Seconds()),
		"database": map[string]any{
			"total_conns":    stat.TotalConns(),
			"acquired_conns": stat.AcquiredConns(),
			"idle_conns":     stat.IdleConns(),
			"max_conns":      stat.MaxConns(),
		},
	})
}
