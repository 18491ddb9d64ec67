package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"igreja_backend/internal/cache"
	"igreja_backend/internal/services"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// SystemHandler exposes the health probe and the dashboard aggregate.
type SystemHandler struct {
	DB          *sql.DB
	Cache       *cache.Cache
	Environment string
	Stats       services.StatsService
}

// Health probes the store and Redis. Either probe failing makes the whole
// check fail with 503.
func (h SystemHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	dbOK := h.DB.PingContext(ctx) == nil
	redisOK := h.Cache.HealthCheck(ctx)

	status := "ok"
	code := http.StatusOK
	if !dbOK || !redisOK {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":      status,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"version":     Version,
		"environment": h.Environment,
		"services": gin.H{
			"database": boolStatus(dbOK),
			"redis":    boolStatus(redisOK),
		},
	})
}

func (h SystemHandler) Dashboard(c *gin.Context) {
	stats, err := h.Stats.Dashboard(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, stats, "")
}

func boolStatus(ok bool) string {
	if ok {
		return "up"
	}
	return "down"
}
