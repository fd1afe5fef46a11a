package handler

import (
	"net/http"
	"time"

	"github.com/geoexplorer/backend/config"
	"github.com/geoexplorer/backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	cfg   *config.Config
	db    *gorm.DB
	redis redis.Client
}

func NewHealthHandler(cfg *config.Config, db *gorm.DB, redisClient redis.Client) *HealthHandler {
	return &HealthHandler{cfg: cfg, db: db, redis: redisClient}
}

// Root returns basic service information
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     h.cfg.App.Name,
		"environment": h.cfg.App.Environment,
		"status":      "running",
	})
}

// Check reports the health of the service and its dependencies. The service
// is degraded but still healthy when only the cache is down.
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{}

	dbStatus := "ok"
	sqlDB, err := h.db.DB()
	if err != nil {
		dbStatus = "error"
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		dbStatus = "error"
	}
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
	}
	checks["database"] = dbStatus

	redisStatus := "disabled"
	if h.redis.IsEnabled() {
		redisStatus = "ok"
		if err := h.redis.Ping(c.Request.Context()); err != nil {
			redisStatus = "error"
		}
	}
	checks["redis"] = redisStatus

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}
