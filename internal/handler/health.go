package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/notely/notes-api/internal/constants"
	redispkg "github.com/notely/notes-api/pkg/redis"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redispkg.Client
}

func NewHealthHandler(db *gorm.DB, redis *redispkg.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Check pings the database and cache. Either failing reports 503.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := gin.H{
		"status":  "ok",
		"message": "Welcome to " + constants.AppName,
	}

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = "down"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	status["database"] = "up"

	if err := h.redis.Ping(ctx); err != nil {
		status["status"] = "degraded"
		status["cache"] = "down"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	status["cache"] = "up"
	status["time"] = time.Now().UTC().Format(time.RFC3339)

	c.JSON(http.StatusOK, status)
}
