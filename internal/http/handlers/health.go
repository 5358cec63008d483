package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/deliverysla-backend/internal/http/response"
)

type HealthHandler struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

// GET /healthz
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.db == nil {
		response.RespondOK(c, gin.H{"status": "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		response.RespondError(c, http.StatusServiceUnavailable, "db_unavailable", err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ok"})
}
