package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger 数据库连通性检查，*sql.DB实现
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler 健康检查
type HealthHandler struct {
	db     Pinger
	logger *zap.Logger
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(db Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Ping 健康检查
// @Summary      健康检查
// @Tags         系统
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /ping [get]
func (h *HealthHandler) Ping(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("健康检查失败", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "pong", "status": "unhealthy", "database": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "healthy", "database": "ok"})
}
