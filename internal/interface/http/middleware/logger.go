package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-api/pkg/tracing"
)

const (
	// HeaderRequestID 请求ID响应头，客户端传入时沿用
	HeaderRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"

	slowRequest = 3 * time.Second
)

// RequestLogger 请求日志：请求ID、方法、路由、状态码、耗时、客户端IP
// 不记录请求体和Authorization头
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ctxRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("request", fields...)
		case latency > slowRequest:
			logger.Warn("slow request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// GetRequestID 当前请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}
