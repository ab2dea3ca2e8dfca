package middleware

import (
	"strconv"
	"time"

	"github.com/codelieche/todobackend/pkg/monitoring"
	"github.com/codelieche/todobackend/pkg/utils/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PrometheusMiddleware Prometheus监控中间件
// 自动收集HTTP请求的监控指标
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		monitoring.GlobalMetrics.HTTPRequestsInFlight.Inc()
		defer monitoring.GlobalMetrics.HTTPRequestsInFlight.Dec()

		c.Next()

		// 未匹配到路由时用固定的标签，避免标签数量无限增长
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		method := c.Request.Method
		statusCode := strconv.Itoa(c.Writer.Status())

		monitoring.GlobalMetrics.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
		monitoring.GlobalMetrics.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// LoggingMiddleware 请求日志中间件
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		logger.Info("HTTP Request", fields...)
	}
}
