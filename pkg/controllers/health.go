package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/codelieche/todobackend/pkg/config"
	"github.com/codelieche/todobackend/pkg/utils/controllers"
	"github.com/codelieche/todobackend/pkg/utils/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DatabaseChecker 健康检查需要的数据库状态
type DatabaseChecker interface {
	IsReady() bool
	Err() error
	Ping(ctx context.Context) error
}

// HealthController 健康检查控制器
// 接口挂在根路径而不是/api下，所以没有写入swagger文档
type HealthController struct {
	controllers.BaseController
	db        DatabaseChecker
	startTime time.Time
}

// NewHealthController 创建HealthController实例
func NewHealthController(db DatabaseChecker) *HealthController {
	return &HealthController{
		db:        db,
		startTime: time.Now(),
	}
}

// Health 健康检查接口
func (hc *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	dbMessage := ""
	dbCheckTime := time.Now()
	if err := hc.db.Ping(ctx); err != nil {
		dbStatus = "error"
		dbMessage = err.Error()
		logger.Warn("MongoDB Ping失败", zap.Error(err))
	}
	dbCheckDuration := time.Since(dbCheckTime)

	response := gin.H{
		"status":  "ok",
		"version": config.Version,
		"uptime":  time.Since(hc.startTime).Round(time.Second).String(),
		"services": gin.H{
			"mongodb": gin.H{
				"status":    dbStatus,
				"ready":     hc.db.IsReady(),
				"message":   dbMessage,
				"latency":   dbCheckDuration.String(),
				"timestamp": dbCheckTime.Format(time.RFC3339),
			},
		},
		"timestamp": time.Now().Format(time.RFC3339),
	}

	// 数据库不可用时整体状态降级，但接口本身仍返回200
	if dbStatus != "ok" {
		response["status"] = "degraded"
	}

	hc.HandleOK(c, response)
}

// Readiness 就绪检查，数据库就绪前返回503
func (hc *HealthController) Readiness(c *gin.Context) {
	if !hc.db.IsReady() {
		message := "database is not ready"
		if err := hc.db.Err(); err != nil {
			message = err.Error()
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    http.StatusServiceUnavailable,
			"message": message,
		})
		return
	}
	hc.HandleOK(c, gin.H{"status": "ready"})
}

// Liveness 存活检查
func (hc *HealthController) Liveness(c *gin.Context) {
	hc.HandleOK(c, gin.H{"status": "alive"})
}
