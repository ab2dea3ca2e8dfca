package config

import "time"

// SystemCode 系统代码
const SystemCode = "todo_backend"

// Version 当前版本
const Version = "1.0.0"

// app 进程级配置
type app struct {
	ShutdownTimeout        time.Duration // 优雅关闭的最长时间，0表示不限制
	MetricsCollectInterval time.Duration // 业务指标采集间隔
}

var App *app

func parseApp() {
	shutdownTimeout := GetDefaultEnvInt("SHUTDOWN_TIMEOUT", 30)
	if shutdownTimeout < 0 {
		shutdownTimeout = 0
	}
	collectInterval := GetDefaultEnvInt("METRICS_COLLECT_INTERVAL", 30)
	if collectInterval <= 0 {
		collectInterval = 30
	}

	App = &app{
		ShutdownTimeout:        time.Duration(shutdownTimeout) * time.Second,
		MetricsCollectInterval: time.Duration(collectInterval) * time.Second,
	}
}

func init() {
	parseApp()
}
