package config

import (
	"strconv"
)

// DefaultPort 默认监听端口
const DefaultPort = 3001

// web 配置
type web struct {
	Host    string // 监听主机
	Port    int    // 监听端口
	GinMode string // gin的运行模式：debug、release、test
}

// Address 获取web服务监听的地址
func (w *web) Address() string {
	return w.Host + ":" + strconv.Itoa(w.Port)
}

var Web *web

// parseWeb 解析web配置
func parseWeb() {
	Web = &web{
		Host:    GetDefaultEnv("API_HOST", "0.0.0.0"),
		Port:    GetDefaultEnvInt("API_PORT", DefaultPort),
		GinMode: GetDefaultEnv("GIN_MODE", "release"),
	}
}

func init() {
	parseWeb()
}
