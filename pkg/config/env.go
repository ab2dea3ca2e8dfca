// Package config 配置模块
//
// 所有配置都来自环境变量，缺失或为空时使用默认值
package config

import (
	"os"
	"strconv"
)

// GetDefaultEnv 获取环境变量，若不存在或为空则返回默认值
// 取值原样返回，不展开其中的$
// key: 环境变量名
// value: 默认值
// return: 环境变量值
func GetDefaultEnv(key, value string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return value
	}
	return val
}

// GetDefaultEnvInt 获取整数类型的环境变量，解析失败时返回默认值
func GetDefaultEnvInt(key string, value int) int {
	valStr := GetDefaultEnv(key, "")
	if valStr == "" {
		return value
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return value
	}
	return val
}

// GetDefaultEnvBool 获取布尔类型的环境变量，解析失败时返回默认值
func GetDefaultEnvBool(key string, value bool) bool {
	valStr := GetDefaultEnv(key, "")
	if valStr == "" {
		return value
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return value
	}
	return val
}

// Parse 重新从环境变量解析全部配置
// 包加载时已经自动执行过一次，测试中修改环境变量后可以再次调用
func Parse() {
	parseWeb()
	parseMongo()
	parseLog()
	parseApp()
}
