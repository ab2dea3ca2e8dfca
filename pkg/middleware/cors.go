// Package middleware HTTP中间件
//
// 跨域、请求体解析、监控指标和访问日志
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods = "GET, HEAD, PUT, PATCH, POST, DELETE"
	corsAllowHeaders = "Origin, Content-Type, Content-Length, Accept, Accept-Encoding, Authorization, X-Requested-With"
)

// CORSMiddleware CORS跨域中间件
// 允许任意来源访问，预检请求直接返回204
// 这个中间件必须在所有路由之前注册
//
// 使用方式：
//
//	router.Use(middleware.CORSMiddleware())
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", corsAllowMethods)
			// 预检请求声明了需要的请求头时原样放行
			if requestHeaders := c.GetHeader("Access-Control-Request-Headers"); requestHeaders != "" {
				c.Header("Access-Control-Allow-Headers", requestHeaders)
				c.Writer.Header().Add("Vary", "Access-Control-Request-Headers")
			} else {
				c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
			}
			c.Header("Access-Control-Max-Age", "86400") // 24小时
			c.Header("Content-Length", "0")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
