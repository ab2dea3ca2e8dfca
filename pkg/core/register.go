package core

import "github.com/gin-gonic/gin"

// Registrar 资源路由注册器
//
// 在服务开始监听之前，同步地把某个资源的增删改查接口挂载到router的basePath下
type Registrar interface {
	Register(router gin.IRouter, basePath string)
}
