// Package main Todo Backend 主程序
//
// 待办事项管理的REST后端：
// 1. /api/todos 待办事项的增删改查
// 2. 健康检查和Prometheus指标
// 3. Swagger文档
//
// 数据存储在MongoDB的todo库中，连接地址由MONGO_SERVER指定

// @title           Todo Backend API
// @version         1.0.0
// @description     待办事项的增删改查接口

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /api
package main

import (
	"github.com/codelieche/todobackend/pkg/app"
)

// main 程序入口点，阻塞直到收到关闭信号
func main() {
	app.Run()
}
