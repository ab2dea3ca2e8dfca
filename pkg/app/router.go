package app

import (
	"net/http"

	_ "github.com/codelieche/todobackend/docs" // 导入生成的 Swagger 文档
	"github.com/codelieche/todobackend/pkg/config"
	"github.com/codelieche/todobackend/pkg/controllers"
	"github.com/codelieche/todobackend/pkg/core"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// APIPrefix 所有资源路由的前缀
const APIPrefix = "/api"

// routerDeps 注册路由需要的控制器
type routerDeps struct {
	health *controllers.HealthController
	todos  core.Registrar
}

// initRouter 初始化所有路由
//
// 运维接口不带前缀：/、/health、/readiness、/liveness、/metrics、/swagger
// 资源接口统一挂载在 /api 下，目前只有 /api/todos
func initRouter(app *gin.Engine, deps routerDeps) {
	// 根路径 - 系统状态检查
	app.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Todo Backend 运行正常",
			"version": config.Version,
			"status":  "running",
		})
	})

	// Swagger 文档路由
	app.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus 指标
	app.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if deps.health != nil {
		app.GET("/health", deps.health.Health)       // 详细健康检查
		app.GET("/readiness", deps.health.Readiness) // 就绪检查（K8s readiness probe）
		app.GET("/liveness", deps.health.Liveness)   // 存活检查（K8s liveness probe）
	}

	apis := app.Group(APIPrefix)
	if deps.todos != nil {
		deps.todos.Register(apis, "/todos")
	}
}
