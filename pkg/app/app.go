// Package app 应用程序核心模块
//
// 负责应用程序的初始化、配置和启动流程
// 包括中间件、路由注册、数据库连接和优雅关闭
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/codelieche/todobackend/pkg/config"
	"github.com/codelieche/todobackend/pkg/controllers"
	"github.com/codelieche/todobackend/pkg/core"
	"github.com/codelieche/todobackend/pkg/datasources"
	"github.com/codelieche/todobackend/pkg/middleware"
	"github.com/codelieche/todobackend/pkg/monitoring"
	"github.com/codelieche/todobackend/pkg/services"
	"github.com/codelieche/todobackend/pkg/store"
	"github.com/codelieche/todobackend/pkg/utils/logger"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// newApp 创建并配置Gin Web应用实例
//
// 中间件顺序：
//   - 异常恢复
//   - Prometheus指标和访问日志
//   - CORS跨域
//   - 表单请求体解析
//   - JSON请求体解析
func newApp() *gin.Engine {
	gin.SetMode(config.Web.GinMode)
	app := gin.New()

	app.Use(gin.Recovery())
	app.Use(middleware.PrometheusMiddleware())
	app.Use(middleware.LoggingMiddleware())

	// CORS中间件必须在所有路由之前注册
	app.Use(middleware.CORSMiddleware())

	app.Use(middleware.URLEncodedBodyMiddleware())
	app.Use(middleware.JSONBodyMiddleware())

	return app
}

// Run 启动API服务器
//
// 执行步骤：
// 1. 初始化日志系统
// 2. 连接MongoDB（不等待数据库就绪，除非设置了MONGO_WAIT_READY）
// 3. 初始化路由，注册/api/todos
// 4. 绑定端口并在goroutine中提供服务
// 5. 阻塞等待关闭信号
func Run() {
	logger.InitLogger()
	logger.Info("todo backend starting",
		zap.String("address", config.Web.Address()),
		zap.String("mongo", config.Mongo.URI()),
		zap.String("version", config.Version))

	db, err := datasources.ConnectMongoDB(config.Mongo.URI(), config.Mongo.Database, config.Mongo.ConnectTimeout)
	if err != nil {
		logger.Fatal("MongoDB客户端创建失败", zap.Error(err))
	}

	if config.Mongo.WaitReady {
		ctx, cancel := context.WithTimeout(context.Background(), config.Mongo.ConnectTimeout)
		err := db.WaitReady(ctx)
		cancel()
		if err != nil {
			logger.Fatal("等待MongoDB就绪失败", zap.Error(err))
		}
	}

	// 后台任务的ctx，关闭时取消
	ctx, cancel := context.WithCancel(context.Background())

	collection := db.Collection(core.TodoCollection)
	go ensureIndexes(ctx, db, collection)

	todoStore := store.NewTodoStore(store.WrapCollection(collection))
	todoService := services.NewTodoService(todoStore)

	app := buildApp(routerDeps{
		health: controllers.NewHealthController(db),
		todos:  controllers.NewTodoController(todoService),
	})

	listener, err := listen(config.Web.Address())
	if err != nil {
		logger.Fatal("端口监听失败", zap.String("address", config.Web.Address()), zap.Error(err))
	}
	server := serve(app, listener, config.Web.Port)

	go monitoring.StartMetricsCollector(ctx, todoService, config.App.MetricsCollectInterval, db.Ready())

	NewLifecycle(server, db, cancel, config.App.ShutdownTimeout).Listen()
}

// buildApp 先注册中间件，再挂载路由
func buildApp(deps routerDeps) *gin.Engine {
	app := newApp()
	initRouter(app, deps)
	return app
}

// listen 同步绑定端口，失败时由调用方决定是否退出
func listen(address string) (net.Listener, error) {
	return net.Listen("tcp", address)
}

// serve 输出启动日志，然后在goroutine中提供服务
func serve(handler http.Handler, listener net.Listener, port int) *http.Server {
	server := &http.Server{
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info(fmt.Sprintf("BACKEND is running on port %d", port))
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP服务异常退出", zap.Error(err))
		}
	}()
	return server
}

// ensureIndexes 数据库就绪后创建索引
func ensureIndexes(ctx context.Context, db *datasources.MongoDB, collection *mongo.Collection) {
	select {
	case <-ctx.Done():
		return
	case <-db.Ready():
	}
	if !db.IsReady() {
		return
	}

	if err := store.EnsureIndexes(ctx, collection); err != nil {
		logger.Warn("创建索引失败", zap.String("collection", collection.Name()), zap.Error(err))
		return
	}
	logger.Info("索引检查完成", zap.String("collection", collection.Name()))
}
