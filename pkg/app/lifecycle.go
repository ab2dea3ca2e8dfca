package app

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/codelieche/todobackend/pkg/utils/logger"
	"go.uber.org/zap"
)

// State 进程生命周期状态
type State int32

const (
	StateRunning      State = iota // 正常运行
	StateShuttingDown              // 正在关闭，终态
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StateShuttingDown:
		return "SHUTTING_DOWN"
	default:
		return "UNKNOWN"
	}
}

// Shutdowner 可以优雅停止的服务，*http.Server满足此接口
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// Disconnecter 需要在退出前断开的连接，*datasources.MongoDB满足此接口
type Disconnecter interface {
	Disconnect(ctx context.Context) error
}

// Lifecycle 生命周期控制器
//
// 收到SIGINT/SIGTERM后只执行一次关闭流程：
// 1. 记录收到的信号
// 2. 停止HTTP服务
// 3. 停止后台采集任务
// 4. 断开数据库连接
// 5. 刷新日志缓冲区，然后以0退出
type Lifecycle struct {
	state    atomic.Int32
	server   Shutdowner
	database Disconnecter
	cancel   context.CancelFunc // 停止后台任务
	timeout  time.Duration      // 关闭流程的最长时间，0表示不限制
	exit     func(code int)
}

// NewLifecycle 创建生命周期控制器，server、database、cancel都可以为nil
func NewLifecycle(server Shutdowner, database Disconnecter, cancel context.CancelFunc, timeout time.Duration) *Lifecycle {
	return &Lifecycle{
		server:   server,
		database: database,
		cancel:   cancel,
		timeout:  timeout,
		exit:     os.Exit,
	}
}

// SetExit 替换退出函数，测试时用于观察退出码
func (l *Lifecycle) SetExit(exit func(code int)) {
	l.exit = exit
}

// State 当前状态
func (l *Lifecycle) State() State {
	return State(l.state.Load())
}

// Shutdown 执行关闭流程
// 只有第一次调用会真正执行，返回值表示本次调用是否执行了关闭
func (l *Lifecycle) Shutdown(sig os.Signal) bool {
	if !l.state.CompareAndSwap(int32(StateRunning), int32(StateShuttingDown)) {
		logger.Debug("shutdown already in progress, signal ignored", zap.Stringer("signal", sig))
		return false
	}

	logger.Info("received signal, shutting down", zap.Stringer("signal", sig))

	ctx := context.Background()
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	if l.server != nil {
		if err := l.server.Shutdown(ctx); err != nil {
			logger.Error("http server shutdown failed", zap.Error(err))
		} else {
			logger.Info("http server stopped")
		}
	}

	if l.cancel != nil {
		l.cancel()
	}

	if l.database != nil {
		if err := l.database.Disconnect(ctx); err != nil {
			logger.Error("database disconnect failed", zap.Error(err))
		} else {
			logger.Info("database disconnected")
		}
	}

	_ = logger.Sync()
	l.exit(0)
	return true
}

// Watch 从signals中读取信号并触发关闭，channel关闭后返回
func (l *Lifecycle) Watch(signals <-chan os.Signal) {
	for sig := range signals {
		l.Shutdown(sig)
	}
}

// Listen 监听SIGINT和SIGTERM，阻塞当前goroutine
func (l *Lifecycle) Listen() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	l.Watch(quit)
}
