package monitoring

import (
	"context"
	"time"

	"github.com/codelieche/todobackend/pkg/core"
	"github.com/codelieche/todobackend/pkg/utils/logger"
	"go.uber.org/zap"
)

// TodoCounter 采集业务指标需要的统计能力
type TodoCounter interface {
	Count(ctx context.Context, filter *core.TodoFilter) (int64, error)
}

// UpdateTodoMetrics 更新待办事项相关的监控指标
func UpdateTodoMetrics(ctx context.Context, counter TodoCounter) error {
	if counter == nil {
		return nil
	}

	total, err := counter.Count(ctx, nil)
	if err != nil {
		logger.Warn("failed to count todos for metrics", zap.Error(err))
		return err
	}
	GlobalMetrics.TodoTotal.Set(float64(total))

	completed := true
	done, err := counter.Count(ctx, &core.TodoFilter{Completed: &completed})
	if err != nil {
		logger.Warn("failed to count completed todos for metrics", zap.Error(err))
		return err
	}
	GlobalMetrics.TodoByCompleted.WithLabelValues("true").Set(float64(done))
	GlobalMetrics.TodoByCompleted.WithLabelValues("false").Set(float64(total - done))
	return nil
}

// StartMetricsCollector 启动监控指标收集器，ctx取消后退出
// ready不为nil时，等数据库就绪后才开始采集
func StartMetricsCollector(ctx context.Context, counter TodoCounter, interval time.Duration, ready <-chan struct{}) {
	if ready != nil {
		select {
		case <-ctx.Done():
			return
		case <-ready:
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	_ = UpdateTodoMetrics(ctx, counter)
	for {
		select {
		case <-ctx.Done():
			logger.Info("metrics collector stopped")
			return
		case <-ticker.C:
			_ = UpdateTodoMetrics(ctx, counter)
		}
	}
}
