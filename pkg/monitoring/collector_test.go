package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codelieche/todobackend/pkg/core"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type fakeCounter struct {
	total int64
	done  int64
	err   error
	calls int
}

func (f *fakeCounter) Count(ctx context.Context, filter *core.TodoFilter) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	if filter != nil && filter.Completed != nil && *filter.Completed {
		return f.done, nil
	}
	return f.total, nil
}

func TestUpdateTodoMetrics(t *testing.T) {
	counter := &fakeCounter{total: 5, done: 2}

	assert.NoError(t, UpdateTodoMetrics(context.Background(), counter))
	assert.Equal(t, float64(5), testutil.ToFloat64(GlobalMetrics.TodoTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(GlobalMetrics.TodoByCompleted.WithLabelValues("true")))
	assert.Equal(t, float64(3), testutil.ToFloat64(GlobalMetrics.TodoByCompleted.WithLabelValues("false")))
}

func TestUpdateTodoMetrics_Error(t *testing.T) {
	counter := &fakeCounter{err: errors.New("server selection timeout")}
	assert.Error(t, UpdateTodoMetrics(context.Background(), counter))
	assert.NoError(t, UpdateTodoMetrics(context.Background(), nil))
}

func TestStartMetricsCollector_WaitsForReady(t *testing.T) {
	counter := &fakeCounter{total: 1}
	ready := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		StartMetricsCollector(ctx, counter, time.Hour, ready)
		close(done)
	}()

	// 未就绪前取消，不会进行任何采集
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("collector did not stop")
	}
	assert.Equal(t, 0, counter.calls)
}

func TestObserveQuery(t *testing.T) {
	before := testutil.ToFloat64(GlobalMetrics.DatabaseQueries.WithLabelValues("find", "todos", "error"))
	ObserveQuery("find", "todos", errors.New("boom"))
	after := testutil.ToFloat64(GlobalMetrics.DatabaseQueries.WithLabelValues("find", "todos", "error"))
	assert.Equal(t, before+1, after)
}
