// Package monitoring 提供系统监控指标收集功能
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 系统监控指标结构体
type Metrics struct {
	// HTTP 请求相关指标
	HTTPRequestsTotal    *prometheus.CounterVec   // HTTP 请求总数
	HTTPRequestDuration  *prometheus.HistogramVec // HTTP 请求耗时
	HTTPRequestsInFlight prometheus.Gauge         // 当前正在处理的 HTTP 请求数

	// 业务相关指标
	TodoTotal       prometheus.Gauge     // 待办事项总数
	TodoByCompleted *prometheus.GaugeVec // 按完成状态分组的待办事项数

	// 数据库相关指标
	DatabaseUp      prometheus.Gauge       // 数据库是否就绪（1就绪，0未就绪）
	DatabaseQueries *prometheus.CounterVec // 数据库操作次数
}

// GlobalMetrics 全局监控指标实例
var GlobalMetrics *Metrics

func init() {
	GlobalMetrics = &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todo_http_requests_total",
				Help: "The total number of HTTP requests.",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todo_http_request_duration_seconds",
				Help:    "The HTTP request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "todo_http_requests_in_flight",
				Help: "The current number of HTTP requests being processed.",
			},
		),
		TodoTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "todo_items_total",
				Help: "The total number of todo items.",
			},
		),
		TodoByCompleted: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "todo_items_by_completed",
				Help: "The number of todo items by completed flag.",
			},
			[]string{"completed"},
		),
		DatabaseUp: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "todo_database_up",
				Help: "Whether the document database answered the readiness probe.",
			},
		),
		DatabaseQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todo_database_queries_total",
				Help: "The total number of database operations.",
			},
			[]string{"operation", "collection", "result"},
		),
	}
}

// ObserveQuery 记录一次数据库操作
func ObserveQuery(operation, collection string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	GlobalMetrics.DatabaseQueries.WithLabelValues(operation, collection, result).Inc()
}
