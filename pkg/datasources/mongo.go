// Package datasources 数据源连接管理
package datasources

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/codelieche/todobackend/pkg/config"
	"github.com/codelieche/todobackend/pkg/monitoring"
	"github.com/codelieche/todobackend/pkg/utils/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ErrNotReady 数据库还没有通过就绪探测
var ErrNotReady = errors.New("database is not ready")

// MongoDB 进程内唯一的MongoDB连接
//
// 连接在后台建立，Ready()在探测结束后关闭，Err()返回探测结果
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database

	uri     string
	ready   chan struct{}
	isReady atomic.Bool
	errMu   sync.RWMutex
	err     error

	disconnectOnce sync.Once
	disconnectErr  error
}

// ConnectMongoDB 创建MongoDB客户端并在后台探测连接
//
// 不会等待数据库可用，只有连接字符串或选项不合法时返回错误
func ConnectMongoDB(uri, database string, timeout time.Duration) (*MongoDB, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetAppName(config.SystemCode).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return nil, err
	}

	m := &MongoDB{
		Client:   client,
		Database: client.Database(database),
		uri:      uri,
		ready:    make(chan struct{}),
	}
	monitoring.GlobalMetrics.DatabaseUp.Set(0)

	go m.probe(timeout)
	return m, nil
}

// probe 后台执行就绪探测，失败只记录日志
func (m *MongoDB) probe(timeout time.Duration) {
	defer close(m.ready)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := m.Client.Ping(ctx, readpref.Primary()); err != nil {
		m.errMu.Lock()
		m.err = err
		m.errMu.Unlock()
		logger.Warn("MongoDB连接失败，服务将继续运行", zap.String("uri", m.uri), zap.Error(err))
		return
	}

	m.isReady.Store(true)
	monitoring.GlobalMetrics.DatabaseUp.Set(1)
	logger.Info("MongoDB连接成功", zap.String("uri", m.uri))
}

// Ready 就绪探测结束时关闭
func (m *MongoDB) Ready() <-chan struct{} {
	return m.ready
}

// IsReady 探测是否成功
func (m *MongoDB) IsReady() bool {
	return m.isReady.Load()
}

// Err 返回探测的错误，探测未结束时返回ErrNotReady
func (m *MongoDB) Err() error {
	select {
	case <-m.ready:
	default:
		return ErrNotReady
	}
	m.errMu.RLock()
	defer m.errMu.RUnlock()
	return m.err
}

// WaitReady 阻塞等待就绪探测结束
func (m *MongoDB) WaitReady(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m.ready:
		return m.Err()
	}
}

// Ping 检查数据库是否可用
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Collection 获取集合
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}

// Disconnect 关闭连接，多次调用只会真正关闭一次
func (m *MongoDB) Disconnect(ctx context.Context) error {
	m.disconnectOnce.Do(func() {
		m.disconnectErr = m.Client.Disconnect(ctx)
		m.isReady.Store(false)
		monitoring.GlobalMetrics.DatabaseUp.Set(0)
	})
	return m.disconnectErr
}
