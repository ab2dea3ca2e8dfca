package config

import (
	"fmt"
	"time"
)

const (
	// DefaultMongoHost 默认的MongoDB主机
	DefaultMongoHost = "localhost"
	// MongoDatabase 数据库名称，固定为todo
	MongoDatabase = "todo"
)

// mongo MongoDB配置
type mongo struct {
	Host           string        // 数据库主机，可带端口
	Database       string        // 数据库名称
	ConnectTimeout time.Duration // 连接及就绪探测的超时时间
	WaitReady      bool          // 启动时是否等待数据库就绪
}

// URI 获取MongoDB的连接字符串
// 格式: mongodb://{host}/todo
func (m *mongo) URI() string {
	return fmt.Sprintf("mongodb://%s/%s", m.Host, m.Database)
}

// Mongo MongoDB配置
var Mongo *mongo

// parseMongo 解析MongoDB配置
func parseMongo() {
	timeout := GetDefaultEnvInt("MONGO_CONNECT_TIMEOUT", 10)
	if timeout <= 0 {
		timeout = 10
	}

	Mongo = &mongo{
		Host:           GetDefaultEnv("MONGO_SERVER", DefaultMongoHost),
		Database:       MongoDatabase,
		ConnectTimeout: time.Duration(timeout) * time.Second,
		WaitReady:      GetDefaultEnvBool("MONGO_WAIT_READY", false),
	}
}

func init() {
	parseMongo()
}
