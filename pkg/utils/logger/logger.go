// Package logger 全局日志
//
// 基于zap的结构化日志，文件输出通过lumberjack滚动
package logger

import (
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/codelieche/todobackend/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 全局日志器
var (
	logger *zap.Logger
	level  = zap.NewAtomicLevel()
	once   sync.Once
	mu     sync.RWMutex
)

// createFileSyncer 创建文件日志写入器
func createFileSyncer(filePath string) (zapcore.WriteSyncer, error) {
	logConfig := config.Log

	// 确保日志目录存在
	if err := os.MkdirAll(path.Dir(filePath), 0755); err != nil {
		return nil, err
	}

	// 使用 lumberjack 进行日志文件滚动
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    logConfig.MaxSize,
		MaxAge:     logConfig.MaxAge,
		MaxBackups: logConfig.MaxBackups,
		Compress:   logConfig.Compress,
	}
	return zapcore.AddSync(writer), nil
}

// newWriteSyncer 根据输出方式选择写入器
func newWriteSyncer(output, filePath string) zapcore.WriteSyncer {
	stdoutSyncer := zapcore.AddSync(os.Stdout)

	switch output {
	case "all", "both", "file":
		fileSyncer, err := createFileSyncer(filePath)
		if err != nil {
			// 文件不可写时退回到标准输出
			fmt.Fprintf(os.Stderr, "创建日志文件失败: %v, 日志将输出到标准输出\n", err)
			return stdoutSyncer
		}
		if output == "file" {
			return fileSyncer
		}
		return zapcore.NewMultiWriteSyncer(stdoutSyncer, fileSyncer)
	default:
		return stdoutSyncer
	}
}

// InitLogger 初始化日志，只会执行一次
func InitLogger() {
	once.Do(func() {
		logConfig := config.Log
		setLogLevel(logConfig.Level)

		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "time"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
		encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

		var encoder zapcore.Encoder
		if logConfig.Format == "json" {
			encoder = zapcore.NewJSONEncoder(encoderConfig)
		} else {
			encoder = zapcore.NewConsoleEncoder(encoderConfig)
		}

		core := zapcore.NewCore(encoder, newWriteSyncer(logConfig.Output, logConfig.FilePath), level)

		// 日志函数外面包了一层，调用栈需要跳过1层
		l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.FatalLevel))

		mu.Lock()
		if logger == nil {
			logger = l
		}
		mu.Unlock()
		zap.ReplaceGlobals(l)
	})
}

// SetLogger 替换全局日志器，主要用于测试
func SetLogger(l *zap.Logger) {
	once.Do(func() {})
	mu.Lock()
	logger = l
	mu.Unlock()
}

// setLogLevel 设置日志级别
func setLogLevel(levelStr string) {
	var zapLevel zapcore.Level

	switch strings.ToLower(levelStr) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	case "fatal":
		zapLevel = zapcore.FatalLevel
	default:
		zapLevel = zapcore.InfoLevel
		fmt.Fprintf(os.Stderr, "无效的日志级别: %s, 使用默认级别 info\n", levelStr)
	}

	level.SetLevel(zapLevel)
}

// Logger 获取logger实例
func Logger() *zap.Logger {
	InitLogger()
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug 级别日志
func Debug(msg string, fields ...zap.Field) {
	Logger().Debug(msg, fields...)
}

// Info 级别日志
func Info(msg string, fields ...zap.Field) {
	Logger().Info(msg, fields...)
}

// Warn 级别日志
func Warn(msg string, fields ...zap.Field) {
	Logger().Warn(msg, fields...)
}

// Error 级别日志
func Error(msg string, fields ...zap.Field) {
	Logger().Error(msg, fields...)
}

// Fatal 级别日志
func Fatal(msg string, fields ...zap.Field) {
	Logger().Fatal(msg, fields...)
}

// Sync 刷新日志缓存
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	if logger != nil {
		return logger.Sync()
	}
	return nil
}
