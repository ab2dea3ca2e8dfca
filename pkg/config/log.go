package config

type log struct {
	Level      string // 日志级别
	Format     string // 日志格式
	Output     string // 日志输出
	FilePath   string // 日志文件路径
	MaxSize    int    // 日志文件最大大小
	MaxAge     int    // 日志文件最大年龄
	MaxBackups int    // 日志文件最大备份数
	Compress   bool   // 日志文件是否压缩
}

var Log *log

func parseLog() {
	Log = &log{
		Level:      GetDefaultEnv("LOG_LEVEL", "info"),
		Format:     GetDefaultEnv("LOG_FORMAT", "json"),
		Output:     GetDefaultEnv("LOG_OUTPUT", "console"),
		FilePath:   GetDefaultEnv("LOG_FILE_PATH", "./logs/todo-backend.log"),
		MaxSize:    GetDefaultEnvInt("LOG_MAX_SIZE", 100),
		MaxAge:     GetDefaultEnvInt("LOG_MAX_AGE", 7),
		MaxBackups: GetDefaultEnvInt("LOG_MAX_BACKUPS", 0),
		Compress:   GetDefaultEnvBool("LOG_COMPRESS", false),
	}
}

func init() {
	parseLog()
}
