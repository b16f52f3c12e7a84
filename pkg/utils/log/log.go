// Package log 初始化 raml2doc 的日志记录器
// 使用 zerolog，日志写到 stderr（stdout 留给命令输出），可选 lumberjack 轮转文件
package log

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yeisme/raml2doc/pkg/configs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger 日志记录器类型，各个包通过参数注入
type Logger = *zerolog.Logger

// consoleTimeFormat 控制台输出的时间格式
const consoleTimeFormat = "15:04:05"

// globalLogger 由 InitLogger 设置，Component 从它派生
var globalLogger Logger

// InitLogger 按配置创建日志记录器并设为全局
// 优先级：quiet > debug > verbose > config.Level
func InitLogger(ctx context.Context, config *configs.LogConfig, appConfig *configs.AppConfig) Logger {
	if appConfig.Quiet {
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
		return setGlobal(zerolog.New(io.Discard))
	}
	zerolog.SetGlobalLevel(levelFor(config, appConfig))

	c := zerolog.New(output(config)).With().Timestamp()
	switch {
	case appConfig.Debug:
		// debug 时记录调用位置，便于定位哪个 RAML 节点触发了警告
		c = c.Caller().Str("app", appConfig.Name).Ctx(ctx)
	case appConfig.Verbose:
		c = c.Str("app", appConfig.Name).Ctx(ctx)
	}
	return setGlobal(c.Logger())
}

func setGlobal(l zerolog.Logger) Logger {
	globalLogger = &l
	log.Logger = l
	return &l
}

func levelFor(config *configs.LogConfig, appConfig *configs.AppConfig) zerolog.Level {
	switch {
	case appConfig.Debug:
		return zerolog.DebugLevel
	case appConfig.Verbose:
		return zerolog.InfoLevel
	default:
		return parseLogLevel(config.Level)
	}
}

// output 根据 mode 选择输出：console（默认）、file 或 both
func output(config *configs.LogConfig) io.Writer {
	switch strings.ToLower(config.Mode) {
	case "file":
		return fileWriter(config)
	case "both":
		return io.MultiWriter(consoleWriter(config.JSON), fileWriter(config))
	default:
		return consoleWriter(config.JSON)
	}
}

func consoleWriter(useJSON bool) io.Writer {
	if useJSON {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: consoleTimeFormat,
	}
}

// fileWriter 使用 lumberjack 轮转日志文件，目录无法创建时退回 stderr
func fileWriter(config *configs.LogConfig) io.Writer {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,    // megabytes
		MaxBackups: config.MaxBackups, // 保留备份数量
		MaxAge:     config.MaxAge,     // days
		Compress:   true,
	}
}

// GetLogger 返回全局日志记录器，未初始化时按默认配置初始化
func GetLogger() Logger {
	if globalLogger == nil {
		config := configs.GetConfig()
		return InitLogger(context.Background(), &config.Log, &config.App)
	}
	return globalLogger
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// Component 返回带 component 字段的子日志记录器，例如 proxy、generator
func Component(name string) Logger {
	l := GetLogger().With().Str("component", name).Logger()
	return &l
}

// Nop 丢弃所有输出，库代码在未注入 logger 时使用
func Nop() Logger {
	l := zerolog.Nop()
	return &l
}
