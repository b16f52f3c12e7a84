package log

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeisme/raml2doc/pkg/configs"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLogLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, parseLogLevel("warning"))
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel("nonsense"))
}

// 测试 quiet 优先于 debug
func TestInitLoggerQuiet(t *testing.T) {
	l := InitLogger(context.Background(), &configs.LogConfig{Level: "debug"}, &configs.AppConfig{Quiet: true, Debug: true})
	require.NotNil(t, l)
	assert.Equal(t, zerolog.PanicLevel, zerolog.GlobalLevel())
	assert.Same(t, l, GetLogger())
}

// 测试文件输出模式会写入日志文件
func TestInitLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "raml2doc.log")
	l := InitLogger(context.Background(), &configs.LogConfig{
		Level:    "info",
		Mode:     "file",
		FilePath: path,
		MaxSize:  1,
	}, &configs.AppConfig{Name: "raml2doc"})

	l.Info().Msg("document saved")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "document saved")
}

func TestComponent(t *testing.T) {
	InitLogger(context.Background(), &configs.LogConfig{Level: "info"}, &configs.AppConfig{Quiet: true})
	assert.NotNil(t, Component("proxy"))
	assert.NotNil(t, Nop())
}
