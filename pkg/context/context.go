// Package context 保存一次命令执行所需的上下文：配置、viper 实例和日志记录器
package context

import (
	"context"

	"github.com/spf13/viper"
	"github.com/yeisme/raml2doc/pkg/configs"
	"github.com/yeisme/raml2doc/pkg/utils/log"
)

// GlobalFlags 根命令上的全局参数
type GlobalFlags struct {
	ConfigPath    string
	Debug         bool
	Verbose       bool
	Quiet         bool
	VersionEnable bool
}

// Raml2docContext 命令执行上下文
type Raml2docContext struct {
	context.Context
	Config *configs.Config // 应用配置
	Viper  *viper.Viper    // 配置来源，供 config 子命令查询
	Logger log.Logger      // 日志记录器
}

// InitRaml2docContext 加载配置并初始化日志
// 命令行上的 debug/verbose/quiet 覆盖配置文件中的值
func InitRaml2docContext(ctx context.Context, flags GlobalFlags) (*Raml2docContext, error) {
	config, err := configs.LoadConfig(flags.ConfigPath)
	if err != nil {
		return nil, err
	}

	if flags.Debug {
		config.App.Debug = true
	}
	if flags.Verbose {
		config.App.Verbose = true
	}
	if flags.Quiet {
		config.App.Quiet = true
	}

	logger := log.InitLogger(ctx, &config.Log, &config.App)

	return &Raml2docContext{
		Context: ctx,
		Config:  config,
		Viper:   viper.GetViper(),
		Logger:  logger,
	}, nil
}
