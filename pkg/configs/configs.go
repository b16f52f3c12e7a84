// Package configs 提供应用程序配置管理功能
package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 RAML2DOC_LOG_LEVEL
const EnvPrefix = "RAML2DOC"

// Config 应用配置结构
type Config struct {
	Version  string         `mapstructure:"version"`
	Log      LogConfig      `mapstructure:"log"`
	App      AppConfig      `mapstructure:"app"`
	Convert  ConvertConfig  `mapstructure:"convert"`
	Proxy    ProxyConfig    `mapstructure:"proxy"`
	Validate ValidateConfig `mapstructure:"validate"`
	Preview  PreviewConfig  `mapstructure:"preview"`
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "1.0")
	setLogConfigDefaults(v)
	setAppConfigDefaults(v)
	setConvertConfigDefaults(v)
	setProxyConfigDefaults(v)
	setValidateConfigDefaults(v)
	setPreviewConfigDefaults(v)
}

var globalConfig *Config

// searchPaths 返回配置文件搜索路径
func searchPaths() []string {
	paths := []string{
		".",
		"./configs",
		"$HOME",
		"$HOME/.config",
		"$HOME/.config/raml2doc",
	}

	// Windows 特殊路径
	if runtime.GOOS == "windows" {
		paths = append(paths,
			"$USERPROFILE",
			"$APPDATA/raml2doc",
		)
	} else {
		paths = append(paths, "/etc/raml2doc")
	}
	return paths
}

// tryLoadConfigFiles 尝试加载不同格式的配置文件
func tryLoadConfigFiles() bool {
	// 配置文件名和扩展名的组合
	configNames := []string{".raml2doc", "raml2doc"}
	extensions := []string{"yaml", "yml", "json", "toml"}

	for _, path := range searchPaths() {
		for _, name := range configNames {
			for _, ext := range extensions {
				configFile := filepath.Join(path, name+"."+ext)

				// 展开环境变量
				if strings.Contains(configFile, "$") {
					configFile = os.ExpandEnv(configFile)
				}

				if _, err := os.Stat(configFile); err == nil {
					viper.SetConfigFile(configFile)
					return true
				}
			}
		}
	}

	return false
}

// LoadConfig 加载配置文件
// configPath 为空时按搜索路径查找，找不到配置文件时只使用默认值和环境变量
func LoadConfig(configPath string) (*Config, error) {
	found := true
	if configPath != "" {
		// 使用指定的配置文件路径
		viper.SetConfigFile(configPath)
	} else {
		found = tryLoadConfigFiles()
	}

	// 设置环境变量前缀
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 设置默认值
	setDefaults(viper.GetViper())

	// 读取配置文件
	if found {
		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 确保日志目录存在
	if config.Log.Mode == "file" || config.Log.Mode == "both" {
		logDir := filepath.Dir(config.Log.FilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("创建日志目录失败: %w", err)
		}
	}

	globalConfig = &config
	return &config, nil
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if globalConfig == nil {
		config, err := LoadConfig("")
		if err != nil {
			panic(fmt.Sprintf("无法加载配置: %v", err))
		}
		return config
	}
	return globalConfig
}
