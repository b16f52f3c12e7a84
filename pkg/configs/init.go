package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultConfig 返回只包含默认值的配置
func DefaultConfig() Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	_ = v.Unmarshal(&config)
	return config
}

// CreateDefaultConfig 在 path 写入默认配置文件
// 文件已存在时返回错误，不覆盖用户配置
func CreateDefaultConfig(path string, format OutputFormat) error {
	if format == FormatText {
		return fmt.Errorf("text format is not supported for config files")
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	b, err := Marshal(toMap(DefaultConfig()), format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建配置目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}

// toMap 使用 mapstructure 键名输出配置，保证写出的文件可以被重新加载
func toMap(c Config) map[string]any {
	return map[string]any{
		"version": c.Version,
		"log": map[string]any{
			"level":       c.Log.Level,
			"json":        c.Log.JSON,
			"mode":        c.Log.Mode,
			"file_path":   c.Log.FilePath,
			"max_size":    c.Log.MaxSize,
			"max_backups": c.Log.MaxBackups,
			"max_age":     c.Log.MaxAge,
		},
		"app": map[string]any{
			"name":    c.App.Name,
			"debug":   c.App.Debug,
			"verbose": c.App.Verbose,
			"quiet":   c.App.Quiet,
		},
		"convert": map[string]any{
			"template":   c.Convert.Template,
			"schema_dir": c.Convert.SchemaDir,
			"annex":      c.Convert.Annex,
			"put":        c.Convert.Put,
		},
		"proxy": map[string]any{
			"enabled": c.Proxy.Enabled,
			"host":    c.Proxy.Host,
			"port":    c.Proxy.Port,
			"timeout": c.Proxy.Timeout,
		},
		"validate": map[string]any{
			"examples": c.Validate.Examples,
			"jsonlint": c.Validate.JSONLint,
		},
		"preview": map[string]any{
			"theme": c.Preview.Theme,
			"width": c.Preview.Width,
		},
	}
}
