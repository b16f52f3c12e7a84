package configs

import "github.com/spf13/viper"

// DefaultTemplate 默认的 Word 模板文件名
const DefaultTemplate = "ResourceTemplate.docx"

// ConvertConfig 文档转换配置，命令行参数会覆盖这里的值
type ConvertConfig struct {
	Template  string `mapstructure:"template"`   // Word 模板文件
	SchemaDir string `mapstructure:"schema_dir"` // JSON schema 所在目录
	Annex     bool   `mapstructure:"annex"`      // 使用 ANNEX 标题样式
	Put       bool   `mapstructure:"put"`        // 属性表使用 put 方法而不是 get
}

// ProxyConfig 本地 schema 代理配置
type ProxyConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`    // 0 表示随机端口
	Timeout int    `mapstructure:"timeout"` // 上游请求超时，秒
}

// ValidateConfig JSON 示例校验配置
type ValidateConfig struct {
	Examples bool   `mapstructure:"examples"` // 转换时使用 schema 校验 JSON 示例
	JSONLint string `mapstructure:"jsonlint"` // 外部 jsonlint 命令，为空则不调用
}

// PreviewConfig 终端预览配置
type PreviewConfig struct {
	Theme string `mapstructure:"theme"`
	Width int    `mapstructure:"width"`
}

func setConvertConfigDefaults(v *viper.Viper) {
	v.SetDefault("convert.template", DefaultTemplate)
	v.SetDefault("convert.schema_dir", ".")
	v.SetDefault("convert.annex", false)
	v.SetDefault("convert.put", false)
}

func setProxyConfigDefaults(v *viper.Viper) {
	v.SetDefault("proxy.enabled", true)
	v.SetDefault("proxy.host", "127.0.0.1")
	v.SetDefault("proxy.port", 4321)
	v.SetDefault("proxy.timeout", 30)
}

func setValidateConfigDefaults(v *viper.Viper) {
	v.SetDefault("validate.examples", true)
	v.SetDefault("validate.jsonlint", "")
}

func setPreviewConfigDefaults(v *viper.Viper) {
	v.SetDefault("preview.theme", "dracula")
	v.SetDefault("preview.width", 0)
}
