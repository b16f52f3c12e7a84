package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yeisme/raml2doc/pkg/generator"
	"github.com/yeisme/raml2doc/pkg/proxy"
	"github.com/yeisme/raml2doc/pkg/raml"
	"github.com/yeisme/raml2doc/pkg/search"
	log2 "github.com/yeisme/raml2doc/pkg/utils/log"
)

// convertFlags 转换相关的命令行参数
type convertFlags struct {
	raml      string
	template  string
	output    string
	schemaDir string
	resource  string
	heading1  string
	annex     bool
	put       bool
	composite bool
	sensor    bool
	schemas   []string
	schemasWT []string
	pick      bool
	noProxy   bool
	proxyPort int
	jsonlint  string
}

// register 注册所有子命令共用的参数
func (f *convertFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.raml, "raml", "r", "", "RAML 0.8 file to convert")
	fs.StringVar(&f.template, "docx", "", "Word template (default from config, ResourceTemplate.docx)")
	fs.StringVar(&f.schemaDir, "schemadir", "", "directory holding the referenced JSON schemas")
	fs.StringVar(&f.resource, "resource", "", "top level resource to document, without leading slash (default all)")
	fs.BoolVar(&f.annex, "annex", false, "use the ANNEX heading styles")
	fs.BoolVar(&f.put, "put", false, "take the property table from put instead of get")
	fs.BoolVar(&f.composite, "composite", false, "leave out the property definition")
	fs.BoolVar(&f.sensor, "sensor", false, "add the boolean sensor value property")
	fs.StringSliceVar(&f.schemas, "schema", nil, "extra JSON schema files reproduced as source")
	fs.StringSliceVar(&f.schemasWT, "schemaWT", nil, "extra JSON schema files reproduced with their own property table")
	fs.BoolVar(&f.pick, "pick", false, "choose the resource interactively")
	fs.BoolVar(&f.noProxy, "no-proxy", false, "do not start the local schema proxy")
	fs.IntVar(&f.proxyPort, "proxy-port", 0, "schema proxy port (default from config, 4321)")
	fs.StringVar(&f.jsonlint, "jsonlint", "", "external jsonlint command run on every example")
}

// registerOutput 只有转换命令使用的参数
func (f *convertFlags) registerOutput(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "outdocx", "o", "", "output file (default <raml>.docx)")
	fs.StringVar(&f.heading1, "heading1", "", "only write a level 1 heading, '_' becomes space")
}

// buildJob 合并配置文件与命令行参数，命令行优先
func buildJob(cmd *cobra.Command) generator.Job {
	cfg := r2dCtx.Config
	job := generator.Job{
		RAML:      jobFlags.raml,
		Template:  cfg.Convert.Template,
		Output:    jobFlags.output,
		SchemaDir: cfg.Convert.SchemaDir,
		JSONLint:  cfg.Validate.JSONLint,
		Options: generator.Options{
			Resource:  strings.TrimPrefix(jobFlags.resource, "/"),
			Annex:     jobFlags.annex || cfg.Convert.Annex,
			Put:       jobFlags.put || cfg.Convert.Put,
			Composite: jobFlags.composite,
			Sensor:    jobFlags.sensor,
			Schemas:   jobFlags.schemas,
			SchemasWT: jobFlags.schemasWT,
			Validate:  cfg.Validate.Examples,
		},
	}
	if flagChanged(cmd, "docx") {
		job.Template = jobFlags.template
	}
	if flagChanged(cmd, "schemadir") {
		job.SchemaDir = jobFlags.schemaDir
	}
	if flagChanged(cmd, "jsonlint") {
		job.JSONLint = jobFlags.jsonlint
	}
	if job.Template == "" {
		job.Template = "ResourceTemplate.docx"
	}
	return job
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// startProxy 启动本地 schema 代理并导出 http_proxy
// 监听失败只记录警告，转换继续进行
func startProxy(cmd *cobra.Command, job generator.Job) *proxy.Server {
	cfg := r2dCtx.Config.Proxy
	if jobFlags.noProxy || !cfg.Enabled {
		return nil
	}
	if flagChanged(cmd, "proxy-port") {
		cfg.Port = jobFlags.proxyPort
	}

	srv, err := proxy.Start(r2dCtx, proxy.FromConfig(cfg, job.SchemaDir), log2.Component("proxy"))
	if err != nil {
		log.Warn().Err(err).Msg("schema proxy not started")
		return nil
	}
	srv.ExportEnv()
	return srv
}

func shutdownProxy(srv *proxy.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("schema proxy shutdown")
	}
}

// prepare 构建任务、启动代理并加载 RAML；cleanup 必须被调用
func prepare(cmd *cobra.Command) (generator.Job, *raml.API, func(), error) {
	cleanup := func() {}
	if jobFlags.raml == "" {
		return generator.Job{}, nil, cleanup, fmt.Errorf("--raml is required")
	}
	job := buildJob(cmd)

	if srv := startProxy(cmd, job); srv != nil {
		cleanup = func() { shutdownProxy(srv) }
		job.Client = srv.Client()
	}

	api, err := job.Load(r2dCtx, log)
	if err != nil {
		cleanup()
		return job, nil, func() {}, fmt.Errorf("load raml: %w", err)
	}
	if err := chooseResource(api, &job); err != nil {
		cleanup()
		return job, api, func() {}, err
	}
	return job, api, cleanup, nil
}

// chooseResource 处理 --pick，并检查 --resource 是否存在
func chooseResource(api *raml.API, job *generator.Job) error {
	if jobFlags.pick {
		name, err := search.Pick(api)
		if err != nil {
			return fmt.Errorf("pick resource: %w", err)
		}
		job.Resource = name
		log.Info().Str("resource", name).Msg("resource picked")
	}
	if job.Resource != "" && api.Resource(job.Resource) == nil {
		return unknownResource(api, job.Resource)
	}
	return nil
}

func unknownResource(api *raml.API, name string) error {
	msg := fmt.Sprintf("unknown resource %q", name)
	if s := search.Suggest(api, name); len(s) > 0 {
		if len(s) > 3 {
			s = s[:3]
		}
		msg += fmt.Sprintf(", did you mean %s?", strings.Join(s, ", "))
	} else {
		msg += fmt.Sprintf(", known resources: %s", strings.Join(api.ResourceNames(), ", "))
	}
	return &exitError{msg: msg}
}

// exitError 以非零状态退出；msg 为空时不再输出错误信息
type exitError struct {
	msg string
}

func (e *exitError) Error() string {
	if e.msg == "" {
		return "exit status 1"
	}
	return e.msg
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
