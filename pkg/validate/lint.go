package validate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yeisme/raml2doc/pkg/utils/executor"
	"github.com/yeisme/raml2doc/pkg/utils/log"
)

// Lint 调用外部 jsonlint 命令：<command> <example.json> -V <schema.json>
type Lint struct {
	Command string
	log     log.Logger
}

// Run 将 schema 与示例写入临时文件后执行 lint，结果只记录日志
func (l *Lint) Run(schemaText, example string) {
	dir, err := os.MkdirTemp("", "raml2doc-lint-")
	if err != nil {
		l.log.Warn().Err(err).Msg("jsonlint: could not create temp dir")
		return
	}
	defer func() { _ = os.RemoveAll(dir) }()

	schemaFile := filepath.Join(dir, "schema.json")
	exampleFile := filepath.Join(dir, "example.json")
	if err := os.WriteFile(schemaFile, []byte(schemaText), 0644); err != nil {
		l.log.Warn().Err(err).Msg("jsonlint: could not write schema")
		return
	}
	if err := os.WriteFile(exampleFile, []byte(example), 0644); err != nil {
		l.log.Warn().Err(err).Msg("jsonlint: could not write example")
		return
	}

	fields := strings.Fields(l.Command)
	if len(fields) == 0 {
		return
	}
	args := append(fields[1:], exampleFile, "-V", schemaFile)
	out, err := executor.NewExecutor(fields[0], args...).WithDir(dir).CombinedOutput()
	if err != nil {
		l.log.Warn().Err(err).Msg("jsonlint: validation failed")
		return
	}
	l.log.Debug().Str("output", strings.TrimSpace(out)).Msg("jsonlint: validation complete")
}
