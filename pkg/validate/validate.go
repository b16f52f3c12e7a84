// Package validate checks JSON examples against their JSON Schema (draft 4).
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"github.com/yeisme/raml2doc/pkg/utils/log"
)

var (
	// ErrSchemaSyntax 表示 schema 不是合法 JSON
	ErrSchemaSyntax = errors.New("schema is not valid JSON")
	// ErrExampleSyntax 表示示例不是合法 JSON
	ErrExampleSyntax = errors.New("example is not valid JSON")
)

// Report 一次校验的结果
type Report struct {
	Location string   `json:"location,omitempty"` // 例如 /light get 200
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Err      error    `json:"-"` // schema 或示例无法加载
}

// Failed 校验未通过或无法执行
func (r Report) Failed() bool {
	return r.Err != nil || !r.Valid
}

// Validator 使用 gojsonschema 校验示例
type Validator struct {
	log  log.Logger
	lint *Lint
}

// New 创建校验器，lintCmd 为空时不调用外部 jsonlint
func New(logger log.Logger, lintCmd string) *Validator {
	if logger == nil {
		logger = log.Nop()
	}
	v := &Validator{log: logger}
	if lintCmd != "" {
		v.lint = &Lint{Command: lintCmd, log: logger}
	}
	return v
}

// Validate 校验 example 是否符合 schema
// schemaFile 不为空时从文件加载 schema，使相对的 $ref 可以解析
func (v *Validator) Validate(schemaText, schemaFile, example string) Report {
	rep := Report{}

	if !json.Valid([]byte(example)) {
		rep.Err = ErrExampleSyntax
		return rep
	}

	var loader gojsonschema.JSONLoader
	if ref := fileReference(schemaFile); ref != "" {
		loader = gojsonschema.NewReferenceLoader(ref)
	} else {
		if !json.Valid([]byte(schemaText)) {
			rep.Err = ErrSchemaSyntax
			return rep
		}
		loader = gojsonschema.NewStringLoader(schemaText)
	}

	sl := gojsonschema.NewSchemaLoader()
	sl.Draft = gojsonschema.Draft4
	schema, err := sl.Compile(loader)
	if err != nil {
		rep.Err = fmt.Errorf("load schema: %w", err)
		return rep
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(example))
	if err != nil {
		rep.Err = fmt.Errorf("validate: %w", err)
		return rep
	}

	rep.Valid = result.Valid()
	for _, e := range result.Errors() {
		rep.Errors = append(rep.Errors, e.String())
	}
	sort.Strings(rep.Errors)

	if v.lint != nil {
		v.lint.Run(schemaText, example)
	}
	return rep
}

// Log 以 warn 级别记录失败的校验，成功时只输出 debug 日志
func (v *Validator) Log(rep Report, schemaText, example string) {
	switch {
	case rep.Err != nil:
		v.log.Warn().Err(rep.Err).Str("location", rep.Location).Msg("example could not be validated")
		v.log.Debug().Str("example", example).Str("schema", schemaText).Msg("validation input")
	case !rep.Valid:
		for _, e := range rep.Errors {
			v.log.Warn().Str("location", rep.Location).Msg(e)
		}
		v.log.Debug().Str("example", example).Str("schema", schemaText).Msg("validation input")
	default:
		v.log.Debug().Str("location", rep.Location).Msg("schema & json valid")
	}
}

// fileReference 返回本地 schema 文件的 file:// 引用，文件不存在时返回空
func fileReference(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	if _, err := os.Stat(abs); err != nil {
		return ""
	}
	return "file://" + filepath.ToSlash(abs)
}
