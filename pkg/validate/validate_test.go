package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const switchSchema = `{
  "$schema": "http://json-schema.org/draft-04/schema#",
  "type": "object",
  "properties": {
    "value": {"type": "boolean"}
  },
  "required": ["value"]
}`

func TestValidateValid(t *testing.T) {
	rep := New(nil, "").Validate(switchSchema, "", `{"value": true}`)
	require.NoError(t, rep.Err)
	assert.True(t, rep.Valid)
	assert.False(t, rep.Failed())
	assert.Empty(t, rep.Errors)
}

func TestValidateErrorsAreSorted(t *testing.T) {
	schema := `{
  "type": "object",
  "properties": {"b": {"type": "string"}, "a": {"type": "string"}},
  "required": ["a", "b"]
}`
	rep := New(nil, "").Validate(schema, "", `{"a": 1, "b": 2}`)
	require.NoError(t, rep.Err)
	assert.False(t, rep.Valid)
	require.Len(t, rep.Errors, 2)
	assert.True(t, rep.Errors[0] < rep.Errors[1])
}

func TestValidateSyntaxErrors(t *testing.T) {
	v := New(nil, "")

	rep := v.Validate(switchSchema, "", `{"value": `)
	assert.ErrorIs(t, rep.Err, ErrExampleSyntax)
	assert.True(t, rep.Failed())

	rep = v.Validate(`{"type": `, "", `{}`)
	assert.ErrorIs(t, rep.Err, ErrSchemaSyntax)
}

// 测试从文件加载 schema 时相对 $ref 可以解析
func TestValidateFileReference(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "value.json"), []byte(`{"type": "boolean"}`), 0644))
	main := filepath.Join(dir, "switch.json")
	require.NoError(t, os.WriteFile(main, []byte(`{
  "type": "object",
  "properties": {"value": {"$ref": "value.json"}}
}`), 0644))

	v := New(nil, "")
	rep := v.Validate("", main, `{"value": false}`)
	require.NoError(t, rep.Err)
	assert.True(t, rep.Valid)

	rep = v.Validate("", main, `{"value": "on"}`)
	require.NoError(t, rep.Err)
	assert.False(t, rep.Valid)
}

func TestFileReference(t *testing.T) {
	assert.Empty(t, fileReference(""))
	assert.Empty(t, fileReference(filepath.Join(t.TempDir(), "missing.json")))
}
