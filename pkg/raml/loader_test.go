package raml

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lightRAML = `#%RAML 0.8
title: OIC Binary Switch
version: v1.1.0-20160519
traits:
  - interface :
      queryParameters:
        if:
          enum: ["oic.if.a", "oic.if.baseline"]
schemas:
  - BinarySwitch: !include oic.r.switch.binary.json
/BinarySwitchResURI:
  description: |
    This resource describes a binary switch (on/off).
    The value is a boolean.
  displayName: Binary Switch
  is : ['interface']
  get:
    description: Retrieve the switch state.
    queryParameters:
      if:
        enum: ["oic.if.a", "oic.if.baseline"]
        required: false
    responses:
      200:
        body:
          application/json:
            schema: BinarySwitch
            example: |
              {
                "rt": ["oic.r.switch.binary"],
                "value": false
              }
  post:
    body:
      application/json:
        schema: BinarySwitch
        example: |
          {
            "value": true
          }
    responses:
      200:
        description: Updated.
      403:
        body:
          schema: |
            {"type": "object"}
  /child:
    delete:
`

const switchSchema = `{
  "$schema": "http://json-schema.org/draft-04/schema#",
  "type": "object",
  "properties": {
    "value": {"type": "boolean", "description": "Status of the switch"}
  },
  "required": ["value"]
}`

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "switch.raml"), []byte(lightRAML), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oic.r.switch.binary.json"), []byte(switchSchema), 0644))
	return filepath.Join(dir, "switch.raml")
}

func TestLoad(t *testing.T) {
	path := writeFixture(t)

	api, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, "0.8", api.RAMLVersion)
	assert.Equal(t, "OIC Binary Switch", api.Title)
	assert.Equal(t, "v1.1.0-20160519", api.Version)
	assert.Equal(t, path, api.Path)

	require.Len(t, api.Schemas, 1)
	assert.Equal(t, "BinarySwitch", api.Schemas[0].Name)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "oic.r.switch.binary.json"), api.Schemas[0].FileName)
	assert.Equal(t, switchSchema, api.Schemas[0].Content)

	require.Len(t, api.Traits, 1)
	assert.Equal(t, "interface", api.Traits[0].Name)
	require.Len(t, api.Traits[0].QueryParameters, 1)
	attr := api.Traits[0].QueryParameters[0].Attributes[0]
	assert.Equal(t, "enum", attr.Key)
	assert.Equal(t, []string{"oic.if.a", "oic.if.baseline"}, attr.List)

	r := api.Resource("BinarySwitchResURI")
	require.NotNil(t, r)
	assert.Equal(t, "Binary Switch", r.DisplayName)
	assert.Equal(t, []string{"interface"}, r.Is)

	// 方法顺序与源文件一致
	require.Len(t, r.Methods, 2)
	assert.Equal(t, "get", r.Methods[0].Verb)
	assert.Equal(t, "post", r.Methods[1].Verb)

	get := r.Method("get")
	require.Len(t, get.QueryParameters, 1)
	q := get.QueryParameters[0]
	assert.Equal(t, []string{"oic.if.a", "oic.if.baseline"}, q.Enum)
	require.NotNil(t, q.Required)
	assert.False(t, *q.Required)

	body := get.Response(200).BodyFor("application/json")
	require.NotNil(t, body)
	assert.Equal(t, "BinarySwitch", body.Schema)
	assert.Contains(t, body.Example, `"oic.r.switch.binary"`)

	post := r.Method("post")
	require.NotNil(t, post.BodyFor("application/json"))
	assert.Equal(t, []int{200, 403}, codes(post))
	// 省略 media type 的 body 使用默认值
	assert.Equal(t, `{"type": "object"}`+"\n", post.Response(403).BodyFor(DefaultMediaType).Schema)

	require.Len(t, r.Resources, 1)
	child := r.Resources[0]
	assert.Equal(t, "/BinarySwitchResURI/child", child.Path())
	require.NotNil(t, child.Method("delete"))
}

func codes(m *Method) []int {
	var out []int
	for _, r := range m.Responses {
		out = append(out, r.Code)
	}
	return out
}

func TestParseRejectsMissingHeader(t *testing.T) {
	_, err := Parse(context.Background(), []byte("title: x\n"), ".", Options{})
	assert.ErrorIs(t, err, ErrNotRAML)
}

func TestParseMissingIncludeIsBestEffort(t *testing.T) {
	src := "#%RAML 0.8\ntitle: t\nschemas:\n  - a: !include nope.json\n"
	api, err := Parse(context.Background(), []byte(src), t.TempDir(), Options{})
	require.NoError(t, err)
	require.Len(t, api.Schemas, 1)
	assert.Equal(t, UnresolvedInclude+"nope.json", api.Schemas[0].Content)
	assert.Empty(t, api.Schemas[0].FileName)
}

func TestParseHTTPInclude(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(switchSchema))
	}))
	defer srv.Close()

	src := "#%RAML 0.8\ntitle: t\nschemas:\n  - a: !include " + srv.URL + "/oic.r.switch.binary.json\n"
	api, err := Parse(context.Background(), []byte(src), ".", Options{Client: srv.Client()})
	require.NoError(t, err)
	assert.Equal(t, switchSchema, api.Schemas[0].Content)
}

func TestParseYAMLInclude(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "traits.yaml"), []byte("- paging:\n    queryParameters:\n      page:\n        type: integer\n"), 0644))

	api, err := Parse(context.Background(), []byte("#%RAML 0.8\ntitle: t\ntraits: !include traits.yaml\n"), dir, Options{})
	require.NoError(t, err)
	require.Len(t, api.Traits, 1)
	assert.Equal(t, "paging", api.Traits[0].Name)
	assert.Equal(t, "integer", api.Traits[0].QueryParameters[0].Attributes[0].Value)
}

func TestSelectAndTree(t *testing.T) {
	api, err := Load(context.Background(), writeFixture(t), Options{})
	require.NoError(t, err)

	assert.Len(t, api.Select(""), 1)
	assert.Len(t, api.Select("BinarySwitchResURI"), 1)
	assert.Empty(t, api.Select("missing"))
	assert.Equal(t, []string{"BinarySwitchResURI"}, api.ResourceNames())

	tree := api.TreeString()
	assert.Contains(t, tree, "/BinarySwitchResURI [get, post]")
	assert.Contains(t, tree, "/child [delete]")
}

func TestHeaderVersion(t *testing.T) {
	v, err := headerVersion([]byte("#%RAML 1.0\n"))
	require.NoError(t, err)
	assert.Equal(t, "1.0", v)

	_, err = headerVersion([]byte("#%RAML beta\n"))
	assert.Error(t, err)
}
