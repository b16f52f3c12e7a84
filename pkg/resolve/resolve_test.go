package resolve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/raml2doc/pkg/raml"
)

func TestIsReference(t *testing.T) {
	assert.True(t, IsReference("BinarySwitch"))
	assert.False(t, IsReference(`{"type": "object"}`))
	assert.False(t, IsReference(""))
}

func TestBodyInline(t *testing.T) {
	r := New(&raml.API{}, ".", nil, nil)
	s := r.Body(context.Background(), &raml.Body{Schema: `{"type": "object"}`, SchemaFile: "a.json"})
	assert.Equal(t, `{"type": "object"}`, s.Text)
	assert.Equal(t, "a.json", s.File)

	assert.Empty(t, r.Body(context.Background(), &raml.Body{}).Text)
}

func TestReferenceFromContent(t *testing.T) {
	api := &raml.API{Schemas: []*raml.SchemaDef{{Name: "sw", FileName: "/x/sw.json", Content: "{}"}}}
	s := New(api, ".", nil, nil).Reference(context.Background(), "sw")
	assert.Equal(t, "{}", s.Text)
	assert.Equal(t, "/x/sw.json", s.File)
}

// 测试 include 失败时在 schema 目录中查找同名文件
func TestReferenceFallsBackToSchemaDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sw.json"), []byte(`{"a": 1}`), 0644))

	api := &raml.API{Schemas: []*raml.SchemaDef{{Name: "sw", Content: raml.UnresolvedInclude + "elsewhere/sw.json"}}}
	s := New(api, dir, nil, nil).Reference(context.Background(), "sw")
	assert.Equal(t, `{"a": 1}`, s.Text)
	assert.Equal(t, filepath.Join(dir, "sw.json"), s.File)
}

func TestReferenceUnknown(t *testing.T) {
	s := New(&raml.API{}, ".", nil, nil).Reference(context.Background(), "nope")
	assert.Equal(t, NotFoundPrefix+"nope", s.Text)

	api := &raml.API{Schemas: []*raml.SchemaDef{{Name: "gone", Content: raml.UnresolvedInclude + "gone.json"}}}
	s = New(api, t.TempDir(), nil, nil).Reference(context.Background(), "gone")
	assert.Equal(t, NotFoundPrefix+"gone", s.Text)
}

func TestReadFileHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schemas/oic.core.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"core": true}`))
	}))
	defer srv.Close()

	r := New(&raml.API{}, t.TempDir(), srv.Client(), nil)
	text, located, err := r.ReadFile(context.Background(), srv.URL+"/schemas/oic.core.json")
	require.NoError(t, err)
	assert.Equal(t, `{"core": true}`, text)
	assert.Empty(t, located)

	_, _, err = r.ReadFile(context.Background(), srv.URL+"/missing.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.json"), []byte(`{}`), 0644))

	got := New(&raml.API{Dir: dir}, "", nil, nil).ReadFiles(context.Background(), []string{"extra.json", "missing.json"})
	require.Len(t, got, 1)
	assert.Equal(t, "extra.json", got[0].Name)
	assert.Equal(t, filepath.Join(dir, "extra.json"), got[0].File)
}
