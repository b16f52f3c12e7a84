package proxy

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/raml2doc/pkg/configs"
)

func startProxy(t *testing.T) (*Server, string, string) {
	t.Helper()
	dir := t.TempDir()
	schemaDir := t.TempDir()
	s, err := Start(context.Background(), Options{Addr: "127.0.0.1:0", Dir: dir, SchemaDir: schemaDir}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s, dir, schemaDir
}

func get(t *testing.T, c *http.Client, url string) (int, string) {
	t.Helper()
	resp, err := c.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestServesLocalCopies(t *testing.T) {
	s, dir, schemaDir := startProxy(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oic.core.json"), []byte(`{"local": true}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(schemaDir, "oic.types.json"), []byte(`{"schemadir": true}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oic.baseResource.json"), []byte(`{"suffix": true}`), 0644))

	c := s.Client()
	code, body := get(t, c, "http://openinterconnect.org/schemas/oic.core.json")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `{"local": true}`, body)

	_, body = get(t, c, "http://openinterconnect.org/schemas/oic.types.json")
	assert.Equal(t, `{"schemadir": true}`, body)

	_, body = get(t, c, "http://openinterconnect.org/schemas/oic.baseResource")
	assert.Equal(t, `{"suffix": true}`, body)
}

func TestForwardsUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/remote.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"remote": true}`))
	}))
	defer upstream.Close()

	s, _, _ := startProxy(t)
	code, body := get(t, s.Client(), upstream.URL+"/remote.json")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `{"remote": true}`, body)

	code, _ = get(t, s.Client(), upstream.URL+"/gone.json")
	assert.Equal(t, http.StatusNotFound, code)
}

// https 不经过代理，直接访问上游
func TestClientFetchesHTTPSDirect(t *testing.T) {
	upstream := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tls": true}`))
	}))
	defer upstream.Close()

	s, dir, _ := startProxy(t)
	// 本地副本只对 http 请求生效
	require.NoError(t, os.WriteFile(filepath.Join(dir, "s.json"), []byte(`{"local": true}`), 0644))

	c := s.Client()
	tr := c.Transport.(*http.Transport)
	tr.TLSClientConfig = upstream.Client().Transport.(*http.Transport).TLSClientConfig

	code, body := get(t, c, upstream.URL+"/s.json")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `{"tls": true}`, body)

	req, err := http.NewRequest(http.MethodGet, "http://example.org/s.json", nil)
	require.NoError(t, err)
	u, err := tr.Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, s.URL(), u.String())
}

func TestDirectRequestNotFound(t *testing.T) {
	s, _, _ := startProxy(t)
	code, _ := get(t, http.DefaultClient, s.URL()+"missing.json")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLookup(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{}`), 0644))
	s := &Server{opts: Options{Dir: dir}}
	assert.Equal(t, filepath.Join(dir, "a.json"), s.Lookup("/x/y/a.json"))
	assert.Equal(t, filepath.Join(dir, "a.json"), s.Lookup("/a"))
	assert.Empty(t, s.Lookup("/"))
	assert.Empty(t, s.Lookup("/b.json"))
}

func TestShutdownOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, err := Start(ctx, Options{Addr: "127.0.0.1:0"}, nil)
	require.NoError(t, err)
	cancel()

	done := make(chan error, 1)
	go func() { done <- s.Shutdown(context.Background()) }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown did not return")
	}
}

func TestFromConfig(t *testing.T) {
	o := FromConfig(configs.ProxyConfig{Port: 4321, Timeout: 5}, "schemas")
	assert.Equal(t, "127.0.0.1:4321", o.Addr)
	assert.Equal(t, "schemas", o.SchemaDir)
	assert.Equal(t, 5*time.Second, o.Timeout)
}
