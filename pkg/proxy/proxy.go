// Package proxy serves schema files referenced by URL from local copies.
//
// The proxy is an HTTP forward proxy for the duration of one conversion.
// A request for http://host/path/name.json is answered with ./name.json,
// <schemadir>/name.json or ./name.json.json when one of them exists, and
// with the upstream document otherwise.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/yeisme/raml2doc/pkg/configs"
	"github.com/yeisme/raml2doc/pkg/utils/fsop"
	"github.com/yeisme/raml2doc/pkg/utils/log"
)

// Options configure the proxy.
type Options struct {
	// Addr is host:port to listen on; port 0 picks a free port.
	Addr string
	// Dir is searched before SchemaDir, "." when empty.
	Dir       string
	SchemaDir string
	// Timeout bounds upstream requests.
	Timeout time.Duration
}

// FromConfig builds Options from the proxy configuration.
func FromConfig(cfg configs.ProxyConfig, schemaDir string) Options {
	host := cfg.Host
	if host == "" {
		host = "127.0.0.1"
	}
	return Options{
		Addr:      net.JoinHostPort(host, strconv.Itoa(cfg.Port)),
		SchemaDir: schemaDir,
		Timeout:   time.Duration(cfg.Timeout) * time.Second,
	}
}

// Server is a running proxy.
type Server struct {
	opts     Options
	srv      *http.Server
	ln       net.Listener
	g        *errgroup.Group
	stop     func() bool
	upstream *http.Client
	log      log.Logger
}

// Start listens and serves in the background until Shutdown is called or
// ctx is done.
func Start(ctx context.Context, opts Options, logger log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Nop()
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return nil, fmt.Errorf("proxy listen %s: %w", opts.Addr, err)
	}

	s := &Server{
		opts: opts,
		ln:   ln,
		log:  logger,
		// 上游请求不能再经过代理
		upstream: &http.Client{
			Transport: &http.Transport{Proxy: nil},
			Timeout:   opts.Timeout,
		},
	}
	s.srv = &http.Server{Handler: s.Router(), ReadHeaderTimeout: 10 * time.Second}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	s.g = g
	s.stop = context.AfterFunc(ctx, func() { _ = s.srv.Close() })

	logger.Info().Str("addr", s.URL()).Msg("schema proxy serving")
	return s, nil
}

// Router returns the proxy handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))
	r.Get("/*", s.serve)
	return r
}

// URL is the proxy URL, for example http://127.0.0.1:4321/.
func (s *Server) URL() string {
	return "http://" + s.ln.Addr().String() + "/"
}

// Client returns an http client that sends plain http requests through the
// proxy. https requests go direct: the proxy does not tunnel CONNECT.
func (s *Server) Client() *http.Client {
	u, _ := url.Parse(s.URL())
	return &http.Client{
		Transport: &http.Transport{Proxy: httpOnly(u)},
		Timeout:   s.opts.Timeout,
	}
}

func httpOnly(u *url.URL) func(*http.Request) (*url.URL, error) {
	return func(r *http.Request) (*url.URL, error) {
		if r.URL.Scheme == "http" {
			return u, nil
		}
		return nil, nil
	}
}

// ExportEnv sets http_proxy and HTTP_PROXY so child processes use the proxy.
func (s *Server) ExportEnv() {
	for _, k := range []string{"http_proxy", "HTTP_PROXY"} {
		if err := os.Setenv(k, s.URL()); err != nil {
			s.log.Warn().Err(err).Str("env", k).Msg("could not export proxy")
		}
	}
}

// Shutdown stops the server and waits for the serve goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	// stop 返回 false 时 ctx 已结束，服务器已经关闭
	if s.stop() {
		if err := s.srv.Shutdown(ctx); err != nil {
			return err
		}
	}
	return s.g.Wait()
}

// Lookup returns the local file served for a request path, or "".
func (s *Server) Lookup(p string) string {
	base := path.Base(p)
	if base == "/" || base == "." {
		return ""
	}
	for _, c := range []string{
		filepath.Join(s.opts.Dir, base),
		filepath.Join(s.opts.SchemaDir, base),
		filepath.Join(s.opts.Dir, base+".json"),
	} {
		if fsop.IsFile(c) {
			return c
		}
	}
	return ""
}
