package proxy

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/yeisme/raml2doc/pkg/utils/log"
)

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	if local := s.Lookup(r.URL.Path); local != "" {
		s.log.Debug().Str("url", r.URL.String()).Str("file", local).Msg("local file found")
		s.serveFile(w, r, local)
		return
	}

	// 只有代理请求带有绝对 URL
	if !r.URL.IsAbs() {
		s.log.Warn().Str("url", r.URL.String()).Msg("file not found")
		http.NotFound(w, r)
		return
	}
	s.forward(w, r)
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	f, err := os.Open(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if filepath.Ext(name) == ".json" {
		w.Header().Set("Content-Type", "application/json")
	}
	http.ServeContent(w, r, name, st.ModTime(), f)
}

// forward fetches the original URL without proxy and copies the answer.
func (s *Server) forward(w http.ResponseWriter, r *http.Request) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, r.URL.String(), nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := s.upstream.Do(req)
	if err != nil {
		s.log.Warn().Err(err).Str("url", r.URL.String()).Msg("file not found")
		http.NotFound(w, r)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		s.log.Warn().Err(err).Str("url", r.URL.String()).Msg("copy upstream body")
	}
}

// requestLogger logs every request at debug level.
func requestLogger(logger log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("took", time.Since(start)).
				Msg("proxy request")
		})
	}
}
