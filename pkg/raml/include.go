package raml

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const maxIncludeDepth = 8

// UnresolvedInclude prefixes the value of an include that could not be read.
const UnresolvedInclude = "ERROR-IN-RESOLVING-INCLUDE:"

// expand replaces every !include node below n with the included content.
// YAML includes are parsed and spliced in, anything else becomes a string
// scalar. Failures are logged and leave a marker value behind.
func (l *loader) expand(n *yaml.Node, dir string) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			n.Value = ""
			return
		}
		if n.Tag == includeTag {
			l.include(n, dir)
		}
	case yaml.MappingNode, yaml.SequenceNode, yaml.DocumentNode:
		for _, c := range n.Content {
			l.expand(c, dir)
		}
	}
}

func (l *loader) include(n *yaml.Node, dir string) {
	ref := strings.TrimSpace(n.Value)
	if l.depth >= maxIncludeDepth {
		l.log.Error().Str("include", ref).Msg("include nesting too deep")
		setString(n, UnresolvedInclude+ref)
		return
	}

	data, location, err := l.read(ref, dir)
	if err != nil {
		l.log.Error().Err(err).Str("include", ref).Msg("could not resolve include")
		setString(n, UnresolvedInclude+ref)
		return
	}
	l.log.Debug().Str("include", ref).Str("location", location).Msg("include resolved")

	switch strings.ToLower(path.Ext(ref)) {
	case ".raml", ".yaml", ".yml":
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Content) == 0 {
			l.log.Warn().Err(err).Str("include", ref).Msg("included file is not YAML, using it as text")
			setString(n, string(data))
			break
		}
		*n = *doc.Content[0]
		l.depth++
		l.expand(n, includeDir(location, dir))
		l.depth--
	default:
		setString(n, string(data))
	}
	l.included[n] = location
}

// read loads a local file relative to dir, or fetches an http(s) URL.
func (l *loader) read(ref, dir string) ([]byte, string, error) {
	if isURL(ref) {
		req, err := http.NewRequestWithContext(l.ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, ref, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, ref, err
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			return nil, ref, fmt.Errorf("GET %s: %s", ref, resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		return data, ref, err
	}

	p := ref
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	data, err := os.ReadFile(p)
	return data, p, err
}

func includeDir(location, fallback string) string {
	if isURL(location) {
		return fallback
	}
	return filepath.Dir(location)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func setString(n *yaml.Node, s string) {
	n.Kind = yaml.ScalarNode
	n.Tag = "!!str"
	n.Value = s
	n.Content = nil
	n.Style = yaml.LiteralStyle
}
