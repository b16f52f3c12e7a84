package raml

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/yeisme/raml2doc/pkg/utils/log"
)

const (
	headerPrefix = "#%RAML"
	includeTag   = "!include"
	// SupportedVersion is the RAML version the loader understands.
	SupportedVersion = "0.8"
)

// ErrNotRAML is returned when the document does not start with a RAML header.
var ErrNotRAML = errors.New("missing #%RAML header")

var methodVerbs = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"patch": true, "head": true, "options": true, "notify": true,
}

// Options configure a load.
type Options struct {
	// Client fetches http(s) includes. nil uses http.DefaultClient.
	Client *http.Client
	Logger log.Logger
}

type loader struct {
	ctx      context.Context
	dir      string
	client   *http.Client
	log      log.Logger
	included map[*yaml.Node]string
	depth    int
}

// Load reads and parses the RAML file at path.
func Load(ctx context.Context, path string, opts Options) (*API, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read raml %s: %w", path, err)
	}
	api, err := Parse(ctx, data, filepath.Dir(path), opts)
	if err != nil {
		return nil, fmt.Errorf("parse raml %s: %w", path, err)
	}
	api.Path = path
	return api, nil
}

// Parse parses RAML source. dir is used to resolve relative includes.
func Parse(ctx context.Context, data []byte, dir string, opts Options) (*API, error) {
	ver, err := headerVersion(data)
	if err != nil {
		return nil, err
	}

	l := &loader{
		ctx:      ctx,
		dir:      dir,
		client:   opts.Client,
		log:      opts.Logger,
		included: map[*yaml.Node]string{},
	}
	if l.client == nil {
		l.client = http.DefaultClient
	}
	if l.log == nil {
		l.log = log.Nop()
	}

	if semver.Compare("v"+ver, "v1.0") >= 0 {
		l.log.Warn().Str("version", ver).Msgf("RAML %s is newer than %s, unknown constructs are ignored", ver, SupportedVersion)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("root must be a mapping, got %s", kindName(root.Kind))
	}
	l.expand(root, dir)

	api := &API{RAMLVersion: ver, Dir: dir, MediaType: DefaultMediaType}
	eachPair(root, func(key string, v *yaml.Node) {
		switch {
		case key == "title":
			api.Title = v.Value
		case key == "version":
			api.Version = v.Value
		case key == "baseUri":
			api.BaseURI = v.Value
		case key == "mediaType":
			api.MediaType = v.Value
		case key == "schemas":
			api.Schemas = l.schemas(v)
		case key == "traits":
			api.Traits = l.traits(v)
		case strings.HasPrefix(key, "/"):
			api.Resources = append(api.Resources, l.resource(key, v, nil, api.MediaType))
		}
	})
	return api, nil
}

// headerVersion extracts the version from the "#%RAML 0.8" first line.
func headerVersion(data []byte) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	if !sc.Scan() {
		return "", ErrNotRAML
	}
	line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
	if !strings.HasPrefix(line, headerPrefix) {
		return "", ErrNotRAML
	}
	ver := strings.TrimSpace(strings.TrimPrefix(line, headerPrefix))
	if !semver.IsValid("v" + ver) {
		return "", fmt.Errorf("invalid RAML version %q", ver)
	}
	return ver, nil
}

func (l *loader) resource(name string, n *yaml.Node, parent *Resource, mediaType string) *Resource {
	r := &Resource{Name: name, Parent: parent}
	eachPair(n, func(key string, v *yaml.Node) {
		switch {
		case key == "displayName":
			r.DisplayName = v.Value
		case key == "description":
			r.Description = v.Value
		case key == "is":
			r.Is = traitRefs(v)
		case methodVerbs[key]:
			r.Methods = append(r.Methods, l.method(key, v, mediaType))
		case strings.HasPrefix(key, "/"):
			r.Resources = append(r.Resources, l.resource(key, v, r, mediaType))
		}
	})
	return r
}

func (l *loader) method(verb string, n *yaml.Node, mediaType string) *Method {
	m := &Method{Verb: verb}
	eachPair(n, func(key string, v *yaml.Node) {
		switch key {
		case "description":
			m.Description = v.Value
		case "is":
			m.Is = traitRefs(v)
		case "queryParameters":
			eachPair(v, func(name string, q *yaml.Node) {
				m.QueryParameters = append(m.QueryParameters, queryParameter(name, q))
			})
		case "body":
			m.Body = l.bodies(v, mediaType)
		case "responses":
			eachPair(v, func(code string, rn *yaml.Node) {
				c, err := strconv.Atoi(code)
				if err != nil {
					l.log.Warn().Str("code", code).Msg("ignoring response with non numeric code")
					return
				}
				m.Responses = append(m.Responses, l.response(c, rn, mediaType))
			})
		}
	})
	return m
}

func (l *loader) response(code int, n *yaml.Node, mediaType string) *Response {
	r := &Response{Code: code}
	eachPair(n, func(key string, v *yaml.Node) {
		switch key {
		case "description":
			r.Description = v.Value
		case "headers":
			eachPair(v, func(name string, h *yaml.Node) {
				hdr := &Header{Name: name}
				eachPair(h, func(k string, hv *yaml.Node) {
					switch k {
					case "type":
						hdr.Type = hv.Value
					case "description":
						hdr.Description = hv.Value
					}
				})
				r.Headers = append(r.Headers, hdr)
			})
		case "body":
			r.Body = l.bodies(v, mediaType)
		}
	})
	return r
}

// bodies handles both "body: {application/json: {...}}" and the short form
// "body: {schema: ..., example: ...}" which uses the default media type.
func (l *loader) bodies(n *yaml.Node, mediaType string) []*Body {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	short := false
	eachPair(n, func(key string, _ *yaml.Node) {
		if key == "schema" || key == "example" || key == "formParameters" {
			short = true
		}
	})
	if short {
		return []*Body{l.body(mediaType, n)}
	}

	var out []*Body
	eachPair(n, func(mt string, v *yaml.Node) {
		out = append(out, l.body(mt, v))
	})
	return out
}

func (l *loader) body(mediaType string, n *yaml.Node) *Body {
	b := &Body{MediaType: mediaType}
	eachPair(n, func(key string, v *yaml.Node) {
		switch key {
		case "schema":
			b.Schema = v.Value
			b.SchemaFile = l.included[v]
		case "example":
			b.Example = v.Value
		}
	})
	return b
}

func queryParameter(name string, n *yaml.Node) *QueryParameter {
	q := &QueryParameter{Name: name}
	eachPair(n, func(key string, v *yaml.Node) {
		switch key {
		case "displayName":
			q.DisplayName = v.Value
		case "type":
			q.Type = v.Value
		case "description":
			q.Description = v.Value
		case "enum":
			q.Enum = scalars(v)
		case "required":
			b := v.Value == "true"
			q.Required = &b
		case "example":
			q.Example = v.Value
		case "default":
			q.Default = v.Value
		}
	})
	return q
}

// schemas accepts the 0.8 list of single entry maps as well as a plain map.
func (l *loader) schemas(n *yaml.Node) []*SchemaDef {
	var out []*SchemaDef
	add := func(name string, v *yaml.Node) {
		out = append(out, &SchemaDef{Name: name, FileName: l.included[v], Content: v.Value})
	}
	switch n.Kind {
	case yaml.SequenceNode:
		for _, item := range n.Content {
			eachPair(item, add)
		}
	case yaml.MappingNode:
		eachPair(n, add)
	}
	return out
}

func (l *loader) traits(n *yaml.Node) []*Trait {
	var out []*Trait
	add := func(name string, v *yaml.Node) {
		t := &Trait{Name: name}
		eachPair(v, func(key string, tv *yaml.Node) {
			switch key {
			case "description":
				t.Description = tv.Value
			case "queryParameters":
				eachPair(tv, func(pname string, pv *yaml.Node) {
					p := &TraitParameter{Name: pname}
					eachPair(pv, func(ak string, av *yaml.Node) {
						a := Attribute{Key: ak}
						if av.Kind == yaml.SequenceNode {
							a.List = scalars(av)
						} else {
							a.Value = av.Value
						}
						p.Attributes = append(p.Attributes, a)
					})
					t.QueryParameters = append(t.QueryParameters, p)
				})
			}
		})
		out = append(out, t)
	}
	switch n.Kind {
	case yaml.SequenceNode:
		for _, item := range n.Content {
			eachPair(item, add)
		}
	case yaml.MappingNode:
		eachPair(n, add)
	}
	return out
}

// traitRefs reads an "is" list; parameterised traits contribute their name.
func traitRefs(n *yaml.Node) []string {
	if n.Kind != yaml.SequenceNode {
		if n.Kind == yaml.ScalarNode && n.Value != "" {
			return []string{n.Value}
		}
		return nil
	}
	var out []string
	for _, item := range n.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			out = append(out, item.Value)
		case yaml.MappingNode:
			if len(item.Content) > 0 {
				out = append(out, item.Content[0].Value)
			}
		}
	}
	return out
}

func scalars(n *yaml.Node) []string {
	if n.Kind == yaml.ScalarNode {
		return []string{n.Value}
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		out = append(out, item.Value)
	}
	return out
}

// eachPair iterates a mapping node in document order. Other kinds are ignored.
func eachPair(n *yaml.Node, fn func(key string, v *yaml.Node)) {
	if n == nil || n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		fn(n.Content[i].Value, n.Content[i+1])
	}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
