// Package resolve turns body schema values into schema text.
//
// A schema value containing "{" is inline JSON. Anything else names an
// entry of the RAML schemas section, whose content is used, or whose file
// is searched for on disk.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/yeisme/raml2doc/pkg/raml"
	"github.com/yeisme/raml2doc/pkg/utils/fsop"
	"github.com/yeisme/raml2doc/pkg/utils/log"
)

// NotFoundPrefix marks a schema reference that could not be resolved. The
// marker is what ends up in the document.
const NotFoundPrefix = "ERROR-IN-RESOLVING-SCHEMA:NO_FILE_FOUND_FOR:"

// ErrNotFound is returned when no candidate location holds the file.
var ErrNotFound = errors.New("schema file not found")

// Resolver resolves schema references of one API.
type Resolver struct {
	API       *raml.API
	SchemaDir string
	Client    *http.Client
	log       log.Logger
}

// New creates a resolver. client may be nil when remote files are not needed.
func New(api *raml.API, schemaDir string, client *http.Client, logger log.Logger) *Resolver {
	if logger == nil {
		logger = log.Nop()
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Resolver{API: api, SchemaDir: schemaDir, Client: client, log: logger}
}

// Schema is resolved schema text plus the file it came from, if any.
type Schema struct {
	Text string
	File string
}

// IsReference reports whether a body schema value names a schema instead of
// holding it inline.
func IsReference(schema string) bool {
	return schema != "" && !strings.Contains(schema, "{")
}

// Body resolves the schema of a body. The returned Text is empty only when
// the body has no schema.
func (r *Resolver) Body(ctx context.Context, b *raml.Body) Schema {
	if !b.HasSchema() {
		return Schema{}
	}
	if !IsReference(b.Schema) {
		return Schema{Text: b.Schema, File: b.SchemaFile}
	}
	return r.Reference(ctx, b.Schema)
}

// Reference resolves a schema name from the schemas section.
func (r *Resolver) Reference(ctx context.Context, name string) Schema {
	name = strings.TrimSpace(name)
	var def *raml.SchemaDef
	if r.API != nil {
		def = r.API.SchemaByName(name)
	}
	if def == nil {
		r.log.Warn().Str("schema", name).Msg("schema reference not declared in schemas")
		return Schema{Text: NotFoundPrefix + name}
	}

	if def.Content != "" && !strings.HasPrefix(def.Content, raml.UnresolvedInclude) {
		r.log.Debug().Str("schema", name).Str("file", def.FileName).Msg("resolve schema reference")
		return Schema{Text: def.Content, File: def.FileName}
	}

	file := def.FileName
	if file == "" {
		file = strings.TrimPrefix(def.Content, raml.UnresolvedInclude)
	}
	text, located, err := r.ReadFile(ctx, file)
	if err != nil {
		r.log.Error().Err(err).Str("schema", name).Str("file", file).Msg("could not open file")
		return Schema{Text: NotFoundPrefix + name}
	}
	return Schema{Text: text, File: located}
}

// ReadFile reads a schema file trying, in order, the name itself, the name
// below the schema dir, its base name below the schema dir and below the
// RAML dir. http(s) names are fetched. The located path is returned.
func (r *Resolver) ReadFile(ctx context.Context, name string) (string, string, error) {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		text, err := r.fetch(ctx, name)
		if err == nil {
			return text, "", nil
		}
		r.log.Debug().Err(err).Str("url", name).Msg("fetch failed, trying local copies")
		name = path.Base(name)
	}

	dirs := []string{r.SchemaDir}
	if r.API != nil {
		dirs = append(dirs, r.API.Dir)
	}
	located, err := fsop.FindFile(name, dirs...)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	b, err := os.ReadFile(located)
	if err != nil {
		return "", "", err
	}
	return string(b), located, nil
}

// ReadFiles reads the extra schema files given on the command line. Unreadable
// files are logged and skipped.
func (r *Resolver) ReadFiles(ctx context.Context, names []string) []NamedSchema {
	var out []NamedSchema
	for _, n := range names {
		text, located, err := r.ReadFile(ctx, n)
		if err != nil {
			r.log.Error().Err(err).Str("file", n).Msg("could not read schema file")
			continue
		}
		if located == "" {
			located = n
		}
		out = append(out, NamedSchema{Name: n, Schema: Schema{Text: text, File: located}})
	}
	return out
}

// NamedSchema is a schema file given by name.
type NamedSchema struct {
	Name string
	Schema
}

func (r *Resolver) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
