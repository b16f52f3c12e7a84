package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/yeisme/raml2doc/pkg/jsonprop"
	"github.com/yeisme/raml2doc/pkg/raml"
)

// CRUDNHeaders are the column titles of the CRUDN table.
var CRUDNHeaders = []string{"Resource", "Create", "Read", "Update", "Delete", "Notify"}

// crudnColumn maps a verb to its CRUDN column.
var crudnColumn = map[string]int{
	"put":    1,
	"get":    2,
	"post":   3,
	"delete": 4,
	"notify": 5,
}

// UnknownResourceError is returned when the selected resource is not a top
// level resource of the API.
type UnknownResourceError struct {
	Name  string
	Known []string
}

func (e *UnknownResourceError) Error() string {
	return fmt.Sprintf("resource %q not found", e.Name)
}

func propertyHeaders() []string {
	return append([]string(nil), jsonprop.Headers...)
}

// oneLine joins the lines of text with spaces.
func oneLine(text string) string {
	var sb strings.Builder
	for _, l := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		sb.WriteString(l + " ")
	}
	return sb.String()
}

// listDescriptions adds the description of every resource in the selected
// subtrees, the same resources listURIs lists.
func (g *Generator) listDescriptions(out Sink) {
	for _, r := range g.selected() {
		r.Walk(func(res *raml.Resource, _ int) bool {
			if res.Description != "" {
				out.Paragraph("", Run{Text: oneLine(res.Description)})
			}
			return true
		})
	}
}

// listURIs adds one paragraph per resource of the selected subtrees.
func (g *Generator) listURIs(out Sink) {
	for _, r := range g.selected() {
		r.Walk(func(res *raml.Resource, _ int) bool {
			out.Paragraph("", Run{Text: res.Name})
			return true
		})
	}
}

// CRUDNRows returns one CRUDN row per resource below resources, the verb
// in the column it maps to.
func CRUDNRows(resources []*raml.Resource) [][]string {
	var rows [][]string
	for _, r := range resources {
		r.Walk(func(res *raml.Resource, _ int) bool {
			row := make([]string, len(CRUDNHeaders))
			row[0] = res.Name
			for _, m := range res.Methods {
				if col, ok := crudnColumn[m.Verb]; ok {
					row[col] = m.Verb
				}
			}
			rows = append(rows, row)
			return true
		})
	}
	return rows
}

func (g *Generator) listCRUDN(out Sink) {
	t := out.Table(StyleTable, CRUDNHeaders...)
	for _, row := range CRUDNRows(g.selected()) {
		t.AddRow(row...)
	}
}

// Properties returns the property table rows of the selected resources:
// the 200 JSON response schema of the table method, the sensor row and the
// rows of the extra schema files.
func (g *Generator) Properties(ctx context.Context) []jsonprop.Property {
	var out []jsonprop.Property
	for _, r := range g.selected() {
		r.Walk(func(res *raml.Resource, _ int) bool {
			m := res.Method(g.Opts.TableMethod())
			if m == nil {
				return true
			}
			b := tableBody(m)
			if b == nil {
				return true
			}
			s := g.Resolver.Body(ctx, b)
			if s.Text == "" {
				return true
			}
			out = append(out, g.extract(s.Text, res.Path()+" "+m.Verb)...)
			return true
		})
	}
	if g.Opts.Sensor {
		out = append(out, jsonprop.SensorValue)
	}
	for _, s := range g.schemaFiles(ctx) {
		out = append(out, g.extract(s.Text, s.Name)...)
	}
	return out
}

// tableBody is the 200 JSON response body, or for put without one the
// JSON request body.
func tableBody(m *raml.Method) *raml.Body {
	if resp := m.Response(200); resp != nil {
		if b := resp.BodyFor(raml.DefaultMediaType); b.HasSchema() {
			return b
		}
	}
	if m.Verb == "put" {
		if b := m.BodyFor(raml.DefaultMediaType); b.HasSchema() {
			return b
		}
	}
	return nil
}

func (g *Generator) extract(text, where string) []jsonprop.Property {
	props, err := jsonprop.ExtractProperties(text)
	if err != nil {
		g.log.Error().Err(err).Str("schema", where).Msg("could not parse schema")
		return nil
	}
	g.log.Debug().Str("schema", where).Strs("required", jsonprop.ParseRequired(text)).Int("properties", len(props)).Msg("parse schema")
	return props
}

func (g *Generator) addProperties(rows Rows, text, where string) {
	for _, p := range g.extract(text, where) {
		rows.AddRow(p.Row()...)
	}
}

func (g *Generator) listAttributes(ctx context.Context, out Sink) {
	t := out.Table(StyleTable, propertyHeaders()...)
	for _, p := range g.Properties(ctx) {
		t.AddRow(p.Row()...)
	}
}

// DisplayName returns the display name of a top level resource.
func DisplayName(api *raml.API, resource string) string {
	if r := api.Resource(resource); r != nil {
		return r.DisplayName
	}
	return ""
}

// ResourceType is the rt of the selected resource, taken from the first
// JSON response example that has one.
func (g *Generator) ResourceType() string {
	for _, r := range g.selected() {
		for _, m := range r.Methods {
			for _, resp := range m.Responses {
				for _, b := range resp.Body {
					if b.MediaType != raml.DefaultMediaType || b.Example == "" {
						continue
					}
					if rt := ResourceTypeOf(b.Example); rt != "" {
						return rt
					}
					g.log.Warn().Str("resource", r.Name).Str("verb", m.Verb).Int("code", resp.Code).Msg("no rt found in example")
				}
			}
		}
	}
	return ""
}

// ResourceTypeOf finds the "rt" value in a pretty printed JSON example. The
// first line whose first quoted token is rt gives the value.
func ResourceTypeOf(example string) string {
	for _, line := range strings.Split(strings.ReplaceAll(example, " ", ""), "\n") {
		tokens := strings.Split(strings.TrimRight(line, "\r"), `"`)
		if len(tokens) >= 4 && tokens[1] == "rt" {
			return tokens[3]
		}
	}
	return ""
}
