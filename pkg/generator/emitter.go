package generator

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/yeisme/raml2doc/pkg/raml"
	"github.com/yeisme/raml2doc/pkg/resolve"
)

// splitLines splits text into lines without a trailing empty line.
func splitLines(text string) []string {
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// justify indents every line of text by depth. Each line keeps a newline.
func justify(depth, text string) string {
	var sb strings.Builder
	for _, l := range splitLines(text) {
		sb.WriteString(depth + l + "\n")
	}
	return sb.String()
}

// justifyText is justify for prose: sentences separated by ". " go on
// their own line and empty lines are dropped.
func justifyText(depth, text string) string {
	var sb strings.Builder
	for _, l := range splitLines(text) {
		for _, s := range strings.Split(l, ". ") {
			if s != "" {
				sb.WriteString(depth + s + "\n")
			}
		}
	}
	return sb.String()
}

// listToArray renders values as a RAML flow sequence: ["a", "b"].
func listToArray(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + v + `"`
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func (g *Generator) line(out Sink, style, text string) {
	out.Paragraph(style, Run{Text: text})
}

// printRAML reproduces the header, the traits and the selected resources.
func (g *Generator) printRAML(ctx context.Context, out Sink) {
	g.line(out, StyleCodeGreen, "#%RAML "+raml.SupportedVersion)
	out.Paragraph(StyleCodeYellow, Run{Text: "title: "}, Run{Text: g.API.Title, Italic: true})
	out.Paragraph(StyleCodeYellow, Run{Text: "version: "}, Run{Text: g.API.Version, Italic: true})

	g.printTraits(out)

	out.Paragraph("")
	for _, r := range g.selected() {
		g.printResource(ctx, out, "", r)
	}
}

func (g *Generator) printTraits(out Sink) {
	if len(g.API.Traits) == 0 {
		return
	}
	g.line(out, StyleCodeAqua, "traits:")
	// 序列项前的 "- " 占用额外的缩进
	depth := "   " + tab
	for _, t := range g.API.Traits {
		g.line(out, StyleCodeAqua, " - "+t.Name+" :")
		g.printTraitQueryParameters(out, depth, t.QueryParameters)
	}
}

func (g *Generator) printTraitQueryParameters(out Sink, depth string, params []*raml.TraitParameter) {
	if len(params) == 0 {
		return
	}
	tdepth := depth + tab
	ttdepth := tdepth + tab
	g.line(out, StyleCodeAqua, depth+"queryParameters: ")
	for _, p := range params {
		g.line(out, StyleCodeBlue, tdepth+p.Name+":")
		for _, a := range p.Attributes {
			var v string
			switch {
			case a.Key == "enum":
				v = listToArray(a.List)
			case a.IsList():
				v = strings.Join(a.List, "")
			default:
				v = a.Value
			}
			g.line(out, StyleCodeBlue, ttdepth+a.Key+": "+v)
		}
	}
}

func (g *Generator) printDescription(out Sink, depth, text string) {
	if text == "" {
		return
	}
	g.line(out, StyleCodeYellow, depth+"description: |")
	out.Paragraph(StyleCodeYellow, Run{Text: justifyText(depth+tab, text), Italic: true})
}

func (g *Generator) printIs(out Sink, depth string, is []string) {
	if len(is) == 0 {
		return
	}
	quoted := make([]string, len(is))
	for i, s := range is {
		quoted[i] = "'" + s + "'"
	}
	g.line(out, StyleCodeBlue, depth+"is : ["+strings.Join(quoted, ",")+"]")
}

func (g *Generator) printResource(ctx context.Context, out Sink, depth string, r *raml.Resource) {
	tdepth := depth + tab
	ttdepth := tdepth + tab

	g.line(out, StyleCodeBlue, depth+r.Name+":")
	g.printDescription(out, tdepth, r.Description)
	g.printIs(out, tdepth, r.Is)

	for _, m := range r.Methods {
		where := r.Path() + " " + m.Verb
		g.line(out, StyleCodeAqua, tdepth+m.Verb+":")
		g.printDescription(out, ttdepth, m.Description)
		g.printQueryParameters(out, ttdepth, m.QueryParameters)
		g.printRequestBody(ctx, out, ttdepth, m.Body, where)
		g.line(out, StyleCodeAqua, ttdepth+"responses :")
		g.printResponses(ctx, out, ttdepth, m.Responses, where)
	}
	for _, c := range r.Resources {
		g.printResource(ctx, out, tdepth, c)
	}
}

func (g *Generator) printQueryParameters(out Sink, depth string, params []*raml.QueryParameter) {
	if len(params) == 0 {
		return
	}
	tdepth := depth + tab
	ttdepth := tdepth + tab
	g.line(out, StyleCodeAqua, depth+"queryParameters: ")
	for _, q := range params {
		g.line(out, StyleCodeBlue, tdepth+q.Name+":")
		if q.Enum != nil {
			g.line(out, StyleCodeBlue, ttdepth+"enum: "+listToArray(q.Enum))
		}
		if q.Type != "" {
			g.line(out, StyleCodeBlue, ttdepth+"type: "+q.Type)
		}
		if q.Description != "" {
			g.line(out, StyleCodeYellow, ttdepth+"description: "+q.Description)
		}
		if q.Required != nil {
			g.line(out, StyleCodeBlue, ttdepth+"required: "+strconv.FormatBool(*q.Required))
		}
		if q.Example != "" {
			g.line(out, StyleCodeGrey, ttdepth+"example: "+q.Example)
		}
	}
}

// printRequestBody reproduces the body of a method, one media type line per
// body under a single body key.
func (g *Generator) printRequestBody(ctx context.Context, out Sink, depth string, bodies []*raml.Body, where string) {
	if len(bodies) == 0 {
		return
	}
	g.line(out, StyleCodeAqua, depth+"body:")
	for _, b := range bodies {
		g.line(out, StyleCodeAqua, depth+tab+b.MediaType+":")
		g.printBody(ctx, out, depth+tab, "", b, where+" body")
	}
}

func (g *Generator) printResponses(ctx context.Context, out Sink, depth string, responses []*raml.Response, where string) {
	tdepth := depth + tab
	ttdepth := tdepth + tab
	for _, resp := range responses {
		c := strconv.Itoa(resp.Code)
		g.line(out, StyleCodeBlue, tdepth+c+":")
		g.printDescription(out, ttdepth, resp.Description)
		for _, h := range resp.Headers {
			g.log.Debug().Str("location", where+" "+c).Str("header", h.Name).Str("type", h.Type).Msg("response header")
		}
		for _, b := range resp.Body {
			g.printBody(ctx, out, tdepth, b.MediaType, b, where+" "+c)
		}
	}
}

// printBody reproduces the schema and example of a body. With a media type
// the body and media type keys are written first. Bodies without schema
// are skipped.
func (g *Generator) printBody(ctx context.Context, out Sink, depth, mediaType string, b *raml.Body, where string) {
	if !b.HasSchema() {
		return
	}
	tdepth := depth + tab
	ttdepth := tdepth + tab
	tttdepth := ttdepth + tab
	write := tdepth
	if mediaType != "" {
		g.line(out, StyleCodeAqua, tdepth+"body:")
		g.line(out, StyleCodeAqua, ttdepth+mediaType+":")
		write = tttdepth
	}

	schema := g.Resolver.Body(ctx, b)
	out.Paragraph(StyleCodeGrey, Run{Text: write + "schema"}, Run{Text: ": |", Style: StyleCodeGrey})
	out.Source(StyleCodeBlack, justify(write+tab, schema.Text))

	if b.Example == "" {
		return
	}
	out.Paragraph(StyleCodeGrey, Run{Text: write + "example"}, Run{Text: ": |", Style: StyleCodeGrey})
	out.Source(StyleCodeBlack, justify(write+tab, b.Example))
	g.checkExample(where, schema, b.Example)
}

// checkExample logs examples that are not JSON or do not match their schema.
func (g *Generator) checkExample(where string, schema resolve.Schema, example string) {
	if !json.Valid([]byte(example)) {
		g.log.Error().Str("location", where).Msg("example is not valid JSON")
		g.log.Debug().Str("example", example).Msg("invalid example")
	}
	if !g.Opts.Validate || g.Validator == nil {
		return
	}
	rep := g.Validator.Validate(schema.Text, schema.File, example)
	rep.Location = where
	g.Validator.Log(rep, schema.Text, example)
	g.reports = append(g.reports, rep)
}
