// Package generator writes the documentation section of one RAML resource.
//
// The walker functions traverse the resource tree, optionally restricted to
// one top level resource, and the emitter lays the section out in a Sink:
// introduction, URIs, resource type, reproduced RAML, property table and
// CRUDN table.
package generator

import (
	"context"

	"github.com/yeisme/raml2doc/pkg/raml"
	"github.com/yeisme/raml2doc/pkg/resolve"
	"github.com/yeisme/raml2doc/pkg/utils/log"
	"github.com/yeisme/raml2doc/pkg/validate"
)

// Style names the generator relies on in the template.
const (
	StyleTable        = "TABLE-A"
	StyleCodeAqua     = "CODE-AQUA"
	StyleCodeBlack    = "CODE-BLACK"
	StyleCodeBlue     = "CODE-BLUE"
	StyleCodeGreen    = "CODE-GREEN"
	StyleCodeGrey     = "CODE-GREY"
	StyleCodeYellow   = "CODE-YELLOW"
	StyleAnnexTitle   = "ANNEX_title"
	StyleAnnexHeader1 = "ANNEX-heading1"
	StyleAnnexHeader2 = "ANNEX-heading2"
)

// StyleContract lists every style a template should define.
var StyleContract = []string{
	"Heading 1", "Heading 2", "Heading 3", "Heading 4", "Heading 5", "Title",
	StyleTable,
	StyleCodeAqua, StyleCodeBlack, StyleCodeBlue, StyleCodeGreen, StyleCodeGrey, StyleCodeYellow,
	StyleAnnexHeader1, StyleAnnexHeader2, StyleAnnexTitle,
}

// tab is one indentation level of reproduced RAML.
const tab = "  "

// Options select what goes into the section.
type Options struct {
	// Resource is the top level resource without leading slash; empty
	// documents every resource.
	Resource string
	// Annex uses the ANNEX heading styles.
	Annex bool
	// Put takes the property table from put instead of get.
	Put bool
	// Composite leaves out the property definition.
	Composite bool
	// Sensor adds the boolean "value" property.
	Sensor bool
	// Schemas are extra schema files reproduced as source, SchemasWT are
	// reproduced with their own property table.
	Schemas   []string
	SchemasWT []string
	// Validate checks every reproduced example against its schema.
	Validate bool
}

// TableMethod is the method whose 200 response feeds the property table.
func (o Options) TableMethod() string {
	if o.Put {
		return "put"
	}
	return "get"
}

// Generator generates the section for one API.
type Generator struct {
	API      *raml.API
	Opts     Options
	Resolver *resolve.Resolver
	// Validator may be nil, then examples are only checked for JSON syntax.
	Validator *validate.Validator

	log     log.Logger
	reports []validate.Report

	// --schema 文件只读一次，Generate 开始时清空
	extra     []resolve.NamedSchema
	extraRead bool
}

// New creates a generator.
func New(api *raml.API, res *resolve.Resolver, val *validate.Validator, opts Options, logger log.Logger) *Generator {
	if logger == nil {
		logger = log.Nop()
	}
	if res == nil {
		res = resolve.New(api, "", nil, logger)
	}
	return &Generator{API: api, Opts: opts, Resolver: res, Validator: val, log: logger}
}

// Reports are the validation results collected by the last Generate call.
func (g *Generator) Reports() []validate.Report { return g.reports }

// schemaFiles returns the --schema files, reading them on first use.
func (g *Generator) schemaFiles(ctx context.Context) []resolve.NamedSchema {
	if !g.extraRead {
		g.extra = g.Resolver.ReadFiles(ctx, g.Opts.Schemas)
		g.extraRead = true
	}
	return g.extra
}

// selected is the list of top level resources being documented.
func (g *Generator) selected() []*raml.Resource {
	return g.API.Select(g.Opts.Resource)
}

func (g *Generator) heading(out Sink, text string, level int) {
	style := ""
	if g.Opts.Annex {
		if level <= 2 {
			style = StyleAnnexHeader1
		} else {
			style = StyleAnnexHeader2
		}
	}
	out.Heading(text, level, style)
}

// Title is the level 2 heading of the section: the display name of the
// selected resource, else its name, else the API title.
func (g *Generator) Title() string {
	if g.Opts.Resource == "" {
		return g.API.Title
	}
	if dn := DisplayName(g.API, g.Opts.Resource); dn != "" {
		return dn
	}
	return g.Opts.Resource
}

// Generate writes the whole section to out.
func (g *Generator) Generate(ctx context.Context, out Sink) error {
	g.reports = nil
	g.extra, g.extraRead = nil, false
	if g.Opts.Resource != "" && g.API.Resource(g.Opts.Resource) == nil {
		return &UnknownResourceError{Name: g.Opts.Resource, Known: g.API.ResourceNames()}
	}

	title := g.Title()
	rt := g.ResourceType()
	g.log.Info().Str("title", title).Str("rt", rt).Msg("generating section")

	g.heading(out, title, 2)

	g.heading(out, "Introduction", 3)
	g.listDescriptions(out)

	if g.Opts.Annex {
		g.heading(out, "Wellknown URI", 3)
	} else {
		g.heading(out, "Example URI", 3)
	}
	g.listURIs(out)

	g.heading(out, "Resource Type", 3)
	if rt != "" {
		out.Paragraph("", Run{Text: "The resource type (rt) is defined as: " + rt + "."})
	} else {
		g.log.Warn().Str("resource", g.Opts.Resource).Msg("rt not found")
	}

	g.heading(out, "RAML Definition", 3)
	g.printRAML(ctx, out)

	if !g.Opts.Composite {
		g.heading(out, "Property Definition", 3)
		g.listAttributes(ctx, out)
	}

	g.heading(out, "CRUDN behavior", 3)
	g.listCRUDN(out)

	if len(g.Opts.Schemas) > 0 {
		g.heading(out, "Referenced JSON schemas", 3)
		for _, s := range g.schemaFiles(ctx) {
			g.heading(out, s.Name, 4)
			out.Source(StyleCodeBlack, justify("", s.Text))
		}
	}

	if len(g.Opts.SchemasWT) > 0 {
		g.heading(out, "Referenced JSON schemas", 3)
		for _, s := range g.Resolver.ReadFiles(ctx, g.Opts.SchemasWT) {
			g.heading(out, s.Name, 4)
			g.heading(out, "Property Definition", 5)
			rows := out.Table(StyleTable, propertyHeaders()...)
			g.addProperties(rows, s.Text, s.Name)
			g.heading(out, "Schema Definition", 5)
			out.Source(StyleCodeBlack, justify("", s.Text))
		}
	}
	return nil
}
