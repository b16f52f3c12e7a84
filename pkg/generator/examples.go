package generator

import (
	"context"
	"strconv"

	"github.com/yeisme/raml2doc/pkg/raml"
	"github.com/yeisme/raml2doc/pkg/validate"
)

// ValidateExamples checks every example of the selected resources that has
// a schema. Failures are logged and returned, never fatal.
func (g *Generator) ValidateExamples(ctx context.Context) []validate.Report {
	v := g.Validator
	if v == nil {
		v = validate.New(g.log, "")
	}
	var reports []validate.Report
	check := func(where string, b *raml.Body) {
		if !b.HasSchema() || b.Example == "" {
			return
		}
		s := g.Resolver.Body(ctx, b)
		rep := v.Validate(s.Text, s.File, b.Example)
		rep.Location = where
		v.Log(rep, s.Text, b.Example)
		reports = append(reports, rep)
	}

	for _, r := range g.selected() {
		r.Walk(func(res *raml.Resource, _ int) bool {
			for _, m := range res.Methods {
				where := res.Path() + " " + m.Verb
				for _, b := range m.Body {
					check(where+" body", b)
				}
				for _, resp := range m.Responses {
					for _, b := range resp.Body {
						check(where+" "+strconv.Itoa(resp.Code), b)
					}
				}
			}
			return true
		})
	}
	return reports
}
