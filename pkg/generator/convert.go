package generator

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/yeisme/raml2doc/pkg/docx"
	"github.com/yeisme/raml2doc/pkg/raml"
	"github.com/yeisme/raml2doc/pkg/resolve"
	"github.com/yeisme/raml2doc/pkg/utils/log"
	"github.com/yeisme/raml2doc/pkg/validate"
)

// Job is one conversion run.
type Job struct {
	RAML      string
	Template  string
	Output    string
	SchemaDir string
	// JSONLint is an optional external jsonlint command.
	JSONLint string
	// Client fetches remote includes and schemas, usually through the
	// schema proxy.
	Client *http.Client
	Options
}

// OutputName is Output, or the RAML file name with ".docx" appended.
func (j Job) OutputName() string {
	if j.Output != "" {
		return j.Output
	}
	return j.RAML + ".docx"
}

// Load loads the RAML file of the job.
func (j Job) Load(ctx context.Context, logger log.Logger) (*raml.API, error) {
	api, err := raml.Load(ctx, j.RAML, raml.Options{Client: j.Client, Logger: logger})
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debug().Msg("resource tree\n" + api.TreeString())
	}
	return api, nil
}

// NewGenerator builds the generator of the job for api.
func (j Job) NewGenerator(api *raml.API, logger log.Logger) *Generator {
	res := resolve.New(api, j.SchemaDir, j.Client, logger)
	val := validate.New(logger, j.JSONLint)
	return New(api, res, val, j.Options, logger)
}

// Convert generates the section of api into the template and saves the
// result. A nil api loads the RAML file of the job first.
func Convert(ctx context.Context, j Job, api *raml.API, logger log.Logger) (*Generator, error) {
	if logger == nil {
		logger = log.Nop()
	}
	if api == nil {
		var err error
		if api, err = j.Load(ctx, logger); err != nil {
			return nil, err
		}
	}

	doc, err := docx.OpenOrDefault(j.Template, logger)
	if err != nil {
		return nil, err
	}

	g := j.NewGenerator(api, logger)
	if err := g.Generate(ctx, NewDocxSink(doc)); err != nil {
		return g, err
	}

	out := j.OutputName()
	if err := doc.Save(out); err != nil {
		return g, err
	}
	logger.Info().Str("file", out).Int("blocks", doc.Len()).Msg("document saved")
	return g, nil
}

// AddTitle writes a document holding only a level 1 heading. Underscores in
// text become spaces.
func AddTitle(template, output, text string, annex bool, logger log.Logger) error {
	if logger == nil {
		logger = log.Nop()
	}
	doc, err := docx.OpenOrDefault(template, logger)
	if err != nil {
		return err
	}
	title := strings.ReplaceAll(text, "_", " ")
	style := ""
	if annex {
		style = StyleAnnexTitle
	}
	doc.AddHeading(title, 1, style)
	logger.Info().Str("title", title).Bool("annex", annex).Msg("add heading")
	if err := doc.Save(output); err != nil {
		return fmt.Errorf("add title: %w", err)
	}
	return nil
}
