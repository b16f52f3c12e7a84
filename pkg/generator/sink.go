package generator

import (
	"github.com/yeisme/raml2doc/pkg/docx"
)

// Run is a piece of paragraph text. Style is a character style name.
type Run struct {
	Text   string
	Style  string
	Italic bool
}

// Rows receives table rows after the table has been placed.
type Rows interface {
	AddRow(cells ...string)
}

// Sink is where a generated section is written to.
type Sink interface {
	Heading(text string, level int, style string)
	Paragraph(style string, runs ...Run)
	// Source adds a left aligned block of reproduced RAML or JSON.
	Source(style, text string)
	Table(style string, header ...string) Rows
}

// DocxSink writes into a Word document.
type DocxSink struct {
	Doc *docx.Document
}

// NewDocxSink wraps doc.
func NewDocxSink(doc *docx.Document) *DocxSink {
	return &DocxSink{Doc: doc}
}

func (s *DocxSink) Heading(text string, level int, style string) {
	s.Doc.AddHeading(text, level, style)
}

func (s *DocxSink) Paragraph(style string, runs ...Run) {
	p := s.Doc.AddParagraph("", style)
	for _, r := range runs {
		p.AddRun(r.Text, r.Style).Italic = r.Italic
	}
}

func (s *DocxSink) Source(style, text string) {
	p := s.Doc.AddParagraph(text, style)
	p.Alignment = docx.AlignLeft
}

func (s *DocxSink) Table(style string, header ...string) Rows {
	t := s.Doc.AddTable(1, len(header), style)
	t.Rows[0].SetTexts(header...)
	return docxRows{t}
}

type docxRows struct{ t *docx.Table }

func (r docxRows) AddRow(cells ...string) { r.t.AddRow().SetTexts(cells...) }
