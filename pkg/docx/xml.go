package docx

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
)

// Alignment values for paragraphs.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// tableWidth is the usable page width in twentieths of a point.
const tableWidth = 9000

// Paragraph is a paragraph of styled runs.
type Paragraph struct {
	Style     string
	Alignment string
	Runs      []*Run
}

// Run is a piece of text with character formatting.
type Run struct {
	Text   string
	Style  string
	Italic bool
	Bold   bool
}

// AddRun appends a run. style is a character style name, may be empty.
func (p *Paragraph) AddRun(text, style string) *Run {
	r := &Run{Text: text, Style: style}
	p.Runs = append(p.Runs, r)
	return r
}

// SetItalic marks every run italic.
func (p *Paragraph) SetItalic(on bool) *Paragraph {
	for _, r := range p.Runs {
		r.Italic = on
	}
	return p
}

// Text is the concatenated text of all runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

func (p *Paragraph) render(buf *bytes.Buffer, s *StyleMap) {
	buf.WriteString("<w:p>")
	if p.Style != "" || p.Alignment != "" {
		buf.WriteString("<w:pPr>")
		if p.Style != "" {
			writeVal(buf, "w:pStyle", s.ParagraphID(p.Style))
		}
		if p.Alignment != "" {
			writeVal(buf, "w:jc", p.Alignment)
		}
		buf.WriteString("</w:pPr>")
	}
	for _, r := range p.Runs {
		r.render(buf, s)
	}
	buf.WriteString("</w:p>")
}

func (r *Run) render(buf *bytes.Buffer, s *StyleMap) {
	buf.WriteString("<w:r>")
	id := ""
	if r.Style != "" {
		id = s.CharacterID(r.Style)
	}
	if id != "" || r.Italic || r.Bold {
		buf.WriteString("<w:rPr>")
		if id != "" {
			writeVal(buf, "w:rStyle", id)
		}
		if r.Bold {
			buf.WriteString("<w:b/>")
		}
		if r.Italic {
			buf.WriteString("<w:i/>")
		}
		buf.WriteString("</w:rPr>")
	}
	writeText(buf, r.Text)
	buf.WriteString("</w:r>")
}

// writeText emits text, turning newlines into breaks and tabs into tab stops.
func writeText(buf *bytes.Buffer, text string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			buf.WriteString("<w:br/>")
		}
		parts := strings.Split(line, "\t")
		for j, seg := range parts {
			if j > 0 {
				buf.WriteString("<w:tab/>")
			}
			if seg == "" {
				continue
			}
			buf.WriteString(`<w:t xml:space="preserve">`)
			_ = xml.EscapeText(buf, []byte(seg))
			buf.WriteString("</w:t>")
		}
	}
}

func writeVal(buf *bytes.Buffer, tag, val string) {
	buf.WriteString("<" + tag + ` w:val="`)
	_ = xml.EscapeText(buf, []byte(val))
	buf.WriteString(`"/>`)
}

// Table is a grid of text cells. Rows can be added after the table was
// appended to the document.
type Table struct {
	Style string
	Rows  []*Row
	cols  int
}

// Row is a table row.
type Row struct {
	Cells []*Cell
}

// Cell holds the text of a table cell.
type Cell struct {
	Text string
}

// AddRow appends an empty row and returns it.
func (t *Table) AddRow() *Row {
	r := &Row{Cells: make([]*Cell, t.cols)}
	for i := range r.Cells {
		r.Cells[i] = &Cell{}
	}
	t.Rows = append(t.Rows, r)
	return r
}

// SetTexts fills the cells from the left; extra values are ignored.
func (r *Row) SetTexts(texts ...string) *Row {
	for i, s := range texts {
		if i < len(r.Cells) {
			r.Cells[i].Text = s
		}
	}
	return r
}

// Cols is the number of columns.
func (t *Table) Cols() int { return t.cols }

func (t *Table) render(buf *bytes.Buffer, s *StyleMap) {
	if t.cols == 0 {
		return
	}
	colW := strconv.Itoa(tableWidth / t.cols)

	buf.WriteString("<w:tbl><w:tblPr>")
	if t.Style != "" {
		writeVal(buf, "w:tblStyle", s.TableID(t.Style))
	}
	buf.WriteString(`<w:tblW w:w="0" w:type="auto"/>`)
	buf.WriteString(`<w:tblLook w:val="04A0" w:firstRow="1" w:lastRow="0" w:firstColumn="1" w:lastColumn="0" w:noHBand="0" w:noVBand="1"/>`)
	buf.WriteString("</w:tblPr><w:tblGrid>")
	for i := 0; i < t.cols; i++ {
		buf.WriteString(`<w:gridCol w:w="` + colW + `"/>`)
	}
	buf.WriteString("</w:tblGrid>")
	for _, r := range t.Rows {
		buf.WriteString("<w:tr>")
		for _, c := range r.Cells {
			buf.WriteString(`<w:tc><w:tcPr><w:tcW w:w="` + colW + `" w:type="dxa"/></w:tcPr>`)
			// 每个单元格必须至少包含一个段落
			p := Paragraph{}
			if c.Text != "" {
				p.AddRun(c.Text, "")
			}
			p.render(buf, s)
			buf.WriteString("</w:tc>")
		}
		buf.WriteString("</w:tr>")
	}
	buf.WriteString("</w:tbl>")
}
