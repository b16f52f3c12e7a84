// Package docx appends paragraphs, headings and tables to a Word template.
//
// A template is kept as the list of its zip parts. Generated content is
// rendered as WordprocessingML and inserted into word/document.xml in front
// of the final section properties when the document is saved; every other
// part is copied unchanged.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/yeisme/raml2doc/pkg/utils/log"
)

const (
	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"
)

// ErrNoDocumentPart is returned for packages without word/document.xml.
var ErrNoDocumentPart = errors.New("docx: package has no " + documentPart)

type part struct {
	name     string
	data     []byte
	method   uint16
	modified time.Time
}

// Document is an opened template with content appended to its body.
type Document struct {
	parts  []*part
	blocks []block
	Styles *StyleMap
	log    log.Logger
}

type block interface {
	render(buf *bytes.Buffer, s *StyleMap)
}

// Open reads a .docx template from disk.
func Open(path string, logger log.Logger) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat template: %w", err)
	}
	return Read(f, st.Size(), logger)
}

// Read reads a .docx package from r.
func Read(r io.ReaderAt, size int64, logger log.Logger) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	d := &Document{log: logger}
	if d.log == nil {
		d.log = log.Nop()
	}
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", zf.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", zf.Name, err)
		}
		d.parts = append(d.parts, &part{name: zf.Name, data: data, method: zf.Method, modified: zf.Modified})
	}
	if d.part(documentPart) == nil {
		return nil, ErrNoDocumentPart
	}

	d.Styles = NewStyleMap(d.log)
	if sp := d.part(stylesPart); sp != nil {
		if err := d.Styles.Load(sp.data); err != nil {
			d.log.Warn().Err(err).Msg("could not parse styles.xml, using style names as ids")
		}
	}
	return d, nil
}

// OpenOrDefault opens path, falling back to the built-in template when the
// file does not exist.
func OpenOrDefault(path string, logger log.Logger) (*Document, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if logger != nil {
			logger.Warn().Str("template", path).Msg("could not find template, using built-in template")
		}
		return NewDefault(logger)
	}
	return Open(path, logger)
}

func (d *Document) part(name string) *part {
	for _, p := range d.parts {
		if p.name == name {
			return p
		}
	}
	return nil
}

// AddHeading appends a heading. Level 0 uses the Title style, other levels
// "Heading N". A non empty style overrides the default.
func (d *Document) AddHeading(text string, level int, style string) *Paragraph {
	if style == "" {
		style = HeadingStyle(level)
	}
	return d.AddParagraph(text, style)
}

// HeadingStyle is the style name of a heading level.
func HeadingStyle(level int) string {
	if level <= 0 {
		return "Title"
	}
	return "Heading " + strconv.Itoa(level)
}

// AddParagraph appends a paragraph with one run holding text. An empty text
// gives an empty paragraph.
func (d *Document) AddParagraph(text, style string) *Paragraph {
	p := &Paragraph{Style: style}
	if text != "" {
		p.AddRun(text, "")
	}
	d.blocks = append(d.blocks, p)
	return p
}

// AddTable appends a table with rows empty rows of cols cells.
func (d *Document) AddTable(rows, cols int, style string) *Table {
	t := &Table{Style: style, cols: cols}
	for i := 0; i < rows; i++ {
		t.AddRow()
	}
	d.blocks = append(d.blocks, t)
	return t
}

// Len is the number of appended blocks.
func (d *Document) Len() int { return len(d.blocks) }

// Body renders the appended content as WordprocessingML.
func (d *Document) Body() []byte {
	var buf bytes.Buffer
	for _, b := range d.blocks {
		b.render(&buf, d.Styles)
	}
	return buf.Bytes()
}

// WriteTo writes the package with the appended content to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	doc := d.part(documentPart)
	if doc == nil {
		return 0, ErrNoDocumentPart
	}
	merged, err := insertBody(doc.data, d.Body())
	if err != nil {
		return 0, err
	}

	cw := &countWriter{w: w}
	zw := zip.NewWriter(cw)
	for _, p := range d.parts {
		data := p.data
		if p.name == documentPart {
			data = merged
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: p.method, Modified: p.modified})
		if err != nil {
			return cw.n, fmt.Errorf("write %s: %w", p.name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return cw.n, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// Save writes the document to path.
func (d *Document) Save(path string) error {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// insertBody places body in front of the last <w:sectPr, or in front of
// </w:body> when the document has no section properties.
func insertBody(doc, body []byte) ([]byte, error) {
	at := lastElement(doc, "w:sectPr")
	if at < 0 {
		at = bytes.LastIndex(doc, []byte("</w:body>"))
	}
	if at < 0 {
		return nil, errors.New("docx: document.xml has no body")
	}
	out := make([]byte, 0, len(doc)+len(body))
	out = append(out, doc[:at]...)
	out = append(out, body...)
	out = append(out, doc[at:]...)
	return out, nil
}

// lastElement is the offset of the last start tag named name. Longer names
// sharing the prefix, such as w:sectPrChange, do not match.
func lastElement(doc []byte, name string) int {
	tag := []byte("<" + name)
	for end := len(doc); end > 0; {
		at := bytes.LastIndex(doc[:end], tag)
		if at < 0 {
			return -1
		}
		if next := at + len(tag); next < len(doc) {
			switch doc[next] {
			case '>', '/', ' ', '\t', '\r', '\n':
				return at
			}
		}
		end = at
	}
	return -1
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
