package generator

import (
	"strings"
)

// MarkdownSink renders a section as Markdown for terminal preview. RAML and
// JSON source goes into fenced blocks, tables become pipe tables.
type MarkdownSink struct {
	blocks []mdBlock
}

type mdBlock struct {
	heading string
	level   int

	text string
	code bool

	table *mdTable
}

type mdTable struct {
	header []string
	rows   [][]string
}

func (t *mdTable) AddRow(cells ...string) {
	row := make([]string, len(t.header))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// NewMarkdownSink returns an empty sink.
func NewMarkdownSink() *MarkdownSink { return &MarkdownSink{} }

func (m *MarkdownSink) Heading(text string, level int, _ string) {
	if level < 1 {
		level = 1
	}
	m.blocks = append(m.blocks, mdBlock{heading: text, level: level})
}

func (m *MarkdownSink) Paragraph(style string, runs ...Run) {
	code := isCodeStyle(style)
	var sb strings.Builder
	for _, r := range runs {
		if r.Italic && !code && strings.TrimSpace(r.Text) != "" {
			sb.WriteString("_" + strings.TrimSpace(r.Text) + "_")
			continue
		}
		sb.WriteString(r.Text)
	}
	m.blocks = append(m.blocks, mdBlock{text: sb.String(), code: code})
}

func (m *MarkdownSink) Source(_ string, text string) {
	m.blocks = append(m.blocks, mdBlock{text: strings.TrimRight(text, "\n"), code: true})
}

func (m *MarkdownSink) Table(_ string, header ...string) Rows {
	t := &mdTable{header: header}
	m.blocks = append(m.blocks, mdBlock{table: t})
	return t
}

func isCodeStyle(style string) bool {
	return strings.HasPrefix(style, "CODE-")
}

// String renders the collected blocks. Consecutive code paragraphs share
// one fenced block.
func (m *MarkdownSink) String() string {
	var sb strings.Builder
	inCode := false
	closeCode := func() {
		if inCode {
			sb.WriteString("```\n\n")
			inCode = false
		}
	}
	for _, b := range m.blocks {
		switch {
		case b.heading != "":
			closeCode()
			sb.WriteString(strings.Repeat("#", b.level) + " " + b.heading + "\n\n")
		case b.table != nil:
			closeCode()
			writeTable(&sb, b.table)
		case b.code:
			if !inCode {
				sb.WriteString("```yaml\n")
				inCode = true
			}
			sb.WriteString(b.text + "\n")
		default:
			closeCode()
			if b.text != "" {
				sb.WriteString(b.text + "\n\n")
			}
		}
	}
	closeCode()
	return sb.String()
}

func writeTable(sb *strings.Builder, t *mdTable) {
	row := func(cells []string) {
		sb.WriteString("|")
		for _, c := range cells {
			sb.WriteString(" " + strings.ReplaceAll(c, "|", `\|`) + " |")
		}
		sb.WriteString("\n")
	}
	row(t.header)
	sep := make([]string, len(t.header))
	for i := range sep {
		sep[i] = "---"
	}
	row(sep)
	for _, r := range t.rows {
		row(r)
	}
	sb.WriteString("\n")
}
