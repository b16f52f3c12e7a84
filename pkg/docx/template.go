package docx

import (
	"archive/zip"
	"fmt"
	"strings"
	"time"

	"github.com/yeisme/raml2doc/pkg/utils/log"
)

// CodeStyles are the colour styles of reproduced RAML and JSON source.
var CodeStyles = []string{"CODE-AQUA", "CODE-BLACK", "CODE-BLUE", "CODE-GREEN", "CODE-GREY", "CODE-YELLOW"}

var codeColors = map[string]string{
	"CODE-AQUA":   "00A0A0",
	"CODE-BLACK":  "000000",
	"CODE-BLUE":   "1F4E9A",
	"CODE-GREEN":  "2E7D32",
	"CODE-GREY":   "7F7F7F",
	"CODE-YELLOW": "A07800",
}

// NewDefault returns a document built on the built-in template, which
// defines every style the generator uses.
func NewDefault(logger log.Logger) (*Document, error) {
	d := &Document{log: logger}
	if d.log == nil {
		d.log = log.Nop()
	}
	now := time.Now()
	for _, p := range []struct{ name, data string }{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{documentPart, documentXML},
		{stylesPart, defaultStylesXML()},
		{"word/_rels/document.xml.rels", documentRelsXML},
	} {
		d.parts = append(d.parts, &part{name: p.name, data: []byte(p.data), method: zip.Deflate, modified: now})
	}
	d.Styles = NewStyleMap(d.log)
	if err := d.Styles.Load([]byte(defaultStylesXML())); err != nil {
		return nil, err
	}
	return d, nil
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/><Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/></Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/></Relationships>`

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body><w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr></w:body></w:document>`

func defaultStylesXML() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	sb.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/><w:sz w:val="22"/></w:rPr></w:rPrDefault><w:pPrDefault><w:pPr><w:spacing w:after="120"/></w:pPr></w:pPrDefault></w:docDefaults>`)
	sb.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>`)
	sb.WriteString(headingStyle("Title", "Title", 0, 56))
	for lvl, size := range []int{32, 28, 26, 24, 22} {
		n := lvl + 1
		sb.WriteString(headingStyle(fmt.Sprintf("Heading%d", n), fmt.Sprintf("heading %d", n), n, size))
	}
	sb.WriteString(basedOn("ANNEX_title", "ANNEX_title", "Heading1", 1))
	sb.WriteString(basedOn("ANNEX-heading1", "ANNEX-heading1", "Heading2", 2))
	sb.WriteString(basedOn("ANNEX-heading2", "ANNEX-heading2", "Heading3", 3))
	for _, name := range CodeStyles {
		color := codeColors[name]
		sb.WriteString(fmt.Sprintf(`<w:style w:type="paragraph" w:customStyle="1" w:styleId="%[1]s"><w:name w:val="%[1]s"/><w:basedOn w:val="Normal"/><w:link w:val="%[1]sChar"/><w:pPr><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr><w:rPr><w:rFonts w:ascii="Courier New" w:hAnsi="Courier New"/><w:color w:val="%[2]s"/><w:sz w:val="18"/></w:rPr></w:style>`, name, color))
		sb.WriteString(fmt.Sprintf(`<w:style w:type="character" w:customStyle="1" w:styleId="%[1]sChar"><w:name w:val="%[1]s Char"/><w:link w:val="%[1]s"/><w:rPr><w:rFonts w:ascii="Courier New" w:hAnsi="Courier New"/><w:color w:val="%[2]s"/><w:sz w:val="18"/></w:rPr></w:style>`, name, color))
	}
	sb.WriteString(`<w:style w:type="table" w:customStyle="1" w:styleId="TABLE-A"><w:name w:val="TABLE-A"/><w:tblPr><w:tblBorders><w:top w:val="single" w:sz="4" w:space="0" w:color="000000"/><w:left w:val="single" w:sz="4" w:space="0" w:color="000000"/><w:bottom w:val="single" w:sz="4" w:space="0" w:color="000000"/><w:right w:val="single" w:sz="4" w:space="0" w:color="000000"/><w:insideH w:val="single" w:sz="4" w:space="0" w:color="000000"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="000000"/></w:tblBorders></w:tblPr><w:tblStylePr w:type="firstRow"><w:rPr><w:b/></w:rPr><w:tcPr><w:shd w:val="clear" w:color="auto" w:fill="D9D9D9"/></w:tcPr></w:tblStylePr></w:style>`)
	sb.WriteString(`</w:styles>`)
	return sb.String()
}

func headingStyle(id, name string, level, size int) string {
	outline := ""
	if level > 0 {
		outline = fmt.Sprintf(`<w:outlineLvl w:val="%d"/>`, level-1)
	}
	return fmt.Sprintf(`<w:style w:type="paragraph" w:styleId="%s"><w:name w:val="%s"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/><w:pPr><w:keepNext/><w:spacing w:before="240" w:after="120"/>%s</w:pPr><w:rPr><w:b/><w:sz w:val="%d"/></w:rPr></w:style>`, id, name, outline, size)
}

func basedOn(id, name, parent string, level int) string {
	return fmt.Sprintf(`<w:style w:type="paragraph" w:customStyle="1" w:styleId="%s"><w:name w:val="%s"/><w:basedOn w:val="%s"/><w:next w:val="Normal"/><w:qFormat/><w:pPr><w:outlineLvl w:val="%d"/></w:pPr></w:style>`, id, name, parent, level-1)
}
