package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reopen(t *testing.T, d *Document) *Document {
	t.Helper()
	var buf bytes.Buffer
	_, err := d.WriteTo(&buf)
	require.NoError(t, err)
	out, err := Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()), nil)
	require.NoError(t, err)
	return out
}

func TestDefaultTemplateStyles(t *testing.T) {
	d, err := NewDefault(nil)
	require.NoError(t, err)

	assert.Equal(t, "Heading1", d.Styles.ParagraphID("Heading 1"))
	assert.Equal(t, "Title", d.Styles.ParagraphID("Title"))
	assert.Equal(t, "TABLE-A", d.Styles.TableID("TABLE-A"))
	assert.Equal(t, "ANNEX_title", d.Styles.ParagraphID("ANNEX_title"))
	for _, s := range CodeStyles {
		assert.True(t, d.Styles.Has(s, TypeParagraph), s)
		assert.Equal(t, s+"Char", d.Styles.CharacterID(s), s)
	}
}

func TestInsertBeforeSectPr(t *testing.T) {
	d, err := NewDefault(nil)
	require.NoError(t, err)
	d.AddHeading("Introduction", 1, "")
	d.AddParagraph("hello & <world>", "").SetItalic(true)

	doc := reopen(t, d).part(documentPart).data
	s := string(doc)
	body := strings.Index(s, "Introduction")
	sect := strings.Index(s, "<w:sectPr")
	require.Positive(t, body)
	assert.Less(t, body, sect)
	assert.Contains(t, s, `<w:pStyle w:val="Heading1"/>`)
	assert.Contains(t, s, "hello &amp; &lt;world&gt;")
	assert.Contains(t, s, "<w:i/>")
}

func TestInsertBody(t *testing.T) {
	out, err := insertBody([]byte("<w:body></w:body>"), []byte("<w:p/>"))
	require.NoError(t, err)
	assert.Equal(t, "<w:body><w:p/></w:body>", string(out))

	_, err = insertBody([]byte("<x/>"), []byte("<w:p/>"))
	assert.Error(t, err)
}

// 模板正文中 Word 扩展内容
const richDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006" xmlns:w14="http://schemas.microsoft.com/office/word/2010/wordml" mc:Ignorable="w14"><w:body>` +
	`<w:bookmarkStart w:id="0" w:name="top"/>` +
	`<w:sdt><w:sdtPr><w:alias w:val="Title"/></w:sdtPr><w:sdtContent><w:p w14:paraId="1A2B3C4D"><w:r><w:t>Cover</w:t></w:r></w:p></w:sdtContent></w:sdt>` +
	`<w:customXml w:element="note"><w:p><w:pPr><w:sectPr><w:type w:val="nextPage"/></w:sectPr></w:pPr></w:p></w:customXml>` +
	`<w:bookmarkEnd w:id="0"/>` +
	`<w:sectPr w:rsidR="00AB"><w:pgSz w:w="11906" w:h="16838"/><w:sectPrChange w:id="1" w:author="x"><w:sectPr/></w:sectPrChange></w:sectPr></w:body></w:document>`

const customItem = `<?xml version="1.0"?><root xmlns="urn:x"><item a="1"/></root>`

func templateZip(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range []struct{ name, data string }{
		{"[Content_Types].xml", `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`},
		{documentPart, richDocument},
		{"customXml/item1.xml", customItem},
	} {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestTemplateBodyPreserved(t *testing.T) {
	tpl := templateZip(t)
	d, err := Read(bytes.NewReader(tpl), int64(len(tpl)), nil)
	require.NoError(t, err)
	d.AddParagraph("generated", "")
	body := string(d.Body())

	var buf bytes.Buffer
	_, err = d.WriteTo(&buf)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	parts := map[string]string{}
	for _, zf := range zr.File {
		rc, err := zf.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		_ = rc.Close()
		parts[zf.Name] = string(b)
	}
	require.Len(t, parts, 3)

	// 只在最后的 body 级 sectPr 前插入，其余字节不变
	at := strings.LastIndex(richDocument, `<w:sectPr w:rsidR="00AB">`)
	assert.Equal(t, richDocument[:at]+body+richDocument[at:], parts[documentPart])
	assert.Equal(t, customItem, parts["customXml/item1.xml"])
}

func TestLastElement(t *testing.T) {
	doc := []byte(`<w:sectPr><w:sectPrChange/></w:sectPr>`)
	assert.Equal(t, 0, lastElement(doc, "w:sectPr"))
	assert.Equal(t, 3, lastElement([]byte(`<a><w:sectPr/>`), "w:sectPr"))
	assert.Equal(t, -1, lastElement([]byte(`<w:sectPrChange>`), "w:sectPr"))
}

func TestRunsAndBreaks(t *testing.T) {
	d, err := NewDefault(nil)
	require.NoError(t, err)
	p := d.AddParagraph("", "CODE-BLUE")
	p.AddRun("a\nb\tc", "CODE-BLUE")
	p.AddRun("plain", "NoSuchStyle")

	s := string(d.Body())
	assert.Contains(t, s, `<w:rStyle w:val="CODE-BLUEChar"/>`)
	assert.Contains(t, s, "<w:br/>")
	assert.Contains(t, s, "<w:tab/>")
	assert.Equal(t, "a\nb\tcplain", p.Text())
	// 未定义的字符样式不写 rStyle
	assert.Equal(t, 1, strings.Count(s, "<w:rStyle"))
}

func TestTable(t *testing.T) {
	d, err := NewDefault(nil)
	require.NoError(t, err)
	tbl := d.AddTable(1, 3, "TABLE-A")
	tbl.Rows[0].SetTexts("Property name", "Value type", "Mandatory", "ignored")
	tbl.AddRow().SetTexts("value")

	assert.Equal(t, 3, tbl.Cols())
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "", tbl.Rows[1].Cells[2].Text)

	s := string(d.Body())
	assert.Contains(t, s, `<w:tblStyle w:val="TABLE-A"/>`)
	assert.Equal(t, 6, strings.Count(s, "<w:tc>"))
	assert.Equal(t, 3, strings.Count(s, "<w:gridCol"))
	assert.NotContains(t, s, "ignored")
}

func TestUnknownStyleDerivesID(t *testing.T) {
	m := NewStyleMap(nil)
	assert.Equal(t, "MyStyle2", m.ParagraphID("My Style 2"))
	assert.Equal(t, "ANNEX-heading1", DeriveID("ANNEX-heading1"))
	assert.Equal(t, "", m.CharacterID("My Style 2"))
}

func TestSaveAndOpen(t *testing.T) {
	d, err := NewDefault(nil)
	require.NoError(t, err)
	d.AddHeading("Binary Switch", 0, "")
	assert.Equal(t, 1, d.Len())

	path := filepath.Join(t.TempDir(), "out.docx")
	require.NoError(t, d.Save(path))

	back, err := Open(path, nil)
	require.NoError(t, err)
	assert.Contains(t, string(back.part(documentPart).data), "Binary Switch")
	assert.NotNil(t, back.part("word/_rels/document.xml.rels"))
	assert.Equal(t, 0, back.Len())
}

func TestOpenOrDefault(t *testing.T) {
	d, err := OpenOrDefault(filepath.Join(t.TempDir(), "missing.docx"), nil)
	require.NoError(t, err)
	assert.True(t, d.Styles.Has("TABLE-A", TypeTable))

	bad := filepath.Join(t.TempDir(), "bad.docx")
	require.NoError(t, os.WriteFile(bad, []byte("not a zip"), 0644))
	_, err = OpenOrDefault(bad, nil)
	assert.Error(t, err)
}
