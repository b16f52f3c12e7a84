package docx

import (
	"encoding/xml"
	"strings"
	"sync"
	"unicode"

	"github.com/yeisme/raml2doc/pkg/utils/log"
)

// Style types as used by the w:type attribute.
const (
	TypeParagraph = "paragraph"
	TypeCharacter = "character"
	TypeTable     = "table"
)

type styleEntry struct {
	id  string
	typ string
}

// StyleMap resolves style names to the style ids used in the XML.
// Names compare case-insensitively, so "Heading 1" finds Word's "heading 1".
type StyleMap struct {
	byName map[string][]styleEntry
	log    log.Logger

	mu     sync.Mutex
	warned map[string]bool
}

// NewStyleMap returns an empty map; unknown names fall back to derived ids.
func NewStyleMap(logger log.Logger) *StyleMap {
	if logger == nil {
		logger = log.Nop()
	}
	return &StyleMap{byName: map[string][]styleEntry{}, log: logger, warned: map[string]bool{}}
}

type stylesXML struct {
	Styles []struct {
		Type    string `xml:"type,attr"`
		StyleID string `xml:"styleId,attr"`
		Name    struct {
			Val string `xml:"val,attr"`
		} `xml:"name"`
	} `xml:"style"`
}

// Load adds the styles defined in a styles.xml part.
func (m *StyleMap) Load(data []byte) error {
	var sx stylesXML
	if err := xml.Unmarshal(data, &sx); err != nil {
		return err
	}
	for _, s := range sx.Styles {
		m.Add(s.Name.Val, s.StyleID, s.Type)
	}
	return nil
}

// Add registers a style.
func (m *StyleMap) Add(name, id, typ string) {
	if name == "" || id == "" {
		return
	}
	key := strings.ToLower(name)
	m.byName[key] = append(m.byName[key], styleEntry{id: id, typ: typ})
}

// Has reports whether a style with that name and type exists. An empty typ
// matches any type.
func (m *StyleMap) Has(name, typ string) bool {
	_, ok := m.lookup(name, typ)
	return ok
}

func (m *StyleMap) lookup(name, typ string) (string, bool) {
	for _, e := range m.byName[strings.ToLower(name)] {
		if typ == "" || e.typ == typ {
			return e.id, true
		}
	}
	return "", false
}

// ParagraphID resolves a paragraph style name.
func (m *StyleMap) ParagraphID(name string) string {
	if id, ok := m.lookup(name, TypeParagraph); ok {
		return id
	}
	if id, ok := m.lookup(name, ""); ok {
		return id
	}
	m.warn(name)
	return DeriveID(name)
}

// TableID resolves a table style name.
func (m *StyleMap) TableID(name string) string {
	if id, ok := m.lookup(name, TypeTable); ok {
		return id
	}
	m.warn(name)
	return DeriveID(name)
}

// CharacterID resolves a run style. The character style with that name is
// preferred, then Word's linked "<name> Char" style. An empty result means
// the run carries no style of its own.
func (m *StyleMap) CharacterID(name string) string {
	if id, ok := m.lookup(name, TypeCharacter); ok {
		return id
	}
	if id, ok := m.lookup(name+" Char", TypeCharacter); ok {
		return id
	}
	return ""
}

func (m *StyleMap) warn(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.warned[name] {
		return
	}
	m.warned[name] = true
	m.log.Warn().Str("style", name).Msg("style not defined in template")
}

// DeriveID builds the id Word would give a style name: the name with all
// characters other than letters, digits and hyphens removed.
func DeriveID(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return r
		}
		return -1
	}, name)
}
