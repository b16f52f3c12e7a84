package style

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/raml2doc/pkg/raml"
	"github.com/yeisme/raml2doc/pkg/validate"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a b", Truncate("a\n  b", 10))
	for _, s := range []string{"abcdefgh", "开关状态描述"} {
		got := Truncate(s, 5)
		assert.LessOrEqual(t, runewidth.StringWidth(got), 5)
		assert.True(t, strings.HasSuffix(got, "…"), got)
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	err := PrintTable(&buf, []string{"Resource", "Read"}, [][]string{{"/light", "get"}}, 60)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "RESOURCE")
	assert.Contains(t, buf.String(), "/light")
}

func TestPrintResourceTree(t *testing.T) {
	child := &raml.Resource{Name: "/{id}", Methods: []*raml.Method{{Verb: "delete"}}}
	res := &raml.Resource{Name: "/light", DisplayName: "Light", Methods: []*raml.Method{{Verb: "get"}}, Resources: []*raml.Resource{child}}
	api := &raml.API{Title: "Lights", Version: "v1", Resources: []*raml.Resource{res}}

	var buf bytes.Buffer
	require.NoError(t, PrintResourceTree(&buf, api, api.Resources))
	out := buf.String()
	assert.Contains(t, out, "Lights v1")
	assert.Contains(t, out, "/light")
	assert.Contains(t, out, "/{id}")
	assert.Contains(t, out, "delete")
}

func TestPrintReports(t *testing.T) {
	var buf bytes.Buffer
	err := PrintReports(&buf, []validate.Report{
		{Location: "/a get 200", Valid: true},
		{Location: "/a post body", Errors: []string{"value: Invalid type."}},
		{Location: "/b get 200", Err: errors.New("schema is not valid JSON")},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "/a get 200")
	assert.Contains(t, out, "value: Invalid type.")
	assert.Contains(t, out, "schema is not valid JSON")
}
