package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeisme/raml2doc/pkg/raml"
)

func testAPI() *raml.API {
	sw := &raml.Resource{Name: "/BinarySwitchResURI", DisplayName: "Binary Switch", Methods: []*raml.Method{{Verb: "get"}, {Verb: "post"}}}
	sw.Resources = []*raml.Resource{{Name: "/{id}", Parent: sw, Methods: []*raml.Method{{Verb: "delete"}}}}
	return &raml.API{
		Title: "Switches",
		Resources: []*raml.Resource{
			sw,
			{Name: "/DimmingResURI", DisplayName: "Dimming"},
			{Name: "/ColourRGBResURI"},
		},
	}
}

func TestSuggest(t *testing.T) {
	api := testAPI()

	got := Suggest(api, "binaryswitch")
	if assert.NotEmpty(t, got) {
		assert.Equal(t, "BinarySwitchResURI", got[0])
	}

	// query 比资源名长
	assert.Contains(t, Suggest(api, "/DimmingResURI2"), "DimmingResURI")

	// displayName 匹配
	assert.Contains(t, Suggest(api, "dim"), "DimmingResURI")

	assert.Empty(t, Suggest(api, "zzzz"))
	assert.Nil(t, Suggest(api, "  "))
}

func TestPickNoResources(t *testing.T) {
	_, err := Pick(&raml.API{})
	assert.ErrorIs(t, err, ErrNoResources)
}

func TestPreview(t *testing.T) {
	api := testAPI()
	api.Resources[0].Description = "A binary switch.\n"

	out := Preview(api.Resources[0])
	assert.Contains(t, out, "/BinarySwitchResURI [get, post]")
	assert.Contains(t, out, "  /BinarySwitchResURI/{id} [delete]")
	assert.Contains(t, out, "A binary switch.")
}
