package jsonprop

import (
	"testing"

	"github.com/buger/jsonparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindKeyDirectBeforeNested(t *testing.T) {
	doc := []byte(`{"a": {"target": 1}, "target": 2}`)
	v, ok := FindKey(doc, "target")
	require.True(t, ok)
	assert.Equal(t, "2", v.String())
}

func TestFindKeyDocumentOrder(t *testing.T) {
	doc := []byte(`{"b": {"x": {"target": "first"}}, "a": {"target": "second"}}`)
	v, ok := FindKey(doc, "target")
	require.True(t, ok)
	assert.Equal(t, "first", v.String())
	assert.Equal(t, jsonparser.String, v.Type)
}

func TestFindKeyMissing(t *testing.T) {
	_, ok := FindKey([]byte(`{"a": [ {"target": 1} ]}`), "target")
	assert.False(t, ok, "arrays are not searched")

	_, ok = FindKey([]byte(`[1, 2]`), "target")
	assert.False(t, ok)
}

func TestFindKeyLinkCombinatorLastWins(t *testing.T) {
	doc := []byte(`{
		"allOf": [
			{"properties": {"a": {"type": "string"}}},
			{"properties": {"b": {"type": "string"}}}
		]
	}`)
	v, ok := FindKeyLink(doc, "properties")
	require.True(t, ok)
	assert.Contains(t, v.String(), `"b"`)

	all := FindKeyLinkAll(doc, "properties")
	require.Len(t, all, 2)
	assert.Contains(t, all[0].String(), `"a"`)
}

func TestFindKeyLinkStringElement(t *testing.T) {
	doc := []byte(`{"oneOf": [{"x": {"properties": {}}}, "properties"]}`)
	v, ok := FindKeyLink(doc, "properties")
	require.True(t, ok)
	assert.Equal(t, "properties", v.String())
}

func TestFindKeyLinkDirectFirst(t *testing.T) {
	doc := []byte(`{"anyOf": [{"properties": {"a": {}}}], "properties": {"direct": {}}}`)
	v, ok := FindKeyLink(doc, "properties")
	require.True(t, ok)
	assert.Contains(t, v.String(), "direct")
}

func TestFindKeyLinkFallsBackToValues(t *testing.T) {
	doc := []byte(`{"definitions": {"sw": {"properties": {"value": {}}}}}`)
	v, ok := FindKeyLink(doc, "properties")
	require.True(t, ok)
	assert.Contains(t, v.String(), "value")
}

func TestParseRequired(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single line",
			text: "{\n  \"required\": [\"value\", \"id\"]\n}",
			want: []string{"value", "id"},
		},
		{
			name: "multi line",
			text: "{\n  \"required\": [\n    \"value\",\n    \"id\"\n  ],\n  \"type\": \"object\"\n}",
			want: []string{"value", "id"},
		},
		{
			name: "spaces are dropped",
			text: "{\n \"required\": [\"has space\", \"ok\"]\n}",
			want: []string{"ok"},
		},
		{
			name: "property called required",
			text: "{\n \"properties\": {\n  \"required\": {\"type\": \"boolean\"}\n }\n}",
			want: nil,
		},
		{
			name: "nested lists merge",
			text: "{\n \"required\": [\"a\"],\n \"properties\": {\"o\": {\n  \"required\": [\"b\"]\n }}\n}",
			want: []string{"a", "b"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseRequired(tc.text))
		})
	}
}

const switchSchema = `{
  "id": "http://openinterconnect.org/schemas/oic.r.switch.binary.json#",
  "$schema": "http://json-schema.org/draft-04/schema#",
  "title": "Binary Switch",
  "definitions": {
    "oic.r.switch.binary": {
      "properties": {
        "value": {
          "type": "boolean",
          "description": "Status of the switch"
        },
        "id": {
          "type": "string",
          "readOnly": true,
          "description": "Instance ID"
        },
        "range": {
          "type": "array",
          "items": {"type": "number"}
        },
        "any": {
          "description": "No type"
        },
        "mixed": {
          "type": ["string", "integer"]
        }
      }
    }
  },
  "type": "object",
  "allOf": [
    {"$ref": "#/definitions/oic.r.switch.binary"}
  ],
  "required": ["value"]
}`

func TestExtractProperties(t *testing.T) {
	props, err := ExtractProperties(switchSchema)
	require.NoError(t, err)
	require.Len(t, props, 5)

	assert.Equal(t, []string{"value", "boolean", "yes", "Read Write", "Status of the switch"}, props[0].Row())
	assert.Equal(t, []string{"id", "string", "", "Read Only", "Instance ID"}, props[1].Row())
	assert.Equal(t, "array: see schema", props[2].Type)
	assert.Equal(t, MultipleTypes, props[3].Type)
	assert.Equal(t, "string, integer", props[4].Type)
}

func TestExtractPropertiesMergesBranches(t *testing.T) {
	schema := `{
  "oneOf": [
    {"properties": {"a": {"type": "string"}, "b": {"type": "object"}}},
    {"properties": {"a": {"type": "integer"}, "c": {"type": "number"}}}
  ]
}`
	props, err := ExtractProperties(schema)
	require.NoError(t, err)
	require.Len(t, props, 3)
	assert.Equal(t, "string", props[0].Type)
	assert.Equal(t, "object: see schema", props[1].Type)
	assert.Equal(t, "c", props[2].Name)
}

func TestExtractPropertiesInvalid(t *testing.T) {
	_, err := ExtractProperties(`{"properties": `)
	assert.ErrorIs(t, err, ErrInvalidJSON)

	props, err := ExtractProperties(`{"type": "object"}`)
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestSensorValue(t *testing.T) {
	assert.Equal(t, []string{"value", "boolean", "yes", "Read Only", "True = Sensed, False = Not Sensed."}, SensorValue.Row())
}
