package jsonprop

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"github.com/buger/jsonparser"
)

// Headers are the column titles of a property definition table.
var Headers = []string{"Property name", "Value type", "Mandatory", "Access mode", "Description"}

const (
	// MultipleTypes is shown when a property declares no type.
	MultipleTypes = "multiple types: see schema"
	seeSchema     = ": see schema"

	ReadOnly  = "Read Only"
	ReadWrite = "Read Write"
)

// ErrInvalidJSON is returned for schema text that is not valid JSON.
var ErrInvalidJSON = errors.New("schema is not valid JSON")

// Property is one row of a property definition table.
type Property struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	ReadOnly    bool   `json:"read_only"`
	Description string `json:"description"`
}

// Mandatory is "yes" for required properties and empty otherwise.
func (p Property) Mandatory() string {
	if p.Required {
		return "yes"
	}
	return ""
}

// AccessMode is "Read Only" or "Read Write".
func (p Property) AccessMode() string {
	if p.ReadOnly {
		return ReadOnly
	}
	return ReadWrite
}

// Row returns the table cells in header order.
func (p Property) Row() []string {
	return []string{p.Name, p.Type, p.Mandatory(), p.AccessMode(), p.Description}
}

// SensorValue is the row added for sensor resources.
var SensorValue = Property{
	Name:        "value",
	Type:        "boolean",
	Required:    true,
	ReadOnly:    true,
	Description: "True = Sensed, False = Not Sensed.",
}

// ExtractProperties builds the property rows of a schema. The properties
// object is located with FindKeyLinkAll; when several combinator branches
// declare properties they are merged in order and the first declaration
// of a name wins. Required names come from ParseRequired.
func ExtractProperties(text string) ([]Property, error) {
	data := []byte(text)
	if !json.Valid(data) {
		return nil, ErrInvalidJSON
	}

	required := ParseRequired(text)

	var out []Property
	seen := map[string]bool{}
	for _, props := range FindKeyLinkAll(data, "properties") {
		if props.Type != jsonparser.Object {
			continue
		}
		_ = jsonparser.ObjectEach(props.Data, func(k, v []byte, vt jsonparser.ValueType, _ int) error {
			name, err := jsonparser.ParseString(k)
			if err != nil {
				name = string(k)
			}
			if seen[name] {
				return nil
			}
			seen[name] = true

			p := Property{Name: name, Required: slices.Contains(required, name)}
			if vt == jsonparser.Object {
				p.Type = propertyType(v)
				if d, err := jsonparser.GetString(v, "description"); err == nil {
					p.Description = d
				}
				if ro, err := jsonparser.GetBoolean(v, "readOnly"); err == nil {
					p.ReadOnly = ro
				}
			} else {
				p.Type = MultipleTypes
			}
			out = append(out, p)
			return nil
		})
	}
	return out, nil
}

// propertyType renders the type keyword. Arrays of types are joined.
func propertyType(prop []byte) string {
	v, vt, _, err := jsonparser.Get(prop, "type")
	if err != nil {
		return MultipleTypes
	}
	switch vt {
	case jsonparser.String:
		t, err := jsonparser.ParseString(v)
		if err != nil {
			return MultipleTypes
		}
		if t == "array" || t == "object" {
			return t + seeSchema
		}
		return t
	case jsonparser.Array:
		var types []string
		_, _ = jsonparser.ArrayEach(v, func(e []byte, et jsonparser.ValueType, _ int, _ error) {
			if et == jsonparser.String {
				types = append(types, string(e))
			}
		})
		if len(types) == 0 {
			return MultipleTypes
		}
		return strings.Join(types, ", ")
	default:
		return MultipleTypes
	}
}
