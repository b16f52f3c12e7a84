// Package jsonprop extracts property tables from JSON Schema documents.
//
// Lookups scan the raw JSON with jsonparser so that keys are visited in
// document order, which decides which match wins.
package jsonprop

import (
	"bytes"
	"errors"

	"github.com/buger/jsonparser"
)

// Value is a raw JSON value found by a lookup.
type Value struct {
	Data []byte
	Type jsonparser.ValueType
}

// String returns the value as text; strings are unescaped.
func (v Value) String() string {
	if v.Type == jsonparser.String {
		if s, err := jsonparser.ParseString(v.Data); err == nil {
			return s
		}
	}
	return string(v.Data)
}

var errStop = errors.New("stop")

// combinators are the schema keywords whose array elements are searched by
// FindKeyLink.
var combinators = map[string]bool{"oneOf": true, "allOf": true, "anyOf": true}

func isObject(data []byte) bool {
	d := bytes.TrimSpace(data)
	return len(d) > 0 && d[0] == '{'
}

// direct returns the value of key when it is a direct member of the object.
func direct(data []byte, key string) (Value, bool) {
	found := Value{}
	ok := false
	_ = jsonparser.ObjectEach(data, func(k, v []byte, vt jsonparser.ValueType, _ int) error {
		if string(k) == key {
			found = Value{Data: v, Type: vt}
			ok = true
			return errStop
		}
		return nil
	})
	return found, ok
}

// FindKey searches data depth first for key. Direct members of an object
// are checked before any of its values is searched. Arrays are not entered.
func FindKey(data []byte, key string) (Value, bool) {
	if !isObject(data) {
		return Value{}, false
	}
	if v, ok := direct(data, key); ok {
		return v, true
	}

	var found Value
	ok := false
	_ = jsonparser.ObjectEach(data, func(_, v []byte, vt jsonparser.ValueType, _ int) error {
		if vt != jsonparser.Object {
			return nil
		}
		if r, hit := FindKey(v, key); hit {
			found, ok = r, true
			return errStop
		}
		return nil
	})
	return found, ok
}

// FindKeyLink is FindKey that also follows oneOf, allOf and anyOf arrays.
// A string element equal to key is returned as is. When several combinator
// branches contain key the last one wins. Only if no combinator matched are
// the remaining values searched, first match wins.
func FindKeyLink(data []byte, key string) (Value, bool) {
	all := findKeyLink(data, key, false)
	if len(all) == 0 {
		return Value{}, false
	}
	return all[len(all)-1], true
}

// FindKeyLinkAll returns every match FindKeyLink chooses from. With a
// direct member or a match outside combinators the result has one element.
func FindKeyLinkAll(data []byte, key string) []Value {
	return findKeyLink(data, key, true)
}

func findKeyLink(data []byte, key string, all bool) []Value {
	if !isObject(data) {
		return nil
	}
	if v, ok := direct(data, key); ok {
		return []Value{v}
	}

	var matches []Value
	_ = jsonparser.ObjectEach(data, func(k, v []byte, vt jsonparser.ValueType, _ int) error {
		if !combinators[string(k)] || vt != jsonparser.Array {
			return nil
		}
		stop := false
		_, _ = jsonparser.ArrayEach(v, func(elem []byte, et jsonparser.ValueType, _ int, _ error) {
			if stop {
				return
			}
			switch et {
			case jsonparser.String:
				if s, err := jsonparser.ParseString(elem); err == nil && s == key {
					matches = []Value{{Data: elem, Type: et}}
					stop = true
				}
			case jsonparser.Object:
				if r := findKeyLink(elem, key, all); len(r) > 0 {
					if all {
						matches = append(matches, r...)
					} else {
						matches = append(matches, r[len(r)-1])
					}
				}
			}
		})
		if stop {
			return errStop
		}
		return nil
	})
	if len(matches) > 0 {
		return matches
	}

	var first []Value
	_ = jsonparser.ObjectEach(data, func(_, v []byte, vt jsonparser.ValueType, _ int) error {
		if vt != jsonparser.Object {
			return nil
		}
		if r := findKeyLink(v, key, all); len(r) > 0 {
			first = r
			return errStop
		}
		return nil
	})
	return first
}
