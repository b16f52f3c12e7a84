// Package raml loads RAML 0.8 API descriptions into an ordered model.
//
// Only the parts needed to document a resource are modelled: resources,
// methods, query parameters, bodies, responses, traits and schemas. Map
// order from the source file is preserved everywhere.
package raml

import "strings"

// DefaultMediaType is used for bodies declared without a media type.
const DefaultMediaType = "application/json"

// API is the root of a loaded RAML document.
type API struct {
	RAMLVersion string
	Title       string
	Version     string
	BaseURI     string
	MediaType   string
	Schemas     []*SchemaDef
	Traits      []*Trait
	Resources   []*Resource

	// Path is the RAML file the API was loaded from, Dir its directory.
	Path string
	Dir  string
}

// SchemaDef is one entry of the top level schemas list.
type SchemaDef struct {
	Name string
	// FileName is the included file, empty for inline schemas.
	FileName string
	Content  string
}

// Trait is a named trait with its query parameters.
type Trait struct {
	Name            string
	Description     string
	QueryParameters []*TraitParameter
}

// TraitParameter keeps the attributes of a trait query parameter in source order.
type TraitParameter struct {
	Name       string
	Attributes []Attribute
}

// Attribute is a key with either a scalar or a list value.
type Attribute struct {
	Key   string
	Value string
	List  []string
}

// IsList reports whether the attribute holds a sequence.
func (a Attribute) IsList() bool { return a.List != nil }

// Resource is a node of the resource tree. Name is relative to the parent,
// for example "/light".
type Resource struct {
	Name        string
	DisplayName string
	Description string
	Is          []string
	Methods     []*Method
	Resources   []*Resource
	Parent      *Resource `json:"-"`
}

// Method is an HTTP (or notify) method of a resource.
type Method struct {
	Verb            string
	Description     string
	Is              []string
	QueryParameters []*QueryParameter
	Body            []*Body
	Responses       []*Response
}

// QueryParameter describes a method query parameter.
type QueryParameter struct {
	Name        string
	DisplayName string
	Type        string
	Description string
	Enum        []string
	Required    *bool
	Example     string
	Default     string
}

// Response is a response of a method keyed by status code.
type Response struct {
	Code        int
	Description string
	Headers     []*Header
	Body        []*Body
}

// Header is a response header.
type Header struct {
	Name        string
	Type        string
	Description string
}

// Body is a request or response body for one media type. Schema is either
// the schema text or the name of an entry in API.Schemas.
type Body struct {
	MediaType  string
	Schema     string
	SchemaFile string
	Example    string
}

// HasSchema reports whether a schema was declared for the body.
func (b *Body) HasSchema() bool { return b != nil && b.Schema != "" }

// Resource returns the top level resource whose name without the leading
// slash equals name.
func (a *API) Resource(name string) *Resource {
	for _, r := range a.Resources {
		if r.Key() == name {
			return r
		}
	}
	return nil
}

// ResourceNames lists the top level resource names without leading slash.
func (a *API) ResourceNames() []string {
	names := make([]string, 0, len(a.Resources))
	for _, r := range a.Resources {
		names = append(names, r.Key())
	}
	return names
}

// SchemaByName looks up a schema declared in the schemas section.
func (a *API) SchemaByName(name string) *SchemaDef {
	for _, s := range a.Schemas {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Select returns the resources to document: all top level resources when
// name is empty, otherwise only the matching one.
func (a *API) Select(name string) []*Resource {
	if name == "" {
		return a.Resources
	}
	if r := a.Resource(name); r != nil {
		return []*Resource{r}
	}
	return nil
}

// Key is the resource name without the leading slash.
func (r *Resource) Key() string {
	return strings.TrimPrefix(r.Name, "/")
}

// Path is the full URI path from the API root.
func (r *Resource) Path() string {
	if r.Parent == nil {
		return r.Name
	}
	return r.Parent.Path() + r.Name
}

// Method returns the method with the given verb, or nil.
func (r *Resource) Method(verb string) *Method {
	for _, m := range r.Methods {
		if m.Verb == verb {
			return m
		}
	}
	return nil
}

// Walk visits r and all nested resources depth first. Returning false from
// fn skips the children of that resource.
func (r *Resource) Walk(fn func(res *Resource, depth int) bool) {
	r.walk(fn, 0)
}

func (r *Resource) walk(fn func(res *Resource, depth int) bool, depth int) {
	if !fn(r, depth) {
		return
	}
	for _, c := range r.Resources {
		c.walk(fn, depth+1)
	}
}

// Response returns the response with the given status code, or nil.
func (m *Method) Response(code int) *Response {
	for _, r := range m.Responses {
		if r.Code == code {
			return r
		}
	}
	return nil
}

// BodyFor returns the request body for mediaType, or nil.
func (m *Method) BodyFor(mediaType string) *Body {
	return bodyFor(m.Body, mediaType)
}

// BodyFor returns the response body for mediaType, or nil.
func (r *Response) BodyFor(mediaType string) *Body {
	return bodyFor(r.Body, mediaType)
}

func bodyFor(bodies []*Body, mediaType string) *Body {
	for _, b := range bodies {
		if b.MediaType == mediaType {
			return b
		}
	}
	return nil
}
