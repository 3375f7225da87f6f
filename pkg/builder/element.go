package builder

import (
	"go/token"
	"path/filepath"
)

// Element is the view of an annotated program element the generator works
// on. Hosts adapt whatever program model they have to it.
type Element interface {
	// SimpleName is the declared name of the element, e.g. "SetName"
	SimpleName() string
	// ParameterTypes lists the declared parameter types as source text
	ParameterTypes() []string
	// EnclosingType is the receiver type of a method; the zero TypeName
	// for elements that are not methods
	EnclosingType() TypeName
}

// TypeName identifies a named Go type
type TypeName struct {
	PkgPath string // import path, empty when unknown
	PkgName string // package clause name
	Name    string
	Generic bool // declared with type parameters
}

// String returns the fully qualified name of the type
func (t TypeName) String() string {
	if t.PkgPath == "" {
		return t.Name
	}
	return t.PkgPath + "." + t.Name
}

// IsZero reports whether t names no type
func (t TypeName) IsZero() bool {
	return t.Name == ""
}

// Import is an import spec a parameter type depends on
type Import struct {
	Name string // explicit package name, empty when the import is not renamed
	Path string
}

// Source is the optional source information an element may carry
type Source struct {
	Pos             token.Position
	Imports         []Import // imports referenced by the parameter types
	PointerReceiver bool
	// Scope holds the package-level identifiers of the element's package,
	// nil when unknown
	Scope map[string]bool
}

// Dir returns the directory of the file the element was declared in
func (s Source) Dir() string {
	if s.Pos.Filename == "" {
		return ""
	}
	return filepath.Dir(s.Pos.Filename)
}

// SourceElement is implemented by elements that know where they come from
type SourceElement interface {
	Element
	Source() Source
}

// Member is the Element implementation produced by source parsers
type Member struct {
	Name     string
	Params   []string
	Receiver TypeName
	Src      Source
}

// SimpleName implements Element
func (m *Member) SimpleName() string { return m.Name }

// ParameterTypes implements Element
func (m *Member) ParameterTypes() []string { return m.Params }

// EnclosingType implements Element
func (m *Member) EnclosingType() TypeName { return m.Receiver }

// Source implements SourceElement
func (m *Member) Source() Source { return m.Src }

// String returns a human readable reference to the member
func (m *Member) String() string {
	if m.Receiver.IsZero() {
		return m.Name
	}
	return m.Receiver.Name + "." + m.Name
}

// sourceOf returns the source information of e, if it has any
func sourceOf(e Element) (Source, bool) {
	if se, ok := e.(SourceElement); ok {
		return se.Source(), true
	}
	return Source{}, false
}

// describe returns a short reference to e for messages
func describe(e Element) string {
	if s, ok := e.(interface{ String() string }); ok {
		return s.String()
	}
	if t := e.EnclosingType(); !t.IsZero() {
		return t.Name + "." + e.SimpleName()
	}
	return e.SimpleName()
}
