package builder

import (
	"fmt"
	"go/token"
)

// Severity of a diagnostic
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

// String returns the lower-case name of the severity
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Kind classifies what a diagnostic is about
type Kind int

const (
	// KindShapeViolation: an annotated element is not a single-argument setter
	KindShapeViolation Kind = iota
	// KindEmissionIOFailure: the filer rejected a generated unit
	KindEmissionIOFailure
	// KindAnnotationSyntax: a builder:: comment could not be parsed
	KindAnnotationSyntax
	// KindValueReceiver: a setter has a value receiver
	KindValueReceiver
	// KindEmptyBuilder: a type had candidates but none was accepted
	KindEmptyBuilder
	// KindRenderFailure: a builder could not be rendered or formatted
	KindRenderFailure
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindShapeViolation:
		return "ShapeViolation"
	case KindEmissionIOFailure:
		return "EmissionIOFailure"
	case KindAnnotationSyntax:
		return "AnnotationSyntax"
	case KindValueReceiver:
		return "ValueReceiver"
	case KindEmptyBuilder:
		return "EmptyBuilder"
	case KindRenderFailure:
		return "RenderFailure"
	default:
		return "Unknown"
	}
}

// Diagnostic is a message for the host tool, associated with an element
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	Element  Element // may be nil
	Pos      token.Position
}

// String formats the diagnostic the way compilers do
func (d Diagnostic) String() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Reporter is the host tool's diagnostic channel
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(d Diagnostic)

// Report implements Reporter
func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Diagnostics collects reported diagnostics in memory
type Diagnostics struct {
	List []Diagnostic
}

// Report implements Reporter
func (c *Diagnostics) Report(d Diagnostic) {
	c.List = append(c.List, d)
}

// Errors returns the error diagnostics
func (c *Diagnostics) Errors() []Diagnostic {
	return c.filter(SeverityError)
}

// Warnings returns the warning diagnostics
func (c *Diagnostics) Warnings() []Diagnostic {
	return c.filter(SeverityWarning)
}

// HasErrors reports whether any error diagnostic was collected
func (c *Diagnostics) HasErrors() bool {
	return len(c.Errors()) > 0
}

func (c *Diagnostics) filter(severity Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.List {
		if d.Severity == severity {
			out = append(out, d)
		}
	}
	return out
}

// newDiagnostic builds a diagnostic positioned at e when e knows its position
func newDiagnostic(severity Severity, kind Kind, e Element, format string, args ...interface{}) Diagnostic {
	d := Diagnostic{
		Severity: severity,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Element:  e,
	}
	if e != nil {
		if src, ok := sourceOf(e); ok {
			d.Pos = src.Pos
		}
	}
	return d
}
