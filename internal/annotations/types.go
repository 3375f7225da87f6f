package annotations

import (
	"fmt"

	"github.com/toyz/buildergen/internal/errors"
)

// Namespace is the word that introduces a builder annotation
const Namespace = "builder"

// Marker is the canonical form of the property annotation
const Marker = "//builder::property"

// AnnotationType represents the type of annotation
type AnnotationType int

const (
	UnknownAnnotation AnnotationType = iota
	PropertyAnnotation
)

// String returns the string representation of the annotation type
func (a AnnotationType) String() string {
	switch a {
	case PropertyAnnotation:
		return "property"
	default:
		return "unknown"
	}
}

// ParseAnnotationType converts string to AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch s {
	case "property":
		return PropertyAnnotation, nil
	default:
		return UnknownAnnotation, fmt.Errorf("unknown annotation type: %s", s)
	}
}

// ParsedAnnotation is a builder annotation found in a doc comment
type ParsedAnnotation struct {
	Type     AnnotationType
	Location errors.SourceLocation
	Raw      string
}
