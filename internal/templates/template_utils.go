package templates

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// BuilderSuffix is appended to the target type name to name its builder
const BuilderSuffix = "Builder"

// TemplateUtils provides common utilities for template generation
type TemplateUtils struct{}

// NewTemplateUtils creates a new template utilities instance
func NewTemplateUtils() *TemplateUtils {
	return &TemplateUtils{}
}

// BuildBuilderName creates the builder type name from a target type name
func (tu *TemplateUtils) BuildBuilderName(typeName string) string {
	return typeName + BuilderSuffix
}

// BuildConstructorName creates the constructor function name for a builder.
// Exported builders get New<Builder>, unexported ones new<Builder>.
func (tu *TemplateUtils) BuildConstructorName(builderName string) string {
	if token.IsExported(builderName) {
		return "New" + builderName
	}
	return "new" + tu.ToPascalCase(builderName)
}

// ToPascalCase upper-cases the first rune of s
func (tu *TemplateUtils) ToPascalCase(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// PickIdentifier returns preferred unless it is taken, in which case it
// tries the fallbacks in order and finally appends underscores to preferred
func (tu *TemplateUtils) PickIdentifier(taken map[string]bool, preferred string, fallbacks ...string) string {
	for _, candidate := range append([]string{preferred}, fallbacks...) {
		if !taken[candidate] {
			return candidate
		}
	}
	candidate := preferred
	for taken[candidate] {
		candidate += "_"
	}
	return candidate
}

// IsVariadic reports whether a parameter type string is a variadic one
func (tu *TemplateUtils) IsVariadic(paramType string) bool {
	return strings.HasPrefix(paramType, "...")
}
