package templates

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// BuilderData is the input of the builder templates
type BuilderData struct {
	PackageName string
	TypeName    string
	BuilderName string
	Constructor string
	Receiver    string
	Param       string
	Imports     string
	Setters     []SetterData
}

// SetterData describes one chained setter method
type SetterData struct {
	Name     string
	Type     string
	Variadic bool
}

// Setter is an accepted setter as handed over by the generator
type Setter struct {
	Name string
	Type string
}

// NewBuilderData assembles template data for a target type. Identifiers for
// the receiver and the parameter are chosen so they never shadow an imported
// package or a name used in a parameter type.
func NewBuilderData(packageName, typeName string, setters []Setter, imports *ImportManager) *BuilderData {
	utils := NewTemplateUtils()
	if imports == nil {
		imports = NewImportManager()
	}

	taken := imports.Names()
	taken[typeName] = true
	for _, s := range setters {
		for _, ident := range strings.FieldsFunc(s.Type, notIdentifier) {
			taken[ident] = true
		}
	}

	data := &BuilderData{
		PackageName: packageName,
		TypeName:    typeName,
		BuilderName: utils.BuildBuilderName(typeName),
		Imports:     imports.GenerateImports(),
	}
	data.Constructor = utils.BuildConstructorName(data.BuilderName)
	taken[data.BuilderName] = true

	data.Receiver = utils.PickIdentifier(taken, "b", "builder")
	taken[data.Receiver] = true
	data.Param = utils.PickIdentifier(taken, "value", "v", "arg")

	for _, s := range setters {
		data.Setters = append(data.Setters, SetterData{
			Name:     s.Name,
			Type:     s.Type,
			Variadic: utils.IsVariadic(s.Type),
		})
	}

	return data
}

// RenderBuilder executes the builder templates and returns the unformatted source
func RenderBuilder(data *BuilderData) (string, error) {
	if data == nil {
		return "", fmt.Errorf("builder data cannot be nil")
	}

	registry := NewTemplateRegistry()
	var buf bytes.Buffer

	for _, name := range []string{"header", "builder", "setter"} {
		tmpl, err := template.New(name).Parse(registry.MustGet(name))
		if err != nil {
			return "", fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		if err := tmpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("failed to execute %s template: %w", name, err)
		}
	}

	return buf.String(), nil
}
