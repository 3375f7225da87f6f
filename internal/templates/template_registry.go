package templates

// GeneratedHeader is the first line of every generated builder file
const GeneratedHeader = "// Code generated by buildergen. DO NOT EDIT."

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerBuilderTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// registerBuilderTemplates registers the templates a builder file is assembled from
func (tr *TemplateRegistry) registerBuilderTemplates() {
	tr.templates["header"] = GeneratedHeader + `

package {{.PackageName}}
{{if .Imports}}
{{.Imports}}{{end}}`

	// Builder type, constructor and terminal method
	tr.templates["builder"] = `
// {{.BuilderName}} builds {{.TypeName}} values through chained setter calls.
type {{.BuilderName}} struct {
	object *{{.TypeName}}
}

// {{.Constructor}} returns a builder wrapping a new {{.TypeName}}.
func {{.Constructor}}() *{{.BuilderName}} {
	return &{{.BuilderName}}{object: new({{.TypeName}})}
}

// Build returns the wrapped {{.TypeName}}.
func ({{.Receiver}} *{{.BuilderName}}) Build() *{{.TypeName}} {
	return {{.Receiver}}.object
}
`

	// One chained method per accepted setter
	tr.templates["setter"] = `{{range .Setters}}
// {{.Name}} calls {{$.TypeName}}.{{.Name}} on the wrapped value.
func ({{$.Receiver}} *{{$.BuilderName}}) {{.Name}}({{$.Param}} {{.Type}}) *{{$.BuilderName}} {
	{{$.Receiver}}.object.{{.Name}}({{$.Param}}{{if .Variadic}}...{{end}})
	return {{$.Receiver}}
}
{{end}}`
}
