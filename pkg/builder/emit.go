package builder

import (
	"fmt"
	"path/filepath"

	"github.com/iancoleman/strcase"

	"github.com/toyz/buildergen/internal/templates"
	"github.com/toyz/buildergen/internal/utils"
)

// DefaultFileSuffix is appended to the snake-cased target name to name the
// generated file
const DefaultFileSuffix = "_builder.go"

// Unit is one generated source unit
type Unit struct {
	Name     string // fully qualified name of the builder type
	PkgName  string
	Dir      string
	FileName string
	Source   []byte
	Spec     *BuilderSpec
}

// Path returns the file path the unit is meant to be written to
func (u *Unit) Path() string {
	return filepath.Join(u.Dir, u.FileName)
}

// Emitter renders BuilderSpecs into source units
type Emitter struct {
	// FileSuffix overrides DefaultFileSuffix when set
	FileSuffix string
}

// Emit renders spec with the default emitter
func Emit(spec *BuilderSpec) (*Unit, error) {
	return (&Emitter{}).Emit(spec)
}

// Emit renders spec into a formatted source unit. Emitting the same spec
// twice yields identical bytes.
func (em *Emitter) Emit(spec *BuilderSpec) (*Unit, error) {
	if spec == nil || spec.Target.IsZero() {
		return nil, fmt.Errorf("builder spec has no target type")
	}
	if spec.Len() == 0 {
		return nil, fmt.Errorf("builder spec for %s has no setters", spec.Target)
	}

	pkgName := spec.Target.PkgName
	if pkgName == "" && spec.Target.PkgPath != "" {
		pkgName = templates.AssumedPackageName(spec.Target.PkgPath)
	}
	if pkgName == "" {
		return nil, fmt.Errorf("cannot determine the package of %s", spec.Target)
	}

	imports := templates.NewImportManager()
	for _, imp := range spec.Imports() {
		if err := imports.AddImport(templates.Import{Name: imp.Name, Path: imp.Path}); err != nil {
			return nil, fmt.Errorf("conflicting imports for %s: %w", spec.Target, err)
		}
	}

	setters := make([]templates.Setter, 0, spec.Len())
	for _, s := range spec.Setters() {
		setters = append(setters, templates.Setter{Name: s.Name, Type: s.Type})
	}

	data := templates.NewBuilderData(pkgName, spec.Target.Name, setters, imports)
	for _, name := range []string{data.BuilderName, data.Constructor} {
		if spec.Declared(name) {
			return nil, fmt.Errorf("%s is already declared in package %s", name, pkgName)
		}
	}
	code, err := templates.RenderBuilder(data)
	if err != nil {
		return nil, fmt.Errorf("failed to render builder for %s: %w", spec.Target, err)
	}

	unit := &Unit{
		Name:     spec.Target.String() + templates.BuilderSuffix,
		PkgName:  pkgName,
		Dir:      spec.Dir,
		FileName: em.fileName(spec.Target.Name),
		Spec:     spec,
	}

	unit.Source, err = utils.FormatGoSource(unit.Path(), []byte(code))
	if err != nil {
		return nil, fmt.Errorf("failed to format builder for %s: %w", spec.Target, err)
	}

	return unit, nil
}

func (em *Emitter) fileName(typeName string) string {
	suffix := em.FileSuffix
	if suffix == "" {
		suffix = DefaultFileSuffix
	}
	return strcase.ToSnake(typeName) + suffix
}
