package builder

// Setter is one entry of a BuilderSpec
type Setter struct {
	Name string
	Type string // parameter type, verbatim from source
}

// BuilderSpec is the plan for one generated builder
type BuilderSpec struct {
	Target  TypeName
	Dir     string // directory of the target's package, empty when unknown
	setters []Setter
	index   map[string]int
	imports []Import
	scope   map[string]bool
	origin  Element // first accepted element, diagnostics for the group point here
}

// NewBuilderSpec creates an empty spec for target
func NewBuilderSpec(target TypeName) *BuilderSpec {
	return &BuilderSpec{
		Target: target,
		index:  make(map[string]int),
	}
}

// Put records a setter. A name seen before keeps its position and takes
// the new parameter type.
func (s *BuilderSpec) Put(name, paramType string) {
	if i, ok := s.index[name]; ok {
		s.setters[i].Type = paramType
		return
	}
	s.index[name] = len(s.setters)
	s.setters = append(s.setters, Setter{Name: name, Type: paramType})
}

// AddImport records an import the parameter types need
func (s *BuilderSpec) AddImport(imp Import) {
	for _, existing := range s.imports {
		if existing == imp {
			return
		}
	}
	s.imports = append(s.imports, imp)
}

// Declare records package-level identifiers of the target's package
func (s *BuilderSpec) Declare(names ...string) {
	if s.scope == nil {
		s.scope = make(map[string]bool, len(names))
	}
	for _, name := range names {
		s.scope[name] = true
	}
}

// Declared reports whether the target's package declares name
func (s *BuilderSpec) Declared(name string) bool {
	return s.scope[name]
}

// Setters returns the setters in insertion order
func (s *BuilderSpec) Setters() []Setter {
	out := make([]Setter, len(s.setters))
	copy(out, s.setters)
	return out
}

// Imports returns the imports recorded for the spec
func (s *BuilderSpec) Imports() []Import {
	out := make([]Import, len(s.imports))
	copy(out, s.imports)
	return out
}

// Lookup returns the parameter type recorded for a setter name
func (s *BuilderSpec) Lookup(name string) (string, bool) {
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	return s.setters[i].Type, true
}

// Len returns the number of setters
func (s *BuilderSpec) Len() int {
	return len(s.setters)
}

// Origin returns the first element accepted for the spec
func (s *BuilderSpec) Origin() Element {
	return s.origin
}

// Groups maps declaring type names to their BuilderSpec, in first-seen order
type Groups struct {
	order []string
	specs map[string]*BuilderSpec
}

// Get returns the spec of a fully qualified type name. Types without an
// import path are looked up with Of.
func (g *Groups) Get(typeName string) (*BuilderSpec, bool) {
	spec, ok := g.specs[typeName]
	return spec, ok
}

// Of returns the spec of the type e is declared on
func (g *Groups) Of(e Element) (*BuilderSpec, bool) {
	spec, ok := g.specs[groupKey(e)]
	return spec, ok
}

// Specs returns all specs in the order their types were first seen
func (g *Groups) Specs() []*BuilderSpec {
	out := make([]*BuilderSpec, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.specs[name])
	}
	return out
}

// Len returns the number of specs
func (g *Groups) Len() int {
	return len(g.order)
}

// Group accumulates the accepted outcomes into one BuilderSpec per declaring
// type. Rejected outcomes are skipped; a type without accepted outcomes gets
// no spec.
func Group(outcomes []Outcome) *Groups {
	groups := &Groups{specs: make(map[string]*BuilderSpec)}

	for _, outcome := range outcomes {
		if !outcome.Accepted {
			continue
		}
		e := outcome.Element
		target := e.EnclosingType()
		key := groupKey(e)

		spec, ok := groups.specs[key]
		if !ok {
			spec = NewBuilderSpec(target)
			spec.origin = e
			groups.specs[key] = spec
			groups.order = append(groups.order, key)
		}

		spec.Put(e.SimpleName(), e.ParameterTypes()[0])

		if src, ok := sourceOf(e); ok {
			if spec.Dir == "" {
				spec.Dir = src.Dir()
			}
			for _, imp := range src.Imports {
				spec.AddImport(imp)
			}
			for name := range src.Scope {
				spec.Declare(name)
			}
		}
	}

	return groups
}

// groupKey identifies the declaring type of e. Types without an import path
// are told apart by package name and source directory.
func groupKey(e Element) string {
	target := e.EnclosingType()
	if target.PkgPath != "" {
		return target.String()
	}
	var dir string
	if src, ok := sourceOf(e); ok {
		dir = src.Dir()
	}
	if dir == "" && target.PkgName == "" {
		return target.Name
	}
	return dir + ":" + target.PkgName + "." + target.Name
}
