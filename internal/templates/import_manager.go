package templates

import (
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Import is a single import spec carried into a generated file
type Import struct {
	Name string // explicit package name, empty when the import is not renamed
	Path string
}

// PackageName returns the identifier the import is referenced by in source
func (i Import) PackageName() string {
	if i.Name != "" {
		return i.Name
	}
	return AssumedPackageName(i.Path)
}

// String renders the import spec the way it appears inside an import block
func (i Import) String() string {
	if i.Name != "" {
		return fmt.Sprintf("%s %s", i.Name, strconv.Quote(i.Path))
	}
	return strconv.Quote(i.Path)
}

// ImportManager handles import generation and deduplication
type ImportManager struct {
	imports map[string]Import // binding name -> import
}

// NewImportManager creates a new import manager
func NewImportManager() *ImportManager {
	return &ImportManager{
		imports: make(map[string]Import),
	}
}

// AddImport adds an import. Blank and dot imports are ignored since a
// builder never references them by name. Binding a name that is already
// bound to another path is an error.
func (im *ImportManager) AddImport(imp Import) error {
	if imp.Path == "" || imp.Name == "_" || imp.Name == "." {
		return nil
	}

	name := imp.PackageName()
	if existing, ok := im.imports[name]; ok {
		if existing.Path != imp.Path {
			return fmt.Errorf("package name %s refers to both %q and %q", name, existing.Path, imp.Path)
		}
		if existing.Name != "" {
			return nil
		}
	}
	im.imports[name] = imp
	return nil
}

// Names returns the package identifiers the managed imports bind
func (im *ImportManager) Names() map[string]bool {
	names := make(map[string]bool, len(im.imports))
	for name := range im.imports {
		names[name] = true
	}
	return names
}

// Len returns the number of managed imports
func (im *ImportManager) Len() int {
	return len(im.imports)
}

// GenerateImports generates the import section, sorted by path
func (im *ImportManager) GenerateImports() string {
	if len(im.imports) == 0 {
		return ""
	}

	specs := make([]Import, 0, len(im.imports))
	for _, imp := range im.imports {
		specs = append(specs, imp)
	}
	sort.Slice(specs, func(i, j int) bool {
		if specs[i].Path != specs[j].Path {
			return specs[i].Path < specs[j].Path
		}
		return specs[i].Name < specs[j].Name
	})

	if len(specs) == 1 {
		return fmt.Sprintf("import %s\n", specs[0])
	}

	var result strings.Builder
	result.WriteString("import (\n")
	for _, imp := range specs {
		result.WriteString(fmt.Sprintf("\t%s\n", imp))
	}
	result.WriteString(")\n")

	return result.String()
}

// AssumedPackageName returns the package name an unrenamed import path is
// conventionally referenced by: the last path element, skipping a major
// version suffix, without a "go-" prefix and cut at the first character
// that cannot appear in an identifier.
func AssumedPackageName(importPath string) string {
	base := path.Base(importPath)
	if strings.HasPrefix(base, "v") {
		if _, err := strconv.Atoi(base[1:]); err == nil {
			if dir := path.Dir(importPath); dir != "." {
				base = path.Base(dir)
			}
		}
	}
	base = strings.TrimPrefix(base, "go-")
	if i := strings.IndexFunc(base, notIdentifier); i >= 0 {
		base = base[:i]
	}
	return base
}

func notIdentifier(ch rune) bool {
	return !('a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' ||
		'0' <= ch && ch <= '9' ||
		ch == '_' ||
		ch >= utf8.RuneSelf && (unicode.IsLetter(ch) || unicode.IsDigit(ch)))
}
