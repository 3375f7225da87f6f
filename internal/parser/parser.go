package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"strconv"

	"github.com/toyz/buildergen/internal/annotations"
	"github.com/toyz/buildergen/internal/errors"
	"github.com/toyz/buildergen/internal/templates"
	"github.com/toyz/buildergen/internal/utils"
	"github.com/toyz/buildergen/pkg/builder"
)

// PackageMetadata holds the annotated elements found in one package
type PackageMetadata struct {
	PackageName string
	PackagePath string // import path, empty when unknown
	Dir         string
	Files       []string // parsed files, sorted by name
	Elements    []*builder.Member
}

// Parser extracts //builder::property elements from Go source
type Parser struct {
	fileSet     *token.FileSet
	annotations *annotations.ParticipleParser
	errors      *ErrorReporter
	files       *utils.FileProcessor
}

// NewParser creates a parser reporting malformed annotations to r
func NewParser(r builder.Reporter) *Parser {
	return &Parser{
		fileSet:     token.NewFileSet(),
		annotations: annotations.NewParticipleParser(),
		errors:      NewErrorReporter(r),
		files:       utils.NewFileProcessor(),
	}
}

// AnnotationErrors returns the number of malformed annotations seen so far
func (p *Parser) AnnotationErrors() int {
	return p.errors.Count()
}

// ParseSource parses a single file held in memory
func (p *Parser) ParseSource(filename, source, pkgPath string) (*PackageMetadata, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, errors.WrapParseError(filename, err)
	}

	return &PackageMetadata{
		PackageName: file.Name.Name,
		PackagePath: pkgPath,
		Dir:         filepath.Dir(filename),
		Files:       []string{filename},
		Elements:    p.ExtractElements(file, pkgPath),
	}, nil
}

// ParseDirectory parses the non-test files of dir in name order. Files
// carrying a "Code generated ... DO NOT EDIT." header are skipped, which
// keeps previous builder output out of the next run.
func (p *Parser) ParseDirectory(dir, pkgPath string) (*PackageMetadata, error) {
	fileNames, err := p.files.ListGoFiles(dir)
	if err != nil {
		return nil, err
	}

	metadata := &PackageMetadata{
		PackagePath: pkgPath,
		Dir:         dir,
	}

	var files []*ast.File
	for _, fileName := range fileNames {
		file, err := parser.ParseFile(p.fileSet, fileName, nil, parser.ParseComments)
		if err != nil {
			return nil, errors.WrapParseError(fileName, err)
		}
		if ast.IsGenerated(file) {
			continue
		}

		if metadata.PackageName == "" {
			metadata.PackageName = file.Name.Name
		} else if metadata.PackageName != file.Name.Name {
			return nil, fmt.Errorf("multiple packages found in directory %s: %s and %s",
				dir, metadata.PackageName, file.Name.Name)
		}

		metadata.Files = append(metadata.Files, fileName)
		files = append(files, file)
	}

	scope := PackageScope(files...)
	for _, file := range files {
		metadata.Elements = append(metadata.Elements, p.extract(file, pkgPath, scope)...)
	}

	return metadata, nil
}

// PackageScope returns the package-level identifiers the files declare
func PackageScope(files ...*ast.File) map[string]bool {
	scope := make(map[string]bool)
	declare := func(name *ast.Ident) {
		if name != nil && name.Name != "_" {
			scope[name.Name] = true
		}
	}

	for _, file := range files {
		for _, decl := range file.Decls {
			switch node := decl.(type) {
			case *ast.FuncDecl:
				if node.Recv == nil {
					declare(node.Name)
				}
			case *ast.GenDecl:
				for _, spec := range node.Specs {
					for _, name := range specNames(spec) {
						declare(name)
					}
				}
			}
		}
	}
	return scope
}

// ExtractElements returns an element for every declaration of file whose
// doc comment carries a builder annotation, in source order. Malformed
// annotations are reported and the declaration is skipped.
func (p *Parser) ExtractElements(file *ast.File, pkgPath string) []*builder.Member {
	return p.extract(file, pkgPath, PackageScope(file))
}

func (p *Parser) extract(file *ast.File, pkgPath string, scope map[string]bool) []*builder.Member {
	var elements []*builder.Member
	imports := fileImports(file)

	for _, decl := range file.Decls {
		switch node := decl.(type) {
		case *ast.FuncDecl:
			if p.annotated(node.Doc) {
				member := p.funcElement(node, file.Name.Name, pkgPath, imports)
				member.Src.Scope = scope
				elements = append(elements, member)
			}
		case *ast.GenDecl:
			declAnnotated := p.annotated(node.Doc)
			for _, spec := range node.Specs {
				if !p.annotated(specDoc(spec)) && !declAnnotated {
					continue
				}
				for _, name := range specNames(spec) {
					elements = append(elements, &builder.Member{
						Name: name.Name,
						Src:  builder.Source{Pos: p.fileSet.Position(name.Pos()), Scope: scope},
					})
				}
			}
		}
	}

	return elements
}

// annotated reports whether doc holds a well-formed property annotation
func (p *Parser) annotated(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}

	found := false
	for _, comment := range doc.List {
		if !annotations.IsAnnotation(comment.Text) {
			continue
		}

		pos := p.fileSet.Position(comment.Pos())
		loc := errors.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}
		parsed, err := p.annotations.ParseAnnotation(comment.Text, loc)
		if err != nil {
			p.errors.ReportAnnotationError(err)
			continue
		}
		if parsed.Type == annotations.PropertyAnnotation {
			found = true
		}
	}
	return found
}

// funcElement builds the element for an annotated function or method
func (p *Parser) funcElement(fn *ast.FuncDecl, pkgName, pkgPath string, imports map[string]builder.Import) *builder.Member {
	member := &builder.Member{
		Name: fn.Name.Name,
		Src: builder.Source{
			Pos: p.fileSet.Position(fn.Pos()),
		},
	}

	seen := make(map[string]bool)
	if fn.Type.Params != nil {
		for _, field := range fn.Type.Params.List {
			typ := types.ExprString(field.Type)
			n := len(field.Names)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n; i++ {
				member.Params = append(member.Params, typ)
			}

			for _, qualifier := range qualifiers(field.Type) {
				if imp, ok := imports[qualifier]; ok && !seen[imp.Path] {
					seen[imp.Path] = true
					member.Src.Imports = append(member.Src.Imports, imp)
				}
			}
		}
	}

	if fn.Recv != nil && len(fn.Recv.List) > 0 {
		name, pointer, generic := receiverType(fn.Recv.List[0].Type)
		if name != "" {
			member.Receiver = builder.TypeName{
				PkgPath: pkgPath,
				PkgName: pkgName,
				Name:    name,
				Generic: generic,
			}
			member.Src.PointerReceiver = pointer
		}
	}

	return member
}

// receiverType unpacks a receiver type expression such as *T, T or *T[K]
func receiverType(expr ast.Expr) (name string, pointer, generic bool) {
	for {
		switch t := expr.(type) {
		case *ast.ParenExpr:
			expr = t.X
		case *ast.StarExpr:
			pointer = true
			expr = t.X
		case *ast.IndexExpr:
			generic = true
			expr = t.X
		case *ast.IndexListExpr:
			generic = true
			expr = t.X
		case *ast.Ident:
			return t.Name, pointer, generic
		default:
			return "", pointer, generic
		}
	}
}

// fileImports maps the names a file refers to its imports by
func fileImports(file *ast.File) map[string]builder.Import {
	imports := make(map[string]builder.Import)
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		imp := builder.Import{Path: path}
		name := templates.AssumedPackageName(path)
		if spec.Name != nil {
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				continue
			}
			imp.Name = spec.Name.Name
			name = spec.Name.Name
		}
		imports[name] = imp
	}
	return imports
}

// qualifiers returns the package qualifiers used in a type expression
func qualifiers(expr ast.Expr) []string {
	var names []string
	ast.Inspect(expr, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if ident, ok := sel.X.(*ast.Ident); ok {
				names = append(names, ident.Name)
			}
			return false
		}
		return true
	})
	return names
}

func specNames(spec ast.Spec) []*ast.Ident {
	switch s := spec.(type) {
	case *ast.TypeSpec:
		return []*ast.Ident{s.Name}
	case *ast.ValueSpec:
		return s.Names
	}
	return nil
}

func specDoc(spec ast.Spec) *ast.CommentGroup {
	switch s := spec.(type) {
	case *ast.TypeSpec:
		return s.Doc
	case *ast.ValueSpec:
		return s.Doc
	}
	return nil
}
