package cli

import (
	"io"
	"os"
	"time"

	"github.com/toyz/buildergen/internal/errors"
	"github.com/toyz/buildergen/internal/parser"
	"github.com/toyz/buildergen/internal/utils"
	"github.com/toyz/buildergen/pkg/builder"
)

// Generator coordinates the CLI generation process:
// scan -> parse -> validate, group, emit -> write
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	diagnostics    *utils.DiagnosticSystem
	reporter       *DiagnosticReporter
	stdout         io.Writer
	summary        GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(),
		diagnostics:    diagnostics,
		reporter:       NewDiagnosticReporter(diagnostics),
		stdout:         os.Stdout,
	}
}

// SetOutput sets where dry runs print generated files
func (g *Generator) SetOutput(w io.Writer) {
	g.stdout = w
}

// Reporter returns the reporter diagnostics of the run go to
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// GetSummary returns the generation summary
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process. Host level failures abort
// the run; problems with single elements or builders are reported as
// diagnostics and turn into an error once everything else was generated.
func (g *Generator) Run(config Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{}

	g.diagnostics.Verbose("Starting code generation at %s", startTime.Format("15:04:05"))
	g.diagnostics.Debug("Scanning directories: %v", config.Directories)

	if config.ModuleName != "" {
		g.diagnostics.Debug("Using custom module name: %s", config.ModuleName)
		if err := g.moduleResolver.SetCustomModule(config.ModuleName, ""); err != nil {
			return err
		}
	}

	packageDirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		return err
	}
	if len(packageDirs) == 0 {
		return errors.New(errors.FileSystemErrorCode, "no Go packages found in specified directories").
			WithSuggestion("check the directory paths or use the './...' pattern")
	}

	g.diagnostics.PhaseHeader("Parsing")
	g.diagnostics.Indent()
	p := parser.NewParser(g.reporter)
	var elements []builder.Element
	for _, dir := range packageDirs {
		pkgPath, err := g.moduleResolver.PackagePath(dir)
		if err != nil {
			g.diagnostics.Unindent()
			return err
		}

		metadata, err := p.ParseDirectory(dir, pkgPath)
		if err != nil {
			g.diagnostics.Unindent()
			return err
		}

		for _, e := range metadata.Elements {
			elements = append(elements, e)
		}
		if len(metadata.Elements) > 0 {
			g.diagnostics.PhaseItem("%s: %d annotated elements", pkgPath, len(metadata.Elements))
		} else {
			g.diagnostics.Verbose("%s: nothing annotated", pkgPath)
		}
	}
	g.diagnostics.Unindent()
	g.summary.PackagesProcessed = len(packageDirs)

	var filer builder.Filer
	disk := NewDiskFiler()
	if config.DryRun {
		filer = NewStdoutFiler(g.stdout)
	} else {
		filer = disk
	}

	processor := builder.NewProcessor(g.reporter, filer, builder.Options{
		WarnEmpty:  config.WarnEmpty,
		FileSuffix: config.FileSuffix,
	})
	processor.SetLogger(g.diagnostics)

	g.diagnostics.PhaseHeader("Generating")
	result := processor.Process(elements)

	g.summary.Candidates = result.Candidates
	g.summary.Accepted = result.Accepted
	g.summary.Rejected = result.Rejected
	g.summary.BuildersGenerated = len(result.Units)
	g.summary.Failed = result.Failed
	g.summary.GeneratedFiles = disk.Written
	g.summary.UnchangedFiles = disk.Unchanged

	g.diagnostics.Indent()
	for _, file := range disk.Written {
		g.diagnostics.PhaseItem("wrote %s", file)
	}
	for _, file := range disk.Unchanged {
		g.diagnostics.Verbose("%s is up to date", file)
	}
	g.diagnostics.Unindent()

	g.diagnostics.Verbose("Generation took %s", time.Since(startTime).Round(time.Millisecond))

	if n := g.reporter.ErrorCount(); n > 0 {
		return errors.Newf(errors.GenerationErrorCode, "generation finished with %d error(s)", n)
	}
	return nil
}
