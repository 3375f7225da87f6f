package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/buildergen/internal/errors"
	"github.com/toyz/buildergen/internal/utils"
	"github.com/toyz/buildergen/pkg/builder"
)

// DiagnosticReporter prints diagnostics the way compilers do,
// file:line:col: severity: message, and counts them. It implements
// builder.Reporter.
type DiagnosticReporter struct {
	out       io.Writer
	level     utils.DiagnosticLevel
	useColors bool
	verbose   bool
	baseDir   string
	errors    int
	warnings  int
}

// NewDiagnosticReporter creates a reporter that follows the output settings
// of the diagnostic system
func NewDiagnosticReporter(diagnostics *utils.DiagnosticSystem) *DiagnosticReporter {
	r := &DiagnosticReporter{
		out:       diagnostics.ErrorWriter(),
		level:     diagnostics.Level(),
		useColors: diagnostics.ColorsEnabled(),
		verbose:   diagnostics.Level() >= utils.DiagnosticVerbose,
	}
	if wd, err := os.Getwd(); err == nil {
		r.baseDir = wd
	}
	return r
}

// Report implements builder.Reporter
func (r *DiagnosticReporter) Report(d builder.Diagnostic) {
	switch d.Severity {
	case builder.SeverityError:
		r.errors++
		if r.level < utils.DiagnosticError {
			return
		}
	case builder.SeverityWarning:
		r.warnings++
		if r.level < utils.DiagnosticWarn {
			return
		}
	default:
		if r.level < utils.DiagnosticInfo {
			return
		}
	}

	if d.Pos.IsValid() {
		pos := d.Pos
		pos.Filename = r.relative(pos.Filename)
		fmt.Fprintf(r.out, "%s: ", pos)
	}
	r.severityColor(d.Severity).Fprintf(r.out, "%s", d.Severity)
	fmt.Fprintf(r.out, ": %s", d.Message)
	if r.verbose {
		fmt.Fprintf(r.out, " [%s]", d.Kind)
	}
	fmt.Fprintln(r.out)
}

// ReportError prints a host level failure with its suggestions
func (r *DiagnosticReporter) ReportError(err error) {
	r.errors++
	if r.level < utils.DiagnosticError {
		return
	}

	r.severityColor(builder.SeverityError).Fprint(r.out, "error")
	fmt.Fprintf(r.out, ": %s\n", err)

	var genErr errors.GeneratorError
	if stderrors.As(err, &genErr) {
		for _, hint := range genErr.Suggestions() {
			fmt.Fprintf(r.out, "  hint: %s\n", hint)
		}
		if r.verbose {
			fmt.Fprintf(r.out, "  code: %s\n", genErr.ErrorCode())
		}
	}
}

// ErrorCount returns the number of errors reported
func (r *DiagnosticReporter) ErrorCount() int {
	return r.errors
}

// WarningCount returns the number of warnings reported
func (r *DiagnosticReporter) WarningCount() int {
	return r.warnings
}

// relative shortens path to be relative to the working directory when it is
// inside it
func (r *DiagnosticReporter) relative(path string) string {
	if r.baseDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(r.baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

func (r *DiagnosticReporter) severityColor(s builder.Severity) *color.Color {
	var c *color.Color
	switch s {
	case builder.SeverityError:
		c = color.New(color.FgRed, color.Bold)
	case builder.SeverityWarning:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgCyan)
	}
	if r.useColors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// GenerationSummary collects the statistics of one run
type GenerationSummary struct {
	PackagesProcessed int
	Candidates        int
	Accepted          int
	Rejected          int
	BuildersGenerated int
	Failed            []string
	GeneratedFiles    []string
	UnchangedFiles    []string
}

// Stats returns the summary in the form DiagnosticSystem.Summary prints
func (s GenerationSummary) Stats() map[string]interface{} {
	return map[string]interface{}{
		"Packages processed": s.PackagesProcessed,
		"Annotated elements": s.Candidates,
		"Accepted setters":   s.Accepted,
		"Rejected elements":  s.Rejected,
		"Builders generated": s.BuildersGenerated,
		"Files written":      len(s.GeneratedFiles),
		"Files unchanged":    len(s.UnchangedFiles),
	}
}
