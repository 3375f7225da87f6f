package parser

import (
	stderrors "errors"
	"go/token"
	"strings"

	"github.com/toyz/buildergen/internal/errors"
	"github.com/toyz/buildergen/pkg/builder"
)

// ErrorReporter turns parse problems into diagnostics for the host
type ErrorReporter struct {
	reporter builder.Reporter
	count    int
}

// NewErrorReporter creates a reporter forwarding to r. A nil r drops
// everything but the count.
func NewErrorReporter(r builder.Reporter) *ErrorReporter {
	return &ErrorReporter{reporter: r}
}

// ReportAnnotationError reports a malformed builder annotation
func (r *ErrorReporter) ReportAnnotationError(err error) {
	d := builder.Diagnostic{
		Severity: builder.SeverityError,
		Kind:     builder.KindAnnotationSyntax,
		Message:  err.Error(),
	}

	var syntaxErr *errors.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		d.Message = syntaxErr.Message
		if hints := syntaxErr.Suggestions(); len(hints) > 0 {
			d.Message += " (" + strings.Join(hints, "; ") + ")"
		}
		loc := syntaxErr.Location()
		d.Pos = token.Position{Filename: loc.File, Line: loc.Line, Column: loc.Column}
	}

	r.count++
	if r.reporter != nil {
		r.reporter.Report(d)
	}
}

// Count returns the number of problems reported so far
func (r *ErrorReporter) Count() int {
	return r.count
}
