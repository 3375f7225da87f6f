package builder

// Logger receives progress messages. The DiagnosticSystem of the command
// line tool satisfies it.
type Logger interface {
	Debug(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}

// Options tune a Processor
type Options struct {
	// WarnEmpty reports a warning for a type whose candidates were all rejected
	WarnEmpty bool
	// FileSuffix overrides DefaultFileSuffix
	FileSuffix string
}

// Result summarises one Process call
type Result struct {
	Candidates int
	Accepted   int
	Rejected   int
	Units      []string // names of the units handed to the filer
	Failed     []string // names of the types whose emission failed
}

// Processor runs the whole generation: validate, group, emit, persist
type Processor struct {
	reporter Reporter
	filer    Filer
	logger   Logger
	options  Options
}

// NewProcessor creates a processor reporting to r and writing through f.
// A nil reporter collects diagnostics in memory, a nil filer keeps units in
// memory.
func NewProcessor(r Reporter, f Filer, options Options) *Processor {
	if r == nil {
		r = &Diagnostics{}
	}
	if f == nil {
		f = NewMemFiler()
	}
	return &Processor{
		reporter: r,
		filer:    f,
		logger:   nopLogger{},
		options:  options,
	}
}

// SetLogger sets the logger progress messages go to
func (p *Processor) SetLogger(logger Logger) {
	if logger == nil {
		logger = nopLogger{}
	}
	p.logger = logger
}

// Process generates one builder per declaring type with at least one
// accepted setter. Problems with an element or a group are reported and
// the remaining input is still processed.
func (p *Processor) Process(elements []Element) *Result {
	result := &Result{Candidates: len(elements)}

	outcomes := ValidateAll(elements, p.reporter)
	for _, outcome := range outcomes {
		if outcome.Accepted {
			result.Accepted++
			p.checkReceiver(outcome.Element)
		} else {
			result.Rejected++
		}
	}

	groups := Group(outcomes)
	p.logger.Debug("Grouped %d accepted setters into %d builders", result.Accepted, groups.Len())

	if p.options.WarnEmpty {
		p.reportEmpty(outcomes, groups)
	}

	emitter := &Emitter{FileSuffix: p.options.FileSuffix}
	for _, spec := range groups.Specs() {
		unit, err := emitter.Emit(spec)
		if err != nil {
			result.Failed = append(result.Failed, spec.Target.String())
			p.reporter.Report(newDiagnostic(SeverityError, KindRenderFailure, spec.Origin(),
				"failed to generate builder for %s: %v", spec.Target, err))
			continue
		}

		if err := writeUnit(p.filer, unit); err != nil {
			result.Failed = append(result.Failed, spec.Target.String())
			p.reporter.Report(newDiagnostic(SeverityError, KindEmissionIOFailure, spec.Origin(),
				"failed to write %s: %v", unit.Name, err))
			continue
		}

		p.logger.Debug("Generated %s with %d setters", unit.Name, spec.Len())
		result.Units = append(result.Units, unit.Name)
	}

	return result
}

// checkReceiver warns about setters whose effect a builder cannot observe
func (p *Processor) checkReceiver(e Element) {
	src, ok := sourceOf(e)
	if !ok || src.PointerReceiver {
		return
	}
	p.reporter.Report(newDiagnostic(SeverityWarning, KindValueReceiver, e,
		"%s has a value receiver; calls through the builder modify a copy", describe(e)))
}

// reportEmpty warns once for every type that had candidates but no accepted setter
func (p *Processor) reportEmpty(outcomes []Outcome, groups *Groups) {
	warned := make(map[string]bool)
	for _, outcome := range outcomes {
		target := outcome.Element.EnclosingType()
		if outcome.Accepted || target.IsZero() {
			continue
		}
		key := groupKey(outcome.Element)
		if _, ok := groups.Of(outcome.Element); ok || warned[key] {
			continue
		}
		warned[key] = true
		p.reporter.Report(newDiagnostic(SeverityWarning, KindEmptyBuilder, outcome.Element,
			"no builder generated for %s: none of its annotated methods is a valid setter", target))
	}
}
