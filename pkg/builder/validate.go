package builder

import (
	"strings"

	"github.com/toyz/buildergen/internal/utils"
)

const (
	// SetterPrefix is the prefix an accepted setter name starts with. The
	// exported form "Set" is accepted as well.
	SetterPrefix = "set"

	// ReasonNotSetter is reported for elements that are not single-argument setters
	ReasonNotSetter = "//builder::property must be applied to a SetXxx method with a single argument"

	// ReasonGenericReceiver is reported for setters declared on generic types
	ReasonGenericReceiver = "//builder::property is not supported on methods of generic types"
)

// Outcome is the result of validating one candidate element
type Outcome struct {
	Element  Element
	Accepted bool
	Reason   string // empty when accepted
}

// Accepted returns an accepting outcome for e
func Accepted(e Element) Outcome {
	return Outcome{Element: e, Accepted: true}
}

// Rejected returns a rejecting outcome for e
func Rejected(e Element, reason string) Outcome {
	return Outcome{Element: e, Reason: reason}
}

// Validate checks that e is a method whose name starts with the setter
// prefix and which declares exactly one parameter
func Validate(e Element) Outcome {
	if !hasSetterPrefix(e.SimpleName()) || len(e.ParameterTypes()) != 1 {
		return Rejected(e, ReasonNotSetter)
	}

	receiver := e.EnclosingType()
	if receiver.IsZero() {
		return Rejected(e, ReasonNotSetter)
	}
	if receiver.Generic {
		return Rejected(e, ReasonGenericReceiver)
	}

	return Accepted(e)
}

// ValidateAll validates elements in order and reports every rejection to r
// as a ShapeViolation error. It never stops at the first rejection.
func ValidateAll(elements []Element, r Reporter) []Outcome {
	outcomes := make([]Outcome, 0, len(elements))
	for _, e := range elements {
		outcome := Validate(e)
		if !outcome.Accepted && r != nil {
			r.Report(newDiagnostic(SeverityError, KindShapeViolation, e, "%s: %s", describe(e), outcome.Reason))
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// setterName accepts the setter prefix and its exported form
var setterName = utils.AnyOf(
	utils.HasPrefix("name", SetterPrefix),
	utils.HasPrefix("name", strings.ToUpper(SetterPrefix[:1])+SetterPrefix[1:]),
)

func hasSetterPrefix(name string) bool {
	return setterName(name) == nil
}
