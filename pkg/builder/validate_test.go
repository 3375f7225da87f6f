package builder

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var personType = TypeName{PkgPath: "example.com/app/user", PkgName: "user", Name: "Person"}

func setter(name string, params ...string) *Member {
	return &Member{
		Name:     name,
		Params:   params,
		Receiver: personType,
		Src: Source{
			Pos:             token.Position{Filename: "/src/app/user/person.go", Line: 10, Column: 1},
			PointerReceiver: true,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		element  Element
		accepted bool
		reason   string
	}{
		{
			name:     "exported setter",
			element:  setter("SetName", "string"),
			accepted: true,
		},
		{
			name:     "unexported setter",
			element:  setter("setName", "string"),
			accepted: true,
		},
		{
			name:     "variadic setter",
			element:  setter("SetTags", "...string"),
			accepted: true,
		},
		{
			name:     "bare prefix",
			element:  setter("Set", "int"),
			accepted: true,
		},
		{
			name:    "wrong prefix",
			element: setter("WithName", "string"),
			reason:  ReasonNotSetter,
		},
		{
			name:    "getter",
			element: setter("GetName"),
			reason:  ReasonNotSetter,
		},
		{
			name:    "no parameters",
			element: setter("SetDefaults"),
			reason:  ReasonNotSetter,
		},
		{
			name:    "two parameters",
			element: setter("SetRange", "int", "int"),
			reason:  ReasonNotSetter,
		},
		{
			name: "plain function",
			element: &Member{
				Name:   "SetGlobal",
				Params: []string{"string"},
			},
			reason: ReasonNotSetter,
		},
		{
			name: "generic receiver",
			element: &Member{
				Name:     "SetValue",
				Params:   []string{"T"},
				Receiver: TypeName{PkgPath: "example.com/app/box", PkgName: "box", Name: "Box", Generic: true},
			},
			reason: ReasonGenericReceiver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Validate(tt.element)
			assert.Equal(t, tt.accepted, outcome.Accepted)
			assert.Equal(t, tt.reason, outcome.Reason)
			assert.Same(t, tt.element, outcome.Element)
		})
	}
}

func TestValidateAll_ReportsEachRejection(t *testing.T) {
	bad1 := setter("GetName")
	bad2 := setter("SetRange", "int", "int")
	elements := []Element{
		setter("SetName", "string"),
		bad1,
		setter("SetAge", "int"),
		bad2,
	}

	diags := &Diagnostics{}
	outcomes := ValidateAll(elements, diags)

	require.Len(t, outcomes, 4)
	assert.True(t, outcomes[0].Accepted)
	assert.False(t, outcomes[1].Accepted)
	assert.True(t, outcomes[2].Accepted)
	assert.False(t, outcomes[3].Accepted)

	errs := diags.Errors()
	require.Len(t, errs, 2)
	assert.Same(t, bad1, errs[0].Element)
	assert.Same(t, bad2, errs[1].Element)
	for _, d := range errs {
		assert.Equal(t, KindShapeViolation, d.Kind)
		assert.Contains(t, d.Message, ReasonNotSetter)
		assert.Equal(t, "/src/app/user/person.go", d.Pos.Filename)
	}
	assert.Contains(t, errs[0].Message, "Person.GetName")
}

func TestValidateAll_NilReporter(t *testing.T) {
	outcomes := ValidateAll([]Element{setter("GetName")}, nil)
	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Accepted)
}

func TestTypeName_String(t *testing.T) {
	assert.Equal(t, "example.com/app/user.Person", personType.String())
	assert.Equal(t, "Person", TypeName{Name: "Person"}.String())
	assert.True(t, TypeName{}.IsZero())
}
