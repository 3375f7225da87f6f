package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	assert.Equal(t, "validation error for field 'module': cannot be empty",
		ValidationError{Field: "module", Message: "cannot be empty"}.Error())
	assert.Equal(t, "validation error: invalid format", ValidationError{Message: "invalid format"}.Error())
}

func TestStringValidators(t *testing.T) {
	tests := []struct {
		name      string
		validator Validator[string]
		value     string
		wantErr   string
	}{
		{"not empty ok", NotEmpty("f"), "x", ""},
		{"not empty fails", NotEmpty("f"), "", "cannot be empty"},
		{"prefix ok", HasPrefix("f", "Set"), "SetName", ""},
		{"prefix fails", HasPrefix("f", "Set"), "GetName", "must start with 'Set'"},
		{"suffix ok", HasSuffix("f", ".go"), "_builder.go", ""},
		{"suffix fails", HasSuffix("f", ".go"), "_builder", "must end with '.go'"},
		{"identifier ok", IsValidGoIdentifier("f"), "PersonBuilder", ""},
		{"identifier fails", IsValidGoIdentifier("f"), "1Person", "must be a valid Go identifier"},
		{"identifier empty", IsValidGoIdentifier("f"), "", "cannot be empty"},
		{"module ok", IsModulePath("f"), "github.com/toyz/buildergen", ""},
		{"module fails", IsModulePath("f"), "example.com/a b", "field 'f'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestAnyOf(t *testing.T) {
	v := AnyOf(HasPrefix("name", "set"), HasPrefix("name", "Set"))

	assert.NoError(t, v("setName"))
	assert.NoError(t, v("SetName"))
	assert.ErrorContains(t, v("Name"), "must start with 'Set'")
}

func TestValidatorChain(t *testing.T) {
	type settings struct {
		Dirs   []string
		Suffix string
	}

	chain := NewValidatorChain(
		Field(func(s settings) []string { return s.Dirs }, SliceNotEmpty[string]("dirs")),
		Field(func(s settings) []string { return s.Dirs }, ValidateEach("dirs", NotEmpty("dir"))),
	).Add(Field(func(s settings) string { return s.Suffix },
		Conditional(func(v string) bool { return v != "" }, HasSuffix("suffix", ".go"))))

	assert.NoError(t, chain.Validate(settings{Dirs: []string{"."}}))
	assert.ErrorContains(t, chain.Validate(settings{}), "field 'dirs': cannot be empty")
	assert.ErrorContains(t, chain.Validate(settings{Dirs: []string{".", ""}}), "field 'dirs[1]'")
	assert.ErrorContains(t, chain.Validate(settings{Dirs: []string{"."}, Suffix: "_b"}), "must end with '.go'")
	assert.NoError(t, chain.Validate(settings{Dirs: []string{"."}, Suffix: "_b.go"}))

	custom := Custom("n", "must be even", func(n int) bool { return n%2 == 0 })
	assert.NoError(t, custom(2))
	assert.EqualError(t, custom(3), "validation error for field 'n': must be even")
}
