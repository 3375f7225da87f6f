package builder

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Debug(format string, args ...interface{}) {
	l.messages = append(l.messages, format)
}

func TestProcessor_Process(t *testing.T) {
	diags := &Diagnostics{}
	filer := NewMemFiler()
	p := NewProcessor(diags, filer, Options{})
	logger := &recordingLogger{}
	p.SetLogger(logger)

	result := p.Process([]Element{
		setter("SetName", "string"),
		setter("GetName"),
		orderSetter("SetID", "int64"),
		setter("SetAge", "int"),
	})

	assert.Equal(t, 4, result.Candidates)
	assert.Equal(t, 3, result.Accepted)
	assert.Equal(t, 1, result.Rejected)
	assert.Equal(t, []string{
		"example.com/app/user.PersonBuilder",
		"example.com/app/shop.OrderBuilder",
	}, result.Units)
	assert.Empty(t, result.Failed)

	assert.Equal(t, result.Units, filer.Names())
	assert.Equal(t, expectedPersonBuilder, string(filer.Files["example.com/app/user.PersonBuilder"]))

	require.Len(t, diags.List, 1)
	assert.Equal(t, KindShapeViolation, diags.List[0].Kind)
	assert.NotEmpty(t, logger.messages)
}

func TestProcessor_NoAcceptedSettersIsSilent(t *testing.T) {
	diags := &Diagnostics{}
	filer := NewMemFiler()

	result := NewProcessor(diags, filer, Options{}).Process(nil)

	assert.Empty(t, result.Units)
	assert.Empty(t, filer.Files)
	assert.Empty(t, diags.List)
}

func TestProcessor_WarnEmpty(t *testing.T) {
	diags := &Diagnostics{}
	filer := NewMemFiler()

	result := NewProcessor(diags, filer, Options{WarnEmpty: true}).Process([]Element{
		setter("GetName"),
		setter("Reset"),
		orderSetter("SetID", "int64"),
	})

	assert.Equal(t, []string{"example.com/app/shop.OrderBuilder"}, result.Units)
	require.Len(t, diags.Errors(), 2)

	warnings := diags.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, KindEmptyBuilder, warnings[0].Kind)
	assert.Contains(t, warnings[0].Message, "example.com/app/user.Person")
}

func TestProcessor_ValueReceiverWarning(t *testing.T) {
	m := setter("SetName", "string")
	m.Src.PointerReceiver = false

	diags := &Diagnostics{}
	result := NewProcessor(diags, NewMemFiler(), Options{}).Process([]Element{m})

	assert.Len(t, result.Units, 1)
	assert.False(t, diags.HasErrors())
	warnings := diags.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, KindValueReceiver, warnings[0].Kind)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (failingWriter) Close() error              { return nil }

func TestProcessor_EmissionFailureIsLocalToGroup(t *testing.T) {
	mem := NewMemFiler()
	filer := FilerFunc(func(unit *Unit) (io.WriteCloser, error) {
		switch unit.Spec.Target {
		case personType:
			return nil, errors.New("permission denied")
		case orderType:
			return failingWriter{}, nil
		}
		return mem.Create(unit)
	})

	invoice := setter("SetTotal", "float64")
	invoice.Receiver = TypeName{PkgPath: "example.com/app/shop", PkgName: "shop", Name: "Invoice"}

	diags := &Diagnostics{}
	result := NewProcessor(diags, filer, Options{}).Process([]Element{
		setter("SetName", "string"),
		orderSetter("SetID", "int64"),
		invoice,
	})

	assert.Equal(t, []string{"example.com/app/shop.InvoiceBuilder"}, result.Units)
	assert.Equal(t, []string{"example.com/app/user.Person", "example.com/app/shop.Order"}, result.Failed)
	assert.Contains(t, mem.Files, "example.com/app/shop.InvoiceBuilder")

	errs := diags.Errors()
	require.Len(t, errs, 2)
	for _, d := range errs {
		assert.Equal(t, KindEmissionIOFailure, d.Kind)
	}
	assert.Contains(t, errs[0].Message, "permission denied")
	assert.Contains(t, errs[1].Message, "disk full")
}

func TestProcessor_RenderFailure(t *testing.T) {
	diags := &Diagnostics{}
	filer := NewMemFiler()

	result := NewProcessor(diags, filer, Options{}).Process([]Element{
		setter("SetName", "map[string"),
		orderSetter("SetID", "int64"),
	})

	assert.Equal(t, []string{"example.com/app/shop.OrderBuilder"}, result.Units)
	errs := diags.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, KindRenderFailure, errs[0].Kind)
}

func TestProcessor_ConflictingImportNames(t *testing.T) {
	a := setter("SetA", "x.A")
	a.Src.Imports = []Import{{Path: "example.com/app/a/x"}}
	b := setter("SetB", "x.B")
	b.Src.Imports = []Import{{Path: "example.com/app/b/x"}}

	diags := &Diagnostics{}
	filer := NewMemFiler()
	result := NewProcessor(diags, filer, Options{}).Process([]Element{a, b, orderSetter("SetID", "int64")})

	assert.Equal(t, []string{"example.com/app/user.Person"}, result.Failed)
	assert.Equal(t, []string{"example.com/app/shop.OrderBuilder"}, filer.Names())
	errs := diags.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, KindRenderFailure, errs[0].Kind)
	assert.Contains(t, errs[0].Message, "package name x refers to both")
}

func TestProcessor_NilFiler(t *testing.T) {
	diags := &Diagnostics{}
	p := NewProcessor(diags, nil, Options{})

	var result *Result
	require.NotPanics(t, func() {
		result = p.Process([]Element{setter("SetName", "string")})
	})
	assert.Equal(t, []string{"example.com/app/user.PersonBuilder"}, result.Units)
	assert.False(t, diags.HasErrors())
}

func TestMemFiler_RejectsDuplicateUnits(t *testing.T) {
	filer := NewMemFiler()
	unit, err := Emit(personSpec())
	require.NoError(t, err)

	require.NoError(t, writeUnit(filer, unit))
	assert.Error(t, writeUnit(filer, unit))
}
