package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/buildergen/internal/utils"
)

// The checked-in example builder must match what the generator produces
func TestGenerator_ExampleIsUpToDate(t *testing.T) {
	dir, err := filepath.Abs(filepath.Join("..", "..", "examples", "person"))
	require.NoError(t, err)
	target := filepath.Join(dir, "person_builder.go")

	expected, err := os.ReadFile(target)
	require.NoError(t, err)

	g, out, errOut := newTestGenerator(utils.DiagnosticError)
	require.NoError(t, g.Run(Config{Directories: []string{dir}, DryRun: true}))
	assert.Empty(t, errOut.String())

	assert.Equal(t, "// ==> "+target+"\n"+string(expected), out.String(),
		"examples/person is stale, run go generate ./examples/person")
}
