package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFileProcessor_ScanDirectoriesWithGoFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main\n")
	writeFile(t, filepath.Join(root, "user", "person.go"), "package user\n")
	writeFile(t, filepath.Join(root, "onlytests", "a_test.go"), "package onlytests\n")
	writeFile(t, filepath.Join(root, "vendor", "x", "x.go"), "package x\n")
	writeFile(t, filepath.Join(root, "testdata", "t.go"), "package t\n")
	writeFile(t, filepath.Join(root, ".hidden", "h.go"), "package h\n")
	writeFile(t, filepath.Join(root, "_skip", "s.go"), "package s\n")

	fp := NewFileProcessor()
	dirs, err := fp.ScanDirectoriesWithGoFiles([]string{root, root})
	require.NoError(t, err)
	assert.Equal(t, []string{root, filepath.Join(root, "user")}, dirs)
}

func TestFileProcessor_ListGoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.go"), "package p\n")
	writeFile(t, filepath.Join(dir, "a.go"), "package p\n")
	writeFile(t, filepath.Join(dir, "a_test.go"), "package p\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")

	files, err := NewFileProcessor().ListGoFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.go"), filepath.Join(dir, "b.go")}, files)

	_, err = NewFileProcessor().ListGoFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestGoModParser_FindModule(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/app\n\ngo 1.22\n")
	writeFile(t, filepath.Join(root, "user", "person.go"), "package user\n")

	parser := NewGoModParser()
	info, err := parser.FindModule(filepath.Join(root, "user"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", info.Path)

	expectedDir, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, expectedDir, info.Dir)

	name, err := parser.ParseModuleName(filepath.Join(root, "go.mod"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", name)

	_, err = parser.ParseModuleName(filepath.Join(root, "user", "person.go"))
	assert.Error(t, err)
}

func TestGoModParser_NoModule(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "go 1.22\n")

	_, err := NewGoModParser().FindModule(root)
	assert.ErrorContains(t, err, "no module declaration")
}

func TestImportPath(t *testing.T) {
	assert.Equal(t, "example.com/app", ImportPath("example.com/app", "."))
	assert.Equal(t, "example.com/app/user", ImportPath("example.com/app", "user"))
	assert.Equal(t, "example.com/app/a/b", ImportPath("example.com/app/", filepath.Join("a", "b")))
}

func TestFormatGoSource(t *testing.T) {
	src := []byte("package p\nimport (\n\"os\"\n\"fmt\"\n)\nfunc F() { fmt.Println( 1 ) }\n")

	formatted, err := FormatGoSource("p.go", src)
	require.NoError(t, err)
	assert.Contains(t, string(formatted), "\"fmt\"")
	assert.NotContains(t, string(formatted), "\"os\"")
	assert.Contains(t, string(formatted), "func F() { fmt.Println(1) }\n")

	_, err = FormatGoSource("p.go", []byte("package p\nfunc {"))
	assert.ErrorContains(t, err, "invalid Go syntax")
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	d := NewDiagnosticSystem(DiagnosticInfo)
	d.SetOutput(&out, &errOut)
	d.SetColors(false)

	d.Info("scanning %d packages", 2)
	d.Verbose("hidden")
	d.Warn("careful")
	d.Error("broken")
	d.PhaseItem("wrote %s", "person_builder.go")

	assert.Contains(t, out.String(), "[INFO] scanning 2 packages\n")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "✓ wrote person_builder.go\n")
	assert.Contains(t, errOut.String(), "[WARN] careful\n")
	assert.Contains(t, errOut.String(), "[ERROR] broken\n")
	assert.NotContains(t, out.String()+errOut.String(), "\x1b[")
}

func TestDiagnosticSystem_Quiet(t *testing.T) {
	var out, errOut bytes.Buffer
	d := NewQuietDiagnostics()
	d.SetOutput(&out, &errOut)

	d.Info("hello")
	d.Warn("careful")
	d.Summary("Summary", map[string]interface{}{"builders": 1})
	d.Error("broken")

	assert.Empty(t, out.String())
	assert.Equal(t, DiagnosticError, d.Level())
	assert.Contains(t, errOut.String(), "broken")
	assert.NotContains(t, errOut.String(), "careful")
}

func TestDiagnosticSystem_SummaryIsSorted(t *testing.T) {
	var out bytes.Buffer
	d := NewDiagnosticSystem(DiagnosticInfo)
	d.SetOutput(&out, &out)

	d.Summary("Summary", map[string]interface{}{"rejected": 1, "builders": 2, "accepted": 3})
	assert.Equal(t, "\nSummary\n   accepted: 3\n   builders: 2\n   rejected: 1\n", out.String())
}

func TestDiagnosticSystem_Colors(t *testing.T) {
	var out bytes.Buffer
	d := NewDiagnosticSystem(DiagnosticInfo)
	d.SetOutput(&out, &out)
	d.SetColors(true)

	d.Info("colored")
	assert.Contains(t, out.String(), "\x1b[")
	assert.True(t, d.ColorsEnabled())
}
