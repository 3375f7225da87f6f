package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/toyz/buildergen/internal/errors"
)

// ModuleInfo describes the module a directory belongs to
type ModuleInfo struct {
	Path string // module path from the module directive
	Dir  string // directory holding go.mod
}

// GoModParser provides utilities for parsing go.mod files
type GoModParser struct {
	modules map[string]ModuleInfo // keyed by go.mod path
}

// NewGoModParser creates a new go.mod parser with caching
func NewGoModParser() *GoModParser {
	return &GoModParser{modules: make(map[string]ModuleInfo)}
}

// ParseModuleName extracts the module name from a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	cleanPath := filepath.Clean(goModPath)
	if filepath.Base(cleanPath) != "go.mod" {
		return "", fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	if info, ok := p.modules[cleanPath]; ok {
		return info.Path, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", errors.WrapFileSystemError("read", cleanPath, err)
	}

	modFile, err := modfile.ParseLax(cleanPath, content, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod file: %w", err)
	}
	if modFile.Module == nil {
		return "", fmt.Errorf("no module declaration found in %s", cleanPath)
	}

	p.modules[cleanPath] = ModuleInfo{Path: modFile.Module.Mod.Path, Dir: filepath.Dir(cleanPath)}
	return modFile.Module.Mod.Path, nil
}

// FindGoModFile searches for go.mod file starting from the given directory and walking up
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.WrapFileSystemError("resolve path", startDir, err)
	}

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if stat, err := os.Stat(goModPath); err == nil && !stat.IsDir() {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found above %s", startDir)
}

// FindModule returns the module enclosing dir
func (p *GoModParser) FindModule(dir string) (ModuleInfo, error) {
	goModPath, err := p.FindGoModFile(dir)
	if err != nil {
		return ModuleInfo{}, err
	}
	if _, err := p.ParseModuleName(goModPath); err != nil {
		return ModuleInfo{}, err
	}
	return p.modules[goModPath], nil
}

// ImportPath joins a module path with the slash form of a path relative to
// the module root
func ImportPath(modulePath, rel string) string {
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return modulePath
	}
	return strings.TrimSuffix(modulePath, "/") + "/" + rel
}
