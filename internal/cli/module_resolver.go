package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/buildergen/internal/errors"
	"github.com/toyz/buildergen/internal/utils"
)

// ModuleResolver maps package directories to import paths
type ModuleResolver struct {
	customModule string
	customRoot   string
	gomod        *utils.GoModParser
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{gomod: utils.NewGoModParser()}
}

// SetCustomModule makes import paths relative to root under moduleName
// instead of reading go.mod. An empty root means the working directory.
func (r *ModuleResolver) SetCustomModule(moduleName, root string) error {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.WrapFileSystemError("resolve", ".", err)
		}
		root = wd
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return errors.WrapFileSystemError("resolve", root, err)
	}

	r.customModule = moduleName
	r.customRoot = absRoot
	return nil
}

// PackagePath returns the import path of the package in dir
func (r *ModuleResolver) PackagePath(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.WrapFileSystemError("resolve", dir, err)
	}

	modulePath, moduleRoot := r.customModule, r.customRoot
	if modulePath == "" {
		info, err := r.gomod.FindModule(absDir)
		if err != nil {
			return "", errors.WrapModuleError(dir, err)
		}
		modulePath, moduleRoot = info.Path, info.Dir
	}

	rel, err := filepath.Rel(moduleRoot, absDir)
	if err != nil {
		return "", errors.WrapModuleError(dir, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.WrapModuleError(dir, fmt.Errorf("directory is outside module root %s", moduleRoot))
	}

	return utils.ImportPath(modulePath, rel), nil
}
