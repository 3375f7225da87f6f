package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/buildergen/internal/errors"
	"github.com/toyz/buildergen/internal/templates"
	"github.com/toyz/buildergen/internal/utils/fileops"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	scanner *DirectoryScanner
	paths   *fileops.PathValidator
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		scanner: NewDirectoryScanner(),
		paths:   fileops.NewPathValidator(),
	}
}

// CleanGeneratedFiles removes the builder files found in the given
// directories and returns their paths. Only files starting with the
// generated-code header are touched, whatever their name.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	dirs, err := c.scanner.ScanDirectories(directories)
	if err != nil {
		return nil, err
	}

	var removedFiles []string
	for _, dir := range dirs {
		if err := c.cleanSingleDirectory(dir, &removedFiles); err != nil {
			return removedFiles, err
		}
	}
	return removedFiles, nil
}

// cleanSingleDirectory removes the generated builder files of one directory
func (c *Cleaner) cleanSingleDirectory(dir string, removedFiles *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.WrapFileSystemError("read directory", dir, err)
	}

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if !c.paths.IsFile(path) {
			continue
		}
		generated, err := IsGeneratedBuilder(path)
		if err != nil {
			return err
		}
		if !generated {
			continue
		}

		if err := os.Remove(path); err != nil {
			return errors.WrapFileSystemError("remove", path, err)
		}
		*removedFiles = append(*removedFiles, path)
	}

	return nil
}

// IsGeneratedBuilder reports whether the file at path was written by this tool
func IsGeneratedBuilder(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, errors.WrapFileSystemError("open", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	return strings.TrimRight(scanner.Text(), "\r") == templates.GeneratedHeader, nil
}
