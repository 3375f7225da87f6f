package cli

import (
	"fmt"
	"strings"

	"github.com/toyz/buildergen/internal/errors"
	"github.com/toyz/buildergen/internal/utils"
	"github.com/toyz/buildergen/internal/utils/fileops"
)

// DirectoryScanner resolves directory arguments into package directories
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
	paths         *fileops.PathValidator
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
		paths:         fileops.NewPathValidator(),
	}
}

// ScanDirectories returns the absolute paths of the directories holding Go
// files. Go-style patterns like "./..." scan recursively; a plain directory
// is taken as is. Each directory is returned once.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	var packageDirs []string
	seen := make(map[string]bool)

	add := func(dirs ...string) {
		for _, dir := range dirs {
			if !seen[dir] {
				seen[dir] = true
				packageDirs = append(packageDirs, dir)
			}
		}
	}

	for _, rootDir := range rootDirs {
		recursive := rootDir == "..." || strings.HasSuffix(rootDir, "/...")
		baseDir := strings.TrimSuffix(strings.TrimSuffix(rootDir, "..."), "/")
		if baseDir == "" {
			baseDir = "."
		}

		cleanPath, err := s.paths.GetAbsolutePath(baseDir)
		if err != nil {
			return nil, errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", baseDir), err)
		}
		if !s.paths.IsDir(cleanPath) {
			return nil, errors.Newf(errors.FileSystemErrorCode, "directory does not exist: %s", baseDir)
		}

		if recursive {
			dirs, err := s.fileProcessor.ScanDirectoriesWithGoFiles([]string{cleanPath})
			if err != nil {
				return nil, err
			}
			add(dirs...)
			continue
		}

		hasGoFiles, err := s.fileProcessor.HasGoFiles(cleanPath)
		if err != nil {
			return nil, err
		}
		if hasGoFiles {
			add(cleanPath)
		}
	}

	return packageDirs, nil
}
