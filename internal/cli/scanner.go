package cli

import (
	"github.com/toyz/ctorgen/internal/config"
	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/utils"
)

// DirectoryScanner expands command line paths into the source files to process
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a scanner honoring the configured extensions and skipped directories
func NewDirectoryScanner(scan config.ScanConfig) *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(utils.FileWalkOptions{
			FileFilter:      utils.SourceFileFilter(scan.Extensions),
			DirectoryFilter: utils.SkipDirectoryFilter(scan.SkipDirs),
		}),
	}
}

// ScanPaths returns the source files named by paths, sorted and without duplicates.
// Supports Go-style patterns like "./..." for recursive scanning.
func (s *DirectoryScanner) ScanPaths(paths []string) ([]string, error) {
	files, err := s.fileProcessor.ExpandPaths(paths)
	if err != nil {
		return nil, errors.Wrap(errors.FileSystemErrorCode, "failed to scan paths", err).
			WithContext("paths", paths).
			WithHint("Check that the specified files and directories exist",
				"Use 'dir/...' to scan a directory recursively")
	}
	return files, nil
}

// FileProcessor returns the processor used to write results back
func (s *DirectoryScanner) FileProcessor() *utils.FileProcessor {
	return s.fileProcessor
}
