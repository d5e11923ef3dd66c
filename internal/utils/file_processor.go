package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileFilter decides whether a file is processed
type FileFilter func(path string, entry fs.DirEntry) bool

// DirectoryFilter decides whether a directory is descended into
type DirectoryFilter func(path string, entry fs.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	Recursive       bool
	SkipErrors      bool
}

// SourceFileFilter accepts files with one of the given extensions, case-insensitively
func SourceFileFilter(extensions []string) FileFilter {
	accepted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		accepted[strings.ToLower(ext)] = true
	}
	return func(path string, entry fs.DirEntry) bool {
		if entry.IsDir() {
			return false
		}
		return accepted[strings.ToLower(filepath.Ext(entry.Name()))]
	}
}

// SkipDirectoryFilter rejects directories with one of the given names
func SkipDirectoryFilter(names []string) DirectoryFilter {
	skip := make(map[string]bool, len(names))
	for _, name := range names {
		skip[name] = true
	}
	return func(path string, entry fs.DirEntry) bool {
		return !skip[entry.Name()]
	}
}

// FileProcessor finds source files and writes results back
type FileProcessor struct {
	options FileWalkOptions
}

// NewFileProcessor creates a processor with the given filters
func NewFileProcessor(options FileWalkOptions) *FileProcessor {
	return &FileProcessor{options: options}
}

// WalkFiles returns the files below rootDir accepted by the filters, sorted
func (fp *FileProcessor) WalkFiles(rootDir string, recursive bool) ([]string, error) {
	var matched []string

	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if fp.options.SkipErrors {
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path == rootDir {
				return nil
			}
			if !recursive {
				return filepath.SkipDir
			}
			if fp.options.DirectoryFilter != nil && !fp.options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if fp.options.FileFilter == nil || fp.options.FileFilter(path, entry) {
			matched = append(matched, path)
		}
		return nil
	})
	if err != nil {
		return nil, WrapProcessError(fmt.Sprintf("directory %s", rootDir), err)
	}

	sort.Strings(matched)
	return matched, nil
}

// ExpandPaths resolves command line arguments into files. "dir/..." walks dir
// recursively, a directory contributes its own files, and a file is taken as is.
// The result is sorted and free of duplicates.
func (fp *FileProcessor) ExpandPaths(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(paths ...string) {
		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				files = append(files, p)
			}
		}
	}

	for _, arg := range args {
		recursive := false
		if arg == "..." || strings.HasSuffix(arg, "/...") {
			recursive = true
			arg = strings.TrimSuffix(strings.TrimSuffix(arg, "..."), "/")
			if arg == "" {
				arg = "."
			}
		}

		path := filepath.Clean(arg)
		info, err := os.Stat(path)
		if err != nil {
			return nil, WrapProcessError(fmt.Sprintf("path %s", arg), err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		found, err := fp.WalkFiles(path, fp.options.Recursive || recursive)
		if err != nil {
			return nil, err
		}
		add(found...)
	}

	sort.Strings(files)
	return files, nil
}

// WriteFile replaces path with content through a temporary file in the same
// directory, keeping the original permissions
func (fp *FileProcessor) WriteFile(path, content string) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return WrapWriteError(path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return WrapWriteError(path, err)
	}
	if err := tmp.Close(); err != nil {
		return WrapWriteError(path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return WrapWriteError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return WrapWriteError(path, err)
	}
	return nil
}
