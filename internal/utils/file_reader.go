package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/models"
	"github.com/toyz/ctorgen/internal/parser"
)

// FileReader reads and parses C# source files, caching both the text and the
// parsed model until the file changes on disk
type FileReader struct {
	parser       *parser.Parser
	modelCache   *Cache[string, *models.File]
	contentCache *Cache[string, string]
}

// NewFileReader creates a reader using p, or the default parser when p is nil
func NewFileReader(p *parser.Parser) *FileReader {
	if p == nil {
		p = parser.NewParser(nil)
	}
	return &FileReader{
		parser:       p,
		modelCache:   NewCache[string, *models.File](),
		contentCache: NewCache[string, string](),
	}
}

// ReadDocument reads a file into a document snapshot
func (fr *FileReader) ReadDocument(path string) (models.Document, error) {
	cleanPath, err := cleanExistingPath(path)
	if err != nil {
		return models.Document{}, err
	}

	if cached, ok := fr.contentCache.GetWithFileValidation(cleanPath, cleanPath); ok {
		return models.NewDocument(cleanPath, cached), nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return models.Document{}, errors.WrapFileSystemError("read", cleanPath, err)
	}

	text := string(content)
	_ = fr.contentCache.SetWithFileInfo(cleanPath, text, cleanPath)
	return models.NewDocument(cleanPath, text), nil
}

// ParseFile reads and parses a file
func (fr *FileReader) ParseFile(path string) (*models.File, error) {
	cleanPath, err := cleanExistingPath(path)
	if err != nil {
		return nil, err
	}

	if cached, ok := fr.modelCache.GetWithFileValidation(cleanPath, cleanPath); ok {
		return cached, nil
	}

	doc, err := fr.ReadDocument(cleanPath)
	if err != nil {
		return nil, err
	}
	file, err := fr.parser.ParseDocument(doc)
	if err != nil {
		return nil, err
	}

	_ = fr.modelCache.SetWithFileInfo(cleanPath, file, cleanPath)
	return file, nil
}

// InvalidateFile forgets everything cached for path
func (fr *FileReader) InvalidateFile(path string) {
	cleanPath := filepath.Clean(path)
	fr.modelCache.Delete(cleanPath)
	fr.contentCache.Delete(cleanPath)
}

// ClearCache forgets every cached file
func (fr *FileReader) ClearCache() {
	fr.modelCache.Clear()
	fr.contentCache.Clear()
}

// CacheStats returns the statistics of the model and content caches
func (fr *FileReader) CacheStats() (parsed, content CacheStats) {
	return fr.modelCache.Stats(), fr.contentCache.Stats()
}

func cleanExistingPath(path string) (string, error) {
	if path == "" {
		return "", errors.ValidationError("path", "a file path", "an empty string")
	}

	cleanPath := filepath.Clean(path)
	info, err := os.Stat(cleanPath)
	if err != nil {
		return "", errors.WrapFileSystemError("stat", cleanPath, err)
	}
	if info.IsDir() {
		return "", errors.WrapFileSystemError("read", cleanPath, fmt.Errorf("is a directory"))
	}
	return cleanPath, nil
}
