package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog maps source text to its translations by target language code.
type Catalog map[string]map[string]string

// CatalogAdapter defines how a manual translation catalog is loaded.
type CatalogAdapter interface {
	Load(ctx context.Context) (Catalog, error)
}

// MapAdapter serves a catalog from memory. Useful for tests and for small
// deployments that compile their translations in.
type MapAdapter struct {
	Data Catalog
}

// Load implements the CatalogAdapter interface.
func (a *MapAdapter) Load(_ context.Context) (Catalog, error) {
	if a.Data == nil {
		return Catalog{}, nil
	}
	return a.Data, nil
}

// Parser converts raw catalog file content into a Catalog.
type Parser interface {
	Parse(ctx context.Context, content []byte) (Catalog, error)
}

// FileAdapter loads a catalog from a file using the given parser.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter creates a FileAdapter. Returns nil when parser is nil or
// path is empty.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	if parser == nil || path == "" {
		return nil
	}
	return &FileAdapter{parser: parser, path: path}
}

// Load implements the CatalogAdapter interface.
func (a *FileAdapter) Load(ctx context.Context) (Catalog, error) {
	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: catalog file %q is empty", ErrFailedToParseCatalog, a.path)
	}
	return a.parser.Parse(ctx, content)
}

// JSONParser parses catalogs of the form
// {"source text": {"en": "translated text"}}.
type JSONParser struct{}

// NewJSONParser creates a new JSONParser instance.
func NewJSONParser() *JSONParser { return &JSONParser{} }

// Parse implements the Parser interface.
func (p *JSONParser) Parse(ctx context.Context, content []byte) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var catalog Catalog
	if err := json.Unmarshal(content, &catalog); err != nil {
		return nil, errors.Join(ErrFailedToParseCatalog, err)
	}
	return catalog, nil
}

// YAMLParser parses catalogs with the same shape as JSONParser but in YAML.
type YAMLParser struct{}

// NewYAMLParser creates a new YAMLParser instance.
func NewYAMLParser() *YAMLParser { return &YAMLParser{} }

// Parse implements the Parser interface.
func (p *YAMLParser) Parse(ctx context.Context, content []byte) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var catalog Catalog
	if err := yaml.Unmarshal(content, &catalog); err != nil {
		return nil, errors.Join(ErrFailedToParseCatalog, err)
	}
	return catalog, nil
}
