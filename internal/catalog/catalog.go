// Package catalog supplies the component definitions the registry store is
// built from: the embedded default catalog, or an override file.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grokcon/registry-api/internal/errors"
	"github.com/grokcon/registry-api/internal/registry"
	"gopkg.in/yaml.v3"
)

// DefaultJSON is the bundled catalog, embedded at build time.
//
//go:embed components.json
var DefaultJSON []byte

// Default decodes the embedded catalog.
func Default() ([]registry.ComponentRecord, error) {
	return DecodeJSON(DefaultJSON)
}

// Load returns the records from path, or the embedded catalog when path is
// empty. The format is chosen by file extension.
func Load(path string) ([]registry.ComponentRecord, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewCatalogError(errors.ErrCodeCatalogRead, "cannot read catalog file", err).
			WithContext("path", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return nil, errors.NewCatalogError(
			errors.ErrCodeCatalogInvalid,
			fmt.Sprintf("unsupported catalog extension %q (want .json, .yaml or .yml)", filepath.Ext(path)),
			nil,
		).WithContext("path", path)
	}
}

// LoadStore loads the catalog at path and builds the registry store from it.
func LoadStore(path string) (*registry.Store, error) {
	records, err := Load(path)
	if err != nil {
		return nil, err
	}
	return registry.NewStore(records)
}

// DecodeJSON parses a JSON array of component records.
func DecodeJSON(data []byte) ([]registry.ComponentRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var records []registry.ComponentRecord
	if err := dec.Decode(&records); err != nil {
		return nil, errors.NewCatalogError(errors.ErrCodeCatalogInvalid, "invalid catalog JSON", err)
	}
	return records, nil
}

// DecodeYAML parses a YAML sequence of component records. The document is
// re-encoded as JSON so the opaque tailwind block keeps its JSON form.
func DecodeYAML(data []byte) ([]registry.ComponentRecord, error) {
	var doc []interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewCatalogError(errors.ErrCodeCatalogInvalid, "invalid catalog YAML", err)
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.NewCatalogError(errors.ErrCodeCatalogInvalid, "catalog YAML is not representable as JSON", err)
	}
	return DecodeJSON(normalized)
}
