package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grokcon/registry-api/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	records, err := Default()
	require.NoError(t, err)
	require.Len(t, records, 7)

	assert.Equal(t, "badge", records[0].Name)
	assert.Equal(t, "sidebar-02", records[6].Name)

	for _, rec := range records {
		assert.NotEmpty(t, rec.Type, rec.Name)
		assert.NotEmpty(t, rec.Meta.Category, rec.Name)
		assert.NotEmpty(t, rec.Files, rec.Name)
		assert.JSONEq(t, `{"config":{"theme":{"extend":{}}}}`, string(rec.Tailwind), rec.Name)
	}
}

func TestLoadEmptyPathUsesEmbedded(t *testing.T) {
	store, err := LoadStore("")
	require.NoError(t, err)
	assert.Equal(t, 7, store.Count())
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "catalog.json", `[
	  {
	    "name": "chip",
	    "type": "registry:ui",
	    "description": "A small chip",
	    "registryDependencies": [],
	    "dependencies": ["clsx"],
	    "files": [{"path": "ui/chip.tsx", "content": "export {}", "type": "registry:ui"}],
	    "tailwind": {"config": {"plugins": ["forms"]}},
	    "cssVars": {"--chip": "1px"},
	    "meta": {"category": "ui", "subcategory": "display", "tags": ["chip"]}
	  }
	]`)

	store, err := LoadStore(path)
	require.NoError(t, err)
	require.Equal(t, 1, store.Count())

	rec, ok := store.Get("chip")
	require.True(t, ok)
	assert.Equal(t, []string{"clsx"}, rec.Dependencies)
	assert.Equal(t, "1px", rec.CSSVars["--chip"])
	assert.JSONEq(t, `{"config":{"plugins":["forms"]}}`, string(rec.Tailwind))
}

func TestLoadYAML(t *testing.T) {
	content := `
- name: chip
  type: registry:ui
  description: A small chip
  dependencies: [clsx]
  files:
    - path: ui/chip.tsx
      content: export {}
      type: registry:ui
  tailwind:
    config:
      theme:
        extend: {}
  meta:
    category: ui
    subcategory: display
    tags: [chip, status]
`
	for _, ext := range []string{"catalog.yaml", "catalog.yml"} {
		t.Run(ext, func(t *testing.T) {
			records, err := Load(writeFile(t, ext, content))
			require.NoError(t, err)
			require.Len(t, records, 1)

			rec := records[0]
			assert.Equal(t, "chip", rec.Name)
			assert.Equal(t, []string{"chip", "status"}, rec.Meta.Tags)
			assert.JSONEq(t, `{"config":{"theme":{"extend":{}}}}`, string(rec.Tailwind))
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    string
	}{
		{name: "unsupported extension", file: "catalog.toml", content: "", code: errors.ErrCodeCatalogInvalid},
		{name: "malformed json", file: "catalog.json", content: "[{", code: errors.ErrCodeCatalogInvalid},
		{name: "unknown field", file: "catalog.json", content: `[{"name":"x","colour":"red"}]`, code: errors.ErrCodeCatalogInvalid},
		{name: "not a list", file: "catalog.yaml", content: "name: x", code: errors.ErrCodeCatalogInvalid},
		{name: "duplicate names", file: "catalog.json", content: `[{"name":"x"},{"name":"x"}]`, code: errors.ErrCodeCatalogDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStore(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsCatalogError(err))

			var regErr *errors.RegistryError
			require.ErrorAs(t, err, &regErr)
			assert.Equal(t, tt.code, regErr.Code)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var regErr *errors.RegistryError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, errors.ErrCodeCatalogRead, regErr.Code)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEmbeddedCatalogIsStrictJSON(t *testing.T) {
	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(DefaultJSON, &raw))

	for _, entry := range raw {
		for _, key := range []string{"name", "type", "description", "registryDependencies", "dependencies", "files", "tailwind", "cssVars", "meta"} {
			assert.Contains(t, entry, key)
		}
	}
}
