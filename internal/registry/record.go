package registry

import "encoding/json"

// ComponentRecord describes one installable component. Field names follow
// the shadcn-style registry item format served over HTTP.
type ComponentRecord struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	// RegistryDependencies names other components. The names are never
	// checked against the store.
	RegistryDependencies []string `json:"registryDependencies"`
	Dependencies         []string `json:"dependencies"`
	Files                []File   `json:"files"`
	// Tailwind is the theme extension block, passed through untouched.
	Tailwind json.RawMessage   `json:"tailwind,omitempty"`
	CSSVars  map[string]string `json:"cssVars"`
	Meta     Meta              `json:"meta"`
}

// File is a source artifact nominally written by an install.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// Meta carries the classification used by search and enumeration.
type Meta struct {
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Tags        []string `json:"tags"`
}

// Summary is the reduced projection used in list and search responses.
type Summary struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// Summarize projects a record onto its Summary.
func (c ComponentRecord) Summarize() Summary {
	return Summary{
		Name:        c.Name,
		Type:        c.Type,
		Description: c.Description,
		Category:    c.Meta.Category,
		Tags:        c.Meta.Tags,
	}
}

// normalized returns a copy whose collections are non-nil so that JSON
// output always carries [] and {} rather than null.
func (c ComponentRecord) normalized() ComponentRecord {
	if c.RegistryDependencies == nil {
		c.RegistryDependencies = []string{}
	}
	if c.Dependencies == nil {
		c.Dependencies = []string{}
	}
	if c.Files == nil {
		c.Files = []File{}
	}
	if c.CSSVars == nil {
		c.CSSVars = map[string]string{}
	}
	if c.Meta.Tags == nil {
		c.Meta.Tags = []string{}
	}
	return c
}
