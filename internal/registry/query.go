package registry

import (
	"sort"
	"strings"

	"github.com/grokcon/registry-api/internal/errors"
)

// SearchParams holds the optional search filters. Empty strings mean
// "not given".
type SearchParams struct {
	Query    string
	Category string
	Tag      string
}

// SearchFilters echoes the exact-match filters back to the caller.
type SearchFilters struct {
	Category string `json:"category"`
	Tag      string `json:"tag"`
}

// SearchResult is the outcome of Search.
type SearchResult struct {
	Results []Summary     `json:"results"`
	Total   int           `json:"total"`
	Query   string        `json:"query"`
	Filters SearchFilters `json:"filters"`
}

// ListComponents returns a summary of every record in store order.
func (s *Store) ListComponents() []Summary {
	out := make([]Summary, 0, len(s.order))
	for _, rec := range s.order {
		out = append(out, rec.Summarize())
	}
	return out
}

// GetComponent returns the full record for name, or a not-found error.
func (s *Store) GetComponent(name string) (ComponentRecord, error) {
	rec, ok := s.Get(name)
	if !ok {
		return ComponentRecord{}, errors.NewNotFoundError(name)
	}
	return rec, nil
}

// Search filters the store. The query is matched case-insensitively as a
// substring of the name, the description or any tag, and only when it is
// non-empty. Category and tag are exact, case-sensitive filters that exclude
// a record even when it matched on the query. With no filters at all every
// record is returned.
func (s *Store) Search(params SearchParams) SearchResult {
	query := strings.ToLower(params.Query)

	results := make([]Summary, 0)
	for _, rec := range s.order {
		if matches(rec, query, params.Category, params.Tag) {
			results = append(results, rec.Summarize())
		}
	}

	return SearchResult{
		Results: results,
		Total:   len(results),
		Query:   query,
		Filters: SearchFilters{
			Category: params.Category,
			Tag:      params.Tag,
		},
	}
}

// matches expects query already lowercased.
func matches(rec ComponentRecord, query, category, tag string) bool {
	if query == "" && category == "" && tag == "" {
		return true
	}

	if query != "" && !matchesQuery(rec, query) {
		return false
	}

	if category != "" && rec.Meta.Category != category {
		return false
	}

	if tag != "" && !containsString(rec.Meta.Tags, tag) {
		return false
	}

	return true
}

func matchesQuery(rec ComponentRecord, query string) bool {
	if strings.Contains(strings.ToLower(rec.Name), query) ||
		strings.Contains(strings.ToLower(rec.Description), query) {
		return true
	}
	for _, t := range rec.Meta.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// ListCategories returns the distinct categories, sorted.
func (s *Store) ListCategories() []string {
	seen := make(map[string]struct{})
	for _, rec := range s.order {
		seen[rec.Meta.Category] = struct{}{}
	}
	return sortedKeys(seen)
}

// ListTags returns the distinct tags across all records, sorted.
func (s *Store) ListTags() []string {
	seen := make(map[string]struct{})
	for _, rec := range s.order {
		for _, t := range rec.Meta.Tags {
			seen[t] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
