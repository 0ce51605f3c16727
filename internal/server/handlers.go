package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/grokcon/registry-api/internal/errors"
	"github.com/grokcon/registry-api/internal/registry"
)

type errorResponse struct {
	Error string `json:"error"`
}

type componentsResponse struct {
	Components []registry.Summary `json:"components"`
	Total      int                `json:"total"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status              string `json:"status"`
	Service             string `json:"service"`
	Version             string `json:"version"`
	ComponentsAvailable int    `json:"components_available"`
}

func (s *Server) handleListComponents(w http.ResponseWriter, r *http.Request) {
	components := s.catalog.ListComponents()
	s.writeJSON(w, r, http.StatusOK, componentsResponse{
		Components: components,
		Total:      len(components),
	})
}

func (s *Server) handleGetComponent(w http.ResponseWriter, r *http.Request) {
	rec, err := s.catalog.GetComponent(componentName(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, rec)
}

func (s *Server) handleInstall(w http.ResponseWriter, r *http.Request) {
	result, err := s.catalog.SimulateInstall(componentName(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.metrics != nil {
		s.metrics.installsTotal.WithLabelValues(result.Component).Inc()
	}
	s.writeJSON(w, r, http.StatusOK, result)
}

// handleSearch treats absent parameters as empty strings.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.writeJSON(w, r, http.StatusOK, s.catalog.Search(registry.SearchParams{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
	}))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, categoriesResponse{Categories: s.catalog.ListCategories()})
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, tagsResponse{Tags: s.catalog.ListTags()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:              "healthy",
		Service:             ServiceName,
		Version:             ServiceVersion,
		ComponentsAvailable: s.catalog.Count(),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "Not found"})
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
}

// componentName returns the decoded {name} path segment. chi matches on
// RawPath when it is set, so the segment is only unescaped in that case.
func componentName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return raw
	}
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// writeError maps a query error onto a status code. Lookup misses become the
// fixed 404 body; anything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.IsNotFound(err) {
		s.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: errors.ErrComponentNotFound.Message})
		return
	}

	s.errorHandler.Handle(r.Context(), err)
	s.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.logger.Warn(r.Context(), err, "Failed to encode response", "path", r.URL.Path)
	}
}
