// Package internal contains the core implementation packages for the GROKcon
// component registry.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - catalog: Embedded component definitions and catalog file loading
//   - config: Configuration management with Viper and validation
//   - errors: Structured registry errors and centralized error logging
//   - logging: Context-aware structured logging on log/slog
//   - registry: Immutable component store and the query layer over it
//   - server: HTTP/JSON adapter with chi routing, CORS, metrics and tracing
//   - version: Build metadata
//
// # Data Flow
//
//   - catalog decodes records and hands them to registry.NewStore
//   - the store is built once at startup and never written afterwards
//   - server and the CLI commands call the same query methods on the store
//
// # Testing Strategy
//
//   - Unit tests for individual functions and methods
//   - httptest coverage for every HTTP route
//   - Property tests (build tag "property") for search and config invariants
package internal
