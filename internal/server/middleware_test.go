package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/grokcon/registry-api/internal/catalog"
	"github.com/grokcon/registry-api/internal/config"
	"github.com/grokcon/registry-api/internal/logging"
)

func TestRequestID(t *testing.T) {
	server := setupTestServer(t)

	t.Run("generated", func(t *testing.T) {
		w := serve(t, server, http.MethodGet, "/health")
		_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("propagated", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, id)
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)

		assert.Equal(t, id, w.Header().Get(RequestIDHeader))
	})

	t.Run("malformed incoming id is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "not a uuid\n")
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)

		got := w.Header().Get(RequestIDHeader)
		assert.NotEqual(t, "not a uuid\n", got)
		_, err := uuid.Parse(got)
		assert.NoError(t, err)
	})
}

func TestRequestIDFromContext(t *testing.T) {
	var seen string
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	assert.Empty(t, RequestIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.LevelInfo,
		Format: "json",
		Output: &buf,
	})

	store, err := catalog.LoadStore("")
	require.NoError(t, err)
	server := New(config.Default(), store, logger, WithMetricsRegistry(prometheus.NewRegistry()))

	w := serve(t, server, http.MethodGet, "/components/missing")
	require.Equal(t, http.StatusNotFound, w.Code)

	var entry map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var candidate map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &candidate))
		if candidate["msg"] == "HTTP request" {
			entry = candidate
		}
	}
	require.NotNil(t, entry, buf.String())

	assert.Equal(t, "server", entry["component"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/components/missing", entry["path"])
	assert.Equal(t, "/components/{name}", entry["route"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.Equal(t, w.Header().Get(RequestIDHeader), entry["request_id"])
	assert.NotContains(t, buf.String(), "ERROR", "lookup misses are not logged as errors")
}

func newRecordingServer(t *testing.T, cat Catalog) (*Server, *tracetest.SpanRecorder) {
	t.Helper()

	cfg := config.Default()
	cfg.Tracing.Enabled = true

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	server := New(cfg, cat, nil,
		WithMetricsRegistry(prometheus.NewRegistry()),
		WithTracerProvider(tp, propagation.TraceContext{}),
	)
	return server, recorder
}

func TestTracingMiddleware(t *testing.T) {
	store, err := catalog.LoadStore("")
	require.NoError(t, err)

	t.Run("server span per request", func(t *testing.T) {
		server, recorder := newRecordingServer(t, store)

		w := serve(t, server, http.MethodGet, "/components/badge")
		require.Equal(t, http.StatusOK, w.Code)

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		span := spans[0]
		assert.Equal(t, "HTTP GET /components/{name}", span.Name())
		assert.Equal(t, trace.SpanKindServer, span.SpanKind())
		assert.True(t, span.SpanContext().IsValid())

		attrs := map[attribute.Key]attribute.Value{}
		for _, kv := range span.Attributes() {
			attrs[kv.Key] = kv.Value
		}
		assert.Equal(t, "/components/{name}", attrs["http.route"].AsString())
		assert.Equal(t, int64(http.StatusOK), attrs["http.status_code"].AsInt64())
		assert.Equal(t, w.Header().Get(RequestIDHeader), attrs["http.request_id"].AsString())
	})

	t.Run("span visible to handlers", func(t *testing.T) {
		recorder := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		defer func() { _ = tp.Shutdown(context.Background()) }()

		var inner trace.Span
		handler := tracingMiddleware(tp, propagation.TraceContext{}, "test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inner = trace.SpanFromContext(r.Context())
			w.WriteHeader(http.StatusTeapot)
		}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotNil(t, inner)
		assert.True(t, inner.SpanContext().IsValid())
		assert.Equal(t, http.StatusTeapot, rec.Code)
		require.Len(t, recorder.Ended(), 1)
		assert.Equal(t, inner.SpanContext().SpanID(), recorder.Ended()[0].SpanContext().SpanID())
	})

	t.Run("continues incoming traceparent", func(t *testing.T) {
		server, recorder := newRecordingServer(t, store)

		const traceID = "4bf92f3577b34da6a3ce929d0e0e4736"
		const parentID = "00f067aa0ba902b7"
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("traceparent", "00-"+traceID+"-"+parentID+"-01")
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, traceID, spans[0].SpanContext().TraceID().String())
		assert.Equal(t, parentID, spans[0].Parent().SpanID().String())
		assert.True(t, spans[0].Parent().IsRemote())
	})

	t.Run("server errors mark the span", func(t *testing.T) {
		server, recorder := newRecordingServer(t, failingCatalog{})

		w := serve(t, server, http.MethodGet, "/components/badge")
		require.Equal(t, http.StatusInternalServerError, w.Code)

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
	})

	t.Run("disabled", func(t *testing.T) {
		recorder := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		defer func() { _ = tp.Shutdown(context.Background()) }()

		server := New(config.Default(), store, nil,
			WithMetricsRegistry(prometheus.NewRegistry()),
			WithTracerProvider(tp, propagation.TraceContext{}),
		)

		w := serve(t, server, http.MethodGet, "/health")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, recorder.Ended())
	})
}

func TestInitTracing(t *testing.T) {
	prevProvider := otel.GetTracerProvider()
	prevPropagator := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevProvider)
		otel.SetTextMapPropagator(prevPropagator)
	})

	var buf bytes.Buffer
	shutdown, err := InitTracing(&buf, "grokcon-registry-test")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Tracing.Enabled = true
	store, err := catalog.LoadStore("")
	require.NoError(t, err)
	server := New(cfg, store, nil, WithMetricsRegistry(prometheus.NewRegistry()))

	w := serve(t, server, http.MethodGet, "/tags")
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"Name":"HTTP GET /tags"`)
	assert.Contains(t, buf.String(), "grokcon-registry-test")
}
