package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryErrorString(t *testing.T) {
	t.Run("not found with component", func(t *testing.T) {
		err := NewNotFoundError("badge")

		assert.Equal(t, "[COMPONENT_NOT_FOUND] component:badge Component not found", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("unexpected EOF")
		err := NewCatalogError(ErrCodeCatalogInvalid, "invalid catalog", cause)

		assert.Contains(t, err.Error(), "[CATALOG_INVALID]")
		assert.Contains(t, err.Error(), "unexpected EOF")
		assert.Equal(t, cause, err.Unwrap())
	})
}

func TestRegistryErrorIs(t *testing.T) {
	err := NewNotFoundError("missing")

	assert.True(t, errors.Is(err, ErrComponentNotFound))
	assert.True(t, errors.Is(fmt.Errorf("lookup: %w", err), ErrComponentNotFound))
	assert.False(t, errors.Is(NewConfigError(ErrCodeConfigInvalid, "bad"), ErrComponentNotFound))
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		notFound  bool
		isCatalog bool
	}{
		{"not found", NewNotFoundError("x"), true, false},
		{"wrapped not found", fmt.Errorf("get: %w", NewNotFoundError("x")), true, false},
		{"catalog", NewCatalogError(ErrCodeCatalogDuplicate, "dup", nil), false, true},
		{"plain", errors.New("boom"), false, false},
		{"nil", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.isCatalog, IsCatalogError(tt.err))
		})
	}
}

func TestWithContext(t *testing.T) {
	err := NewCatalogError(ErrCodeCatalogDuplicate, "duplicate component name", nil).
		WithContext("name", "badge").
		WithContext("index", 3)

	require.NotNil(t, err.Context)
	assert.Equal(t, "badge", err.Context["name"])
	assert.Equal(t, 3, err.Context["index"])
}

type recordingLogger struct {
	errors []string
	warns  []string
}

func (l *recordingLogger) Error(ctx context.Context, err error, msg string, fields ...interface{}) {
	l.errors = append(l.errors, msg)
}

func (l *recordingLogger) Warn(ctx context.Context, err error, msg string, fields ...interface{}) {
	l.warns = append(l.warns, msg)
}

func TestErrorHandler(t *testing.T) {
	logger := &recordingLogger{}
	handler := NewErrorHandler(logger)
	ctx := context.Background()

	handler.Handle(ctx, nil)
	handler.Handle(ctx, NewNotFoundError("badge"))
	assert.Empty(t, logger.errors, "lookup misses are not logged")

	handler.Handle(ctx, NewCatalogError(ErrCodeCatalogRead, "read failed", errors.New("EACCES")))
	handler.Handle(ctx, errors.New("boom"))

	assert.Equal(t, []string{"Startup error occurred", "Unhandled error occurred"}, logger.errors)
}
