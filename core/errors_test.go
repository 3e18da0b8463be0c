package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	validation := NewValidationError("metric_a", "bad")
	unknown := NewUnknownMetricError("metric_z")
	server := NewServerError("Internal server error", errors.New("disk full"))

	assert.Equal(t, ValidationKind, KindOf(validation))
	assert.Equal(t, UnknownMetricKind, KindOf(unknown))
	assert.Equal(t, ServerKind, KindOf(server))
	assert.Equal(t, ServerKind, KindOf(errors.New("plain")))

	assert.True(t, IsValidationError(validation))
	assert.False(t, IsValidationError(unknown))
	assert.True(t, IsUnknownMetric(unknown))
	assert.False(t, IsUnknownMetric(nil))
}

func TestEvalErrorWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := NewServerError("Internal server error", cause)
	assert.Equal(t, "Internal server error: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("handler: %w", NewUnknownMetricError("metric_z"))
	assert.True(t, IsUnknownMetric(wrapped))

	var evalErr *EvalError
	assert.ErrorAs(t, wrapped, &evalErr)
	assert.Equal(t, "metric_z", evalErr.Metric)
}
