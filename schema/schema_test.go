package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreSetLookups(t *testing.T) {
	set := ScoreSet{
		{MetricID: "metric_c", Value: 40},
		{MetricID: "metric_a", Value: 80},
	}

	v, ok := set.Get("metric_a")
	assert.True(t, ok)
	assert.Equal(t, 80, v)

	_, ok = set.Get("metric_b")
	assert.False(t, ok)

	assert.True(t, set.Has("metric_c"))
	assert.False(t, set.Has("metric_d"))
}

func TestScoreSetToMap(t *testing.T) {
	set := ScoreSet{
		{MetricID: "metric_a", Value: 80},
		{MetricID: "metric_b", Value: 0},
	}
	assert.Equal(t, map[string]int{"metric_a": 80, "metric_b": 0}, set.ToMap())
	assert.Empty(t, ScoreSet{}.ToMap())
}
