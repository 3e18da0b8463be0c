package core

import (
	"testing"

	"github.com/huangsam/presetter/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	require.Equal(t, 4, catalog.Len())
	assert.Equal(t, []string{"metric_a", "metric_b", "metric_c", "metric_d"}, catalog.IDs())

	tests := []struct {
		id        string
		name      string
		threshold int
		preset    string
	}{
		{"metric_a", "Emotional Intelligence", 70, "Supportive and Empathetic"},
		{"metric_b", "Analytical Thinking", 50, "Direct and Analytical"},
		{"metric_c", "Communication Style", 30, "Playful and Casual"},
		{"metric_d", "Problem Solving", 60, "Strategic and Methodical"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			def, ok := catalog.Lookup(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.name, def.Name)
			assert.Equal(t, tt.threshold, def.Threshold)
			assert.Equal(t, tt.preset, def.Preset)
			assert.NotEmpty(t, def.Description)
		})
	}
}

func TestCatalogLookupMissing(t *testing.T) {
	_, ok := DefaultCatalog().Lookup("metric_z")
	assert.False(t, ok)
}

func TestCatalogDefinitionsIsCopy(t *testing.T) {
	catalog := DefaultCatalog()
	defs := catalog.Definitions()
	defs[0].Threshold = 0

	def, _ := catalog.Lookup("metric_a")
	assert.Equal(t, 70, def.Threshold)
}

func TestCatalogEntries(t *testing.T) {
	entries := DefaultCatalog().Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, schema.CatalogEntry{
		Threshold:   30,
		Preset:      "Playful and Casual",
		Description: "Maintains a light, informal tone in interactions",
	}, entries["metric_c"])
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name string
		defs []schema.MetricDefinition
	}{
		{"empty id", []schema.MetricDefinition{{ID: " ", Threshold: 10}}},
		{"duplicate id", []schema.MetricDefinition{{ID: "x", Threshold: 10}, {ID: "x", Threshold: 20}}},
		{"threshold too high", []schema.MetricDefinition{{ID: "x", Threshold: 101}}},
		{"threshold negative", []schema.MetricDefinition{{ID: "x", Threshold: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.defs...)
			assert.Error(t, err)
		})
	}
}

func TestNewCatalogKeepsOrder(t *testing.T) {
	catalog, err := NewCatalog(
		schema.MetricDefinition{ID: "z", Threshold: 0},
		schema.MetricDefinition{ID: "a", Threshold: 100},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a"}, catalog.IDs())
}
