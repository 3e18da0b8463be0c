// Package schema has models and constants for all parts of presetter.
package schema

import "time"

// MetricDefinition describes a single survey metric and the preset it unlocks.
// Definitions are fixed at startup and never mutated.
type MetricDefinition struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Threshold   int    `json:"threshold" yaml:"threshold"`
	Preset      string `json:"preset" yaml:"preset"`
	Description string `json:"description" yaml:"description"`
}

// Score is one metric/value pair supplied by a caller.
type Score struct {
	MetricID string `json:"metric" yaml:"metric"`
	Value    int    `json:"score" yaml:"score"`
}

// ScoreSet is an ordered collection of scores. The order is the order the
// caller supplied and is carried into evaluation output.
type ScoreSet []Score

// Get returns the score recorded for a metric.
func (s ScoreSet) Get(metricID string) (int, bool) {
	for _, sc := range s {
		if sc.MetricID == metricID {
			return sc.Value, true
		}
	}
	return 0, false
}

// Has reports whether the set contains a score for the metric.
func (s ScoreSet) Has(metricID string) bool {
	_, ok := s.Get(metricID)
	return ok
}

// ToMap flattens the set into a metric -> score map.
func (s ScoreSet) ToMap() map[string]int {
	out := make(map[string]int, len(s))
	for _, sc := range s {
		out[sc.MetricID] = sc.Value
	}
	return out
}

// PresetResult is produced for every metric whose score meets its threshold.
type PresetResult struct {
	Metric      string `json:"metric" yaml:"metric"`
	Name        string `json:"name" yaml:"name"`
	Preset      string `json:"preset" yaml:"preset"`
	Description string `json:"description" yaml:"description"`
	Score       int    `json:"score" yaml:"score"`
	Threshold   int    `json:"threshold" yaml:"threshold"`
	Margin      int    `json:"margin" yaml:"margin"` // Score - Threshold
}

// SessionRecord is the body of the results file written after an interactive session.
type SessionRecord struct {
	Timestamp       time.Time      `json:"timestamp"`
	UserMetrics     map[string]int `json:"user_metrics"`
	SelectedPresets []PresetResult `json:"selected_presets"`
}

// CatalogEntry is the public shape of a metric definition keyed by its id.
type CatalogEntry struct {
	Threshold   int    `json:"threshold" yaml:"threshold"`
	Preset      string `json:"preset" yaml:"preset"`
	Description string `json:"description" yaml:"description"`
}
