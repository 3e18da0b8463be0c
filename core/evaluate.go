package core

import (
	"fmt"
	"math"

	"github.com/huangsam/presetter/schema"
)

// Evaluator maps score sets to preset recommendations using an injected catalog.
type Evaluator struct {
	catalog *Catalog
}

// NewEvaluator creates an evaluator bound to the given catalog.
func NewEvaluator(catalog *Catalog) *Evaluator {
	return &Evaluator{catalog: catalog}
}

// Catalog returns the catalog the evaluator consults.
func (e *Evaluator) Catalog() *Catalog {
	return e.catalog
}

// Evaluate returns a result for every score that meets its metric's threshold,
// in the order the scores were supplied. An unknown metric aborts the whole
// evaluation and no partial results are returned.
func (e *Evaluator) Evaluate(scores schema.ScoreSet) ([]schema.PresetResult, error) {
	results := make([]schema.PresetResult, 0, len(scores))
	for _, sc := range scores {
		def, ok := e.catalog.Lookup(sc.MetricID)
		if !ok {
			return nil, NewUnknownMetricError(sc.MetricID)
		}
		if sc.Value < def.Threshold {
			continue
		}
		results = append(results, schema.PresetResult{
			Metric:      def.ID,
			Name:        def.Name,
			Preset:      def.Preset,
			Description: def.Description,
			Score:       sc.Value,
			Threshold:   def.Threshold,
			Margin:      sc.Value - def.Threshold,
		})
	}
	return results, nil
}

// ValidateScore reports whether v is an integer-valued number within [0,100].
func ValidateScore(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if v != math.Trunc(v) {
		return false
	}
	return v >= schema.MinScore && v <= schema.MaxScore
}

// ValidateScoreSet checks every value in the set against ValidateScore.
func ValidateScoreSet(scores schema.ScoreSet) error {
	for _, sc := range scores {
		if !ValidateScore(float64(sc.Value)) {
			return InvalidScoreError(sc.MetricID)
		}
	}
	return nil
}

// invalidScoreMessage is the shared wording for out-of-range or non-integer scores.
func invalidScoreMessage(metricID string) string {
	return fmt.Sprintf("Invalid score for %s: must be an integer between %d and %d", metricID, schema.MinScore, schema.MaxScore)
}

// InvalidScoreError builds the validation error used for a bad score value.
func InvalidScoreError(metricID string) *EvalError {
	return NewValidationError(metricID, invalidScoreMessage(metricID))
}
