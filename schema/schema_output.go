package schema

// Fit labels derived from the margin of a matched preset.
const (
	StrongFit     = "Strong"
	ClearFit      = "Clear"
	BorderlineFit = "Borderline"
)

// EnrichedPresetResult adds presentation data to a PresetResult.
type EnrichedPresetResult struct {
	Rank int    `json:"rank" yaml:"rank"`
	Fit  string `json:"fit" yaml:"fit"`
	PresetResult `yaml:",inline"`
}

// GetFitLabel returns a plain text label describing how far a score cleared its threshold.
func GetFitLabel(margin int) string {
	switch {
	case margin >= 20:
		return StrongFit
	case margin >= 10:
		return ClearFit
	default:
		return BorderlineFit
	}
}

// EnrichPresets adds rank and fit label to a list of preset results.
func EnrichPresets(results []PresetResult) []EnrichedPresetResult {
	output := make([]EnrichedPresetResult, len(results))
	for i, r := range results {
		output[i] = EnrichedPresetResult{
			Rank:         i + 1,
			Fit:          GetFitLabel(r.Margin),
			PresetResult: r,
		}
	}
	return output
}
