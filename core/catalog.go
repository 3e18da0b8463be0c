package core

import (
	"fmt"
	"strings"

	"github.com/huangsam/presetter/schema"
)

// Default metric identifiers.
const (
	MetricEmotionalIntelligence = "metric_a"
	MetricAnalyticalThinking    = "metric_b"
	MetricCommunicationStyle    = "metric_c"
	MetricProblemSolving        = "metric_d"
)

// defaultDefinitions is the fixed table behind DefaultCatalog.
var defaultDefinitions = []schema.MetricDefinition{
	{
		ID:          MetricEmotionalIntelligence,
		Name:        "Emotional Intelligence",
		Threshold:   70,
		Preset:      "Supportive and Empathetic",
		Description: "Focuses on emotional support and understanding",
	},
	{
		ID:          MetricAnalyticalThinking,
		Name:        "Analytical Thinking",
		Threshold:   50,
		Preset:      "Direct and Analytical",
		Description: "Emphasizes logical problem-solving and clear communication",
	},
	{
		ID:          MetricCommunicationStyle,
		Name:        "Communication Style",
		Threshold:   30,
		Preset:      "Playful and Casual",
		Description: "Maintains a light, informal tone in interactions",
	},
	{
		ID:          MetricProblemSolving,
		Name:        "Problem Solving",
		Threshold:   60,
		Preset:      "Strategic and Methodical",
		Description: "Focuses on structured approach to problem resolution",
	},
}

// DefaultRequiredMetrics are the metrics the HTTP facade insists on by default.
var DefaultRequiredMetrics = []string{
	MetricEmotionalIntelligence,
	MetricAnalyticalThinking,
	MetricCommunicationStyle,
}

// Catalog is an immutable lookup table of metric definitions.
// It is safe for concurrent readers because nothing mutates it after construction.
type Catalog struct {
	defs  []schema.MetricDefinition
	index map[string]int
}

// NewCatalog builds a catalog from the given definitions, preserving their order.
func NewCatalog(defs ...schema.MetricDefinition) (*Catalog, error) {
	c := &Catalog{
		defs:  make([]schema.MetricDefinition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if strings.TrimSpace(d.ID) == "" {
			return nil, fmt.Errorf("metric definition %q has an empty id", d.Name)
		}
		if _, dup := c.index[d.ID]; dup {
			return nil, fmt.Errorf("duplicate metric id %q", d.ID)
		}
		if d.Threshold < schema.MinScore || d.Threshold > schema.MaxScore {
			return nil, fmt.Errorf("threshold %d for %q is outside [%d,%d]", d.Threshold, d.ID, schema.MinScore, schema.MaxScore)
		}
		c.index[d.ID] = len(c.defs)
		c.defs = append(c.defs, d)
	}
	return c, nil
}

// DefaultCatalog returns the built-in catalog of four metrics.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultDefinitions...)
	if err != nil {
		panic(err) // built-in table is known good
	}
	return c
}

// Lookup returns the definition for a metric id.
func (c *Catalog) Lookup(metricID string) (schema.MetricDefinition, bool) {
	i, ok := c.index[metricID]
	if !ok {
		return schema.MetricDefinition{}, false
	}
	return c.defs[i], true
}

// Definitions returns a copy of all definitions in catalog order.
func (c *Catalog) Definitions() []schema.MetricDefinition {
	out := make([]schema.MetricDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

// IDs returns the metric ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.defs))
	for i, d := range c.defs {
		ids[i] = d.ID
	}
	return ids
}

// Len returns the number of metrics in the catalog.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Entries returns the catalog keyed by metric id, as served by the HTTP facade.
func (c *Catalog) Entries() map[string]schema.CatalogEntry {
	out := make(map[string]schema.CatalogEntry, len(c.defs))
	for _, d := range c.defs {
		out[d.ID] = schema.CatalogEntry{
			Threshold:   d.Threshold,
			Preset:      d.Preset,
			Description: d.Description,
		}
	}
	return out
}
