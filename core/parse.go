package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/presetter/schema"
)

// RawScore is a metric/value pair whose value has not been validated yet.
type RawScore struct {
	MetricID string
	Value    any
}

// errNotObject is the message for request bodies that are not a JSON object.
const errNotObject = "Request body must be a JSON object of metric scores"

// DecodeScoreObject reads a JSON object of metric scores, keeping the key order.
// Values are returned undecoded so the caller can decide what to check first.
func DecodeScoreObject(r io.Reader) ([]RawScore, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, NewValidationError("", errNotObject)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, NewValidationError("", errNotObject)
	}

	var raw []RawScore
	seen := make(map[string]struct{})
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, NewValidationError("", fmt.Sprintf("Malformed JSON body: %v", err))
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, NewValidationError("", errNotObject)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, NewValidationError(key, fmt.Sprintf("Malformed value for %s: %v", key, err))
		}
		if _, dup := seen[key]; dup {
			return nil, NewValidationError(key, fmt.Sprintf("Duplicate metric: %s", key))
		}
		seen[key] = struct{}{}
		raw = append(raw, RawScore{MetricID: key, Value: value})
	}

	// Consume the closing brace and reject anything after it.
	if _, err := dec.Token(); err != nil {
		return nil, NewValidationError("", fmt.Sprintf("Malformed JSON body: %v", err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, NewValidationError("", "Request body must contain a single JSON object")
	}
	return raw, nil
}

// ScoresFromRaw converts raw pairs into a validated ScoreSet.
func ScoresFromRaw(raw []RawScore) (schema.ScoreSet, error) {
	scores := make(schema.ScoreSet, 0, len(raw))
	for _, r := range raw {
		v, err := ScoreFromValue(r.MetricID, r.Value)
		if err != nil {
			return nil, err
		}
		scores = append(scores, schema.Score{MetricID: r.MetricID, Value: v})
	}
	return scores, nil
}

// ScoreFromValue converts a decoded JSON value into a score.
func ScoreFromValue(metricID string, value any) (int, error) {
	var f float64
	switch v := value.(type) {
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, InvalidScoreError(metricID)
		}
		f = parsed
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return 0, InvalidScoreError(metricID)
	}
	if !ValidateScore(f) {
		return 0, InvalidScoreError(metricID)
	}
	return int(f), nil
}

// MissingRequired returns the first required metric absent from raw, if any.
func MissingRequired(raw []RawScore, required []string) (string, bool) {
	for _, id := range required {
		found := slices.ContainsFunc(raw, func(r RawScore) bool { return r.MetricID == id })
		if !found {
			return id, true
		}
	}
	return "", false
}

// MissingMetricError reports a required metric absent from the input.
func MissingMetricError(metricID string) *EvalError {
	return NewValidationError(metricID, fmt.Sprintf("Missing required metric: %s", metricID))
}

// ParseScorePairs parses "metric=score" arguments in the order given.
func ParseScorePairs(pairs []string) (schema.ScoreSet, error) {
	scores := make(schema.ScoreSet, 0, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !ok || key == "" {
			return nil, NewValidationError("", fmt.Sprintf("Invalid score pair %q: expected metric=score", pair))
		}
		if scores.Has(key) {
			return nil, NewValidationError(key, fmt.Sprintf("Duplicate metric: %s", key))
		}
		n, err := strconv.Atoi(value)
		if err != nil || !ValidateScore(float64(n)) {
			return nil, InvalidScoreError(key)
		}
		scores = append(scores, schema.Score{MetricID: key, Value: n})
	}
	return scores, nil
}

// ScoreSetFromMap converts an unordered map into a ScoreSet. Catalog metrics come
// first in catalog order, followed by any other keys in lexical order.
func ScoreSetFromMap(values map[string]any, catalog *Catalog) (schema.ScoreSet, error) {
	var raw []RawScore
	for _, id := range catalog.IDs() {
		if v, ok := values[id]; ok {
			raw = append(raw, RawScore{MetricID: id, Value: v})
		}
	}
	var extra []string
	for k := range values {
		if _, ok := catalog.Lookup(k); !ok {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	for _, k := range extra {
		raw = append(raw, RawScore{MetricID: k, Value: values[k]})
	}
	return ScoresFromRaw(raw)
}
