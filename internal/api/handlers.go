package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/huangsam/presetter/core"
	"github.com/huangsam/presetter/internal/contract"
	"github.com/huangsam/presetter/schema"
)

// maxBodyBytes caps the size of a survey request body.
const maxBodyBytes = 1 << 20

// surveyResponse is the success body of the process-survey route.
type surveyResponse struct {
	Success bool                  `json:"success"`
	Presets []schema.PresetResult `json:"presets"`
	Metrics orderedScores         `json:"metrics"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// orderedScores marshals a ScoreSet as a JSON object in the caller's key order.
type orderedScores schema.ScoreSet

// MarshalJSON implements json.Marshaler.
func (o orderedScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sc := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sc.MetricID)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(sc.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Server) handleProcessSurvey(w http.ResponseWriter, r *http.Request) {
	raw, err := core.DecodeScoreObject(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeEvalError(w, r, err)
		return
	}
	if id, missing := core.MissingRequired(raw, s.required); missing {
		s.writeEvalError(w, r, core.MissingMetricError(id))
		return
	}
	scores, err := core.ScoresFromRaw(raw)
	if err != nil {
		s.writeEvalError(w, r, err)
		return
	}

	start := time.Now()
	results, err := core.NewEvaluator(s.catalog).Evaluate(scores)
	if err != nil {
		s.writeEvalError(w, r, err)
		return
	}

	core.RecordSession(s.mgr, schema.APISource, start, scores, results)
	writeJSON(w, http.StatusOK, surveyResponse{
		Success: true,
		Presets: results,
		Metrics: orderedScores(scores),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Entries())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// writeEvalError maps an evaluation error to its HTTP status. Server-side
// failures never expose their detail to the client.
func (s *Server) writeEvalError(w http.ResponseWriter, r *http.Request, err error) {
	var evalErr *core.EvalError
	switch {
	case core.IsValidationError(err) && errors.As(err, &evalErr):
		writeError(w, http.StatusBadRequest, evalErr.Msg)
	case core.IsUnknownMetric(err) && errors.As(err, &evalErr):
		contract.LogWarn("Catalog mismatch on "+r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, evalErr.Msg)
	default:
		contract.LogWarn("Request failed on "+r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, internalErrorMsg)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		contract.LogWarn("Failed to encode response", err)
	}
}
