package core

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/presetter/schema"
)

// MaxAttempts is how many tries a user gets per metric before it defaults to zero.
const MaxAttempts = 3

// DefaultScore is recorded when a metric runs out of attempts.
const DefaultScore = 0

// MaxLineLength is the longest answer line accepted. Longer lines are
// discarded and count as a rejected attempt.
const MaxLineLength = 64 * 1024

// ErrCollectionCancelled is returned when the user quits the survey.
var ErrCollectionCancelled = errors.New("survey cancelled by user")

// cancelWords abort the whole collection when entered at any prompt.
var cancelWords = map[string]struct{}{
	"q":    {},
	"quit": {},
	"exit": {},
}

// outcome is the terminal or non-terminal result of one collection step.
type outcome int

const (
	pending   outcome = iota // waiting for input
	retry                    // input rejected, attempts remain
	accepted                 // valid score recorded
	defaulted                // attempts exhausted, DefaultScore recorded
	cancelled                // user asked to quit
)

// metricState tracks the collection of a single metric.
type metricState struct {
	remaining int
	value     int
	outcome   outcome
	reason    string // why the last input was rejected
}

// done reports whether the state is terminal for this metric.
func (s metricState) done() bool {
	return s.outcome == accepted || s.outcome == defaulted || s.outcome == cancelled
}

// step applies one line of input to the state. eof marks exhausted input,
// which is treated the same as an explicit cancellation.
func step(s metricState, line string, eof bool) metricState {
	if eof {
		s.outcome = cancelled
		return s
	}
	input := strings.TrimSpace(line)
	if _, ok := cancelWords[strings.ToLower(input)]; ok {
		s.outcome = cancelled
		return s
	}

	n, err := strconv.Atoi(input)
	switch {
	case err != nil:
		return reject(s, fmt.Sprintf("%q is not a whole number", input))
	case !ValidateScore(float64(n)):
		return reject(s, fmt.Sprintf("score must be between %d and %d", schema.MinScore, schema.MaxScore))
	}
	s.value = n
	s.outcome = accepted
	return s
}

// reject consumes one attempt, defaulting the metric when none remain.
func reject(s metricState, reason string) metricState {
	s.reason = reason
	s.remaining--
	if s.remaining <= 0 {
		s.value = DefaultScore
		s.outcome = defaulted
		return s
	}
	s.outcome = retry
	return s
}

// Collector gathers one score per catalog metric from an interactive user.
type Collector struct {
	catalog *Catalog
	reader  *bufio.Reader
	out     io.Writer
}

// NewCollector creates a collector reading answers from in and writing prompts to out.
func NewCollector(catalog *Catalog, in io.Reader, out io.Writer) *Collector {
	return &Collector{
		catalog: catalog,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Collect prompts for every metric in catalog order. It returns
// ErrCollectionCancelled without any scores if the user quits.
func (c *Collector) Collect(ctx context.Context) (schema.ScoreSet, error) {
	c.printf("Please input your scores for each metric below (enter 'q' to quit):\n")

	scores := make(schema.ScoreSet, 0, c.catalog.Len())
	for _, def := range c.catalog.Definitions() {
		value, err := c.collectMetric(ctx, def)
		if err != nil {
			return nil, err
		}
		scores = append(scores, schema.Score{MetricID: def.ID, Value: value})
	}
	return scores, nil
}

// collectMetric drives the state machine for one metric until it reaches a terminal state.
func (c *Collector) collectMetric(ctx context.Context, def schema.MetricDefinition) (int, error) {
	state := metricState{remaining: MaxAttempts, outcome: pending}
	for !state.done() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		c.prompt(def, state.remaining)
		line, tooLong, eof := c.readLine()
		if tooLong {
			state = reject(state, fmt.Sprintf("input is longer than %d bytes", MaxLineLength))
		} else {
			state = step(state, line, eof)
		}

		switch state.outcome {
		case retry:
			c.printf("Invalid input: %s. %d attempt(s) remaining.\n", state.reason, state.remaining)
		case accepted:
			c.printf("Recorded score for %s: %d\n", def.Name, state.value)
		case defaulted:
			c.printf("Invalid input: %s. No attempts remaining, recording %d for %s.\n", state.reason, DefaultScore, def.Name)
		case cancelled:
			return 0, ErrCollectionCancelled
		}
	}
	return state.value, nil
}

// prompt writes the question for a metric, showing remaining attempts on retries.
func (c *Collector) prompt(def schema.MetricDefinition, remaining int) {
	if remaining == MaxAttempts {
		c.printf("Enter your score for %s [%s] (%d-%d): ", def.Name, def.ID, schema.MinScore, schema.MaxScore)
		return
	}
	c.printf("Enter your score for %s [%s] (%d-%d, %d attempt(s) left): ", def.Name, def.ID, schema.MinScore, schema.MaxScore, remaining)
}

// readLine returns the next input line, or eof when input is exhausted.
// A line over MaxLineLength is drained and reported as tooLong.
func (c *Collector) readLine() (line string, tooLong, eof bool) {
	var buf []byte
	for {
		chunk, isPrefix, err := c.reader.ReadLine()
		if err != nil {
			if len(buf) > 0 || tooLong {
				return string(buf), tooLong, false
			}
			return "", false, true
		}
		if !tooLong {
			if len(buf)+len(chunk) > MaxLineLength {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, false
		}
	}
}

func (c *Collector) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
