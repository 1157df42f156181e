// Package query evaluates CIGAR strings into coordinate results.
package query

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/vibe-cigar/internal/cigar"
)

// ResultCache defines the interface for storing previously evaluated results.
type ResultCache interface {
	LookupResult(cigarText string, start int64, p cigar.Policy) (*Result, error)
	WriteResults(results []Result) error
}

// Evaluator derives coordinate results for CIGAR strings under one policy.
type Evaluator struct {
	policy cigar.Policy
	cache  ResultCache
	logger *zap.Logger
}

// NewEvaluator creates a new evaluator using the given policy.
func NewEvaluator(p cigar.Policy) *Evaluator {
	return &Evaluator{
		policy: p,
		logger: zap.NewNop(),
	}
}

// SetCache configures a cache consulted before, and filled after, evaluation.
func (e *Evaluator) SetCache(c ResultCache) {
	e.cache = c
}

// SetLogger sets the logger for debug and warning messages.
func (e *Evaluator) SetLogger(l *zap.Logger) {
	e.logger = l
}

// Policy returns the evaluator's policy.
func (e *Evaluator) Policy() cigar.Policy {
	return e.policy
}

// Evaluate parses text and derives all coordinate facts for an alignment
// starting at start. Malformed text is an error even when a cache is set;
// the cache is keyed on the canonical CIGAR text.
func (e *Evaluator) Evaluate(text string, start int64) (*Result, error) {
	c, err := cigar.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	key := c.String()

	if e.cache != nil {
		cached, err := e.cache.LookupResult(key, start, e.policy)
		if err != nil {
			e.logger.Warn("result cache lookup failed",
				zap.String("cigar", key),
				zap.Int64("start", start),
				zap.Error(err))
		} else if cached != nil {
			e.logger.Debug("result cache hit",
				zap.String("cigar", key),
				zap.Int64("start", start))
			return cached, nil
		}
	}

	r := e.EvaluateCigar(c, start)

	if e.cache != nil {
		if err := e.cache.WriteResults([]Result{*r}); err != nil {
			e.logger.Warn("result cache write failed",
				zap.String("cigar", r.Cigar),
				zap.Int64("start", start),
				zap.Error(err))
		}
	}

	return r, nil
}

// EvaluateCigar derives all coordinate facts for an already parsed Cigar.
// It never consults the cache.
func (e *Evaluator) EvaluateCigar(c cigar.Cigar, start int64) *Result {
	r := &Result{
		Cigar:       c.String(),
		Start:       start,
		Policy:      e.policy,
		End:         e.policy.EndOfAlignment(c, start),
		RefLength:   e.policy.ReferenceLength(c),
		QueryLength: c.QueryLength(),
		Junctions:   e.policy.Junctions(c, start),
		Runs:        e.policy.ReferenceRuns(c, start),
	}

	e.logger.Debug("evaluated cigar",
		zap.String("cigar", r.Cigar),
		zap.Int64("start", start),
		zap.Int("ops", c.Len()),
		zap.Int("junctions", len(r.Junctions)/2),
		zap.Int("runs", len(r.Runs)))

	return r
}
