package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"logsage/internal/config"
)

// ErrLengthMismatch is returned when a weight vector does not match the log
// it is supposed to describe. It always indicates a caller bug, never bad
// log content.
var ErrLengthMismatch = errors.New("weight vector length does not match log length")

// Enhancer rewrites weights using lexical pattern rules. Patterns are
// compiled once at construction so repeated runs share the same automata.
type Enhancer struct {
	failures []*regexp.Regexp
	section  *regexp.Regexp

	failureWeight int
	sectionBonus  int
	weakBoost     bool
	weakBonus     int
}

// NewEnhancer compiles the configured patterns into an Enhancer.
func NewEnhancer(cfg config.WeightsConfig) (*Enhancer, error) {
	failures := make([]*regexp.Regexp, 0, len(cfg.FailurePatterns))
	for _, p := range cfg.FailurePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid failure pattern %q: %w", p, err)
		}
		failures = append(failures, re)
	}

	section, err := regexp.Compile(cfg.SectionPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid section pattern %q: %w", cfg.SectionPattern, err)
	}

	return &Enhancer{
		failures:      failures,
		section:       section,
		failureWeight: cfg.FailureWeight,
		sectionBonus:  cfg.SectionBonus,
		weakBoost:     cfg.WeakBoost,
		weakBonus:     cfg.WeakBonus,
	}, nil
}

// Apply returns a fresh weight vector with pattern-based adjustments; the
// input vector is never mutated. Rules run per trimmed line in strict
// priority order and the first match wins:
//
//  1. hard failure pattern: weight overridden to the failure weight
//  2. section marker: section bonus added, even on a zero weight
//  3. nonzero weight with weak boost enabled: weak bonus added
//  4. otherwise: unchanged
//
// A failure line that also looks like a section header resolves to the
// failure weight; tiers never stack.
func (e *Enhancer) Apply(lines []string, weights []int) ([]int, error) {
	if len(lines) != len(weights) {
		return nil, fmt.Errorf("%w: %d lines, %d weights", ErrLengthMismatch, len(lines), len(weights))
	}

	out := make([]int, len(weights))
	copy(out, weights)

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case e.matchFailure(trimmed):
			out[i] = e.failureWeight
		case e.section.MatchString(trimmed):
			out[i] += e.sectionBonus
		case out[i] > 0 && e.weakBoost:
			out[i] += e.weakBonus
		}
	}

	return out, nil
}

func (e *Enhancer) matchFailure(line string) bool {
	for _, re := range e.failures {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
