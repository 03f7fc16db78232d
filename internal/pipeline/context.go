package pipeline

import (
	"fmt"

	"logsage/internal/config"
)

// AdaptiveThreshold derives the context-expansion threshold from the global
// weight distribution.
//
// When the enhancement stages failed to stratify anything (every weight is
// capped at 1) or the candidate pool is small (at most gamma nonzero
// weights), filtering was weak and the low threshold applies: expand
// broadly. Otherwise the signal is already concentrated and only lines at
// or above the high threshold deserve further context.
func AdaptiveThreshold(weights []int, cfg config.ContextConfig) int {
	maxWeight := 0
	nonzero := 0
	for _, w := range weights {
		if w > maxWeight {
			maxWeight = w
		}
		if w >= 1 {
			nonzero++
		}
	}

	if maxWeight == 1 || nonzero <= cfg.Gamma {
		return cfg.LowThreshold
	}
	return cfg.HighThreshold
}

// ExpandContext re-expands windows around every line whose weight meets the
// adaptive threshold and returns the final candidate index set, sorted and
// duplicate-free. Lines below the threshold contribute nothing even if an
// earlier stage flagged them, so this stage can shrink the effective pool.
//
// The weight vector must match the log length; a mismatch is a contract
// violation.
func ExpandContext(lines []string, weights []int, expand config.ExpandConfig, cfg config.ContextConfig) ([]int, error) {
	if len(lines) != len(weights) {
		return nil, fmt.Errorf("%w: %d lines, %d weights", ErrLengthMismatch, len(lines), len(weights))
	}

	threshold := AdaptiveThreshold(weights, cfg)

	var keys []int
	for i, w := range weights {
		if w >= threshold {
			keys = append(keys, i)
		}
	}

	return ExpandWindows(len(lines), keys, expand.Before, expand.After), nil
}
