package pipeline

import "logsage/internal/config"

// InitWeights assigns every line an initial integer weight based on the
// global candidate density.
//
// The pool is trusted strongly ("confident") when both the candidate
// density |candidates|/|log| and the absolute pool size sit at or below
// the configured limits; the comparisons are inclusive, so exactly hitting
// either limit still counts as confident. Confident pools give every
// candidate the confident weight, anything else the default weight.
// Indices outside the log are silently skipped. The returned vector always
// has exactly logLen entries.
func InitWeights(logLen int, candidates []int, cfg config.WeightsConfig) []int {
	weights := make([]int, logLen)
	if logLen == 0 {
		return weights
	}

	density := float64(len(candidates)) / float64(logLen)
	confident := density <= cfg.Alpha && len(candidates) <= cfg.Beta

	w := cfg.DefaultWeight
	if confident {
		w = cfg.ConfidentWeight
	}

	for _, idx := range candidates {
		if idx < 0 || idx >= logLen {
			continue
		}
		weights[idx] = w
	}

	return weights
}
