// Package pipeline implements the multi-stage log reduction pipeline:
// candidate filtering, window expansion, weight initialization, pattern
// enhancement, adaptive context expansion, density ranking, and greedy
// token-budget selection.
//
// Every stage is a pure transform over immutable inputs. Stages never
// mutate the line slice or a weight vector they are handed; stages that
// rewrite weights return a fresh vector. The only errors raised inside
// the package are contract violations (a weight vector whose length does
// not match the log), which indicate broken wiring in the caller.
package pipeline

import (
	"sort"
	"strings"

	"logsage/internal/config"
)

// Candidate is a line flagged as potentially relevant by the filter stage,
// identified by its 0-based index in the original log.
type Candidate struct {
	Index int
	Text  string // trimmed line content
}

// FilterLines selects the initial candidate pool from the full log.
//
// A line qualifies if it contains any configured keyword (case-insensitive
// substring match) or falls within the trailing tail window. The result is
// sorted ascending by index and contains each line at most once. An empty
// log yields an empty result.
func FilterLines(lines []string, cfg config.FilterConfig) []Candidate {
	tailStart := len(lines) - cfg.TailLines
	if tailStart < 0 {
		tailStart = 0
	}

	keywords := make([]string, len(cfg.Keywords))
	for i, k := range cfg.Keywords {
		keywords[i] = strings.ToLower(k)
	}

	var candidates []Candidate
	for i, line := range lines {
		if i >= tailStart || matchKeyword(line, keywords) {
			candidates = append(candidates, Candidate{Index: i, Text: strings.TrimSpace(line)})
		}
	}

	// The scan above emits in index order already; keep the sort as a
	// guarantee rather than an assumption.
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].Index < candidates[b].Index })

	return candidates
}

// Indices extracts the index column from a candidate list.
func Indices(candidates []Candidate) []int {
	out := make([]int, len(candidates))
	for i, c := range candidates {
		out[i] = c.Index
	}
	return out
}

func matchKeyword(line string, lowered []string) bool {
	l := strings.ToLower(line)
	for _, k := range lowered {
		if strings.Contains(l, k) {
			return true
		}
	}
	return false
}
