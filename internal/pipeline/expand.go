package pipeline

import "sort"

// ExpandWindows expands each key index into the window [i-before, i+after],
// clamps every window to the log bounds, and merges overlaps via set union.
// The result is sorted ascending and duplicate-free.
//
// Key indices outside [0, logLen) are not rejected: their windows are
// computed and clamped like any other, which near the boundary may still
// contribute lines and far outside contributes nothing. Stray keys are an
// expected product of windowing arithmetic, not a caller bug.
func ExpandWindows(logLen int, keys []int, before, after int) []int {
	if logLen <= 0 {
		return nil
	}

	seen := make(map[int]struct{})
	for _, idx := range keys {
		start := idx - before
		if start < 0 {
			start = 0
		}
		end := idx + after + 1 // exclusive
		if end > logLen {
			end = logLen
		}
		for i := start; i < end; i++ {
			seen[i] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return nil
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
