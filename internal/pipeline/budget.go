package pipeline

import "strings"

// TokenEstimator estimates the token cost of a block's lines. The selection
// algorithm is independent of the estimator, so a real subword tokenizer
// can be plugged in without touching the selection policy.
type TokenEstimator func(lines []string) int

// EstimateTokens is the default estimator: the total word count across all
// lines. A cheap proxy, deliberately not a real tokenizer.
func EstimateTokens(lines []string) int {
	total := 0
	for _, line := range lines {
		total += len(strings.Fields(line))
	}
	return total
}

// RankedBlock is a block realized as its line content, in ranked order.
type RankedBlock struct {
	Block
	Lines []string
}

// SelectWithinBudget greedily walks the ranked blocks and accepts each one
// whose cost still fits under the token limit. The first block that does
// not fit stops the scan entirely: lower-ranked blocks are never considered
// even if they alone would fit. Blocks are atomic, never split. Returns the
// accepted blocks in ranked order and the total estimated tokens consumed.
func SelectWithinBudget(blocks []RankedBlock, tokenLimit int, estimate TokenEstimator) ([]RankedBlock, int) {
	if estimate == nil {
		estimate = EstimateTokens
	}

	var selected []RankedBlock
	total := 0

	for _, block := range blocks {
		cost := estimate(block.Lines)
		if total+cost > tokenLimit {
			break
		}
		selected = append(selected, block)
		total += cost
	}

	return selected, total
}
