package pipeline

import "sort"

// Block is a closed contiguous index range [Start, End] of candidate lines.
// Blocks produced by GroupBlocks are maximal: no two are adjacent and none
// can be merged without breaking contiguity.
type Block struct {
	Start int
	End   int
}

// Len returns the number of lines the block covers.
func (b Block) Len() int {
	return b.End - b.Start + 1
}

// Density returns the block's weight density: the sum of weights over the
// inclusive range divided by the range length. A single-index block has
// density equal to that line's own weight; an all-zero run has density 0.
func (b Block) Density(weights []int) float64 {
	total := 0
	for i := b.Start; i <= b.End; i++ {
		total += weights[i]
	}
	return float64(total) / float64(b.Len())
}

// GroupBlocks sorts and deduplicates the indices, then groups them into
// maximal contiguous runs. A run breaks whenever the next sorted index is
// not exactly one greater than the previous. Empty input yields nil.
func GroupBlocks(indices []int) []Block {
	if len(indices) == 0 {
		return nil
	}

	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Ints(sorted)

	var blocks []Block
	start, prev := sorted[0], sorted[0]

	for _, idx := range sorted[1:] {
		if idx == prev {
			continue
		}
		if idx == prev+1 {
			prev = idx
			continue
		}
		blocks = append(blocks, Block{Start: start, End: prev})
		start, prev = idx, idx
	}
	blocks = append(blocks, Block{Start: start, End: prev})

	return blocks
}

// RankBlocks groups the candidate indices into maximal contiguous blocks
// and ranks them by weight density, highest first. The sort is stable:
// equal-density blocks keep their grouping order, so the earlier-in-log
// block wins the tie. That ordering decides which block survives when the
// budget selector truncates downstream.
func RankBlocks(weights []int, indices []int) []Block {
	blocks := GroupBlocks(indices)
	if len(blocks) == 0 {
		return blocks
	}

	densities := make([]float64, len(blocks))
	for i, b := range blocks {
		densities[i] = b.Density(weights)
	}

	order := make([]int, len(blocks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return densities[order[a]] > densities[order[b]]
	})

	ranked := make([]Block, len(blocks))
	for i, j := range order {
		ranked[i] = blocks[j]
	}
	return ranked
}
