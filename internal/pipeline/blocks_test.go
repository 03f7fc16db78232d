package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBlocks(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
		want    []Block
	}{
		{
			name:    "two runs with a gap",
			indices: []int{3, 4, 5, 10, 11},
			want:    []Block{{3, 5}, {10, 11}},
		},
		{
			name:    "single index",
			indices: []int{7},
			want:    []Block{{7, 7}},
		},
		{
			name:    "unsorted input with duplicates",
			indices: []int{11, 3, 10, 4, 3, 5, 11},
			want:    []Block{{3, 5}, {10, 11}},
		},
		{
			name:    "all isolated",
			indices: []int{1, 3, 5},
			want:    []Block{{1, 1}, {3, 3}, {5, 5}},
		},
		{
			name:    "empty input",
			indices: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GroupBlocks(tt.indices)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("GroupBlocks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupBlocks_Maximal(t *testing.T) {
	got := GroupBlocks([]int{0, 1, 2, 4, 5, 9})
	require.Len(t, got, 3)

	// No two reported blocks are adjacent: a gap of at least one index
	// separates them.
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i].Start, got[i-1].End+1)
	}
}

func TestBlockDensity(t *testing.T) {
	weights := []int{1, 5, 3, 2, 0, 8, 4, 1}

	t.Run("multi-line block", func(t *testing.T) {
		assert.InDelta(t, 10.0/3.0, Block{1, 3}.Density(weights), 1e-9)
	})

	t.Run("single index block equals own weight", func(t *testing.T) {
		assert.Equal(t, 8.0, Block{5, 5}.Density(weights))
	})

	t.Run("all-zero run has density zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Block{4, 4}.Density(weights))
	})
}

func TestRankBlocks(t *testing.T) {
	t.Run("ranks by density descending", func(t *testing.T) {
		weights := []int{1, 5, 3, 2, 0, 8, 4, 1}
		indices := []int{1, 2, 3, 5, 6, 7}

		got := RankBlocks(weights, indices)

		// (1,3) density 10/3 ~ 3.33, (5,7) density 13/3 ~ 4.33
		require.Len(t, got, 2)
		assert.Equal(t, Block{5, 7}, got[0])
		assert.Equal(t, Block{1, 3}, got[1])
	})

	t.Run("equal density keeps log order", func(t *testing.T) {
		weights := []int{2, 2, 0, 2, 2, 0, 2, 2}
		indices := []int{0, 1, 3, 4, 6, 7}

		got := RankBlocks(weights, indices)

		// All three blocks have density 2; the stable sort must keep
		// the earlier-in-log block first. This decides which block is
		// accepted first when the budget truncates downstream.
		require.Len(t, got, 3)
		assert.Equal(t, []Block{{0, 1}, {3, 4}, {6, 7}}, got)
	})

	t.Run("zero density blocks are ranked not skipped", func(t *testing.T) {
		weights := []int{0, 0, 0, 5}
		got := RankBlocks(weights, []int{0, 1, 3})

		require.Len(t, got, 2)
		assert.Equal(t, Block{3, 3}, got[0])
		assert.Equal(t, Block{0, 1}, got[1])
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, RankBlocks([]int{1, 2, 3}, nil))
	})
}
