package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logsage/internal/config"
)

func testContextConfig() config.ContextConfig {
	return config.ContextConfig{
		Gamma:         500,
		LowThreshold:  1,
		HighThreshold: 3,
	}
}

func TestAdaptiveThreshold(t *testing.T) {
	tests := []struct {
		name    string
		weights []int
		gamma   int
		want    int
	}{
		{
			name:    "max weight 1 means weak filtering",
			weights: []int{0, 1, 1, 0, 1},
			gamma:   0,
			want:    1,
		},
		{
			name:    "few nonzero weights means sparse recall",
			weights: []int{0, 10, 0, 3, 0},
			gamma:   500,
			want:    1,
		},
		{
			name:    "stratified and plentiful goes selective",
			weights: []int{4, 10, 3, 3, 4},
			gamma:   2,
			want:    3,
		},
		{
			name:    "nonzero count exactly gamma still low",
			weights: []int{3, 10, 0, 0},
			gamma:   2,
			want:    1,
		},
		{
			name:    "all zero weights",
			weights: []int{0, 0, 0},
			gamma:   0,
			want:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testContextConfig()
			cfg.Gamma = tt.gamma
			assert.Equal(t, tt.want, AdaptiveThreshold(tt.weights, cfg))
		})
	}
}

func TestExpandContext(t *testing.T) {
	expand := config.ExpandConfig{Before: 1, After: 2}

	t.Run("expands around lines meeting threshold", func(t *testing.T) {
		lines := make([]string, 12)
		weights := make([]int, 12)
		weights[5] = 10
		weights[6] = 4

		cfg := testContextConfig()
		cfg.Gamma = 1 // nonzero=2 > gamma, max>1: threshold 3

		got, err := ExpandContext(lines, weights, expand, cfg)
		require.NoError(t, err)
		assert.Equal(t, []int{4, 5, 6, 7, 8}, got)
	})

	t.Run("can shrink the pool below earlier candidacy", func(t *testing.T) {
		lines := make([]string, 30)
		weights := make([]int, 30)
		// A stratified distribution: lots of weight-2 lines that were
		// candidates, one strong line.
		for i := 0; i < 10; i++ {
			weights[i] = 2
		}
		weights[20] = 10

		cfg := testContextConfig()
		cfg.Gamma = 1

		got, err := ExpandContext(lines, weights, expand, cfg)
		require.NoError(t, err)
		// Threshold 3: the weight-2 candidates contribute nothing.
		assert.Equal(t, []int{19, 20, 21, 22}, got)
	})

	t.Run("weak filtering keeps everything flagged", func(t *testing.T) {
		lines := make([]string, 8)
		weights := []int{0, 1, 0, 0, 0, 0, 1, 0}

		got, err := ExpandContext(lines, weights, config.ExpandConfig{Before: 0, After: 0}, testContextConfig())
		require.NoError(t, err)
		assert.Equal(t, []int{1, 6}, got)
	})

	t.Run("length mismatch is a contract violation", func(t *testing.T) {
		_, err := ExpandContext(make([]string, 3), []int{1}, expand, testContextConfig())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})

	t.Run("empty log", func(t *testing.T) {
		got, err := ExpandContext(nil, nil, expand, testContextConfig())
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
