package pipeline

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"logsage/internal/config"
)

// Pipeline wires the seven reduction stages together. It holds only
// immutable state (config, compiled patterns, logger), so a single
// Pipeline is safe for concurrent Run calls.
type Pipeline struct {
	cfg      *config.Config
	enhancer *Enhancer
	estimate TokenEstimator
	logger   *zap.Logger
}

// Stats summarizes a single pipeline run.
type Stats struct {
	TotalLines     int
	Candidates     int
	Expanded       int
	Threshold      int
	MaxWeight      int
	NonzeroWeights int
	FinalPool      int
	BlocksRanked   int
	BlocksSelected int
	TokensUsed     int
	TokenLimit     int
	Elapsed        time.Duration
}

// Result is the output of one pipeline run.
type Result struct {
	RunID  string
	Lines  []string      // selected blocks flattened, ranked order
	Blocks []RankedBlock // selected blocks in ranked order
	Stats  Stats
}

// New builds a Pipeline from configuration. Pattern compilation failures
// surface here, before any log is processed.
func New(cfg *config.Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	enhancer, err := NewEnhancer(cfg.Weights)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:      cfg,
		enhancer: enhancer,
		estimate: EstimateTokens,
		logger:   logger,
	}, nil
}

// SetTokenEstimator replaces the default word-count estimator. Must be
// called before Run; not safe to call concurrently with Run.
func (p *Pipeline) SetTokenEstimator(estimate TokenEstimator) {
	if estimate != nil {
		p.estimate = estimate
	}
}

// Run reduces a complete, ordered log to its selected blocks. The input
// slice is never mutated. The only error condition is a contract violation
// between stages, which indicates a bug in the pipeline itself.
func (p *Pipeline) Run(lines []string) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := p.logger.With(zap.String("run_id", runID))

	// Stage 1: candidate filter (keywords + tail window).
	candidates := FilterLines(lines, p.cfg.Filter)
	log.Debug("filtered candidates",
		zap.Int("total_lines", len(lines)),
		zap.Int("candidates", len(candidates)))

	// Stage 2: contextual window expansion around candidate hits.
	expanded := ExpandWindows(len(lines), Indices(candidates), p.cfg.Expand.Before, p.cfg.Expand.After)

	// Stage 3: confidence-based weight initialization.
	weights := InitWeights(len(lines), expanded, p.cfg.Weights)

	// Stage 4: pattern-based weight enhancement.
	weights, err := p.enhancer.Apply(lines, weights)
	if err != nil {
		return nil, err
	}

	// Stage 5: adaptive context re-expansion.
	threshold := AdaptiveThreshold(weights, p.cfg.Context)
	pool, err := ExpandContext(lines, weights, p.cfg.Expand, p.cfg.Context)
	if err != nil {
		return nil, err
	}

	// Stage 6: density-based block ranking.
	ranked := RankBlocks(weights, pool)

	// Stage 7: greedy selection under the token budget, over trimmed content.
	realized := make([]RankedBlock, len(ranked))
	for i, b := range ranked {
		blockLines := make([]string, 0, b.Len())
		for j := b.Start; j <= b.End; j++ {
			blockLines = append(blockLines, strings.TrimSpace(lines[j]))
		}
		realized[i] = RankedBlock{Block: b, Lines: blockLines}
	}
	selected, tokens := SelectWithinBudget(realized, p.cfg.Budget.TokenLimit, p.estimate)

	var final []string
	for _, b := range selected {
		final = append(final, b.Lines...)
	}

	maxWeight, nonzero := 0, 0
	for _, w := range weights {
		if w > maxWeight {
			maxWeight = w
		}
		if w >= 1 {
			nonzero++
		}
	}

	result := &Result{
		RunID:  runID,
		Lines:  final,
		Blocks: selected,
		Stats: Stats{
			TotalLines:     len(lines),
			Candidates:     len(candidates),
			Expanded:       len(expanded),
			Threshold:      threshold,
			MaxWeight:      maxWeight,
			NonzeroWeights: nonzero,
			FinalPool:      len(pool),
			BlocksRanked:   len(ranked),
			BlocksSelected: len(selected),
			TokensUsed:     tokens,
			TokenLimit:     p.cfg.Budget.TokenLimit,
			Elapsed:        time.Since(start),
		},
	}

	log.Info("pipeline run complete",
		zap.Int("total_lines", result.Stats.TotalLines),
		zap.Int("candidates", result.Stats.Candidates),
		zap.Int("threshold", result.Stats.Threshold),
		zap.Int("blocks_ranked", result.Stats.BlocksRanked),
		zap.Int("blocks_selected", result.Stats.BlocksSelected),
		zap.Int("tokens_used", result.Stats.TokensUsed),
		zap.Duration("elapsed", result.Stats.Elapsed))

	return result, nil
}
