package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all logsage configuration. It is a plain value object: the
// pipeline reads it but never mutates it, so a single Config can be shared
// across concurrent runs.
type Config struct {
	// Candidate filtering
	Filter FilterConfig `yaml:"filter"`

	// Contextual window expansion (shared by the initial expansion and the
	// adaptive re-expansion)
	Expand ExpandConfig `yaml:"expand"`

	// Weight initialization and pattern enhancement
	Weights WeightsConfig `yaml:"weights"`

	// Adaptive context expansion thresholds
	Context ContextConfig `yaml:"context"`

	// Token budget for final block selection
	Budget BudgetConfig `yaml:"budget"`

	// LLM analysis (analyze command only; the pipeline never calls out)
	LLM LLMConfig `yaml:"llm"`

	// Watch mode
	Watch WatchConfig `yaml:"watch"`
}

// FilterConfig configures the candidate filter stage.
type FilterConfig struct {
	// Keywords matched as case-insensitive substrings
	Keywords []string `yaml:"keywords"`

	// TailLines is the number of trailing lines always kept as candidates
	TailLines int `yaml:"tail_lines"`
}

// ExpandConfig configures window expansion around key lines.
type ExpandConfig struct {
	Before int `yaml:"before"` // lines of leading context
	After  int `yaml:"after"`  // lines of trailing context
}

// WeightsConfig configures weight initialization and enhancement.
type WeightsConfig struct {
	// Alpha is the maximum candidate-to-log ratio for high-confidence weights
	Alpha float64 `yaml:"alpha"`

	// Beta is the maximum absolute candidate pool size for high-confidence weights
	Beta int `yaml:"beta"`

	// ConfidentWeight is assigned to candidates when the pool is sparse enough
	ConfidentWeight int `yaml:"confident_weight"`

	// DefaultWeight is assigned to candidates otherwise
	DefaultWeight int `yaml:"default_weight"`

	// FailurePatterns are regexes marking hard failure lines
	FailurePatterns []string `yaml:"failure_patterns"`

	// SectionPattern is the regex marking section header lines
	SectionPattern string `yaml:"section_pattern"`

	// FailureWeight overrides the weight of any hard failure line
	FailureWeight int `yaml:"failure_weight"`

	// SectionBonus is added to section header lines
	SectionBonus int `yaml:"section_bonus"`

	// WeakBoost enables the uniform bonus for already-weighted lines
	WeakBoost bool `yaml:"weak_boost"`

	// WeakBonus is the uniform bonus amount
	WeakBonus int `yaml:"weak_bonus"`
}

// ContextConfig configures the adaptive context expansion thresholds.
type ContextConfig struct {
	// Gamma is the nonzero-weight count below which filtering is considered sparse
	Gamma int `yaml:"gamma"`

	// LowThreshold is used when filtering was weak (broad expansion)
	LowThreshold int `yaml:"low_threshold"`

	// HighThreshold is used when filtering concentrated signal (selective expansion)
	HighThreshold int `yaml:"high_threshold"`
}

// BudgetConfig configures greedy block selection.
type BudgetConfig struct {
	// TokenLimit is the maximum estimated token total across selected blocks
	TokenLimit int `yaml:"token_limit"`
}

// LLMConfig configures the Gemini client used by the analyze command.
type LLMConfig struct {
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxRetries  int     `yaml:"max_retries"`
	RetryDelay  string  `yaml:"retry_delay"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DefaultConfig returns the canonical configuration.
func DefaultConfig() *Config {
	return &Config{
		Filter: FilterConfig{
			Keywords: []string{
				"fatal", "fail", "panic", "error", "exit", "kill",
				"no such file", "err:", "err!", "failures:", "err ",
				"missing", "exception", "cannot",
			},
			TailLines: 200,
		},

		Expand: ExpandConfig{
			Before: 4,
			After:  6,
		},

		Weights: WeightsConfig{
			Alpha:           0.7,
			Beta:            500,
			ConfidentWeight: 3,
			DefaultWeight:   1,
			FailurePatterns: []string{`--- FAIL:`, `Failures?:`},
			SectionPattern:  `^\s*#`,
			FailureWeight:   10,
			SectionBonus:    2,
			WeakBoost:       true,
			WeakBonus:       1,
		},

		Context: ContextConfig{
			Gamma:         500,
			LowThreshold:  1,
			HighThreshold: 3,
		},

		Budget: BudgetConfig{
			TokenLimit: 22000,
		},

		LLM: LLMConfig{
			Model:       "gemini-2.5-flash",
			Temperature: 0.2,
			MaxRetries:  3,
			RetryDelay:  "1s",
		},

		Watch: WatchConfig{
			Debounce: "500ms",
		},
	}
}

// Load loads configuration from a YAML file, overlaying it onto defaults.
// A missing file is not an error: defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if limit := os.Getenv("LOGSAGE_TOKEN_LIMIT"); limit != "" {
		var n int
		if _, err := fmt.Sscanf(limit, "%d", &n); err == nil && n > 0 {
			c.Budget.TokenLimit = n
		}
	}
}

// GetRetryDelay returns the LLM retry delay as a duration.
func (c *Config) GetRetryDelay() time.Duration {
	d, err := time.ParseDuration(c.LLM.RetryDelay)
	if err != nil {
		return time.Second
	}
	return d
}

// GetWatchDebounce returns the watch debounce interval as a duration.
func (c *Config) GetWatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if len(c.Filter.Keywords) == 0 {
		return fmt.Errorf("filter.keywords must not be empty")
	}
	if c.Filter.TailLines < 0 {
		return fmt.Errorf("filter.tail_lines must be >= 0, got %d", c.Filter.TailLines)
	}
	if c.Expand.Before < 0 || c.Expand.After < 0 {
		return fmt.Errorf("expand.before and expand.after must be >= 0, got %d/%d", c.Expand.Before, c.Expand.After)
	}
	if c.Weights.Alpha <= 0 || c.Weights.Alpha > 1 {
		return fmt.Errorf("weights.alpha must be in (0, 1], got %g", c.Weights.Alpha)
	}
	if c.Weights.Beta <= 0 {
		return fmt.Errorf("weights.beta must be > 0, got %d", c.Weights.Beta)
	}
	if c.Context.HighThreshold < c.Context.LowThreshold {
		return fmt.Errorf("context.high_threshold (%d) must be >= context.low_threshold (%d)",
			c.Context.HighThreshold, c.Context.LowThreshold)
	}
	if c.Budget.TokenLimit <= 0 {
		return fmt.Errorf("budget.token_limit must be > 0, got %d", c.Budget.TokenLimit)
	}
	return nil
}
