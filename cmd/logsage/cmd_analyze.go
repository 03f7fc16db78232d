package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"logsage/internal/config"
	"logsage/internal/llm"
	"logsage/internal/pipeline"
	"logsage/internal/rca"
	"logsage/internal/reader"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path>",
	Short: "Reduce a log and ask Gemini for a root cause diagnosis",
	Long: `Runs the reduction pipeline, embeds the surviving lines into the RCA
prompt template (with 1-based line numbers), sends the prompt to Gemini,
and prints the model's diagnosis.

Requires an API key via GEMINI_API_KEY or llm.api_key in the config file.
The model only ever sees the already-reduced log; reduction itself stays
fully deterministic and offline.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lines, err := reader.ReadLines(args[0])
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}
	result, err := p.Run(lines)
	if err != nil {
		return err
	}
	if len(result.Lines) == 0 {
		return fmt.Errorf("nothing survived reduction of %s; nothing to analyze", args[0])
	}

	client, err := llm.New(ctx, cfg.LLM, cfg.GetRetryDelay())
	if err != nil {
		return err
	}

	logger.Info("requesting diagnosis",
		zap.String("model", client.Model()),
		zap.Int("prompt_lines", len(result.Lines)),
		zap.Int("estimated_tokens", result.Stats.TokensUsed))

	diagnosis, err := client.Analyze(ctx, rca.FormatNumbered(result.Lines))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Println(diagnosis)
	return nil
}
