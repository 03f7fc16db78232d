package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"logsage/internal/config"
	"logsage/internal/pipeline"
	"logsage/internal/reader"
	"logsage/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Re-run reduction whenever the log file changes",
	Long: `Reduces the log once, then keeps watching it and re-runs the pipeline
after each settled change until interrupted. Useful while a CI job or
long build is still appending to its log.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	reduceOnce := func(path string) {
		lines, err := reader.ReadLines(path)
		if err != nil {
			logger.Warn("failed to read log", zap.String("path", path), zap.Error(err))
			return
		}
		result, err := p.Run(lines)
		if err != nil {
			logger.Error("pipeline failed", zap.String("path", path), zap.Error(err))
			return
		}
		fmt.Printf("==> %s (%d of %d lines kept) <==\n", path, len(result.Lines), result.Stats.TotalLines)
		for _, line := range result.Lines {
			fmt.Println(line)
		}
	}

	reduceOnce(args[0])

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(args[0], cfg.GetWatchDebounce(), reduceOnce, logger)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	<-ctx.Done()
	return nil
}
