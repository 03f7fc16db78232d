package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"logsage/internal/config"
	"logsage/internal/pipeline"
	"logsage/internal/rca"
	"logsage/internal/reader"
)

var (
	reducePrompt   bool
	reduceNumbered bool
	reduceStats    bool
	reduceOutput   string
	reduceParallel int
)

var reduceCmd = &cobra.Command{
	Use:   "reduce <path|glob>...",
	Short: "Reduce one or more log files to their failure-relevant lines",
	Long: `Runs the reduction pipeline over each log file and prints the surviving
lines in block-ranked order (highest weight density first).

Arguments may be literal paths or doublestar globs like "logs/**/*.log".
Multiple files are processed concurrently; output order follows the
argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReduce,
}

func init() {
	reduceCmd.Flags().BoolVar(&reducePrompt, "prompt", false, "emit the RCA prompt template instead of raw lines")
	reduceCmd.Flags().BoolVar(&reduceNumbered, "numbered", false, "prefix lines with 1-based sequence numbers")
	reduceCmd.Flags().BoolVar(&reduceStats, "stats", false, "print a per-file reduction summary to stderr")
	reduceCmd.Flags().StringVarP(&reduceOutput, "output", "o", "", "write results to files in this directory instead of stdout")
	reduceCmd.Flags().IntVar(&reduceParallel, "parallel", 4, "maximum number of files processed concurrently")
}

// fileResult pairs an input path with its pipeline output.
type fileResult struct {
	path   string
	result *pipeline.Result
}

func runReduce(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	paths, err := reader.Resolve(args)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	results, err := reduceAll(p, paths)
	if err != nil {
		return err
	}

	for _, fr := range results {
		out := renderResult(fr.result)

		if reduceOutput != "" {
			if err := writeResult(reduceOutput, fr.path, out); err != nil {
				return err
			}
		} else {
			if len(results) > 1 {
				fmt.Printf("==> %s <==\n", fr.path)
			}
			fmt.Println(out)
		}

		if reduceStats {
			fmt.Fprintln(os.Stderr, renderStats(fr.path, fr.result.Stats))
		}
	}

	return nil
}

// reduceAll runs the pipeline over every path with bounded concurrency.
// Results come back in argument order regardless of completion order.
func reduceAll(p *pipeline.Pipeline, paths []string) ([]fileResult, error) {
	results := make([]fileResult, len(paths))

	limit := reduceParallel
	if limit < 1 {
		limit = 1
	}

	var eg errgroup.Group
	eg.SetLimit(limit)

	for i, path := range paths {
		eg.Go(func() error {
			lines, err := reader.ReadLines(path)
			if err != nil {
				return err
			}
			result, err := p.Run(lines)
			if err != nil {
				return err
			}
			logger.Debug("reduced file",
				zap.String("path", path),
				zap.Int("lines_in", result.Stats.TotalLines),
				zap.Int("lines_out", len(result.Lines)))
			results[i] = fileResult{path: path, result: result}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func renderResult(result *pipeline.Result) string {
	lines := result.Lines
	if reduceNumbered {
		lines = rca.NumberLines(lines)
	}
	if reducePrompt {
		if reduceNumbered {
			return rca.FormatNumbered(result.Lines)
		}
		return rca.Format(result.Lines)
	}
	return strings.Join(lines, "\n")
}

func writeResult(dir, srcPath, content string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	suffix := ".reduced.log"
	if reducePrompt {
		suffix = ".prompt.txt"
	}
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	dst := filepath.Join(dir, base+suffix)

	if err := os.WriteFile(dst, []byte(content+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	logger.Debug("wrote result", zap.String("path", dst))
	return nil
}
