package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slugline/slugline/internal/pipeline"
	"github.com/slugline/slugline/internal/worker"
)

var batchWorkers int

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file-or-dir>...",
	Short: "Check many screenplays concurrently",
	Long: `Batch runs the check pipeline over many files at once using a worker
pool. Directories are walked for .txt and .fountain files. A one-line
verdict is printed per file followed by a summary.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "number of concurrent workers (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	if batchWorkers > 0 {
		cfg.Concurrency.BatchWorkers = batchWorkers
	}

	paths, err := collectScripts(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no screenplay files found")
	}

	p := pipeline.New(cfg, buildLogger())
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.BatchWorkers)
	results := processor.ProcessFiles(context.Background(), paths)

	failed := 0
	for _, r := range results {
		switch {
		case r.Error != nil:
			fmt.Printf("ERROR  %s: %v\n", r.Path, r.Error)
			failed++
		case r.Result.Report.Passed:
			fmt.Printf("PASS   %s\n", r.Path)
		default:
			fmt.Printf("FAIL   %s  (%d issues)\n", r.Path, r.Result.Report.TotalIssues)
			failed++
		}
	}
	fmt.Printf("\n%d file(s) checked, %d failed\n", len(results), failed)

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

// collectScripts expands directory arguments into .txt and .fountain
// files. Explicit file arguments are taken as-is.
func collectScripts(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".txt", ".fountain":
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}
