package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/slugline/slugline/internal/fix"
	"github.com/slugline/slugline/internal/llm"
	"github.com/slugline/slugline/internal/pipeline"
)

var (
	fixOutput  string
	fixDryRun  bool
	fixModel   string
	fixTimeout time.Duration
)

// fixCmd represents the fix command
var fixCmd = &cobra.Command{
	Use:   "fix <file>",
	Short: "Repair formatting issues with LLM assistance",
	Long: `Fix runs the validation rules, groups nearby findings into chunks,
and asks the configured LLM provider to correct each chunk. Proposed
corrections are checked against guardrails (minimum confidence, bounded
edit distance, no invented content) before being applied, then the
document is re-checked.

Requires an LLM provider; set llm.provider in the config file and
export OPENAI_API_KEY.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	rootCmd.AddCommand(fixCmd)

	fixCmd.Flags().StringVarP(&fixOutput, "output", "o", "", "write corrected text to path instead of stdout")
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "show proposed corrections without applying them")
	fixCmd.Flags().StringVar(&fixModel, "model", "", "override the configured model")
	fixCmd.Flags().DurationVar(&fixTimeout, "timeout", durationFlagDefault, "overall deadline for the fix run")
}

func runFix(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	logger := buildLogger()

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return err
	}
	if provider == nil {
		return fmt.Errorf("no LLM provider configured; set llm.provider and OPENAI_API_KEY")
	}

	document, err := pipeline.LoadDocument(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), fixTimeout)
	defer cancel()

	engine := fix.New(pipeline.New(cfg, logger), provider, cfg.LLM, logger)
	result, err := engine.Fix(ctx, document, fix.Options{
		DryRun: fixDryRun,
		Model:  fixModel,
	})
	if err != nil {
		return err
	}

	for _, outcome := range result.Outcomes {
		status := "applied"
		if !outcome.Applied {
			status = "skipped: " + outcome.Reason
		} else if fixDryRun {
			status = "proposed"
		}
		fmt.Printf("lines %d-%d  %s\n", outcome.Chunk.StartLine, outcome.Chunk.EndLine, status)
	}
	fmt.Printf("Issues: %d before, %d after\n", result.Before.TotalIssues, result.After.TotalIssues)

	if fixDryRun {
		return nil
	}
	if err := writeOutput(fixOutput, result.Fixed); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
