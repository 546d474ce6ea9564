package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slugline/slugline/internal/pipeline"
)

var (
	checkJSON         string
	checkMD           string
	checkStrict       bool
	checkSceneNumbers bool
	checkNoCache      bool
	checkNoFooter     bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Classify a screenplay and report formatting issues",
	Long: `Check classifies every line of a screenplay into typed elements and
runs the validation rules over the result. Findings are reported with
line numbers, confidence scores, and suggested fixes where one exists.

Example:
  slugline check draft.txt
  slugline check draft.txt --json report.json --strict
  slugline check act1.txt act2.txt act3.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkJSON, "json", "", "write JSON report to path")
	checkCmd.Flags().StringVar(&checkMD, "md", "", "write Markdown report to path")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "any finding fails the check")
	checkCmd.Flags().BoolVar(&checkSceneNumbers, "scene-numbers", false, "assign scene numbers to headings")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "disable the result cache")
	checkCmd.Flags().BoolVar(&checkNoFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	if checkStrict {
		cfg.Validation.Strict = true
	}
	if checkSceneNumbers {
		cfg.Parser.EnableSceneNumbers = true
	}
	if checkNoCache {
		cfg.Cache.Enabled = false
	}
	if checkNoFooter {
		cfg.Output.IncludeFooter = false
	}

	p := pipeline.New(cfg, buildLogger())
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	failed := 0
	for _, path := range args {
		result, err := p.CheckFile(path)
		if err != nil {
			return err
		}

		if len(args) > 1 {
			fmt.Printf("== %s\n", path)
		}
		fmt.Print(renderer.RenderText(result))

		if checkJSON != "" {
			data, err := renderer.RenderJSON(result)
			if err != nil {
				return fmt.Errorf("render JSON: %w", err)
			}
			if err := os.WriteFile(outPathFor(checkJSON, path, len(args)), data, 0o644); err != nil {
				return err
			}
		}
		if checkMD != "" {
			md := renderer.RenderMarkdown(result)
			if err := os.WriteFile(outPathFor(checkMD, path, len(args)), []byte(md), 0o644); err != nil {
				return err
			}
		}

		if !result.Report.Passed {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed the check", failed, len(args))
	}
	return nil
}

// outPathFor disambiguates report paths when checking several files.
func outPathFor(base, input string, inputs int) string {
	if inputs == 1 {
		return base
	}
	return input + "." + base
}
