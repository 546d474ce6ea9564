package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slugline/slugline/internal/classify"
	"github.com/slugline/slugline/internal/cleanup"
	"github.com/slugline/slugline/internal/pipeline"
	"github.com/slugline/slugline/internal/registry"
	"github.com/slugline/slugline/internal/render"
	"github.com/slugline/slugline/internal/unify"
)

var (
	formatOutput       string
	formatUnify        bool
	formatStripNotes   bool
	formatSceneNumbers bool
)

// formatCmd represents the format command
var formatCmd = &cobra.Command{
	Use:   "format <file>",
	Short: "Re-render a screenplay with normalized formatting",
	Long: `Format classifies the screenplay and renders it back out with
canonical casing and spacing: uppercased scene headings, transitions and
character cues, packed dialogue blocks, and single blank lines between
elements. Optional passes strip production notes and unify character
name variants before rendering.`,
	Args: cobra.ExactArgs(1),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().StringVarP(&formatOutput, "output", "o", "", "write to path instead of stdout")
	formatCmd.Flags().BoolVar(&formatUnify, "unify", false, "unify character name variants")
	formatCmd.Flags().BoolVar(&formatStripNotes, "strip-notes", false, "remove bracketed production notes")
	formatCmd.Flags().BoolVar(&formatSceneNumbers, "scene-numbers", false, "assign scene numbers to headings")
}

func runFormat(cmd *cobra.Command, args []string) error {
	document, err := pipeline.LoadDocument(args[0])
	if err != nil {
		return err
	}

	classifier := classify.New(registry.Default())
	elements := classifier.Classify(pipeline.SplitLines(document), classify.Options{
		EnableSceneNumbers: formatSceneNumbers,
	})

	if formatStripNotes {
		elements, _ = cleanup.Apply(elements)
	}
	if formatUnify {
		elements = unify.Apply(elements)
	}

	out := render.NewText().Render(elements)
	if err := writeOutput(formatOutput, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
