package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slugline/slugline/internal/classify"
	"github.com/slugline/slugline/internal/cleanup"
	"github.com/slugline/slugline/internal/pipeline"
	"github.com/slugline/slugline/internal/registry"
	"github.com/slugline/slugline/internal/render"
)

var stripNotesOutput string

// stripNotesCmd represents the strip-notes command
var stripNotesCmd = &cobra.Command{
	Use:   "strip-notes <file>",
	Short: "Remove bracketed production notes from a screenplay",
	Long: `Strip-notes removes bracketed spans that read as production notes,
such as [NOTE: check continuity] or [TODO: name the barista]. Bracketed
VFX and technical directions are left alone. Elements emptied by the
removal are dropped from the output.`,
	Args: cobra.ExactArgs(1),
	RunE: runStripNotes,
}

func init() {
	rootCmd.AddCommand(stripNotesCmd)

	stripNotesCmd.Flags().StringVarP(&stripNotesOutput, "output", "o", "", "write to path instead of stdout")
}

func runStripNotes(cmd *cobra.Command, args []string) error {
	document, err := pipeline.LoadDocument(args[0])
	if err != nil {
		return err
	}

	elements := classify.New(registry.Default()).Classify(pipeline.SplitLines(document), classify.Options{})
	cleaned, removals := cleanup.Apply(elements)

	out := render.NewText().Render(cleaned)
	if err := writeOutput(stripNotesOutput, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	for _, r := range removals {
		fmt.Fprintf(os.Stderr, "line %d: removed %s\n", r.Line, r.Note)
	}
	fmt.Fprintf(os.Stderr, "Removed %d note(s)\n", len(removals))
	return nil
}
