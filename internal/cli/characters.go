package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slugline/slugline/internal/classify"
	"github.com/slugline/slugline/internal/pipeline"
	"github.com/slugline/slugline/internal/registry"
	"github.com/slugline/slugline/internal/unify"
)

// charactersCmd represents the characters command
var charactersCmd = &cobra.Command{
	Use:   "characters <file>",
	Short: "Report character name variants and how they would unify",
	Args:  cobra.ExactArgs(1),
	RunE:  runCharacters,
}

func init() {
	rootCmd.AddCommand(charactersCmd)
}

func runCharacters(cmd *cobra.Command, args []string) error {
	document, err := pipeline.LoadDocument(args[0])
	if err != nil {
		return err
	}

	elements := classify.New(registry.Default()).Classify(pipeline.SplitLines(document), classify.Options{})
	fmt.Print(unify.Report(elements))
	return nil
}
