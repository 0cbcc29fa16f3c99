package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/skillgraph/pkg/errors"
	"github.com/matzehuels/skillgraph/pkg/filter"
	"github.com/matzehuels/skillgraph/pkg/graph"
)

// catalogCommand creates the catalog command, which exports the embedded
// skill catalog as graph JSON. The output is a valid --input file.
func (c *CLI) catalogCommand() *cobra.Command {
	var output, category string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Export the built-in skill catalog as JSON",
		Example: `  skillgraph catalog > skills.json
  skillgraph catalog --category cloud -o cloud.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := errors.ValidateCategory(category)
			if err != nil {
				return err
			}
			g := graph.Catalog()
			if cat != "" {
				g = filter.Induce(g, &cat)
			}

			if output == "" || output == "-" {
				return graph.WriteGraph(g, cmd.OutOrStdout())
			}
			if err := errors.ValidatePath(output); err != nil {
				return err
			}
			if err := graph.WriteGraphFile(g, output); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Exported %d skills", g.NodeCount())
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "export one category's subgraph")

	return cmd
}
