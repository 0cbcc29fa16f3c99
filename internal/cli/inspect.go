package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/skillgraph/pkg/errors"
	"github.com/matzehuels/skillgraph/pkg/filter"
	"github.com/matzehuels/skillgraph/pkg/graph"
	"github.com/matzehuels/skillgraph/pkg/pipeline"
	"github.com/matzehuels/skillgraph/pkg/topology"
)

// inspectReport is the output of the inspect command.
type inspectReport struct {
	topology.Report
	Categories map[graph.Category]int `json:"categories"`
	Layout     *layoutReport          `json:"layout,omitempty"`
}

type layoutReport struct {
	Ticks      int  `json:"ticks"`
	Settled    bool `json:"settled"`
	Components int  `json:"components"`
	Crossings  int  `json:"crossings"`
}

// inspectCommand creates the inspect command, which prints structural
// statistics of a graph and, unless --no-layout is given, of its settled
// layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		input, category string
		asJSON          bool
		noLayout        bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show statistics about the skill graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := c.inspect(cmd.Context(), input, category, !noLayout)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			printReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "graph JSON file (default: embedded catalog)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "inspect one category's subgraph")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&noLayout, "no-layout", false, "skip the layout simulation")

	return cmd
}

func (c *CLI) inspect(ctx context.Context, input, category string, withLayout bool) (*inspectReport, error) {
	opts := pipeline.Options{
		InputPath: input,
		Category:  category,
		Width:     c.cfg.View.Width,
		Height:    c.cfg.View.Height,
		Layout:    c.cfg.Layout,
		Physics:   c.cfg.Physics,
		Render:    c.cfg.Render,
		Engine:    c.cfg.Engine,
		Logger:    loggerFromContext(ctx),
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	g, err := pipeline.Load(opts)
	if err != nil {
		return nil, err
	}

	sub := g
	if cat, _ := errors.ValidateCategory(category); cat != "" {
		sub = filter.Induce(g, &cat)
	}

	rep := &inspectReport{
		Report:     topology.Analyze(sub),
		Categories: make(map[graph.Category]int),
	}
	for _, n := range sub.Nodes {
		rep.Categories[n.Category]++
	}

	if withLayout {
		snap, stats, err := pipeline.Simulate(ctx, g, opts)
		if err != nil {
			return nil, err
		}
		rep.Layout = &layoutReport{
			Ticks:      stats.Ticks,
			Settled:    stats.Settled,
			Components: stats.Components,
			Crossings:  topology.CountCrossings(snap.Store()),
		}
	}
	return rep, nil
}

func printReport(w io.Writer, rep *inspectReport) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(graph.Categories()))
	for _, cat := range graph.Categories() {
		if n := rep.Categories[cat]; n > 0 {
			rows = append(rows, []string{cat.Title(), strconv.Itoa(n)})
		}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Category", "Skills").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleNumber
			}
			return StyleValue
		})
	fmt.Fprintln(w, t.Render())

	kv := func(k string, v any) { printKeyValue(w, k, v) }
	kv("nodes", rep.Nodes)
	kv("edges", rep.Edges)
	if rep.Dropped > 0 {
		kv("dropped", rep.Dropped)
	}
	kv("loops", rep.Loops)
	kv("leaves", rep.Leaves)
	kv("isolated", rep.Isolated)
	kv("components", len(rep.Components))
	if l := rep.Layout; l != nil {
		kv("ticks", l.Ticks)
		kv("settled", l.Settled)
		kv("crossings", l.Crossings)
	}
}
