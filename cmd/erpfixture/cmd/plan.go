package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/erpfixture/internal/catalog"
	"github.com/dbsmedya/erpfixture/internal/graph"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the entity dependency plan",
	Long: `Plan displays the entity dependency graph of the fixture and the
order in which records are generated.

The plan shows:
  - Overview with root models (reference nothing) and leaf models
    (referenced by nothing)
  - Generation order (referenced models first) with record counts
  - Teardown order (referencing models first)
  - Detected references with their foreign-key fields

Example:
  erpfixture plan`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	g, err := graph.BuildFromCatalog()
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}

	genOrder, err := g.GenerationOrder()
	if err != nil {
		return fmt.Errorf("failed to generate generation order: %w", err)
	}
	if err := g.ValidateOrder(catalog.Models()); err != nil {
		return err
	}

	teardownOrder, err := g.TeardownOrder()
	if err != nil {
		return fmt.Errorf("failed to generate teardown order: %w", err)
	}

	out := cmd.OutOrStdout()

	printHeader(out, "Fixture Plan")

	fmt.Fprintln(out)
	printSection(out, "Overview")
	fmt.Fprintf(out, "  Models:     %d\n", g.NodeCount())
	fmt.Fprintf(out, "  References: %d\n", g.EdgeCount())
	fmt.Fprintf(out, "  Records:    %d\n", catalog.TotalCount())
	fmt.Fprintf(out, "  Roots:      %s\n", strings.Join(g.RootNodes(), ", "))
	fmt.Fprintf(out, "  Leaves:     %s\n", strings.Join(g.LeafNodes(), ", "))

	fmt.Fprintln(out)
	printSection(out, "Generation Order (referenced models first)")
	printTable(out, orderRows(g, genOrder))

	fmt.Fprintln(out)
	printSection(out, "Teardown Order (referencing models first)")
	printTable(out, orderRows(g, teardownOrder))

	fmt.Fprintln(out)
	printSection(out, "Detected References")
	for _, edge := range g.AllEdges() {
		meta := g.GetEdgeMeta(edge.From, edge.To)
		fmt.Fprintf(out, "  • %s → %s FK: %s\n",
			edge.From,
			edge.To,
			strings.Join(meta.ForeignKeys, ", "),
		)
	}

	return nil
}

// orderRows renders one table row per model: position, label, model, key,
// count, then how many models it references and how many reference it.
func orderRows(g *graph.Graph, order []string) [][]string {
	rows := make([][]string, 0, len(order))
	for i, model := range order {
		node := g.GetNode(model)
		rows = append(rows, []string{
			fmt.Sprintf("%d.", i+1),
			node.Label,
			model,
			"key=" + node.Key,
			fmt.Sprintf("count=%d", node.Count),
			fmt.Sprintf("refs=%d", g.InDegree(model)),
			fmt.Sprintf("referenced-by=%d", g.OutDegree(model)),
		})
	}
	return rows
}
