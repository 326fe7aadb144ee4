package cmd

import (
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/erpfixture/internal/catalog"
	"github.com/dbsmedya/erpfixture/internal/fixture"
	"github.com/dbsmedya/erpfixture/internal/generator"
	"github.com/dbsmedya/erpfixture/internal/graph"
	"github.com/dbsmedya/erpfixture/internal/verifier"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the seed fixture",
	Long: `Generate builds the complete fixture, verifies it and writes it as an
indented JSON array to the configured path (fixtures/initial_data.json by
default). The file can be loaded with the application's fixture loader.

Example:
  erpfixture generate --output fixtures/initial_data.json --seed 42`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&skipVerify, "skip-verify", false,
		"Skip verification of the generated fixture")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	log.Infof("Generating fixture (seed=%d)", cfg.Generation.Seed)

	reg, err := generator.New(cfg.Generation.Seed, log).Generate()
	if err != nil {
		return fmt.Errorf("failed to generate fixture: %w", err)
	}
	records := reg.Records()

	g, err := graph.BuildFromCatalog()
	if err != nil {
		return fmt.Errorf("failed to build entity graph: %w", err)
	}
	v, err := verifier.NewVerifier(g, verifier.VerificationMethod(cfg.Verification.Method), log)
	if err != nil {
		return err
	}
	if _, err := v.Verify(records); err != nil {
		return fmt.Errorf("generated fixture failed verification: %w", err)
	}

	if err := fixture.WriteFile(cfg.Output.Path, records); err != nil {
		return err
	}
	log.WithFields(map[string]interface{}{
		"records": len(records),
		"path":    cfg.Output.Path,
		"seed":    cfg.Generation.Seed,
		"verify":  cfg.Verification.Method,
	}).Info("Fixture written")

	out := cmd.OutOrStdout()
	printCounts(out, reg.Counts())
	fmt.Fprintf(out, "%s %d records → %s\n", color.Green.Sprint("✅"), len(records), cfg.Output.Path)
	return nil
}

// printCounts prints one aligned line per model in generation order.
func printCounts(w io.Writer, counts map[string]int) {
	rows := make([][]string, 0, len(counts))
	for _, e := range catalog.Entities() {
		rows = append(rows, []string{e.Label, e.Model, fmt.Sprintf("%d", counts[e.Model])})
	}
	printTable(w, rows)
}
