package cmd

import (
	"errors"
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/erpfixture/internal/catalog"
	"github.com/dbsmedya/erpfixture/internal/fixture"
	"github.com/dbsmedya/erpfixture/internal/graph"
	"github.com/dbsmedya/erpfixture/internal/verifier"
)

var verifyMethod string

var verifyCmd = &cobra.Command{
	Use:   "verify [path]",
	Short: "Verify an existing fixture file",
	Long: `Verify reads a fixture file and checks that it is complete and
internally consistent.

Checks performed (method=full):
  - Identifiers of every model run 1..N in file order
  - Every reference names an earlier record of the referenced model
  - Every sale total equals quantity times the variant price
  - Per-model counts match the catalog and the total is 95
  - No record has an unknown model

The path defaults to the configured output path.

Example:
  erpfixture verify fixtures/initial_data.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyMethod, "method", "m", string(verifier.MethodFull),
		"Verification method (count, full)")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	method := verifier.VerificationMethod(verifyMethod)
	if method == verifier.MethodSkip {
		return fmt.Errorf("verification method %q checks nothing; use %s or %s",
			method, verifier.MethodCount, verifier.MethodFull)
	}

	path := cfg.Output.Path
	if len(args) == 1 {
		path = args[0]
	}

	records, err := fixture.ReadFile(path)
	if err != nil {
		return err
	}

	g, err := graph.BuildFromCatalog()
	if err != nil {
		return fmt.Errorf("failed to build entity graph: %w", err)
	}
	v, err := verifier.NewVerifier(g, method, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	stats, verifyErr := v.Verify(records)
	if stats == nil {
		return verifyErr
	}

	printHeader(out, "Fixture Verification: %s", path)
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(stats.Results))
	for _, r := range stats.Results {
		status := color.Green.Sprint("OK")
		if !r.Match {
			status = color.Red.Sprint("FAIL")
		}
		label := r.Model
		if e, ok := catalog.Lookup(r.Model); ok {
			label = e.Label
		}
		row := []string{label, r.Model, fmt.Sprintf("%d/%d", r.Actual, r.Expected), status}
		if r.Digest != "" {
			row = append(row, r.Digest[:16])
		}
		rows = append(rows, row)
	}
	printTable(out, rows)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Records: %d  References: %d  Violations: %d\n",
		stats.RecordsVerified, stats.ReferencesChecked, stats.Violations)

	var verr *verifier.VerificationError
	if errors.As(verifyErr, &verr) {
		fmt.Fprintln(out)
		printSection(out, "Violations")
		for _, viol := range verr.Violations {
			fmt.Fprintf(out, "  • %s\n", viol)
		}
		fmt.Fprintf(out, "%s verification failed\n", color.Red.Sprint("❌"))
		return fmt.Errorf("%s: %w", path, verifier.ErrVerificationFailed)
	}
	if verifyErr != nil {
		return verifyErr
	}

	fmt.Fprintf(out, "%s %s is valid\n", color.Green.Sprint("✅"), path)
	return nil
}
