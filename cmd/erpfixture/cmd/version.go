package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/erpfixture/internal/catalog"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display the build version together with the fixture layout this build
writes. Two builds with the same layout produce interchangeable fixtures.`,
	Args: cobra.NoArgs,
	Run:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	cmd.Printf("erpfixture version %s\n", Version)
	cmd.Printf("  Commit: %s\n", Commit)
	cmd.Printf("  Go version: %s\n", runtime.Version())
	cmd.Printf("  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	cmd.Printf("  Fixture: %d models, %d records\n", len(catalog.Entities()), catalog.TotalCount())
}
