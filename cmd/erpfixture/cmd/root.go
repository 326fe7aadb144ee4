package cmd

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/erpfixture/internal/config"
	"github.com/dbsmedya/erpfixture/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// defaultConfigFile is read when present; a missing file means defaults.
const defaultConfigFile = "erpfixture.yaml"

// CLI flags that override config file values
var (
	cfgFile    string
	logLevel   string
	logFormat  string
	outputPath string
	seed       int64
	skipVerify bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "erpfixture",
	Short: "ERP seed fixture generator",
	Long: `Generates a loadable JSON seed fixture for an ERP inventory system:
user accounts, suppliers, products with variants, purchase orders, sales
and low-stock alerts, all cross-referenced by sequential identifiers.

Run without a subcommand to generate the fixture at the configured path.

Features:
  - Deterministic dependency order resolved with Kahn's algorithm
  - Reproducible output with --seed
  - Integrity verification (identifiers, references, sale totals)`,
	Version:       Version,
	Args:          cobra.NoArgs,
	RunE:          runGenerate,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.Disable()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.Red.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile,
		"Path to configuration file (optional)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Output overrides
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "",
		"Override fixture path")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0,
		"Override faker seed (0 = random)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")

	// Safety overrides
	rootCmd.Flags().BoolVar(&skipVerify, "skip-verify", false,
		"Skip verification of the generated fixture")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel   string
	LogFormat  string
	OutputPath string
	Seed       int64
	SkipVerify bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:   logLevel,
		LogFormat:  logFormat,
		OutputPath: outputPath,
		Seed:       seed,
		SkipVerify: skipVerify,
	}
}

// loadConfig reads the optional config file, applies CLI overrides and
// validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.OutputPath, overrides.Seed, overrides.SkipVerify)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads configuration and initializes the logger.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}
