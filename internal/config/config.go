// Package config provides configuration structures and loading for erpfixture.
//
// Configuration only covers where the fixture is written, how the faker is
// seeded and how the tool logs. Entity counts, value ranges and choice tables
// are fixed in the generator and are deliberately not configurable.
package config

// DefaultOutputPath is where the fixture lands when nothing else is set.
const DefaultOutputPath = "fixtures/initial_data.json"

// Config represents the complete application configuration.
type Config struct {
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Generation   GenerationConfig   `yaml:"generation" mapstructure:"generation"`
	Verification VerificationConfig `yaml:"verification" mapstructure:"verification"`
	Logging      LoggingConfig      `yaml:"logging" mapstructure:"logging"`
}

// OutputConfig controls where the fixture file is written.
type OutputConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// GenerationConfig controls the random source used by the generator.
type GenerationConfig struct {
	Seed int64 `yaml:"seed" mapstructure:"seed"` // 0 seeds from the clock
}

// VerificationConfig controls the integrity check run on a freshly generated
// fixture before it is written.
type VerificationConfig struct {
	Method string `yaml:"method" mapstructure:"method"` // count, full, or skip
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Path: DefaultOutputPath,
		},
		Generation: GenerationConfig{
			Seed: 0,
		},
		Verification: VerificationConfig{
			Method: "full",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
