package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	// Keep assertions independent of the terminal running the tests.
	color.Disable()
	os.Exit(m.Run())
}

// resetFlags restores flag variables to their defaults; cobra keeps parsed
// values between runs of the same command tree.
func resetFlags() {
	cfgFile = defaultConfigFile
	logLevel = "error"
	logFormat = ""
	outputPath = ""
	seed = 0
	skipVerify = false
	noColor = false
	verifyMethod = "full"
}

// executeCommand runs the root command with args and returns what it wrote to
// stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestExecute(t *testing.T) {
	// Execute() calls os.Exit(1) on error, so only its existence is checked here.
	assert.NotNil(t, Execute)
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, Commit, "Commit should not be empty")
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"generate", "verify", "plan", "version"} {
		assert.True(t, names[want], "%s command should be added to root command", want)
	}
}
