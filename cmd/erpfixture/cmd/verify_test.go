package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/erpfixture/internal/catalog"
	"github.com/dbsmedya/erpfixture/internal/fixture"
	"github.com/dbsmedya/erpfixture/internal/verifier"
)

func writeGeneratedFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "initial_data.json")
	_, err := executeCommand(t, "generate", "-o", path, "--seed", "3")
	require.NoError(t, err)
	return path
}

func TestVerifyCommandStructure(t *testing.T) {
	assert.Equal(t, "verify [path]", verifyCmd.Use)
	assert.NotEmpty(t, verifyCmd.Short)
	assert.NotNil(t, verifyCmd.RunE)
	assert.Equal(t, "m", verifyCmd.Flags().Lookup("method").Shorthand)
}

func TestVerifyGeneratedFixture(t *testing.T) {
	path := writeGeneratedFixture(t)

	out, err := executeCommand(t, "verify", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Fixture Verification: "+path)
	assert.Contains(t, out, "Records: 95  References: 102  Violations: 0")
	assert.Contains(t, out, "✅ "+path+" is valid")
	for _, e := range catalog.Entities() {
		assert.Contains(t, out, e.Label)
	}
}

func TestVerifyDefaultsToConfiguredPath(t *testing.T) {
	path := writeGeneratedFixture(t)

	out, err := executeCommand(t, "verify", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestVerifyReportsViolations(t *testing.T) {
	path := writeGeneratedFixture(t)

	records, err := fixture.ReadFile(path)
	require.NoError(t, err)
	for i := range records {
		if records[i].Model == catalog.ModelSale {
			records[i].Fields.Set(catalog.FieldTotalPrice, int64(-1))
			break
		}
	}
	require.NoError(t, fixture.WriteFile(path, records))

	out, err := executeCommand(t, "verify", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, verifier.ErrVerificationFailed))
	assert.Contains(t, out, "[Violations]")
	assert.Contains(t, out, "total_price=-1")
	assert.Contains(t, out, "❌ verification failed")
}

func TestVerifyCountMethod(t *testing.T) {
	path := writeGeneratedFixture(t)

	out, err := executeCommand(t, "verify", path, "--method", "count")
	require.NoError(t, err)
	assert.Contains(t, out, "References: 0")
}

func TestVerifyUnsupportedMethod(t *testing.T) {
	path := writeGeneratedFixture(t)

	_, err := executeCommand(t, "verify", path, "--method", "sha256")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported verification method")
}

func TestVerifyRejectsSkipMethod(t *testing.T) {
	path := writeGeneratedFixture(t)

	out, err := executeCommand(t, "verify", path, "-m", "skip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `verification method "skip" checks nothing`)
	assert.NotContains(t, out, "is valid")
}

func TestVerifyMissingFile(t *testing.T) {
	_, err := executeCommand(t, "verify", filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVerifyMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "a list"}`), 0644))

	_, err := executeCommand(t, "verify", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode fixture")
}

func TestVerifyTooManyArgs(t *testing.T) {
	_, err := executeCommand(t, "verify", "a.json", "b.json")
	assert.Error(t, err)
}
