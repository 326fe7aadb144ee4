package fixture

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords(t *testing.T) []Record {
	t.Helper()

	r := NewRegistry("prod", "var")
	pid, err := r.Add("inventory.products", NewFields().
		Set("product_code", "P1000").
		Set("name", "Lamp 상품").
		Set("created_at", "2026-10-15T01:02:03.000004"), "prod")
	require.NoError(t, err)

	for _, opt := range []string{"A", "B"} {
		_, err := r.Add("inventory.product_variants", NewFields().
			Set("product", pid).
			Set("variant_code", "P1000-"+opt).
			Set("option", "옵션-"+opt).
			Set("stock", int64(30)).
			Set("price", int64(9900)).
			Set("created_at", "2026-10-15T01:02:03.000004"), "var")
		require.NoError(t, err)
	}
	return r.Records()
}

func assertRecordsEqual(t *testing.T, want, got []Record) {
	t.Helper()

	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Model, got[i].Model, "record %d model", i)
		assert.Equal(t, want[i].PK, got[i].PK, "record %d pk", i)
		assert.Equal(t, want[i].Fields.Keys(), got[i].Fields.Keys(), "record %d field order", i)
		assert.Equal(t, fieldValues(want[i].Fields), fieldValues(got[i].Fields), "record %d field values", i)
	}
}

func TestEncodeFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleRecords(t)[:1]))

	want := `[
  {
    "model": "inventory.products",
    "pk": 1,
    "fields": {
      "product_code": "P1000",
      "name": "Lamp 상품",
      "created_at": "2026-10-15T01:02:03.000004"
    }
  }
]
`
	assert.Equal(t, want, buf.String())
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"model": "x"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode fixture")
}

func TestDecodeMissingFields(t *testing.T) {
	records, err := Decode(strings.NewReader(`[{"model": "auth.user", "pk": 1}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotNil(t, records[0].Fields)
	assert.Equal(t, 0, records[0].Fields.Len())
}

func TestWriteFileCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fixtures", "initial_data.json")

	require.NoError(t, WriteFile(path, sampleRecords(t)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "initial_data.json")
	want := sampleRecords(t)

	require.NoError(t, WriteFile(path, want))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assertRecordsEqual(t, want, got)
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "initial_data.json")
	records := sampleRecords(t)

	require.NoError(t, WriteFile(path, records))
	require.NoError(t, WriteFile(path, records[:1]))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
