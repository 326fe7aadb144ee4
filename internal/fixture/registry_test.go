package fixture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryCountersStartAtOne(t *testing.T) {
	r := NewRegistry("sup", "prod")

	assert.Equal(t, 0, r.Len())

	pk, err := r.Add("inventory.products", NewFields(), "prod")
	require.NoError(t, err)
	assert.Equal(t, int64(1), pk)

	pk, err = r.Add("inventory.suppliers", NewFields(), "sup")
	require.NoError(t, err)
	assert.Equal(t, int64(1), pk)
}

func TestAddAssignsSequentialIDsPerKey(t *testing.T) {
	r := NewRegistry("sup", "prod")

	for want := int64(1); want <= 3; want++ {
		pk, err := r.Add("inventory.suppliers", NewFields().Set("name", "acme"), "sup")
		require.NoError(t, err)
		assert.Equal(t, want, pk)
	}

	// A second key keeps its own sequence.
	pk, err := r.Add("inventory.products", NewFields(), "prod")
	require.NoError(t, err)
	assert.Equal(t, int64(1), pk)

	pk, err = r.Add("inventory.suppliers", NewFields(), "sup")
	require.NoError(t, err)
	assert.Equal(t, int64(4), pk)

	assert.Equal(t, 5, r.Len())
}

func TestAddAppendsInRegistrationOrder(t *testing.T) {
	r := NewRegistry("a", "b")

	_, err := r.Add("m.a", NewFields().Set("n", int64(1)), "a")
	require.NoError(t, err)
	_, err = r.Add("m.b", NewFields().Set("n", int64(2)), "b")
	require.NoError(t, err)
	_, err = r.Add("m.a", NewFields().Set("n", int64(3)), "a")
	require.NoError(t, err)

	records := r.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "m.a", records[0].Model)
	assert.Equal(t, int64(1), records[0].PK)
	assert.Equal(t, "m.b", records[1].Model)
	assert.Equal(t, int64(1), records[1].PK)
	assert.Equal(t, "m.a", records[2].Model)
	assert.Equal(t, int64(2), records[2].PK)

	n, ok := records[2].Fields.Int64("n")
	require.True(t, ok)
	assert.Equal(t, int64(3), n)
}

func TestAddUnknownCounterKey(t *testing.T) {
	r := NewRegistry("sup")

	pk, err := r.Add("inventory.suppliers", NewFields(), "supplier")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCounter))
	assert.Contains(t, err.Error(), `"supplier"`)
	assert.Equal(t, int64(0), pk)
	assert.Equal(t, 0, r.Len(), "failed registration must not append")
}

func TestAddDuplicateModelAcrossKeys(t *testing.T) {
	r := NewRegistry("a", "b")

	_, err := r.Add("shared.model", NewFields(), "a")
	require.NoError(t, err)

	_, err = r.Add("shared.model", NewFields(), "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateRecord)

	pk, err := r.Add("other.model", NewFields(), "b")
	require.NoError(t, err)
	assert.Equal(t, int64(1), pk, "counter must not advance on failure")
}

func TestAddNilFields(t *testing.T) {
	r := NewRegistry("a")

	_, err := r.Add("m.a", nil, "a")
	require.NoError(t, err)

	rec := r.Records()[0]
	require.NotNil(t, rec.Fields)
	assert.Equal(t, 0, rec.Fields.Len())
}

func TestFind(t *testing.T) {
	r := NewRegistry("var")
	for _, price := range []int64{5000, 12000, 19999} {
		_, err := r.Add("inventory.product_variants", NewFields().Set("price", price), "var")
		require.NoError(t, err)
	}

	rec, err := r.Find("inventory.product_variants", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.PK)
	price, ok := rec.Fields.Int64("price")
	require.True(t, ok)
	assert.Equal(t, int64(12000), price)

	_, err = r.Find("inventory.product_variants", 4)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = r.Find("inventory.products", 1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestCounts(t *testing.T) {
	r := NewRegistry("a", "b")
	for i := 0; i < 3; i++ {
		_, err := r.Add("m.a", NewFields(), "a")
		require.NoError(t, err)
	}
	_, err := r.Add("m.b", NewFields(), "b")
	require.NoError(t, err)

	counts := r.Counts()
	assert.Equal(t, map[string]int{"m.a": 3, "m.b": 1}, counts)

	counts["m.a"] = 100
	assert.Equal(t, 3, r.Counts()["m.a"], "Counts must return a copy")
}

func TestRecordsReturnsCopy(t *testing.T) {
	r := NewRegistry("a")
	_, err := r.Add("m.a", NewFields(), "a")
	require.NoError(t, err)

	records := r.Records()
	records[0].Model = "changed"

	assert.Equal(t, "m.a", r.Records()[0].Model)
}
