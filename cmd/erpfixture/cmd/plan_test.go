package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/erpfixture/internal/catalog"
	"github.com/dbsmedya/erpfixture/internal/graph"
)

func TestPlanCommandStructure(t *testing.T) {
	assert.Equal(t, "plan", planCmd.Use)
	assert.NotEmpty(t, planCmd.Short)
	assert.NotEmpty(t, planCmd.Long)
	assert.NotNil(t, planCmd.RunE)
}

func TestRunPlan(t *testing.T) {
	out, err := executeCommand(t, "plan")
	require.NoError(t, err)

	assert.Contains(t, out, "Fixture Plan")
	assert.Contains(t, out, "Models:     7")
	assert.Contains(t, out, "References: 5")
	assert.Contains(t, out, "Records:    95")
	assert.Contains(t, out, "Roots:      "+catalog.ModelUser+", "+catalog.ModelSupplier+", "+catalog.ModelProduct)
	assert.Contains(t, out, "Leaves:     "+catalog.ModelUser+", "+catalog.ModelOrder+", "+catalog.ModelSale+", "+catalog.ModelAlert)
	assert.Contains(t, out, "[Generation Order (referenced models first)]")
	assert.Contains(t, out, "[Teardown Order (referencing models first)]")
	assert.Contains(t, out, "inventory.suppliers → inventory.orders FK: supplier")
	assert.Contains(t, out, "inventory.products → inventory.product_variants FK: product")

	// Generation order lists users first, teardown order lists alerts first.
	gen := out[strings.Index(out, "[Generation Order"):strings.Index(out, "[Teardown Order")]
	assert.Less(t, strings.Index(gen, catalog.ModelUser), strings.Index(gen, catalog.ModelAlert))

	down := out[strings.Index(out, "[Teardown Order"):strings.Index(out, "[Detected References]")]
	assert.Less(t, strings.Index(down, catalog.ModelAlert), strings.Index(down, catalog.ModelUser))
}

func TestOrderRows(t *testing.T) {
	g, err := graph.BuildFromCatalog()
	require.NoError(t, err)

	rows := orderRows(g, []string{catalog.ModelVariant})
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1.", "상품 옵션", catalog.ModelVariant, "key=var", "count=16", "refs=1", "referenced-by=3"}, rows[0])
}

func TestPrintTableAlignsWideRunes(t *testing.T) {
	var sb strings.Builder
	printTable(&sb, [][]string{
		{"상품 옵션", "x"},
		{"ab", "y"},
	})

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	// "상품 옵션" is 9 cells wide, so "ab" is padded with 7 spaces.
	assert.Equal(t, "  상품 옵션  x", lines[0])
	assert.Equal(t, "  ab         y", lines[1])
}

func TestPrintHeader(t *testing.T) {
	var sb strings.Builder
	printHeader(&sb, "Plan: %s", "재고")

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	// "Plan: 재고" is 10 cells wide.
	assert.Equal(t, strings.Repeat("=", 14), lines[0])
	assert.Equal(t, "  Plan: 재고", lines[1])
}
