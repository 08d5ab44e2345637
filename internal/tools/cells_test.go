package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianariton/cellbridge/internal/host"
)

// countingConnector records how many scopes were opened against the host.
type countingConnector struct {
	inner host.Connector
	opens int
}

func (c *countingConnector) OpenScope(ctx context.Context, fn func(host.Scope) error) error {
	c.opens++
	return c.inner.OpenScope(ctx, fn)
}

func TestWriteThenReadCells(t *testing.T) {
	ex, _ := newTestExecutor(t)

	got := run(t, ex, "write_cells", `{"cells":{"A1":"hello","B2":42}}`)
	assert.Equal(t, "Success", got)

	got = run(t, ex, "read_cells_text", `{"addresses":["A1","B2","C3"]}`)
	texts, ok := got.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "hello", texts["A1"])
	assert.Equal(t, "42", texts["B2"])
	assert.Equal(t, "", texts["C3"])

	got = run(t, ex, "read_cells_values", `{"addresses":["B2"]}`)
	values, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), values["B2"])
}

func TestReadCellsEmptyListSkipsHost(t *testing.T) {
	conn := &countingConnector{inner: host.NewWorkbook()}
	ex := NewExecutor(NewRegistry(conn), testLog())

	for _, tool := range []string{"read_cells_text", "read_cells_values"} {
		got := run(t, ex, tool, `{"addresses":[]}`)
		assert.Empty(t, got, tool)
	}
	assert.Zero(t, conn.opens)
}

func TestReadRange(t *testing.T) {
	ex, _ := newTestExecutor(t)

	run(t, ex, "write_cells", `{"cells":{"A1":1,"B1":2,"A2":3,"B2":4}}`)

	got := run(t, ex, "read_range", `{"address":"A1:B2"}`)
	values, ok := got.([][]any)
	require.True(t, ok)
	assert.Equal(t, [][]any{{float64(1), float64(2)}, {float64(3), float64(4)}}, values)
}

func TestReadSubtable(t *testing.T) {
	ex, _ := newTestExecutor(t)

	run(t, ex, "write_cells", `{"cells":{"A1":"name","B1":"qty","A2":"bolts","B2":7}}`)

	got := run(t, ex, "read_subtable", `{"col1":"A","col2":"B","row1":1,"row2":2}`)
	rows, ok := got.([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"name qty", "bolts 7"}, rows)
}

func TestReadSubtableRejectsBadBounds(t *testing.T) {
	ex, _ := newTestExecutor(t)

	got := run(t, ex, "read_subtable", `{"col1":"A","col2":"B","row1":0,"row2":2}`)
	assert.Equal(t, "Error: col1, col2, row1 and row2 are required", got)
}

func TestClearRange(t *testing.T) {
	ex, _ := newTestExecutor(t)

	run(t, ex, "write_cells", `{"cells":{"A1":"x"}}`)
	got := run(t, ex, "clear_range", `{"address":"A1:B2"}`)
	assert.Equal(t, "Cleared A1:B2", got)

	got = run(t, ex, "read_cells_text", `{"addresses":["A1"]}`)
	texts := got.(map[string]string)
	assert.Equal(t, "", texts["A1"])
}

func TestFormulaRoundTrip(t *testing.T) {
	ex, _ := newTestExecutor(t)

	got := run(t, ex, "set_formula", `{"address":"C1","formula":"=SUM(A1:B1)"}`)
	assert.Equal(t, "Formula set", got)

	got = run(t, ex, "get_formula", `{"address":"C1"}`)
	assert.Equal(t, "=SUM(A1:B1)", got)
}

func TestWriteCellsRoutesFormulaStrings(t *testing.T) {
	ex, _ := newTestExecutor(t)

	run(t, ex, "write_cells", `{"cells":{"D1":"=A1+B1"}}`)

	got := run(t, ex, "get_formula", `{"address":"D1"}`)
	assert.Equal(t, "=A1+B1", got)
}

func TestExtendFormula(t *testing.T) {
	ex, _ := newTestExecutor(t)

	run(t, ex, "set_formula", `{"address":"C1","formula":"=A1+B1"}`)
	got := run(t, ex, "extend_cell_formula", `{"source":"C1","target":"C1:C3"}`)
	assert.Equal(t, "Extended C1 to C1:C3", got)

	got = run(t, ex, "get_formula", `{"address":"C3"}`)
	assert.Equal(t, "=A3+B3", got)
}
