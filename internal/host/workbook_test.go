package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAndSync(t *testing.T, wb *Workbook, fn func(sc Scope)) {
	t.Helper()
	err := wb.OpenScope(context.Background(), func(sc Scope) error {
		fn(sc)
		return sc.Sync(context.Background())
	})
	require.NoError(t, err)
}

func TestWriteThenReadBack(t *testing.T) {
	wb := NewWorkbook()

	openAndSync(t, wb, func(sc Scope) {
		sc.Range("A1").SetValue("Hello")
		sc.Range("B2").SetValue(42.0)
	})

	var r Range
	openAndSync(t, wb, func(sc Scope) {
		r = sc.Range("A1:B2")
		r.LoadText()
		r.LoadValues()
	})

	assert.Equal(t, [][]string{{"Hello", ""}, {"", "42"}}, r.Text())
	assert.Equal(t, [][]any{{"Hello", nil}, {nil, 42.0}}, r.Values())
}

func TestQueuedWriteInvisibleBeforeSync(t *testing.T) {
	wb := NewWorkbook()
	ctx := context.Background()

	err := wb.OpenScope(ctx, func(sc Scope) error {
		sc.Range("A1").SetValue("pending")

		// A second scope syncing before ours must not see the write.
		err := wb.OpenScope(ctx, func(other Scope) error {
			r := other.Range("A1")
			r.LoadValues()
			if err := other.Sync(ctx); err != nil {
				return err
			}
			assert.Nil(t, r.Values()[0][0])
			return nil
		})
		require.NoError(t, err)

		return sc.Sync(ctx)
	})
	require.NoError(t, err)

	var r Range
	openAndSync(t, wb, func(sc Scope) {
		r = sc.Range("A1")
		r.LoadValues()
	})
	assert.Equal(t, "pending", r.Values()[0][0])
}

func TestFormulaStringsRouteToFormulaSlot(t *testing.T) {
	wb := NewWorkbook()

	openAndSync(t, wb, func(sc Scope) {
		sc.Range("C1").SetValue("=A1+B1")
	})

	var r Range
	openAndSync(t, wb, func(sc Scope) {
		r = sc.Range("C1")
		r.LoadFormulas()
		r.LoadValues()
		r.LoadText()
	})

	assert.Equal(t, "=A1+B1", r.Formulas()[0][0])
	assert.Nil(t, r.Values()[0][0])
	assert.Equal(t, "=A1+B1", r.Text()[0][0])
}

func TestSyncStopsAtFirstFailure(t *testing.T) {
	wb := NewWorkbook()
	ctx := context.Background()

	err := wb.OpenScope(ctx, func(sc Scope) error {
		sc.Range("A1").SetValue("kept")
		sc.Range("not-an-address").SetValue("boom")
		sc.Range("B1").SetValue("never applied")
		return sc.Sync(ctx)
	})
	require.Error(t, err)

	// The write queued before the failure stays applied; the one after
	// never ran. Multi-step operations are not atomic.
	var r Range
	openAndSync(t, wb, func(sc Scope) {
		r = sc.Range("A1:B1")
		r.LoadValues()
	})
	assert.Equal(t, "kept", r.Values()[0][0])
	assert.Nil(t, r.Values()[0][1])
}

func TestClearRange(t *testing.T) {
	wb := NewWorkbook()

	openAndSync(t, wb, func(sc Scope) {
		sc.Range("A1:B2").SetValue("x")
	})
	openAndSync(t, wb, func(sc Scope) {
		sc.Range("A1:A2").Clear()
	})

	var r Range
	openAndSync(t, wb, func(sc Scope) {
		r = sc.Range("A1:B2")
		r.LoadText()
	})
	assert.Equal(t, [][]string{{"", "x"}, {"", "x"}}, r.Text())
}

func TestAutoFillShiftsRelativeRefs(t *testing.T) {
	wb := NewWorkbook()

	openAndSync(t, wb, func(sc Scope) {
		sc.Range("C1").SetValue("=A1+$B$1")
	})
	openAndSync(t, wb, func(sc Scope) {
		sc.Range("C1").AutoFill("C1:C3")
	})

	var r Range
	openAndSync(t, wb, func(sc Scope) {
		r = sc.Range("C1:C3")
		r.LoadFormulas()
	})
	assert.Equal(t, [][]string{{"=A1+$B$1"}, {"=A2+$B$1"}, {"=A3+$B$1"}}, r.Formulas())
}

func TestAutoFillCopiesPlainValues(t *testing.T) {
	wb := NewWorkbook()

	openAndSync(t, wb, func(sc Scope) {
		sc.Range("A1").SetValue(7.0)
	})
	openAndSync(t, wb, func(sc Scope) {
		sc.Range("A1").AutoFill("A1:A3")
	})

	var r Range
	openAndSync(t, wb, func(sc Scope) {
		r = sc.Range("A1:A3")
		r.LoadValues()
	})
	assert.Equal(t, [][]any{{7.0}, {7.0}, {7.0}}, r.Values())
}

func TestSheetLifecycle(t *testing.T) {
	wb := NewWorkbook()

	openAndSync(t, wb, func(sc Scope) {
		sc.AddSheet("Data")
	})
	openAndSync(t, wb, func(sc Scope) {
		assert.Equal(t, []string{"Sheet1", "Data"}, sc.SheetNames())
		sc.ActivateSheet("Data")
	})
	openAndSync(t, wb, func(sc Scope) {
		assert.Equal(t, "Data", sc.ActiveSheetName())
		sc.RenameSheet("Data", "Numbers")
	})
	openAndSync(t, wb, func(sc Scope) {
		assert.Equal(t, []string{"Sheet1", "Numbers"}, sc.SheetNames())
		sc.DeleteSheet("Numbers")
	})
	openAndSync(t, wb, func(sc Scope) {
		assert.Equal(t, []string{"Sheet1"}, sc.SheetNames())
		assert.Equal(t, "Sheet1", sc.ActiveSheetName())
	})
}

func TestSheetErrors(t *testing.T) {
	wb := NewWorkbook()
	ctx := context.Background()

	err := wb.OpenScope(ctx, func(sc Scope) error {
		sc.AddSheet("Sheet1")
		return sc.Sync(ctx)
	})
	assert.ErrorContains(t, err, "already exists")

	err = wb.OpenScope(ctx, func(sc Scope) error {
		sc.DeleteSheet("Sheet1")
		return sc.Sync(ctx)
	})
	assert.ErrorContains(t, err, "only sheet")

	err = wb.OpenScope(ctx, func(sc Scope) error {
		sc.ActivateSheet("Nope")
		return sc.Sync(ctx)
	})
	assert.ErrorContains(t, err, "not found")
}

func TestSheetPrefixedAddress(t *testing.T) {
	wb := NewWorkbook()

	openAndSync(t, wb, func(sc Scope) {
		sc.AddSheet("Data")
	})
	openAndSync(t, wb, func(sc Scope) {
		sc.Range("Data!A1").SetValue("remote")
	})

	var r Range
	openAndSync(t, wb, func(sc Scope) {
		r = sc.Range("Data!A1")
		r.LoadText()
	})
	assert.Equal(t, "remote", r.Text()[0][0])
}

func TestChartsAndIdempotentDelete(t *testing.T) {
	wb := NewWorkbook()

	openAndSync(t, wb, func(sc Scope) {
		sc.AddChart(ChartSpec{DataRange: "A1:B5", Type: "Column", Title: "Chart"})
		sc.AddChart(ChartSpec{DataRange: "A1:B5", Type: "Line", Title: "Trend"})
	})
	assert.Len(t, wb.Charts(), 2)

	openAndSync(t, wb, func(sc Scope) {
		sc.DeleteAllCharts()
	})
	assert.Empty(t, wb.Charts())

	// Second delete with nothing to remove succeeds identically.
	openAndSync(t, wb, func(sc Scope) {
		sc.DeleteAllCharts()
	})
	assert.Empty(t, wb.Charts())
}

func TestTables(t *testing.T) {
	wb := NewWorkbook()

	openAndSync(t, wb, func(sc Scope) {
		sc.AddTable(TableSpec{Address: "A1:C5", Name: "Sales", HasHeaders: true})
		sc.AddTable(TableSpec{Address: "E1:F3"})
	})
	openAndSync(t, wb, func(sc Scope) {
		assert.Equal(t, []string{"Sales", "Table1"}, sc.TableNames())
		sc.DeleteTable("Sales")
	})
	openAndSync(t, wb, func(sc Scope) {
		assert.Equal(t, []string{"Table1"}, sc.TableNames())
	})

	err := wb.OpenScope(context.Background(), func(sc Scope) error {
		sc.DeleteTable("Sales")
		return sc.Sync(context.Background())
	})
	assert.ErrorContains(t, err, "not found")
}

func TestUsedRangeAndSelection(t *testing.T) {
	wb := NewWorkbook()

	openAndSync(t, wb, func(sc Scope) {
		_, ok := sc.UsedRangeAddress()
		assert.False(t, ok)
		assert.Equal(t, "A1", sc.SelectionAddress())

		sc.Range("B2").SetValue(1.0)
		sc.Range("D7").SetValue(2.0)
	})

	openAndSync(t, wb, func(sc Scope) {
		addr, ok := sc.UsedRangeAddress()
		assert.True(t, ok)
		assert.Equal(t, "B2:D7", addr)
	})
}

func TestSetValuesShapeMismatch(t *testing.T) {
	wb := NewWorkbook()
	ctx := context.Background()

	err := wb.OpenScope(ctx, func(sc Scope) error {
		sc.Range("A1:B2").SetValues([][]any{{1.0, 2.0}})
		return sc.Sync(ctx)
	})
	assert.ErrorContains(t, err, "rows")
}

func TestSyncHonorsContext(t *testing.T) {
	wb := NewWorkbook()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := wb.OpenScope(context.Background(), func(sc Scope) error {
		sc.Range("A1").SetValue("x")
		return sc.Sync(ctx)
	})
	assert.ErrorIs(t, err, context.Canceled)
}
