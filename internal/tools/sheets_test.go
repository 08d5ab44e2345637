package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetLifecycleTools(t *testing.T) {
	ex, _ := newTestExecutor(t)

	got := run(t, ex, "get_active_sheet", `{}`)
	assert.Equal(t, "Sheet1", got)

	got = run(t, ex, "create_sheet", `{"name":"Data"}`)
	assert.Equal(t, `Sheet "Data" created`, got)

	got = run(t, ex, "activate_sheet", `{"name":"Data"}`)
	assert.Equal(t, `Sheet "Data" activated`, got)
	assert.Equal(t, "Data", run(t, ex, "get_active_sheet", `{}`))

	got = run(t, ex, "rename_sheet", `{"oldName":"Data","newName":"Results"}`)
	assert.Equal(t, `Sheet "Data" renamed to "Results"`, got)

	got = run(t, ex, "list_sheets", `{}`)
	names, ok := got.([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"Sheet1", "Results"}, names)

	got = run(t, ex, "delete_sheet", `{"name":"Results"}`)
	assert.Equal(t, `Sheet "Results" deleted`, got)
}

func TestSheetToolErrors(t *testing.T) {
	ex, _ := newTestExecutor(t)

	tests := []struct {
		name string
		tool string
		args string
		want string
	}{
		{"missing name", "create_sheet", `{}`, "Error: name is required"},
		{"duplicate", "create_sheet", `{"name":"Sheet1"}`, `Error: sheet "Sheet1" already exists`},
		{"activate unknown", "activate_sheet", `{"name":"Nope"}`, `Error: sheet "Nope" not found`},
		{"delete last", "delete_sheet", `{"name":"Sheet1"}`, `Error: cannot delete the only sheet "Sheet1"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, run(t, ex, tc.tool, tc.args))
		})
	}
}

func TestUsedRangeAndSelection(t *testing.T) {
	ex, _ := newTestExecutor(t)

	assert.Equal(t, "Sheet is empty", run(t, ex, "get_used_range", `{}`))

	run(t, ex, "write_cells", `{"cells":{"B2":"x","D7":"y"}}`)
	assert.Equal(t, "B2:D7", run(t, ex, "get_used_range", `{}`))

	assert.Equal(t, "A1", run(t, ex, "get_selection", `{}`))
}
