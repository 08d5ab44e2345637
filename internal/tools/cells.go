package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/adrianariton/cellbridge/internal/host"
)

type writeCellsTool struct {
	conn host.Connector
}

func (writeCellsTool) Name() string { return "write_cells" }
func (writeCellsTool) Description() string {
	return "Write values or formulas into cells, keyed by address."
}

func (t writeCellsTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var p struct {
		Cells map[string]any `json:"cells"`
	}
	if err := unmarshalArgs(args, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if len(p.Cells) == 0 {
		return nil, errors.New("no cells provided")
	}

	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		for addr, v := range p.Cells {
			sc.Range(addr).SetValue(v)
		}
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return "Success", nil
}

type readCellsTextTool struct {
	conn host.Connector
}

func (readCellsTextTool) Name() string { return "read_cells_text" }
func (readCellsTextTool) Description() string {
	return "Read the displayed text of specific cells."
}

func (t readCellsTextTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	addresses, err := parseAddressList(args)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(addresses))
	// An empty address list short-circuits without touching the host.
	if len(addresses) == 0 {
		return out, nil
	}

	err = t.conn.OpenScope(ctx, func(sc host.Scope) error {
		handles := make(map[string]host.Range, len(addresses))
		for _, addr := range addresses {
			r := sc.Range(addr)
			r.LoadText()
			handles[addr] = r
		}
		if err := sc.Sync(ctx); err != nil {
			return err
		}
		for addr, r := range handles {
			out[addr] = firstCell(r.Text(), "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type readCellsValuesTool struct {
	conn host.Connector
}

func (readCellsValuesTool) Name() string { return "read_cells_values" }
func (readCellsValuesTool) Description() string {
	return "Read the raw values of specific cells."
}

func (t readCellsValuesTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	addresses, err := parseAddressList(args)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(addresses))
	if len(addresses) == 0 {
		return out, nil
	}

	err = t.conn.OpenScope(ctx, func(sc host.Scope) error {
		handles := make(map[string]host.Range, len(addresses))
		for _, addr := range addresses {
			r := sc.Range(addr)
			r.LoadValues()
			handles[addr] = r
		}
		if err := sc.Sync(ctx); err != nil {
			return err
		}
		for addr, r := range handles {
			out[addr] = firstCell(r.Values(), nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type readRangeTool struct {
	conn host.Connector
}

func (readRangeTool) Name() string { return "read_range" }
func (readRangeTool) Description() string {
	return "Read all values from a range as a 2D array."
}

func (t readRangeTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var p struct {
		Address string `json:"address"`
	}
	if err := unmarshalArgs(args, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if p.Address == "" {
		return nil, errors.New("address is required")
	}

	var values [][]any
	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		r := sc.Range(p.Address)
		r.LoadValues()
		if err := sc.Sync(ctx); err != nil {
			return err
		}
		values = r.Values()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

type readSubtableTool struct {
	conn host.Connector
}

func (readSubtableTool) Name() string { return "read_subtable" }
func (readSubtableTool) Description() string {
	return "Read a block of cells as rows of space-joined text."
}

func (t readSubtableTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var p struct {
		Col1 string `json:"col1"`
		Col2 string `json:"col2"`
		Row1 int    `json:"row1"`
		Row2 int    `json:"row2"`
	}
	if err := unmarshalArgs(args, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if p.Col1 == "" || p.Col2 == "" || p.Row1 < 1 || p.Row2 < 1 {
		return nil, errors.New("col1, col2, row1 and row2 are required")
	}

	address := fmt.Sprintf("%s%d:%s%d", p.Col1, p.Row1, p.Col2, p.Row2)

	var rows []string
	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		r := sc.Range(address)
		r.LoadText()
		if err := sc.Sync(ctx); err != nil {
			return err
		}
		// Joining cells per row is lossy: empty cells collapse into the
		// separators.
		for _, line := range r.Text() {
			rows = append(rows, strings.Join(line, " "))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type clearRangeTool struct {
	conn host.Connector
}

func (clearRangeTool) Name() string { return "clear_range" }
func (clearRangeTool) Description() string {
	return "Clear the contents of a range."
}

func (t clearRangeTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var p struct {
		Address string `json:"address"`
	}
	if err := unmarshalArgs(args, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if p.Address == "" {
		return nil, errors.New("address is required")
	}

	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		sc.Range(p.Address).Clear()
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return "Cleared " + p.Address, nil
}

type extendFormulaTool struct {
	conn host.Connector
}

func (extendFormulaTool) Name() string { return "extend_cell_formula" }
func (extendFormulaTool) Description() string {
	return "Auto-fill a cell's pattern into a target range."
}

func (t extendFormulaTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var p struct {
		Source string `json:"source"`
		Target string `json:"target"`
	}
	if err := unmarshalArgs(args, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if p.Source == "" || p.Target == "" {
		return nil, errors.New("source and target are required")
	}

	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		sc.Range(p.Source).AutoFill(p.Target)
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Extended %s to %s", p.Source, p.Target), nil
}

type getFormulaTool struct {
	conn host.Connector
}

func (getFormulaTool) Name() string { return "get_formula" }
func (getFormulaTool) Description() string {
	return "Read the formula stored in a cell."
}

func (t getFormulaTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var p struct {
		Address string `json:"address"`
	}
	if err := unmarshalArgs(args, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if p.Address == "" {
		return nil, errors.New("address is required")
	}

	var formula string
	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		r := sc.Range(p.Address)
		r.LoadFormulas()
		if err := sc.Sync(ctx); err != nil {
			return err
		}
		formula = firstCell(r.Formulas(), "")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return formula, nil
}

type setFormulaTool struct {
	conn host.Connector
}

func (setFormulaTool) Name() string { return "set_formula" }
func (setFormulaTool) Description() string {
	return "Write a formula into a cell or range."
}

func (t setFormulaTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var p struct {
		Address string `json:"address"`
		Formula string `json:"formula"`
	}
	if err := unmarshalArgs(args, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if p.Address == "" || p.Formula == "" {
		return nil, errors.New("address and formula are required")
	}

	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		sc.Range(p.Address).SetFormula(p.Formula)
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return "Formula set", nil
}

func parseAddressList(args json.RawMessage) ([]string, error) {
	var p struct {
		Addresses []string `json:"addresses"`
	}
	if err := unmarshalArgs(args, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return p.Addresses, nil
}

// firstCell extracts the top-left cell of a loaded matrix, or fallback
// when the matrix is empty.
func firstCell[T any](m [][]T, fallback T) T {
	if len(m) == 0 || len(m[0]) == 0 {
		return fallback
	}
	return m[0][0]
}
