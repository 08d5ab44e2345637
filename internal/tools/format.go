package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/adrianariton/cellbridge/internal/host"
)

type formatCellsTool struct {
	conn host.Connector
}

func (formatCellsTool) Name() string { return "format_cells" }
func (formatCellsTool) Description() string {
	return "Apply visual formatting (colors, fonts, alignment) to a range."
}

func (t formatCellsTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var p struct {
		Address string          `json:"address"`
		Format  host.CellFormat `json:"format"`
	}
	if err := unmarshalArgs(args, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if p.Address == "" {
		return nil, errors.New("address is required")
	}

	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		sc.Range(p.Address).SetFormat(p.Format)
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return "Formatting applied to " + p.Address, nil
}

type setNumberFormatTool struct {
	conn host.Connector
}

func (setNumberFormatTool) Name() string { return "set_number_format" }
func (setNumberFormatTool) Description() string {
	return "Set the number format string for a range."
}

func (t setNumberFormatTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var p struct {
		Address string `json:"address"`
		Format  string `json:"format"`
	}
	if err := unmarshalArgs(args, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if p.Address == "" || p.Format == "" {
		return nil, errors.New("address and format are required")
	}

	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		sc.Range(p.Address).SetNumberFormat(p.Format)
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return "Number format set for " + p.Address, nil
}
