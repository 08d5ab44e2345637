package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/adrianariton/cellbridge/internal/host"
)

type getActiveSheetTool struct {
	conn host.Connector
}

func (getActiveSheetTool) Name() string { return "get_active_sheet" }
func (getActiveSheetTool) Description() string {
	return "Get the name of the currently active worksheet."
}

func (t getActiveSheetTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var name string
	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		name = sc.ActiveSheetName()
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return name, nil
}

type listSheetsTool struct {
	conn host.Connector
}

func (listSheetsTool) Name() string { return "list_sheets" }
func (listSheetsTool) Description() string {
	return "List all worksheet names in the workbook."
}

func (t listSheetsTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var names []string
	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		names = sc.SheetNames()
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

type createSheetTool struct {
	conn host.Connector
}

func (createSheetTool) Name() string { return "create_sheet" }
func (createSheetTool) Description() string {
	return "Create a new worksheet."
}

func (t createSheetTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	name, err := requireName(args, "name")
	if err != nil {
		return nil, err
	}

	err = t.conn.OpenScope(ctx, func(sc host.Scope) error {
		sc.AddSheet(name)
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Sheet %q created", name), nil
}

type activateSheetTool struct {
	conn host.Connector
}

func (activateSheetTool) Name() string { return "activate_sheet" }
func (activateSheetTool) Description() string {
	return "Switch to a specific worksheet."
}

func (t activateSheetTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	name, err := requireName(args, "name")
	if err != nil {
		return nil, err
	}

	err = t.conn.OpenScope(ctx, func(sc host.Scope) error {
		sc.ActivateSheet(name)
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Sheet %q activated", name), nil
}

type renameSheetTool struct {
	conn host.Connector
}

func (renameSheetTool) Name() string { return "rename_sheet" }
func (renameSheetTool) Description() string {
	return "Rename a worksheet."
}

func (t renameSheetTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var p struct {
		OldName string `json:"oldName"`
		NewName string `json:"newName"`
	}
	if err := unmarshalArgs(args, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if p.OldName == "" || p.NewName == "" {
		return nil, errors.New("oldName and newName are required")
	}

	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		sc.RenameSheet(p.OldName, p.NewName)
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Sheet %q renamed to %q", p.OldName, p.NewName), nil
}

type deleteSheetTool struct {
	conn host.Connector
}

func (deleteSheetTool) Name() string { return "delete_sheet" }
func (deleteSheetTool) Description() string {
	return "Delete a worksheet."
}

func (t deleteSheetTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	name, err := requireName(args, "name")
	if err != nil {
		return nil, err
	}

	err = t.conn.OpenScope(ctx, func(sc host.Scope) error {
		sc.DeleteSheet(name)
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Sheet %q deleted", name), nil
}

type getUsedRangeTool struct {
	conn host.Connector
}

func (getUsedRangeTool) Name() string { return "get_used_range" }
func (getUsedRangeTool) Description() string {
	return "Get the address of the populated area on the active sheet."
}

func (t getUsedRangeTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var addr string
	var ok bool
	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		addr, ok = sc.UsedRangeAddress()
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return "Sheet is empty", nil
	}
	return addr, nil
}

type getSelectionTool struct {
	conn host.Connector
}

func (getSelectionTool) Name() string { return "get_selection" }
func (getSelectionTool) Description() string {
	return "Get the address of the current selection."
}

func (t getSelectionTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var addr string
	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		addr = sc.SelectionAddress()
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func requireName(args json.RawMessage, field string) (string, error) {
	var p map[string]string
	if err := unmarshalArgs(args, &p); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if p[field] == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	return p[field], nil
}
