package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/adrianariton/cellbridge/internal/host"
)

type createTableTool struct {
	conn host.Connector
}

func (createTableTool) Name() string { return "create_table" }
func (createTableTool) Description() string {
	return "Create a table over a range on the active sheet."
}

func (t createTableTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var p struct {
		Address    string `json:"address"`
		Name       string `json:"name"`
		HasHeaders *bool  `json:"hasHeaders"`
	}
	if err := unmarshalArgs(args, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if p.Address == "" {
		return nil, errors.New("address is required")
	}

	spec := host.TableSpec{
		Name:       p.Name,
		Address:    p.Address,
		HasHeaders: true,
	}
	if p.HasHeaders != nil {
		spec.HasHeaders = *p.HasHeaders
	}

	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		sc.AddTable(spec)
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return "Table created over " + p.Address, nil
}

type listTablesTool struct {
	conn host.Connector
}

func (listTablesTool) Name() string { return "list_tables" }
func (listTablesTool) Description() string {
	return "List the tables on the active sheet."
}

func (t listTablesTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var names []string
	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		names = sc.TableNames()
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

type deleteTableTool struct {
	conn host.Connector
}

func (deleteTableTool) Name() string { return "delete_table" }
func (deleteTableTool) Description() string {
	return "Delete a table by name."
}

func (t deleteTableTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	name, err := requireName(args, "name")
	if err != nil {
		return nil, err
	}

	err = t.conn.OpenScope(ctx, func(sc host.Scope) error {
		sc.DeleteTable(name)
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Table %q deleted", name), nil
}
