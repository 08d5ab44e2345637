package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adrianariton/cellbridge/internal/host"
)

// Chart defaults applied when the request leaves fields unset.
const (
	defaultChartType   = "Column"
	defaultChartTitle  = "Chart"
	defaultChartPos    = "D2"
	defaultChartWidth  = 400
	defaultChartHeight = 300
)

type createChartTool struct {
	conn host.Connector
}

func (createChartTool) Name() string { return "create_chart" }
func (createChartTool) Description() string {
	return "Create a chart from a data range on the active sheet."
}

func (t createChartTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var p struct {
		DataRange  string `json:"dataRange"`
		ChartType  string `json:"chartType"`
		Title      string `json:"title"`
		HasHeaders *bool  `json:"hasHeaders"`
		Position   string `json:"position"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
	}
	if err := unmarshalArgs(args, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	spec := host.ChartSpec{
		DataRange:  p.DataRange,
		Type:       defaultChartType,
		Title:      defaultChartTitle,
		Position:   defaultChartPos,
		Width:      defaultChartWidth,
		Height:     defaultChartHeight,
		HasHeaders: true,
	}
	if p.ChartType != "" {
		spec.Type = p.ChartType
	}
	if p.Title != "" {
		spec.Title = p.Title
	}
	if p.Position != "" {
		spec.Position = p.Position
	}
	if p.Width > 0 {
		spec.Width = p.Width
	}
	if p.Height > 0 {
		spec.Height = p.Height
	}
	if p.HasHeaders != nil {
		spec.HasHeaders = *p.HasHeaders
	}

	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		sc.AddChart(spec)
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Chart %q created at %s", spec.Title, spec.Position), nil
}

type deleteAllChartsTool struct {
	conn host.Connector
}

func (deleteAllChartsTool) Name() string { return "delete_all_charts" }
func (deleteAllChartsTool) Description() string {
	return "Remove every chart on the active sheet."
}

func (t deleteAllChartsTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	err := t.conn.OpenScope(ctx, func(sc host.Scope) error {
		sc.DeleteAllCharts()
		return sc.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	// Constant message keeps repeated calls indistinguishable.
	return "All charts deleted", nil
}
