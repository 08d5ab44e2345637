// Package tools holds the closed set of operations the orchestrator may
// invoke against the host document, and the executor that runs them.
package tools

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/adrianariton/cellbridge/internal/host"
	"github.com/adrianariton/cellbridge/internal/logging"
)

// Tool is one operation the orchestrator can request.
type Tool interface {
	// Name returns the operation's wire identifier.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Execute runs the operation with the raw JSON arguments from the
	// request. Argument validation is the operation's own business.
	Execute(ctx context.Context, args json.RawMessage) (any, error)
}

// Registry is the closed name→implementation mapping. It is built once
// at startup; nothing registers into it afterwards.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry builds the full operation set over the given host connector.
func NewRegistry(conn host.Connector) *Registry {
	r := &Registry{tools: make(map[string]Tool)}

	for _, t := range []Tool{
		// cells
		writeCellsTool{conn},
		readCellsTextTool{conn},
		readCellsValuesTool{conn},
		readRangeTool{conn},
		readSubtableTool{conn},
		clearRangeTool{conn},
		extendFormulaTool{conn},
		getFormulaTool{conn},
		setFormulaTool{conn},
		// worksheets
		getActiveSheetTool{conn},
		listSheetsTool{conn},
		createSheetTool{conn},
		activateSheetTool{conn},
		renameSheetTool{conn},
		deleteSheetTool{conn},
		// formatting
		formatCellsTool{conn},
		setNumberFormatTool{conn},
		// charts
		createChartTool{conn},
		deleteAllChartsTool{conn},
		// tables
		createTableTool{conn},
		listTablesTool{conn},
		deleteTableTool{conn},
		// utilities
		getUsedRangeTool{conn},
		getSelectionTool{conn},
	} {
		r.tools[t.Name()] = t
	}
	return r
}

// Resolve looks up an operation by name.
func (r *Registry) Resolve(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered operation names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invocation is the ephemeral correlation context for one executor call.
// It exists only for the duration of Execute and is never persisted.
type Invocation struct {
	RequestID string
	ToolName  string
	Args      json.RawMessage
}

// Executor resolves and runs registry operations. Every outcome — value,
// operation error, or unknown name — comes back as a result payload; the
// executor itself never fails.
type Executor struct {
	reg *Registry
	log *logging.Logger
}

// NewExecutor creates an executor over the given registry.
func NewExecutor(reg *Registry, log *logging.Logger) *Executor {
	return &Executor{reg: reg, log: log.Sub("executor")}
}

// Execute runs one invocation to completion. Failures are encoded as
// strings in the result; the payload shape is the only distinguisher.
func (e *Executor) Execute(ctx context.Context, inv Invocation) any {
	t, ok := e.reg.Resolve(inv.ToolName)
	if !ok {
		e.log.Warn().Str("tool", inv.ToolName).Str("requestId", inv.RequestID).Msg("unknown operation requested")
		return "Unknown operation: " + inv.ToolName
	}

	e.log.Debug().Str("tool", inv.ToolName).Str("requestId", inv.RequestID).Msg("executing operation")

	result, err := t.Execute(ctx, inv.Args)
	if err != nil {
		e.log.Warn().Err(err).Str("tool", inv.ToolName).Str("requestId", inv.RequestID).Msg("operation failed")
		return "Error: " + err.Error()
	}
	return result
}

// unmarshalArgs decodes raw request arguments, treating absent args as an
// empty object.
func unmarshalArgs(args json.RawMessage, target any) error {
	if len(args) == 0 {
		return nil
	}
	return json.Unmarshal(args, target)
}
