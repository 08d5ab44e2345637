// Package host defines the scoped-automation contract against the live
// spreadsheet document, plus an in-memory Workbook implementing it for the
// local host mode and tests.
//
// Operations against the document follow a strict shape: open a scope,
// queue range reads/writes and object creations against it, then issue one
// Sync. Queued work becomes visible to other scopes only after Sync, and
// loaded data is valid on its handle only after Sync. A scope is released
// when the callback returns, on every exit path.
package host

import "context"

// Connector opens scoped automation contexts against the host document.
type Connector interface {
	// OpenScope runs fn against a fresh scope and releases the scope when
	// fn returns. The returned error is fn's error, including anything
	// Sync surfaced.
	OpenScope(ctx context.Context, fn func(Scope) error) error
}

// Scope is one bounded automation session. Mutations queue until Sync;
// metadata queries (sheet names, selection, used range) read the last
// committed state directly.
type Scope interface {
	// Range returns a handle for an A1-style address, optionally prefixed
	// with a sheet name ("Data!B2:C4"). Address problems surface at Sync.
	Range(address string) Range

	ActiveSheetName() string
	SheetNames() []string
	AddSheet(name string)
	ActivateSheet(name string)
	RenameSheet(oldName, newName string)
	DeleteSheet(name string)

	AddChart(spec ChartSpec)
	DeleteAllCharts()

	AddTable(spec TableSpec)
	TableNames() []string
	DeleteTable(name string)

	// UsedRangeAddress reports the bounding rectangle of populated cells
	// on the active sheet. ok is false when the sheet is empty.
	UsedRangeAddress() (addr string, ok bool)
	SelectionAddress() string

	// Sync flushes every queued operation in queue order and fills queued
	// loads. It stops at the first failing operation; earlier queued
	// writes stay applied (multi-step operations are not atomic).
	Sync(ctx context.Context) error
}

// Range is a handle on a rectangular cell region. Load* methods queue
// reads; the corresponding accessors return data only after Sync.
// Mutators queue writes.
type Range interface {
	Address() string

	LoadText()
	LoadValues()
	LoadFormulas()
	Text() [][]string
	Values() [][]any
	Formulas() [][]string

	// SetValue writes v into every cell of the range. A string starting
	// with "=" is stored as a formula.
	SetValue(v any)
	SetValues(vals [][]any)
	SetFormula(formula string)
	SetNumberFormat(format string)
	SetFormat(f CellFormat)
	Clear()

	// AutoFill continues the range's pattern into the target address:
	// formulas shift their relative references, plain values copy.
	AutoFill(target string)
}

// ChartSpec describes a chart object to create on the active sheet.
type ChartSpec struct {
	DataRange  string
	Type       string
	Title      string
	Position   string
	Width      int
	Height     int
	HasHeaders bool
}

// TableSpec describes a table object to create on the active sheet.
type TableSpec struct {
	Name       string
	Address    string
	HasHeaders bool
}

// CellFormat holds visual formatting for a range. Zero-valued fields
// leave the existing formatting untouched.
type CellFormat struct {
	BackgroundColor     string `json:"backgroundColor,omitempty"`
	FontColor           string `json:"fontColor,omitempty"`
	FontSize            int    `json:"fontSize,omitempty"`
	Bold                bool   `json:"bold,omitempty"`
	Italic              bool   `json:"italic,omitempty"`
	HorizontalAlignment string `json:"horizontalAlignment,omitempty"`
	VerticalAlignment   string `json:"verticalAlignment,omitempty"`
}
