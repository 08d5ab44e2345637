package host

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Workbook is an in-memory host document. It implements Connector and
// serves as the local host mode and the test double for the real,
// externally owned document.
//
// Each scope's queued operations apply atomically with respect to other
// scopes' Syncs, but nothing serializes whole operations against each
// other: two concurrent operations touching overlapping ranges race, as
// the live document would.
type Workbook struct {
	mu        sync.Mutex
	sheets    []*sheetData
	active    int
	selection string
	tableSeq  int
}

type sheetData struct {
	name   string
	cells  map[cellKey]*cellData
	charts []ChartSpec
	tables []TableSpec
}

type cellKey struct {
	col, row int
}

type cellData struct {
	value   any
	formula string
	numFmt  string
	format  CellFormat
}

// NewWorkbook creates a workbook with a single empty sheet.
func NewWorkbook() *Workbook {
	return &Workbook{
		sheets:    []*sheetData{newSheet("Sheet1")},
		selection: "A1",
	}
}

func newSheet(name string) *sheetData {
	return &sheetData{name: name, cells: make(map[cellKey]*cellData)}
}

// OpenScope implements Connector.
func (wb *Workbook) OpenScope(ctx context.Context, fn func(Scope) error) error {
	sc := &memScope{wb: wb}
	err := fn(sc)
	sc.released = true
	return err
}

// Charts returns a snapshot of the active sheet's chart objects.
func (wb *Workbook) Charts() []ChartSpec {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	out := make([]ChartSpec, len(wb.activeSheet().charts))
	copy(out, wb.activeSheet().charts)
	return out
}

func (wb *Workbook) activeSheet() *sheetData {
	return wb.sheets[wb.active]
}

func (wb *Workbook) sheetByName(name string) (*sheetData, int, error) {
	for i, sh := range wb.sheets {
		if sh.name == name {
			return sh, i, nil
		}
	}
	return nil, 0, fmt.Errorf("sheet %q not found", name)
}

// resolve maps an address (with optional sheet prefix) onto a sheet and a
// normalized rectangle. Caller holds wb.mu.
func (wb *Workbook) resolve(address string) (*sheetData, rect, error) {
	sheetName, rest := splitSheet(address)
	sh := wb.activeSheet()
	if sheetName != "" {
		var err error
		sh, _, err = wb.sheetByName(sheetName)
		if err != nil {
			return nil, rect{}, err
		}
	}
	r, err := parseRect(rest)
	if err != nil {
		return nil, rect{}, err
	}
	return sh, r, nil
}

func (sh *sheetData) cell(k cellKey) *cellData {
	c, ok := sh.cells[k]
	if !ok {
		c = &cellData{}
		sh.cells[k] = c
	}
	return c
}

// cellText renders a cell the way the document displays it. Formula cells
// are not evaluated; they render as their formula string.
func (sh *sheetData) cellText(k cellKey) string {
	c, ok := sh.cells[k]
	if !ok {
		return ""
	}
	if c.value == nil {
		if c.formula != "" {
			return c.formula
		}
		return ""
	}
	return fmt.Sprint(c.value)
}

// memScope is a Workbook automation scope. All mutations and loads queue
// into ops; Sync drains the queue under the workbook lock.
type memScope struct {
	wb       *Workbook
	ops      []func(*Workbook) error
	released bool
}

func (sc *memScope) queue(op func(*Workbook) error) {
	sc.ops = append(sc.ops, op)
}

func (sc *memScope) Range(address string) Range {
	return &memRange{sc: sc, addr: address}
}

func (sc *memScope) ActiveSheetName() string {
	sc.wb.mu.Lock()
	defer sc.wb.mu.Unlock()
	return sc.wb.activeSheet().name
}

func (sc *memScope) SheetNames() []string {
	sc.wb.mu.Lock()
	defer sc.wb.mu.Unlock()
	names := make([]string, len(sc.wb.sheets))
	for i, sh := range sc.wb.sheets {
		names[i] = sh.name
	}
	return names
}

func (sc *memScope) AddSheet(name string) {
	sc.queue(func(wb *Workbook) error {
		if _, _, err := wb.sheetByName(name); err == nil {
			return fmt.Errorf("sheet %q already exists", name)
		}
		wb.sheets = append(wb.sheets, newSheet(name))
		return nil
	})
}

func (sc *memScope) ActivateSheet(name string) {
	sc.queue(func(wb *Workbook) error {
		_, i, err := wb.sheetByName(name)
		if err != nil {
			return err
		}
		wb.active = i
		return nil
	})
}

func (sc *memScope) RenameSheet(oldName, newName string) {
	sc.queue(func(wb *Workbook) error {
		sh, _, err := wb.sheetByName(oldName)
		if err != nil {
			return err
		}
		if _, _, err := wb.sheetByName(newName); err == nil {
			return fmt.Errorf("sheet %q already exists", newName)
		}
		sh.name = newName
		return nil
	})
}

func (sc *memScope) DeleteSheet(name string) {
	sc.queue(func(wb *Workbook) error {
		_, i, err := wb.sheetByName(name)
		if err != nil {
			return err
		}
		if len(wb.sheets) == 1 {
			return fmt.Errorf("cannot delete the only sheet %q", name)
		}
		wb.sheets = append(wb.sheets[:i], wb.sheets[i+1:]...)
		if wb.active >= i && wb.active > 0 {
			wb.active--
		}
		return nil
	})
}

func (sc *memScope) AddChart(spec ChartSpec) {
	sc.queue(func(wb *Workbook) error {
		sh := wb.activeSheet()
		sh.charts = append(sh.charts, spec)
		return nil
	})
}

func (sc *memScope) DeleteAllCharts() {
	sc.queue(func(wb *Workbook) error {
		wb.activeSheet().charts = nil
		return nil
	})
}

func (sc *memScope) AddTable(spec TableSpec) {
	sc.queue(func(wb *Workbook) error {
		sh := wb.activeSheet()
		if spec.Name == "" {
			wb.tableSeq++
			spec.Name = fmt.Sprintf("Table%d", wb.tableSeq)
		}
		for _, t := range sh.tables {
			if t.Name == spec.Name {
				return fmt.Errorf("table %q already exists", spec.Name)
			}
		}
		if _, _, err := wb.resolve(spec.Address); err != nil {
			return err
		}
		sh.tables = append(sh.tables, spec)
		return nil
	})
}

func (sc *memScope) TableNames() []string {
	sc.wb.mu.Lock()
	defer sc.wb.mu.Unlock()
	sh := sc.wb.activeSheet()
	names := make([]string, len(sh.tables))
	for i, t := range sh.tables {
		names[i] = t.Name
	}
	return names
}

func (sc *memScope) DeleteTable(name string) {
	sc.queue(func(wb *Workbook) error {
		sh := wb.activeSheet()
		for i, t := range sh.tables {
			if t.Name == name {
				sh.tables = append(sh.tables[:i], sh.tables[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("table %q not found", name)
	})
}

func (sc *memScope) UsedRangeAddress() (string, bool) {
	sc.wb.mu.Lock()
	defer sc.wb.mu.Unlock()
	sh := sc.wb.activeSheet()
	if len(sh.cells) == 0 {
		return "", false
	}
	var r rect
	first := true
	for k := range sh.cells {
		if first {
			r = rect{c1: k.col, r1: k.row, c2: k.col, r2: k.row}
			first = false
			continue
		}
		r.c1 = min(r.c1, k.col)
		r.r1 = min(r.r1, k.row)
		r.c2 = max(r.c2, k.col)
		r.r2 = max(r.r2, k.row)
	}
	return rectAddress(r), true
}

func (sc *memScope) SelectionAddress() string {
	sc.wb.mu.Lock()
	defer sc.wb.mu.Unlock()
	return sc.wb.selection
}

// Sync drains the queue in order under the workbook lock, stopping at the
// first failing operation.
func (sc *memScope) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sc.released {
		return fmt.Errorf("sync on released scope")
	}

	sc.wb.mu.Lock()
	defer sc.wb.mu.Unlock()

	ops := sc.ops
	sc.ops = nil
	for _, op := range ops {
		if err := op(sc.wb); err != nil {
			return err
		}
	}
	return nil
}

// memRange is a Range handle against a Workbook scope.
type memRange struct {
	sc   *memScope
	addr string

	text     [][]string
	values   [][]any
	formulas [][]string
}

func (r *memRange) Address() string { return r.addr }

func (r *memRange) LoadText() {
	r.sc.queue(func(wb *Workbook) error {
		sh, rc, err := wb.resolve(r.addr)
		if err != nil {
			return err
		}
		r.text = gather(rc, func(k cellKey) string { return sh.cellText(k) })
		return nil
	})
}

func (r *memRange) LoadValues() {
	r.sc.queue(func(wb *Workbook) error {
		sh, rc, err := wb.resolve(r.addr)
		if err != nil {
			return err
		}
		r.values = gather(rc, func(k cellKey) any {
			if c, ok := sh.cells[k]; ok {
				return c.value
			}
			return nil
		})
		return nil
	})
}

func (r *memRange) LoadFormulas() {
	r.sc.queue(func(wb *Workbook) error {
		sh, rc, err := wb.resolve(r.addr)
		if err != nil {
			return err
		}
		r.formulas = gather(rc, func(k cellKey) string {
			if c, ok := sh.cells[k]; ok {
				return c.formula
			}
			return ""
		})
		return nil
	})
}

func (r *memRange) Text() [][]string    { return r.text }
func (r *memRange) Values() [][]any     { return r.values }
func (r *memRange) Formulas() [][]string { return r.formulas }

func (r *memRange) SetValue(v any) {
	r.eachCell(func(sh *sheetData, k cellKey) {
		setCellValue(sh.cell(k), v)
	})
}

func (r *memRange) SetValues(vals [][]any) {
	r.sc.queue(func(wb *Workbook) error {
		sh, rc, err := wb.resolve(r.addr)
		if err != nil {
			return err
		}
		if len(vals) != rc.r2-rc.r1+1 {
			return fmt.Errorf("value matrix is %d rows, range %s needs %d", len(vals), r.addr, rc.r2-rc.r1+1)
		}
		for i, row := range vals {
			if len(row) != rc.c2-rc.c1+1 {
				return fmt.Errorf("value matrix row %d is %d cells, range %s needs %d", i, len(row), r.addr, rc.c2-rc.c1+1)
			}
			for j, v := range row {
				setCellValue(sh.cell(cellKey{col: rc.c1 + j, row: rc.r1 + i}), v)
			}
		}
		return nil
	})
}

func (r *memRange) SetFormula(formula string) {
	r.eachCell(func(sh *sheetData, k cellKey) {
		c := sh.cell(k)
		c.formula = formula
		c.value = nil
	})
}

func (r *memRange) SetNumberFormat(format string) {
	r.eachCell(func(sh *sheetData, k cellKey) {
		sh.cell(k).numFmt = format
	})
}

func (r *memRange) SetFormat(f CellFormat) {
	r.eachCell(func(sh *sheetData, k cellKey) {
		mergeFormat(&sh.cell(k).format, f)
	})
}

func (r *memRange) Clear() {
	r.sc.queue(func(wb *Workbook) error {
		sh, rc, err := wb.resolve(r.addr)
		if err != nil {
			return err
		}
		for col := rc.c1; col <= rc.c2; col++ {
			for row := rc.r1; row <= rc.r2; row++ {
				delete(sh.cells, cellKey{col: col, row: row})
			}
		}
		return nil
	})
}

func (r *memRange) AutoFill(target string) {
	r.sc.queue(func(wb *Workbook) error {
		sh, src, err := wb.resolve(r.addr)
		if err != nil {
			return err
		}
		tgtSheet, tgt, err := wb.resolve(target)
		if err != nil {
			return err
		}
		if tgtSheet != sh {
			return fmt.Errorf("autofill target %q is on a different sheet", target)
		}

		srcKey := cellKey{col: src.c1, row: src.r1}
		srcCell, hasSrc := sh.cells[srcKey]
		for col := tgt.c1; col <= tgt.c2; col++ {
			for row := tgt.r1; row <= tgt.r2; row++ {
				k := cellKey{col: col, row: row}
				if k == srcKey {
					continue
				}
				if !hasSrc {
					delete(sh.cells, k)
					continue
				}
				dst := sh.cell(k)
				if srcCell.formula != "" {
					dst.formula = shiftRefs(srcCell.formula, col-src.c1, row-src.r1)
					dst.value = nil
				} else {
					dst.value = srcCell.value
					dst.formula = ""
				}
			}
		}
		return nil
	})
}

// eachCell queues an operation applied to every cell of the range.
func (r *memRange) eachCell(apply func(sh *sheetData, k cellKey)) {
	r.sc.queue(func(wb *Workbook) error {
		sh, rc, err := wb.resolve(r.addr)
		if err != nil {
			return err
		}
		for col := rc.c1; col <= rc.c2; col++ {
			for row := rc.r1; row <= rc.r2; row++ {
				apply(sh, cellKey{col: col, row: row})
			}
		}
		return nil
	})
}

// setCellValue stores a scalar, routing "=..." strings to the formula slot.
func setCellValue(c *cellData, v any) {
	if s, ok := v.(string); ok && strings.HasPrefix(s, "=") {
		c.formula = s
		c.value = nil
		return
	}
	c.value = v
	c.formula = ""
}

func mergeFormat(dst *CellFormat, f CellFormat) {
	if f.BackgroundColor != "" {
		dst.BackgroundColor = f.BackgroundColor
	}
	if f.FontColor != "" {
		dst.FontColor = f.FontColor
	}
	if f.FontSize != 0 {
		dst.FontSize = f.FontSize
	}
	if f.Bold {
		dst.Bold = true
	}
	if f.Italic {
		dst.Italic = true
	}
	if f.HorizontalAlignment != "" {
		dst.HorizontalAlignment = f.HorizontalAlignment
	}
	if f.VerticalAlignment != "" {
		dst.VerticalAlignment = f.VerticalAlignment
	}
}

func gather[T any](rc rect, read func(cellKey) T) [][]T {
	out := make([][]T, 0, rc.r2-rc.r1+1)
	for row := rc.r1; row <= rc.r2; row++ {
		line := make([]T, 0, rc.c2-rc.c1+1)
		for col := rc.c1; col <= rc.c2; col++ {
			line = append(line, read(cellKey{col: col, row: row}))
		}
		out = append(out, line)
	}
	return out
}
