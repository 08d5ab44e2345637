package host

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// rect is a normalized cell rectangle, 1-based, inclusive.
type rect struct {
	c1, r1, c2, r2 int
}

var cellPattern = regexp.MustCompile(`^\$?([A-Za-z]{1,3})\$?([0-9]+)$`)

// parseCell parses a single A1-style cell reference ("B12", "$B$12").
func parseCell(ref string) (col, row int, err error) {
	m := cellPattern.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	col = colIndex(m[1])
	row, err = strconv.Atoi(m[2])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("invalid row in reference %q", ref)
	}
	return col, row, nil
}

// splitSheet splits an optional sheet prefix off an address.
// "Data!A1:B2" → ("Data", "A1:B2"); "A1" → ("", "A1").
func splitSheet(address string) (sheet, rest string) {
	if i := strings.LastIndex(address, "!"); i >= 0 {
		return strings.Trim(address[:i], "'"), address[i+1:]
	}
	return "", address
}

// parseRect parses an A1-style range ("A1", "A1:C10") into a normalized
// rectangle.
func parseRect(address string) (rect, error) {
	parts := strings.SplitN(address, ":", 2)
	c1, r1, err := parseCell(parts[0])
	if err != nil {
		return rect{}, err
	}
	c2, r2 := c1, r1
	if len(parts) == 2 {
		c2, r2, err = parseCell(parts[1])
		if err != nil {
			return rect{}, err
		}
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	return rect{c1: c1, r1: r1, c2: c2, r2: r2}, nil
}

// colIndex converts a column name to its 1-based index ("A"→1, "AA"→27).
func colIndex(name string) int {
	n := 0
	for _, ch := range strings.ToUpper(name) {
		n = n*26 + int(ch-'A') + 1
	}
	return n
}

// colName converts a 1-based column index to its name (1→"A", 27→"AA").
func colName(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// cellAddress formats a 1-based column/row pair as an A1 reference.
func cellAddress(col, row int) string {
	return colName(col) + strconv.Itoa(row)
}

// rectAddress formats a rectangle as an A1-style range, collapsing a
// single cell to its plain reference.
func rectAddress(r rect) string {
	if r.c1 == r.c2 && r.r1 == r.r2 {
		return cellAddress(r.c1, r.r1)
	}
	return cellAddress(r.c1, r.r1) + ":" + cellAddress(r.c2, r.r2)
}

var refPattern = regexp.MustCompile(`(\$?)([A-Za-z]{1,3})(\$?)([0-9]+)`)

// shiftRefs rewrites every relative A1 reference in a formula by the given
// column/row offset. Anchored parts ($A, $1) stay fixed, matching default
// fill behavior.
func shiftRefs(formula string, dCol, dRow int) string {
	return refPattern.ReplaceAllStringFunc(formula, func(ref string) string {
		m := refPattern.FindStringSubmatch(ref)
		colAbs, rowAbs := m[1] == "$", m[3] == "$"
		col := colIndex(m[2])
		row, _ := strconv.Atoi(m[4])

		if !colAbs {
			col += dCol
		}
		if !rowAbs {
			row += dRow
		}
		if col < 1 || row < 1 {
			return "#REF!"
		}

		var b strings.Builder
		if colAbs {
			b.WriteByte('$')
		}
		b.WriteString(colName(col))
		if rowAbs {
			b.WriteByte('$')
		}
		b.WriteString(strconv.Itoa(row))
		return b.String()
	})
}
