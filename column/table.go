package column

import (
	"errors"
	"sort"
	"strings"
)

// ErrLengthMismatch is returned when columns of unequal length are combined
// into one table.
var ErrLengthMismatch = errors.New("columns have unequal lengths")

// Table is an ordered sequence of named columns of equal length.
//
// Column names are not required to be unique; positional access is always
// well-defined, name-based access resolves to the first match.
type Table struct {
	cols []*Column
}

// NewTable creates a table from the given columns.
func NewTable(cols ...*Column) (*Table, error) {
	for i := 1; i < len(cols); i++ {
		if cols[i].Len() != cols[0].Len() {
			return nil, ErrLengthMismatch
		}
	}
	return &Table{cols: cols}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.cols) }

// Column returns the column at position i.
func (t *Table) Column(i int) *Column { return t.cols[i] }

// Names returns the column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name()
	}
	return out
}

// ColumnIndex returns the position of the first column with the given name,
// or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.cols {
		if c.Name() == name {
			return i
		}
	}
	return -1
}

// Renamed returns a shallow copy of the table with columns re-keyed to the
// given names. len(names) must equal NumColumns.
func (t *Table) Renamed(names []string) *Table {
	cols := make([]*Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = c.Renamed(names[i])
	}
	return &Table{cols: cols}
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []Value {
	out := make([]Value, len(t.cols))
	for j, c := range t.cols {
		out[j] = c.At(i)
	}
	return out
}

// Select returns a shallow copy holding columns [from, to).
func (t *Table) Select(from, to int) *Table {
	cols := make([]*Column, to-from)
	copy(cols, t.cols[from:to])
	return &Table{cols: cols}
}

// Gather returns a new table with rows picked at the given positions.
func (t *Table) Gather(positions []int64) (*Table, error) {
	cols := make([]*Column, len(t.cols))
	for i, c := range t.cols {
		g, err := c.Gather(positions)
		if err != nil {
			return nil, err
		}
		cols[i] = g
	}
	return &Table{cols: cols}, nil
}

// compareRows compares rows a and b lexicographically across all columns,
// honoring a per-column ascending flag. A nil ascending means all ascending.
func (t *Table) compareRows(a, b int, ascending []bool) int {
	for j, c := range t.cols {
		cmp := c.At(a).Compare(c.At(b))
		if cmp == 0 {
			continue
		}
		if ascending != nil && !ascending[j] {
			return -cmp
		}
		return cmp
	}
	return 0
}

// ArgSort returns a stable permutation that sorts the table rows
// lexicographically. ascending may be nil (all ascending) or hold one flag
// per column.
func (t *Table) ArgSort(ascending []bool) []int64 {
	perm := make([]int64, t.Len())
	for i := range perm {
		perm[i] = int64(i)
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return t.compareRows(int(perm[i]), int(perm[j]), ascending) < 0
	})
	return perm
}

// IsSorted reports whether rows are lexicographically non-decreasing under
// the per-column ascending flags (nil means all ascending). Nulls order
// lowest, per Value.Compare.
func (t *Table) IsSorted(ascending []bool) bool {
	n := t.Len()
	for i := 1; i < n; i++ {
		if t.compareRows(i-1, i, ascending) > 0 {
			return false
		}
	}
	return true
}

// rowKey builds a stable hash key over the given column positions of row i.
func (t *Table) rowKey(i int, colPos []int) string {
	var sb strings.Builder
	for _, j := range colPos {
		sb.WriteString(t.cols[j].At(i).Key())
		sb.WriteByte(0x1f)
	}
	return sb.String()
}

// InnerJoinPositions hash-joins a lookup table against this table on the
// lookup's column names and returns the positions of surviving rows, in this
// table's row order.
//
// Every lookup column name must resolve to a column here; resolution takes
// the first name match.
func (t *Table) InnerJoinPositions(lookup *Table) ([]int64, error) {
	joinPos := make([]int, lookup.NumColumns())
	for i := 0; i < lookup.NumColumns(); i++ {
		p := t.ColumnIndex(lookup.Column(i).Name())
		if p < 0 {
			return nil, errors.New("join column not found: " + lookup.Column(i).Name())
		}
		joinPos[i] = p
	}

	lookupPos := make([]int, lookup.NumColumns())
	for i := range lookupPos {
		lookupPos[i] = i
	}
	keys := make(map[string]struct{}, lookup.Len())
	for i := 0; i < lookup.Len(); i++ {
		keys[lookup.rowKey(i, lookupPos)] = struct{}{}
	}

	var out []int64
	for i := 0; i < t.Len(); i++ {
		if _, ok := keys[t.rowKey(i, joinPos)]; ok {
			out = append(out, int64(i))
		}
	}
	return out, nil
}

// Concat concatenates tables row-wise. All tables must have the same number
// of columns; alignment is positional and the first table's names win.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return &Table{}, nil
	}
	first := tables[0]
	for _, tb := range tables[1:] {
		if tb.NumColumns() != first.NumColumns() {
			return nil, ErrLengthMismatch
		}
	}
	cols := make([]*Column, first.NumColumns())
	for j := 0; j < first.NumColumns(); j++ {
		col := first.cols[j]
		for _, tb := range tables[1:] {
			col = col.Append(tb.cols[j])
		}
		cols[j] = col
	}
	return &Table{cols: cols}, nil
}

// DropDuplicates returns a new table with exact duplicate rows removed,
// keeping the first occurrence of each row.
func (t *Table) DropDuplicates() *Table {
	allPos := make([]int, len(t.cols))
	for i := range allPos {
		allPos[i] = i
	}
	seen := make(map[string]struct{}, t.Len())
	var keep []int64
	for i := 0; i < t.Len(); i++ {
		k := t.rowKey(i, allPos)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keep = append(keep, int64(i))
	}
	out, _ := t.Gather(keep)
	return out
}

// EqualData reports positional value equality of two tables, ignoring names.
func (t *Table) EqualData(o *Table) bool {
	if t.NumColumns() != o.NumColumns() {
		return false
	}
	for i := range t.cols {
		if !t.cols[i].Equal(o.cols[i]) {
			return false
		}
	}
	return true
}
