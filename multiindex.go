package colidx

import (
	"github.com/hupe1980/colidx/column"
)

// Index is the common surface of hierarchical and flat indexes.
type Index interface {
	Len() int
	NLevels() int
	IsMonotonicIncreasing() bool
	IsMonotonicDecreasing() bool
}

// LevelRef identifies a level by position or by name.
type LevelRef struct {
	name   string
	byName bool
	pos    int
}

// LevelAt refers to the level at the given position. Negative positions count
// from the end.
func LevelAt(pos int) LevelRef { return LevelRef{pos: pos} }

// LevelNamed refers to the first level with the given name.
func LevelNamed(name string) LevelRef { return LevelRef{name: name, byName: true} }

// MultiLevelIndex is a hierarchical index over columnar data.
//
// The decoded table ("source data") is the table of truth. The
// dictionary-encoded form (per-level distinct values plus integer codes) is a
// memoized derivation of it, computed on first access and discarded on any
// structural mutation. Codes index into their level's dictionary; NullCode
// (-1) encodes null.
//
// Instances are not safe for concurrent mutation; operations that mutate in
// place assume exclusive ownership.
type MultiLevelIndex struct {
	data  *column.Table
	names []Name

	// Lazily derived; nil until first use, reset by invalidate.
	levels []*column.Column
	codes  *column.Table

	isUnique *bool

	logger *Logger
}

// New constructs an index from per-level dictionaries and codes
// (encoded-first). The decoded table is materialized eagerly by gathering
// each dictionary through its codes; a NullCode yields a null row.
//
// Validation failures leave nothing partially constructed:
// ErrInconsistentLevels for count/length mismatches, ErrCodeOutOfRange for a
// code outside [-1, len(level)-1].
func New(levels []*column.Column, codes [][]int64, names []Name, optFns ...Option) (*MultiLevelIndex, error) {
	o := applyOptions(optFns)

	if len(levels) == 0 || len(levels) != len(codes) {
		return nil, ErrInconsistentLevels
	}
	for i := 1; i < len(codes); i++ {
		if len(codes[i]) != len(codes[0]) {
			return nil, ErrInconsistentLevels
		}
	}
	names, err := normalizeNames(names, len(levels))
	if err != nil {
		return nil, err
	}
	for i, cs := range codes {
		for _, c := range cs {
			if c < column.NullCode || c >= int64(levels[i].Len()) {
				return nil, &ErrCodeOutOfRange{Level: i, Code: c, LevelSize: levels[i].Len()}
			}
		}
	}

	keys := columnKeys(names)
	decoded := make([]*column.Column, len(levels))
	storedLevels := make([]*column.Column, len(levels))
	codeCols := make([]*column.Column, len(levels))
	for i := range levels {
		lvl := levels[i].Renamed(keys[i])
		col, err := lvl.Gather(codes[i])
		if err != nil {
			return nil, err
		}
		decoded[i] = col
		storedLevels[i] = lvl
		codeCols[i] = intColumn(keys[i], codes[i])
	}

	data, err := column.NewTable(decoded...)
	if err != nil {
		return nil, err
	}
	codesTable, err := column.NewTable(codeCols...)
	if err != nil {
		return nil, err
	}

	return &MultiLevelIndex{
		data:   data,
		names:  names,
		levels: storedLevels,
		codes:  codesTable,
		logger: o.logger,
	}, nil
}

// FromTable constructs an index from a decoded table (decoded-first). Levels
// and codes are derived lazily on first access. Names default to the table's
// column names.
func FromTable(table *column.Table, names []Name, optFns ...Option) (*MultiLevelIndex, error) {
	o := applyOptions(optFns)

	if table.NumColumns() == 0 {
		return nil, ErrInconsistentLevels
	}
	if names == nil {
		names = make([]Name, table.NumColumns())
		for i, key := range table.Names() {
			names[i] = NameOf(key)
		}
	}
	names, err := normalizeNames(names, table.NumColumns())
	if err != nil {
		return nil, err
	}

	mi := &MultiLevelIndex{
		data:   table,
		logger: o.logger,
	}
	// Route through the names contract so unique names become column keys.
	if err := mi.SetNames(names); err != nil {
		return nil, err
	}
	return mi, nil
}

// FromTuples constructs an index from per-row label tuples.
func FromTuples(rows [][]column.Value, names []Name, optFns ...Option) (*MultiLevelIndex, error) {
	if len(rows) == 0 {
		return nil, ErrInconsistentLevels
	}
	width := len(rows[0])
	for _, r := range rows {
		if len(r) != width {
			return nil, ErrInconsistentLevels
		}
	}
	names, err := normalizeNames(names, width)
	if err != nil {
		return nil, err
	}
	keys := columnKeys(names)

	cols := make([]*column.Column, width)
	for j := 0; j < width; j++ {
		vals := make([]column.Value, len(rows))
		for i, r := range rows {
			vals[i] = r[j]
		}
		cols[j] = column.New(keys[j], vals...)
	}
	table, err := column.NewTable(cols...)
	if err != nil {
		return nil, err
	}
	return FromTable(table, names, optFns...)
}

// FromProduct constructs an index from the cartesian product of the given
// per-level value sets, first level varying slowest.
func FromProduct(levelValues [][]column.Value, names []Name, optFns ...Option) (*MultiLevelIndex, error) {
	if len(levelValues) == 0 {
		return nil, ErrInconsistentLevels
	}
	total := 1
	for _, vs := range levelValues {
		if len(vs) == 0 {
			return nil, ErrInconsistentLevels
		}
		total *= len(vs)
	}
	names, err := normalizeNames(names, len(levelValues))
	if err != nil {
		return nil, err
	}
	keys := columnKeys(names)

	cols := make([]*column.Column, len(levelValues))
	repeat := total
	for j, vs := range levelValues {
		repeat /= len(vs)
		vals := make([]column.Value, 0, total)
		for len(vals) < total {
			for _, v := range vs {
				for r := 0; r < repeat; r++ {
					vals = append(vals, v)
				}
			}
		}
		cols[j] = column.New(keys[j], vals...)
	}
	table, err := column.NewTable(cols...)
	if err != nil {
		return nil, err
	}
	return FromTable(table, names, optFns...)
}

func normalizeNames(names []Name, nlevels int) ([]Name, error) {
	if names == nil {
		return make([]Name, nlevels), nil
	}
	if len(names) != nlevels {
		return nil, ErrInconsistentLevels
	}
	out := make([]Name, nlevels)
	copy(out, names)
	return out, nil
}

func intColumn(name string, codes []int64) *column.Column {
	vals := make([]column.Value, len(codes))
	for i, c := range codes {
		vals[i] = column.Int(c)
	}
	return column.New(name, vals...)
}

// Len returns the number of rows.
func (mi *MultiLevelIndex) Len() int {
	if mi.data == nil {
		if mi.codes != nil {
			return mi.codes.Len()
		}
		return 0
	}
	return mi.data.Len()
}

// NLevels returns the number of levels.
func (mi *MultiLevelIndex) NLevels() int {
	if mi.data == nil {
		return len(mi.names)
	}
	return mi.data.NumColumns()
}

// Names returns the level names in order.
func (mi *MultiLevelIndex) Names() []Name {
	out := make([]Name, len(mi.names))
	copy(out, mi.names)
	return out
}

// Source returns the decoded table of truth. Callers must not mutate it.
func (mi *MultiLevelIndex) Source() *column.Table { return mi.data }

// At returns the label tuple of row i.
func (mi *MultiLevelIndex) At(i int) []column.Value { return mi.data.Row(i) }

// SetNames replaces all level names.
//
// The decoded table is re-keyed from the new names only when they are unique
// (missing names count as equal to each other). With duplicate names, column
// keys are left untouched while Names still reports the duplicates; name and
// key sequences then diverge, which aliases name-based level access.
// Kept for compatibility with legacy data; prefer unique names.
func (mi *MultiLevelIndex) SetNames(names []Name) error {
	names, err := normalizeNames(names, mi.NLevels())
	if err != nil {
		return err
	}
	if namesUnique(names) {
		mi.data = mi.data.Renamed(columnKeys(names))
		// Cached levels and codes carry the old keys; rebuild them lazily.
		mi.invalidate()
	}
	mi.names = names
	return nil
}

// Rename replaces all level names, in place or on a copy.
func (mi *MultiLevelIndex) Rename(names []Name, inplace bool) (*MultiLevelIndex, error) {
	target := mi
	if !inplace {
		target = mi.Copy(false)
	}
	if err := target.SetNames(names); err != nil {
		return nil, err
	}
	return target, nil
}

// SetNamesAt replaces the names of the referenced levels only.
func (mi *MultiLevelIndex) SetNamesAt(refs []LevelRef, names []Name, inplace bool) (*MultiLevelIndex, error) {
	if len(refs) != len(names) {
		return nil, ErrInconsistentLevels
	}
	merged := mi.Names()
	for i, ref := range refs {
		pos, err := mi.levelIndex(ref)
		if err != nil {
			return nil, err
		}
		merged[pos] = names[i]
	}
	return mi.Rename(merged, inplace)
}

// levelIndex resolves a level reference to a position.
func (mi *MultiLevelIndex) levelIndex(ref LevelRef) (int, error) {
	if ref.byName {
		for i, n := range mi.names {
			if n.Valid() && n.Value() == ref.name {
				return i, nil
			}
		}
		return 0, ErrLevelNotFound
	}
	pos := ref.pos
	if pos < 0 {
		pos += mi.NLevels()
	}
	if pos < 0 || pos >= mi.NLevels() {
		return 0, ErrLevelNotFound
	}
	return pos, nil
}

// invalidate discards derived state after an in-place mutation such as a
// re-key. Encoded state is never patched incrementally, only rebuilt.
func (mi *MultiLevelIndex) invalidate() {
	mi.levels = nil
	mi.codes = nil
	mi.isUnique = nil
}

// IsUnique reports whether all row tuples are distinct. Cached.
func (mi *MultiLevelIndex) IsUnique() bool {
	if mi.isUnique == nil {
		u := mi.data.Len() == mi.data.DropDuplicates().Len()
		mi.isUnique = &u
	}
	return *mi.isUnique
}

// IsMonotonicIncreasing reports lexicographic non-decreasing order across all
// levels, nulls first.
func (mi *MultiLevelIndex) IsMonotonicIncreasing() bool {
	return mi.data.IsSorted(nil)
}

// IsMonotonicDecreasing reports lexicographic non-increasing order across all
// levels.
func (mi *MultiLevelIndex) IsMonotonicDecreasing() bool {
	desc := make([]bool, mi.NLevels())
	return mi.data.IsSorted(desc)
}

// Equal reports index equality.
//
// When both operands hold decoded tables the comparison is positional column
// value-equality plus name equality (cheap path). Encoded-only operands fall
// back to comparing level dictionaries as sets, codes and names, so indexes
// reconstructed from encoded payloads stay comparable.
func (mi *MultiLevelIndex) Equal(other *MultiLevelIndex) bool {
	if other == nil {
		return false
	}
	if mi.data != nil && other.data != nil {
		return mi.data.EqualData(other.data) && namesEqual(mi.names, other.names)
	}
	return mi.equalEncoded(other)
}

func (mi *MultiLevelIndex) equalEncoded(other *MultiLevelIndex) bool {
	if mi.NLevels() != other.NLevels() {
		return false
	}
	a, b := mi.Levels(), other.Levels()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !levelSetEqual(a[i], b[i]) {
			return false
		}
	}
	return mi.Codes().EqualData(other.Codes()) && namesEqual(mi.names, other.names)
}

func levelSetEqual(a, b *column.Column) bool {
	if a.Len() != b.Len() {
		return false
	}
	seen := make(map[string]struct{}, a.Len())
	for i := 0; i < a.Len(); i++ {
		seen[a.At(i).Key()] = struct{}{}
	}
	for i := 0; i < b.Len(); i++ {
		if _, ok := seen[b.At(i).Key()]; !ok {
			return false
		}
	}
	return true
}

// Where is not offered on this structure; delegate to the column engine.
func (mi *MultiLevelIndex) Where(cond []bool, other column.Value) (*MultiLevelIndex, error) {
	return nil, ErrUnsupportedOperation
}

// Mask is not offered on this structure; delegate to the column engine.
func (mi *MultiLevelIndex) Mask(cond []bool, other column.Value) (*MultiLevelIndex, error) {
	return nil, ErrUnsupportedOperation
}

// Difference is not offered on this structure; delegate to the column engine.
func (mi *MultiLevelIndex) Difference(other *MultiLevelIndex) (*MultiLevelIndex, error) {
	return nil, ErrUnsupportedOperation
}
