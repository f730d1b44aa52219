package colidx

import (
	"context"

	"github.com/hupe1980/colidx/column"
)

// Take returns a new index holding the rows at the given positions, in order.
//
// Positions must be in [0, Len). A NullCode position fails with
// ErrNullSelector. Level dictionaries are shared with the source, so gathered
// codes keep referencing the same dictionaries; cached codes, if present, are
// gathered alongside the decoded data.
func (mi *MultiLevelIndex) Take(positions []int64) (*MultiLevelIndex, error) {
	n := int64(mi.Len())
	for _, p := range positions {
		if p == column.NullCode {
			mi.logger.LogTake(context.Background(), len(positions), ErrNullSelector)
			return nil, ErrNullSelector
		}
		if p < 0 || p >= n {
			mi.logger.LogTake(context.Background(), len(positions), column.ErrPositionOutOfRange)
			return nil, column.ErrPositionOutOfRange
		}
	}

	data, err := mi.data.Gather(positions)
	if err != nil {
		return nil, err
	}
	out := &MultiLevelIndex{
		data:   data,
		names:  mi.Names(),
		logger: mi.logger,
	}
	if mi.codes != nil {
		codes, err := mi.codes.Gather(positions)
		if err != nil {
			return nil, err
		}
		out.codes = codes
		out.levels = mi.levels
	}
	mi.logger.LogTake(context.Background(), len(positions), nil)
	return out, nil
}

// TakeRange is Take over the contiguous range [start, stop) with the given
// stride. A negative step walks backwards.
func (mi *MultiLevelIndex) TakeRange(start, stop, step int) (*MultiLevelIndex, error) {
	if step == 0 {
		return nil, column.ErrPositionOutOfRange
	}
	var positions []int64
	if step > 0 {
		for p := start; p < stop; p += step {
			positions = append(positions, int64(p))
		}
	} else {
		for p := start; p > stop; p += step {
			positions = append(positions, int64(p))
		}
	}
	return mi.Take(positions)
}

// TakeColumn is Take driven by an integer position column. A null entry fails
// with ErrNullSelector.
func (mi *MultiLevelIndex) TakeColumn(c *column.Column) (*MultiLevelIndex, error) {
	positions := make([]int64, c.Len())
	for i := 0; i < c.Len(); i++ {
		v := c.At(i)
		if v.IsNull() {
			return nil, ErrNullSelector
		}
		p, ok := v.AsInt64()
		if !ok {
			return nil, column.ErrPositionOutOfRange
		}
		positions[i] = p
	}
	return mi.Take(positions)
}

// Copy returns a copy of the index. A shallow copy shares the immutable
// column data; a deep copy duplicates decoded data and any cached derived
// state.
func (mi *MultiLevelIndex) Copy(deep bool) *MultiLevelIndex {
	out := &MultiLevelIndex{
		data:     mi.data,
		names:    mi.Names(),
		levels:   mi.levels,
		codes:    mi.codes,
		isUnique: mi.isUnique,
		logger:   mi.logger,
	}
	if deep {
		out.data = deepCopyTable(mi.data)
		if mi.codes != nil {
			out.codes = deepCopyTable(mi.codes)
		}
		if mi.levels != nil {
			lvls := make([]*column.Column, len(mi.levels))
			for i, l := range mi.levels {
				lvls[i] = column.New(l.Name(), l.Values()...)
			}
			out.levels = lvls
		}
	}
	return out
}

func deepCopyTable(t *column.Table) *column.Table {
	cols := make([]*column.Column, t.NumColumns())
	for i := 0; i < t.NumColumns(); i++ {
		c := t.Column(i)
		cols[i] = column.New(c.Name(), c.Values()...)
	}
	out, _ := column.NewTable(cols...)
	return out
}

// DropLevel removes the referenced levels and recomputes derived state for
// the reduced table. Dropping all but one level returns a FlatIndex; the
// result is otherwise a MultiLevelIndex. Dropping every level is refused.
func (mi *MultiLevelIndex) DropLevel(refs ...LevelRef) (Index, error) {
	drop := make(map[int]struct{}, len(refs))
	for _, ref := range refs {
		pos, err := mi.levelIndex(ref)
		if err != nil {
			return nil, err
		}
		drop[pos] = struct{}{}
	}
	if len(drop) >= mi.NLevels() {
		return nil, ErrInconsistentLevels
	}

	var cols []*column.Column
	var names []Name
	for i := 0; i < mi.NLevels(); i++ {
		if _, dropped := drop[i]; dropped {
			continue
		}
		cols = append(cols, mi.data.Column(i))
		names = append(names, mi.names[i])
	}
	if len(cols) == 1 {
		return NewFlatIndex(cols[0], names[0]), nil
	}
	table, err := column.NewTable(cols...)
	if err != nil {
		return nil, err
	}
	return FromTable(table, names)
}

// popLeading drops the leading n levels, used when a lookup consumes a key
// prefix.
func (mi *MultiLevelIndex) popLeading(n int) (Index, error) {
	refs := make([]LevelRef, n)
	for i := range refs {
		refs[i] = LevelAt(i)
	}
	return mi.DropLevel(refs...)
}

// GetLevelValues returns the decoded values of one level as a flat index.
func (mi *MultiLevelIndex) GetLevelValues(ref LevelRef) (*FlatIndex, error) {
	pos, err := mi.levelIndex(ref)
	if err != nil {
		return nil, err
	}
	return NewFlatIndex(mi.data.Column(pos), mi.names[pos]), nil
}

// Append concatenates this index with the others, row-wise. Every operand
// must be a MultiLevelIndex; anything else fails with ErrTypeMismatch.
func (mi *MultiLevelIndex) Append(others ...Index) (*MultiLevelIndex, error) {
	indexes := make([]*MultiLevelIndex, 0, len(others)+1)
	indexes = append(indexes, mi)
	for _, o := range others {
		m, ok := o.(*MultiLevelIndex)
		if !ok {
			mi.logger.LogAppend(context.Background(), len(others)+1, 0, ErrTypeMismatch)
			return nil, ErrTypeMismatch
		}
		indexes = append(indexes, m)
	}
	out, err := ConcatIndexes(indexes...)
	mi.logger.LogAppend(context.Background(), len(indexes), outLen(out), err)
	return out, err
}

func outLen(mi *MultiLevelIndex) int {
	if mi == nil {
		return 0
	}
	return mi.Len()
}

// ConcatIndexes concatenates indexes positionally. Column alignment is taken
// from the first operand; per-position names resolve to the first non-missing
// name across inputs. Derived state is discarded and rebuilt lazily.
func ConcatIndexes(indexes ...*MultiLevelIndex) (*MultiLevelIndex, error) {
	if len(indexes) == 0 {
		return nil, ErrInconsistentLevels
	}
	first := indexes[0]
	keys := first.data.Names()

	tables := make([]*column.Table, len(indexes))
	for i, idx := range indexes {
		if idx.NLevels() != first.NLevels() {
			return nil, ErrInconsistentLevels
		}
		tables[i] = idx.data.Renamed(keys)
	}
	data, err := column.Concat(tables...)
	if err != nil {
		return nil, err
	}

	names := make([]Name, first.NLevels())
	for pos := range names {
		for _, idx := range indexes {
			names[pos] = names[pos].Or(idx.names[pos])
		}
	}
	return FromTable(data, names)
}

// Unique returns a new index with exact duplicate rows removed, first
// occurrence order preserved.
func (mi *MultiLevelIndex) Unique() (*MultiLevelIndex, error) {
	return FromTable(mi.data.DropDuplicates(), mi.Names())
}

// FillNull returns a new index with decoded nulls replaced by v. Derived
// state is rebuilt lazily.
func (mi *MultiLevelIndex) FillNull(v column.Value) (*MultiLevelIndex, error) {
	cols := make([]*column.Column, mi.NLevels())
	for i := 0; i < mi.NLevels(); i++ {
		cols[i] = mi.data.Column(i).FillNull(v)
	}
	table, err := column.NewTable(cols...)
	if err != nil {
		return nil, err
	}
	return FromTable(table, mi.Names())
}

// IsIn returns, for every row, whether its full label tuple occurs in the
// given tuple set.
func (mi *MultiLevelIndex) IsIn(tuples [][]column.Value) ([]bool, error) {
	if len(tuples) == 0 {
		return make([]bool, mi.Len()), nil
	}
	keys := mi.data.Names()
	cols := make([]*column.Column, mi.NLevels())
	for j := 0; j < mi.NLevels(); j++ {
		vals := make([]column.Value, len(tuples))
		for i, tup := range tuples {
			if len(tup) != mi.NLevels() {
				return nil, ErrIndexerTooLong
			}
			vals[i] = tup[j]
		}
		cols[j] = column.New(keys[j], vals...)
	}
	lookup, err := column.NewTable(cols...)
	if err != nil {
		return nil, err
	}
	return mi.positionsToMask(lookup)
}

// IsInLevel returns, for every row, whether the referenced level's value
// occurs in values.
func (mi *MultiLevelIndex) IsInLevel(ref LevelRef, values []column.Value) ([]bool, error) {
	pos, err := mi.levelIndex(ref)
	if err != nil {
		return nil, err
	}
	lookupCol := column.New(mi.data.Column(pos).Name(), values...)
	lookup, err := column.NewTable(lookupCol)
	if err != nil {
		return nil, err
	}
	return mi.positionsToMask(lookup)
}

func (mi *MultiLevelIndex) positionsToMask(lookup *column.Table) ([]bool, error) {
	positions, err := mi.data.InnerJoinPositions(lookup)
	if err != nil {
		return nil, err
	}
	mask := make([]bool, mi.Len())
	for _, p := range positions {
		mask[p] = true
	}
	return mask, nil
}

// ArgSort returns a stable permutation sorting the index lexicographically.
func (mi *MultiLevelIndex) ArgSort(ascending bool) []int64 {
	if ascending {
		return mi.data.ArgSort(nil)
	}
	desc := make([]bool, mi.NLevels())
	return mi.data.ArgSort(desc)
}

// SortValues returns a sorted copy of the index along with the permutation
// that produced it.
func (mi *MultiLevelIndex) SortValues(ascending bool) (*MultiLevelIndex, []int64, error) {
	perm := mi.ArgSort(ascending)
	sorted, err := mi.Take(perm)
	if err != nil {
		return nil, nil, err
	}
	return sorted, perm, nil
}
