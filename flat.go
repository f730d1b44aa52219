package colidx

import "github.com/hupe1980/colidx/column"

// FlatIndex is a single-level index. It is what a MultiLevelIndex collapses
// to when all but one level is dropped or consumed by a lookup.
type FlatIndex struct {
	name Name
	col  *column.Column
}

// NewFlatIndex creates a flat index over the given column.
func NewFlatIndex(col *column.Column, name Name) *FlatIndex {
	return &FlatIndex{name: name, col: col}
}

// Len returns the number of rows.
func (fi *FlatIndex) Len() int { return fi.col.Len() }

// NLevels returns 1.
func (fi *FlatIndex) NLevels() int { return 1 }

// Name returns the index name.
func (fi *FlatIndex) Name() Name { return fi.name }

// Column returns the underlying values. Callers must not mutate it.
func (fi *FlatIndex) Column() *column.Column { return fi.col }

// At returns the value at row i.
func (fi *FlatIndex) At(i int) column.Value { return fi.col.At(i) }

// Equal reports value and name equality.
func (fi *FlatIndex) Equal(other *FlatIndex) bool {
	if other == nil {
		return false
	}
	return fi.col.Equal(other.col) && fi.name.Equal(other.name)
}

// IsMonotonicIncreasing reports non-decreasing order, nulls first.
func (fi *FlatIndex) IsMonotonicIncreasing() bool {
	for i := 1; i < fi.col.Len(); i++ {
		if fi.col.At(i-1).Compare(fi.col.At(i)) > 0 {
			return false
		}
	}
	return true
}

// IsMonotonicDecreasing reports non-increasing order.
func (fi *FlatIndex) IsMonotonicDecreasing() bool {
	for i := 1; i < fi.col.Len(); i++ {
		if fi.col.At(i-1).Compare(fi.col.At(i)) < 0 {
			return false
		}
	}
	return true
}

// Unique returns a new flat index with duplicates removed, first occurrence
// order preserved.
func (fi *FlatIndex) Unique() *FlatIndex {
	seen := make(map[string]struct{}, fi.col.Len())
	var vals []column.Value
	for i := 0; i < fi.col.Len(); i++ {
		v := fi.col.At(i)
		k := v.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		vals = append(vals, v)
	}
	return &FlatIndex{name: fi.name, col: column.New(fi.col.Name(), vals...)}
}

// Take returns a new flat index with rows picked at the given positions.
func (fi *FlatIndex) Take(positions []int64) (*FlatIndex, error) {
	for _, p := range positions {
		if p < 0 || p >= int64(fi.col.Len()) {
			if p == column.NullCode {
				return nil, ErrNullSelector
			}
			return nil, column.ErrPositionOutOfRange
		}
	}
	col, err := fi.col.Gather(positions)
	if err != nil {
		return nil, err
	}
	return &FlatIndex{name: fi.name, col: col}, nil
}
