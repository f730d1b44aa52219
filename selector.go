package colidx

import (
	"github.com/hupe1980/colidx/column"
)

// KeyPart is one component of a row selector tuple: either a concrete label
// or a wildcard matching every value at its level.
type KeyPart struct {
	value column.Value
	wild  bool
}

// Part selects rows whose level value equals v.
func Part(v column.Value) KeyPart { return KeyPart{value: v} }

// Any is the wildcard component.
func Any() KeyPart { return KeyPart{wild: true} }

// Selection is the outcome of a row selection.
//
// Positions always holds the matched row positions. The other fields encode
// the down-cast result shape: Record is set when the selection collapsed to a
// single fully-specified row; EmptyLabel carries the (possibly partial) key
// when nothing matched; Index otherwise holds the remaining index over the
// selected rows, a FlatIndex when exactly one level is left unconsumed.
type Selection struct {
	Positions  []int64
	Index      Index
	Record     []column.Value
	EmptyLabel []column.Value
}

// SelectTuple selects rows matching a (possibly partial) label tuple.
// Wildcard components match everything at their level; trailing wildcards
// are stripped before validation.
func (mi *MultiLevelIndex) SelectTuple(parts ...KeyPart) (*Selection, error) {
	stripped, err := mi.validateIndexer(parts)
	if err != nil {
		return nil, err
	}
	positions, err := mi.computeValidityMask(stripped)
	if err != nil {
		return nil, err
	}
	return mi.downcast(positions, stripped, false)
}

// SelectTuples selects rows matching any of the given tuples. All tuples must
// share length and wildcard pattern.
func (mi *MultiLevelIndex) SelectTuples(tuples ...[]KeyPart) (*Selection, error) {
	if len(tuples) == 0 {
		return mi.downcast(nil, nil, false)
	}
	first, err := mi.validateIndexer(tuples[0])
	if err != nil {
		return nil, err
	}
	stripped := make([][]KeyPart, len(tuples))
	stripped[0] = first
	for i := 1; i < len(tuples); i++ {
		s, err := mi.validateIndexer(tuples[i])
		if err != nil {
			return nil, err
		}
		if len(s) != len(first) {
			return nil, ErrInconsistentLevels
		}
		for j := range s {
			if s[j].wild != first[j].wild {
				return nil, ErrInconsistentLevels
			}
		}
		stripped[i] = s
	}
	positions, err := mi.computeValidityMaskMulti(stripped)
	if err != nil {
		return nil, err
	}
	return mi.downcast(positions, first, false)
}

// SelectTupleRange selects the contiguous row span between two label tuples,
// inclusive on both ends. A nil bound is open and resolves to the first/last
// row. A tuple bound resolves through the validity mask; the span runs from
// the smallest start match to the largest stop match.
func (mi *MultiLevelIndex) SelectTupleRange(start, stop []KeyPart) (*Selection, error) {
	lo := int64(0)
	hi := int64(mi.Len() - 1)

	if start != nil {
		stripped, err := mi.validateIndexer(start)
		if err != nil {
			return nil, err
		}
		matches, err := mi.computeValidityMask(stripped)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, &ErrKeyNotFound{Key: partValues(stripped)}
		}
		lo = minInt64(matches)
	}
	if stop != nil {
		stripped, err := mi.validateIndexer(stop)
		if err != nil {
			return nil, err
		}
		matches, err := mi.computeValidityMask(stripped)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, &ErrKeyNotFound{Key: partValues(stripped)}
		}
		hi = maxInt64(matches)
	}

	var positions []int64
	for p := lo; p <= hi; p++ {
		positions = append(positions, p)
	}
	return mi.downcast(positions, nil, true)
}

// SelectMask selects rows by boolean mask; it passes through to positional
// selection with no levels consumed.
func (mi *MultiLevelIndex) SelectMask(mask []bool) (*Selection, error) {
	if len(mask) != mi.Len() {
		return nil, column.ErrLengthMismatch
	}
	var positions []int64
	for i, keep := range mask {
		if keep {
			positions = append(positions, int64(i))
		}
	}
	return mi.downcast(positions, nil, true)
}

// SelectRange selects rows by positional range, no levels consumed.
func (mi *MultiLevelIndex) SelectRange(start, stop, step int) (*Selection, error) {
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
	return mi.downcast(positions, nil, true)
}

// validateIndexer strips trailing wildcard components and checks the
// remaining tuple fits the level count.
func (mi *MultiLevelIndex) validateIndexer(parts []KeyPart) ([]KeyPart, error) {
	end := len(parts)
	for end > 0 && parts[end-1].wild {
		end--
	}
	stripped := parts[:end]
	if len(stripped) > mi.NLevels() {
		return nil, ErrIndexerTooLong
	}
	return stripped, nil
}

// computeValidityMask computes the row positions matching a single tuple.
//
// Non-wildcard components form a one-row lookup table that is inner-joined
// against the decoded table; surviving row positions are the matches. An
// empty join triggers a per-component membership check against the level
// dictionaries to distinguish a key that never existed (ErrKeyNotFound) from
// an empty but valid selection.
func (mi *MultiLevelIndex) computeValidityMask(parts []KeyPart) ([]int64, error) {
	return mi.computeValidityMaskMulti([][]KeyPart{parts})
}

func (mi *MultiLevelIndex) computeValidityMaskMulti(tuples [][]KeyPart) ([]int64, error) {
	if len(tuples) == 0 {
		return nil, nil
	}
	parts := tuples[0]

	var lookupCols []*column.Column
	var lookupLevels []int
	for idx, part := range parts {
		if part.wild {
			continue
		}
		vals := make([]column.Value, len(tuples))
		for i, tup := range tuples {
			vals[i] = tup[idx].value
		}
		lookupCols = append(lookupCols, column.New(mi.data.Column(idx).Name(), vals...))
		lookupLevels = append(lookupLevels, idx)
	}
	if len(lookupCols) == 0 {
		// Pure wildcard: every row matches.
		positions := make([]int64, mi.Len())
		for i := range positions {
			positions[i] = int64(i)
		}
		return positions, nil
	}

	lookup, err := column.NewTable(lookupCols...)
	if err != nil {
		return nil, err
	}
	positions, err := mi.data.InnerJoinPositions(lookup)
	if err != nil {
		return nil, err
	}

	// Levels are only computed when the merge comes back empty, which
	// suggests a key miss that must be told apart from a valid empty result.
	if len(positions) == 0 {
		levels := mi.Levels()
		for _, tup := range tuples {
			for _, idx := range lookupLevels {
				if !levels[idx].Contains(tup[idx].value) {
					return nil, &ErrKeyNotFound{Key: []column.Value{tup[idx].value}}
				}
			}
		}
	}
	return positions, nil
}

// downcast gathers the selected rows and collapses the result shape.
// size is the stripped key (nil for positional access, sliceAccess true).
func (mi *MultiLevelIndex) downcast(positions []int64, key []KeyPart, sliceAccess bool) (*Selection, error) {
	taken, err := mi.Take(positions)
	if err != nil {
		return nil, err
	}
	size := len(key)
	sel := &Selection{Positions: positions}

	if !sliceAccess {
		if len(positions) == 1 && size == mi.NLevels() {
			// One row, every level specified: collapse to a record.
			sel.Record = taken.At(0)
			return sel, nil
		}
		if len(positions) == 0 {
			sel.EmptyLabel = partValues(key)
			return sel, nil
		}
	}

	remaining := mi.NLevels() - size
	switch {
	case size == 0, remaining == 0:
		// Positional access, or a fully specified key matching several rows
		// on a non-unique index: every level survives.
		sel.Index = taken
	case remaining == 1:
		last := taken.data.Column(taken.NLevels() - 1)
		sel.Index = NewFlatIndex(last, taken.names[taken.NLevels()-1])
	default:
		idx, err := taken.popLeading(size)
		if err != nil {
			return nil, err
		}
		sel.Index = idx
	}
	return sel, nil
}

func partValues(parts []KeyPart) []column.Value {
	out := make([]column.Value, len(parts))
	for i, p := range parts {
		if p.wild {
			out[i] = column.Null()
		} else {
			out[i] = p.value
		}
	}
	return out
}

func minInt64(xs []int64) int64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxInt64(xs []int64) int64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}
