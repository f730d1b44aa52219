package colidx

import (
	"context"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/colidx/column"
)

// LocKind tags the shape of a GetLoc result.
type LocKind uint8

const (
	// LocScalar is a single row position.
	LocScalar LocKind = iota + 1
	// LocRange is a strided position range [Start, Stop) with stride Step.
	LocRange
	// LocMask is a boolean mask over all rows.
	LocMask
)

// Loc is the result of a key lookup. Exactly one case is populated, selected
// by Kind; callers must branch on it.
//
// The three shapes are a space/precision trade-off: a caller that can consume
// a range avoids materializing one boolean per row.
type Loc struct {
	Kind LocKind

	// Pos is the matching row for LocScalar.
	Pos int64

	// Start, Stop, Step describe the matched positions for LocRange.
	// Step may be negative; Stop is exclusive in walking direction.
	Start, Stop, Step int64

	// Mask marks matched rows for LocMask.
	Mask *roaring.Bitmap
}

// Positions materializes the matched row positions in result order.
func (l Loc) Positions() []int64 {
	switch l.Kind {
	case LocScalar:
		return []int64{l.Pos}
	case LocRange:
		var out []int64
		if l.Step > 0 {
			for p := l.Start; p < l.Stop; p += l.Step {
				out = append(out, p)
			}
		} else {
			for p := l.Start; p > l.Stop; p += l.Step {
				out = append(out, p)
			}
		}
		return out
	case LocMask:
		out := make([]int64, 0, l.Mask.GetCardinality())
		it := l.Mask.Iterator()
		for it.HasNext() {
			out = append(out, int64(it.Next()))
		}
		return out
	default:
		return nil
	}
}

// GetLoc returns the location of a label tuple.
//
// A key shorter than NLevels is a partial key matched against the
// lexicographic prefix of levels. The result shape depends on match
// cardinality and index order:
//
//   - unique index, single match: LocScalar
//   - sorted index: contiguous LocRange
//   - unsorted, matches forming an arithmetic progression: strided LocRange
//   - otherwise: LocMask over all rows
//
// Zero matches fail with ErrKeyNotFound. Ambiguity is never an error; it
// degrades to a mask so arbitrary unsorted data stays usable.
func (mi *MultiLevelIndex) GetLoc(key ...column.Value) (Loc, error) {
	if len(key) == 0 || len(key) > mi.NLevels() {
		return Loc{}, ErrIndexerTooLong
	}

	// Order and uniqueness are judged on the full index, not the partial one.
	increasing := mi.IsMonotonicIncreasing()
	decreasing := !increasing && mi.IsMonotonicDecreasing()
	isSorted := increasing || decreasing
	isUnique := mi.IsUnique()

	partial := mi.data.Select(0, len(key))

	var perm []int64
	if !isSorted {
		perm = partial.ArgSort(nil)
	}
	lo, hi := lexsortedEqualRange(partial, key, perm, decreasing)

	loc, err := mi.classifyRange(key, lo, hi, perm, isSorted, isUnique)
	mi.logger.LogLocate(context.Background(), len(key), loc.Kind, err)
	return loc, err
}

// lexsortedEqualRange binary-searches the equal range of key. When perm is
// nil the table itself is sorted (descending when desc) and bounds are
// positional; otherwise the search walks the sort permutation and bounds
// index into perm.
func lexsortedEqualRange(t *column.Table, key []column.Value, perm []int64, desc bool) (lo, hi int) {
	n := t.Len()
	cmpRow := func(i int) int {
		r := i
		if perm != nil {
			r = int(perm[i])
		}
		for j, kv := range key {
			c := t.Column(j).At(r).Compare(kv)
			if desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	}
	lo = sort.Search(n, func(i int) bool { return cmpRow(i) >= 0 })
	hi = sort.Search(n, func(i int) bool { return cmpRow(i) > 0 })
	return lo, hi
}

func (mi *MultiLevelIndex) classifyRange(key []column.Value, lo, hi int, perm []int64, isSorted, isUnique bool) (Loc, error) {
	if lo == hi {
		return Loc{}, &ErrKeyNotFound{Key: key}
	}

	if isUnique && hi-lo == 1 {
		pos := int64(lo)
		if perm != nil {
			pos = perm[lo]
		}
		return Loc{Kind: LocScalar, Pos: pos}, nil
	}

	if isSorted {
		// Lex search on a monotonic index yields a contiguous range.
		return Loc{Kind: LocRange, Start: int64(lo), Stop: int64(hi), Step: 1}, nil
	}

	positions := perm[lo:hi]
	if loc, ok := positionsAsRange(positions); ok {
		return loc, nil
	}

	mask := roaring.New()
	for _, p := range positions {
		mask.Add(uint32(p))
	}
	return Loc{Kind: LocMask, Mask: mask}, nil
}

// positionsAsRange expresses positions as a strided range when they form an
// arithmetic progression.
func positionsAsRange(positions []int64) (Loc, bool) {
	if len(positions) == 1 {
		p := positions[0]
		return Loc{Kind: LocRange, Start: p, Stop: p + 1, Step: 1}, true
	}
	step := positions[1] - positions[0]
	if step == 0 {
		return Loc{}, false
	}
	for i := 2; i < len(positions); i++ {
		if positions[i]-positions[i-1] != step {
			return Loc{}, false
		}
	}
	last := positions[len(positions)-1]
	stop := last + 1
	if step < 0 {
		stop = last - 1
	}
	return Loc{Kind: LocRange, Start: positions[0], Stop: stop, Step: step}, true
}
