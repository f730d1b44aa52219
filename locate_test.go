package colidx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colidx/column"
)

func TestGetLocSorted(t *testing.T) {
	mi := testIndex(t)

	t.Run("full key on unique index is scalar", func(t *testing.T) {
		loc, err := mi.GetLoc(column.String("b"), column.String("e"))
		require.NoError(t, err)
		assert.Equal(t, LocScalar, loc.Kind)
		assert.Equal(t, int64(1), loc.Pos)
	})

	t.Run("partial key is a contiguous range", func(t *testing.T) {
		loc, err := mi.GetLoc(column.String("b"))
		require.NoError(t, err)
		assert.Equal(t, LocRange, loc.Kind)
		assert.Equal(t, []int64{1, 2}, loc.Positions())
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := mi.GetLoc(column.String("z"))
		var kerr *ErrKeyNotFound
		require.ErrorAs(t, err, &kerr)
		assert.Equal(t, []column.Value{column.String("z")}, kerr.Key)

		assert.True(t, IsNotFound(err))
	})

	t.Run("key too long", func(t *testing.T) {
		_, err := mi.GetLoc(column.String("a"), column.String("d"), column.String("x"))
		assert.ErrorIs(t, err, ErrIndexerTooLong)

		_, err = mi.GetLoc()
		assert.ErrorIs(t, err, ErrIndexerTooLong)
	})
}

func TestGetLocUnsorted(t *testing.T) {
	mi, err := FromTuples([][]column.Value{
		strs("c", "d"),
		strs("b", "e"),
		strs("a", "f"),
		strs("b", "e"),
	}, nil)
	require.NoError(t, err)

	t.Run("strided matches collapse to a range", func(t *testing.T) {
		loc, err := mi.GetLoc(column.String("b"))
		require.NoError(t, err)
		assert.Equal(t, LocRange, loc.Kind)
		assert.Equal(t, int64(1), loc.Start)
		assert.Equal(t, int64(4), loc.Stop)
		assert.Equal(t, int64(2), loc.Step)
		assert.Equal(t, []int64{1, 3}, loc.Positions())
	})

	t.Run("single match on non-unique index is a width-one range", func(t *testing.T) {
		loc, err := mi.GetLoc(column.String("a"))
		require.NoError(t, err)
		assert.Equal(t, LocRange, loc.Kind)
		assert.Equal(t, []int64{2}, loc.Positions())
	})

	t.Run("unique unsorted index yields scalar", func(t *testing.T) {
		u, err := FromTuples([][]column.Value{
			strs("c", "d"),
			strs("a", "f"),
			strs("b", "e"),
		}, nil)
		require.NoError(t, err)

		loc, err := u.GetLoc(column.String("a"), column.String("f"))
		require.NoError(t, err)
		assert.Equal(t, LocScalar, loc.Kind)
		assert.Equal(t, int64(1), loc.Pos)
	})
}

func TestGetLocMask(t *testing.T) {
	// Matches at 0, 1 and 3 are no arithmetic progression, so the result
	// falls back to a bitmap.
	mi, err := FromTuples([][]column.Value{
		strs("b", "1"),
		strs("b", "2"),
		strs("a", "3"),
		strs("b", "4"),
	}, nil)
	require.NoError(t, err)

	loc, err := mi.GetLoc(column.String("b"))
	require.NoError(t, err)
	assert.Equal(t, LocMask, loc.Kind)
	assert.Equal(t, []int64{0, 1, 3}, loc.Positions())
	assert.Equal(t, uint64(3), loc.Mask.GetCardinality())
}

func TestGetLocDecreasing(t *testing.T) {
	mi, err := FromTuples([][]column.Value{
		strs("c", "x"),
		strs("b", "y"),
		strs("b", "x"),
		strs("a", "z"),
	}, nil)
	require.NoError(t, err)
	require.True(t, mi.IsMonotonicDecreasing())

	loc, err := mi.GetLoc(column.String("b"))
	require.NoError(t, err)
	assert.Equal(t, LocRange, loc.Kind)
	assert.Equal(t, []int64{1, 2}, loc.Positions())
}

func TestLocPositions(t *testing.T) {
	tests := []struct {
		name string
		loc  Loc
		want []int64
	}{
		{name: "scalar", loc: Loc{Kind: LocScalar, Pos: 7}, want: []int64{7}},
		{name: "forward range", loc: Loc{Kind: LocRange, Start: 1, Stop: 7, Step: 2}, want: []int64{1, 3, 5}},
		{name: "backward range", loc: Loc{Kind: LocRange, Start: 5, Stop: 1, Step: -2}, want: []int64{5, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.Positions())
		})
	}
}
