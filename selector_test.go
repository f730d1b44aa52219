package colidx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colidx/column"
)

// threeLevel builds the fixture
//
//	("a","d","x") ("b","e","y") ("b","f","z")
func threeLevel(t *testing.T) *MultiLevelIndex {
	t.Helper()
	mi, err := FromTuples([][]column.Value{
		strs("a", "d", "x"),
		strs("b", "e", "y"),
		strs("b", "f", "z"),
	}, names("l0", "l1", "l2"))
	require.NoError(t, err)
	return mi
}

func TestSelectTuple(t *testing.T) {
	mi := threeLevel(t)

	t.Run("fully specified single row collapses to record", func(t *testing.T) {
		sel, err := mi.SelectTuple(Part(column.String("b")), Part(column.String("e")), Part(column.String("y")))
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, sel.Positions)
		assert.Equal(t, strs("b", "e", "y"), sel.Record)
		assert.Nil(t, sel.Index)
	})

	t.Run("fully specified key matching several rows keeps all levels", func(t *testing.T) {
		dup, err := FromTuples([][]column.Value{
			strs("a", "d"),
			strs("a", "d"),
			strs("b", "e"),
		}, names("l0", "l1"))
		require.NoError(t, err)

		sel, err := dup.SelectTuple(Part(column.String("a")), Part(column.String("d")))
		require.NoError(t, err)
		assert.Equal(t, []int64{0, 1}, sel.Positions)
		assert.Nil(t, sel.Record)

		out, ok := sel.Index.(*MultiLevelIndex)
		require.True(t, ok)
		assert.Equal(t, 2, out.NLevels())
		assert.Equal(t, 2, out.Len())
		assert.Equal(t, strs("a", "d"), out.At(1))
	})

	t.Run("prefix leaves one level as flat index", func(t *testing.T) {
		sel, err := mi.SelectTuple(Part(column.String("b")), Part(column.String("e")))
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, sel.Positions)
		assert.Nil(t, sel.Record)

		fi, ok := sel.Index.(*FlatIndex)
		require.True(t, ok, "one remaining level must collapse to a FlatIndex")
		assert.Equal(t, 1, fi.Len())
		assert.True(t, fi.At(0).Equal(column.String("y")))
		assert.Equal(t, NameOf("l2"), fi.Name())
	})

	t.Run("prefix leaves two levels as multi index", func(t *testing.T) {
		sel, err := mi.SelectTuple(Part(column.String("b")))
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, sel.Positions)

		out, ok := sel.Index.(*MultiLevelIndex)
		require.True(t, ok)
		assert.Equal(t, 2, out.NLevels())
		assert.Equal(t, strs("e", "y"), out.At(0))
		assert.Equal(t, strs("f", "z"), out.At(1))
		assert.Equal(t, names("l1", "l2"), out.Names())
	})

	t.Run("wildcard matches every value at its level", func(t *testing.T) {
		sel, err := mi.SelectTuple(Any(), Part(column.String("e")))
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, sel.Positions)
	})

	t.Run("trailing wildcards are stripped", func(t *testing.T) {
		sel, err := mi.SelectTuple(Part(column.String("b")), Any(), Any())
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, sel.Positions)
		_, ok := sel.Index.(*MultiLevelIndex)
		assert.True(t, ok, "stripped key consumes only one level")
	})

	t.Run("unknown component fails", func(t *testing.T) {
		_, err := mi.SelectTuple(Part(column.String("nope")))
		var kerr *ErrKeyNotFound
		require.ErrorAs(t, err, &kerr)
		assert.Equal(t, strs("nope"), kerr.Key)
	})

	t.Run("valid components with empty intersection", func(t *testing.T) {
		// "a" and "f" both exist in their levels but never together.
		sel, err := mi.SelectTuple(Part(column.String("a")), Part(column.String("f")))
		require.NoError(t, err)
		assert.Empty(t, sel.Positions)
		assert.Equal(t, strs("a", "f"), sel.EmptyLabel)
		assert.Nil(t, sel.Index)
	})

	t.Run("too many components", func(t *testing.T) {
		_, err := mi.SelectTuple(Part(column.String("a")), Part(column.String("d")), Part(column.String("x")), Part(column.String("w")))
		assert.ErrorIs(t, err, ErrIndexerTooLong)
	})
}

func TestSelectTuples(t *testing.T) {
	mi := threeLevel(t)

	sel, err := mi.SelectTuples(
		[]KeyPart{Part(column.String("a"))},
		[]KeyPart{Part(column.String("b"))},
	)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2}, sel.Positions)

	t.Run("mismatched wildcard pattern", func(t *testing.T) {
		_, err := mi.SelectTuples(
			[]KeyPart{Part(column.String("a")), Part(column.String("d"))},
			[]KeyPart{Any(), Part(column.String("e"))},
		)
		assert.ErrorIs(t, err, ErrInconsistentLevels)
	})
}

func TestSelectTupleRange(t *testing.T) {
	mi := threeLevel(t)

	t.Run("open bounds select everything", func(t *testing.T) {
		sel, err := mi.SelectTupleRange(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []int64{0, 1, 2}, sel.Positions)

		out, ok := sel.Index.(*MultiLevelIndex)
		require.True(t, ok, "positional access keeps all levels")
		assert.Equal(t, 3, out.NLevels())
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		sel, err := mi.SelectTupleRange(
			[]KeyPart{Part(column.String("a"))},
			[]KeyPart{Part(column.String("b")), Part(column.String("e"))},
		)
		require.NoError(t, err)
		assert.Equal(t, []int64{0, 1}, sel.Positions)
	})

	t.Run("missing bound", func(t *testing.T) {
		_, err := mi.SelectTupleRange([]KeyPart{Part(column.String("zzz"))}, nil)
		var kerr *ErrKeyNotFound
		assert.ErrorAs(t, err, &kerr)
	})
}

func TestSelectMask(t *testing.T) {
	mi := threeLevel(t)

	sel, err := mi.SelectMask([]bool{true, false, true})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 2}, sel.Positions)

	out, ok := sel.Index.(*MultiLevelIndex)
	require.True(t, ok)
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, 3, out.NLevels(), "mask access consumes no levels")

	_, err = mi.SelectMask([]bool{true})
	assert.ErrorIs(t, err, column.ErrLengthMismatch)
}

func TestSelectRange(t *testing.T) {
	mi := threeLevel(t)

	sel, err := mi.SelectRange(0, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 2}, sel.Positions)

	_, err = mi.SelectRange(0, 3, 0)
	assert.ErrorIs(t, err, column.ErrPositionOutOfRange)
}
