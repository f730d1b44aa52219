package colidx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colidx/column"
)

func TestFlatIndex(t *testing.T) {
	fi := NewFlatIndex(column.New("x", strs("b", "a", "b")...), NameOf("x"))

	assert.Equal(t, 3, fi.Len())
	assert.Equal(t, 1, fi.NLevels())
	assert.True(t, fi.At(1).Equal(column.String("a")))
	assert.False(t, fi.IsMonotonicIncreasing())
	assert.False(t, fi.IsMonotonicDecreasing())

	t.Run("unique keeps first occurrence order", func(t *testing.T) {
		u := fi.Unique()
		assert.Equal(t, 2, u.Len())
		assert.True(t, u.At(0).Equal(column.String("b")))
		assert.True(t, u.At(1).Equal(column.String("a")))
	})

	t.Run("take", func(t *testing.T) {
		out, err := fi.Take([]int64{2, 1})
		require.NoError(t, err)
		assert.True(t, out.At(0).Equal(column.String("b")))

		_, err = fi.Take([]int64{column.NullCode})
		assert.ErrorIs(t, err, ErrNullSelector)

		_, err = fi.Take([]int64{5})
		assert.ErrorIs(t, err, column.ErrPositionOutOfRange)
	})

	t.Run("equal", func(t *testing.T) {
		same := NewFlatIndex(column.New("other", strs("b", "a", "b")...), NameOf("x"))
		assert.True(t, fi.Equal(same), "column key does not participate")

		renamed := NewFlatIndex(column.New("x", strs("b", "a", "b")...), NameOf("y"))
		assert.False(t, fi.Equal(renamed))
		assert.False(t, fi.Equal(nil))
	})
}

func TestFlatIndexMonotonic(t *testing.T) {
	asc := NewFlatIndex(column.New("x", column.Null(), column.Int(1), column.Int(2)), NoName())
	assert.True(t, asc.IsMonotonicIncreasing(), "nulls sort first")

	desc := NewFlatIndex(column.New("x", column.Int(2), column.Int(1), column.Null()), NoName())
	assert.True(t, desc.IsMonotonicDecreasing())
}
