package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactorize(t *testing.T) {
	c := New("city", String("ber"), String("ham"), String("ber"), Null(), String("muc"))

	codes, distinct := c.Factorize()

	assert.Equal(t, []int64{0, 1, 0, NullCode, 2}, codes)
	require.Equal(t, 3, distinct.Len())
	assert.True(t, distinct.At(0).Equal(String("ber")), "dictionary must keep first-occurrence order")
	assert.True(t, distinct.At(1).Equal(String("ham")))
	assert.True(t, distinct.At(2).Equal(String("muc")))
}

func TestFactorizeGatherRoundTrip(t *testing.T) {
	c := New("n", Int(7), Null(), Int(7), Int(3))

	codes, distinct := c.Factorize()
	back, err := distinct.Gather(codes)
	require.NoError(t, err)

	assert.True(t, c.Equal(back))
}

func TestGather(t *testing.T) {
	c := New("x", Int(10), Int(20), Int(30))

	t.Run("null code yields null row", func(t *testing.T) {
		got, err := c.Gather([]int64{2, NullCode, 0})
		require.NoError(t, err)
		assert.True(t, got.At(0).Equal(Int(30)))
		assert.True(t, got.At(1).IsNull())
		assert.True(t, got.At(2).Equal(Int(10)))
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := c.Gather([]int64{3})
		assert.ErrorIs(t, err, ErrPositionOutOfRange)

		_, err = c.Gather([]int64{-2})
		assert.ErrorIs(t, err, ErrPositionOutOfRange)
	})
}

func TestFillNull(t *testing.T) {
	c := New("x", Int(1), Null(), Int(3))

	filled := c.FillNull(Int(0))

	assert.False(t, filled.HasNulls())
	assert.True(t, filled.At(1).Equal(Int(0)))
	assert.True(t, c.At(1).IsNull(), "original must be untouched")
}

func TestContains(t *testing.T) {
	c := New("x", String("a"), Null(), Int(1))

	assert.True(t, c.Contains(String("a")))
	assert.True(t, c.Contains(Null()))
	assert.False(t, c.Contains(String("b")))
	assert.False(t, c.Contains(Float(1)), "contains is strict about kind")
}
