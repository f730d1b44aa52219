package resource

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerWorkers(t *testing.T) {
	c := NewController(Config{MaxWorkers: 2})
	ctx := context.Background()

	require.NoError(t, c.AcquireWorker(ctx))
	require.NoError(t, c.AcquireWorker(ctx))
	assert.Equal(t, int64(2), c.InFlight())

	assert.False(t, c.TryAcquireWorker(), "third slot must not be available")

	c.ReleaseWorker()
	assert.True(t, c.TryAcquireWorker())

	c.ReleaseWorker()
	c.ReleaseWorker()
	assert.Equal(t, int64(0), c.InFlight())
}

func TestControllerWorkerCancellation(t *testing.T) {
	c := NewController(Config{MaxWorkers: 1})
	require.NoError(t, c.AcquireWorker(context.Background()))
	defer c.ReleaseWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := c.AcquireWorker(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNilControllerEnforcesNothing(t *testing.T) {
	var c *Controller

	assert.NoError(t, c.AcquireWorker(context.Background()))
	assert.True(t, c.TryAcquireWorker())
	c.ReleaseWorker()
	assert.Equal(t, int64(0), c.InFlight())
	assert.NoError(t, c.AcquireIO(context.Background(), 1<<20))
}

func TestAcquireIOUnlimited(t *testing.T) {
	c := NewController(Config{MaxWorkers: 1})
	assert.NoError(t, c.AcquireIO(context.Background(), 1<<30))
}

func TestAcquireIOSplitsLargeRequests(t *testing.T) {
	// A request one byte over the burst must be split, not rejected.
	c := NewController(Config{MaxWorkers: 1, IOLimitBytesPerSec: 1 << 20})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assert.NoError(t, c.AcquireIO(ctx, 1<<20+1))
}

func TestRateLimitedWriter(t *testing.T) {
	c := NewController(Config{MaxWorkers: 1})
	var buf bytes.Buffer

	w := NewRateLimitedWriter(context.Background(), &buf, c)
	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", buf.String())
}

func TestRateLimitedReader(t *testing.T) {
	c := NewController(Config{MaxWorkers: 1})

	r := NewRateLimitedReader(context.Background(), bytes.NewReader([]byte("hello")), c)
	buf := make([]byte, 5)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}
