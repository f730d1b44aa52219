package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/colidx/column"
)

// RNG encapsulates a seeded random number generator. It is thread-safe and
// resettable, so tests and benchmarks stay reproducible.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Perm returns a pseudo-random permutation of [0,n) as int64 positions.
func (r *RNG) Perm(n int) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, n)
	for i, p := range r.rand.Perm(n) {
		out[i] = int64(p)
	}
	return out
}

// StringColumn generates a column of rows random strings drawn from a pool of
// cardinality distinct labels.
func (r *RNG) StringColumn(name string, rows, cardinality int) *column.Column {
	r.mu.Lock()
	defer r.mu.Unlock()

	vals := make([]column.Value, rows)
	for i := range vals {
		vals[i] = column.String(fmt.Sprintf("%s_%03d", name, r.rand.Intn(cardinality)))
	}
	return column.New(name, vals...)
}

// IntColumn generates a column of rows random integers in [0, cardinality).
func (r *RNG) IntColumn(name string, rows, cardinality int) *column.Column {
	r.mu.Lock()
	defer r.mu.Unlock()

	vals := make([]column.Value, rows)
	for i := range vals {
		vals[i] = column.Int(int64(r.rand.Intn(cardinality)))
	}
	return column.New(name, vals...)
}

// WithNulls returns a copy of the column with values nulled out at the given
// rate.
func (r *RNG) WithNulls(c *column.Column, rate float64) *column.Column {
	r.mu.Lock()
	defer r.mu.Unlock()

	vals := c.Values()
	for i := range vals {
		if r.rand.Float64() < rate {
			vals[i] = column.Null()
		}
	}
	return column.New(c.Name(), vals...)
}

// RandomTable generates a table with nlevels columns of rows random strings,
// each level drawing from a pool of cardinality distinct labels. Column names
// are "lvl0", "lvl1", and so on.
func (r *RNG) RandomTable(nlevels, rows, cardinality int) *column.Table {
	cols := make([]*column.Column, nlevels)
	for i := range cols {
		cols[i] = r.StringColumn(fmt.Sprintf("lvl%d", i), rows, cardinality)
	}
	t, err := column.NewTable(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// RandomTuples generates rows label tuples of the given width.
func (r *RNG) RandomTuples(rows, width, cardinality int) [][]column.Value {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][]column.Value, rows)
	for i := range out {
		tup := make([]column.Value, width)
		for j := range tup {
			tup[j] = column.String(fmt.Sprintf("v%d_%03d", j, r.rand.Intn(cardinality)))
		}
		out[i] = tup
	}
	return out
}
