package colidx

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/colidx/column"
)

// Levels returns the per-level dictionaries, computing them on first access.
// Dictionaries are in stable first-occurrence order, not sorted by value.
func (mi *MultiLevelIndex) Levels() []*column.Column {
	if mi.levels == nil {
		mi.computeLevelsAndCodes()
	}
	return mi.levels
}

// Codes returns the per-level code columns, computing them on first access.
func (mi *MultiLevelIndex) Codes() *column.Table {
	if mi.codes == nil {
		mi.computeLevelsAndCodes()
	}
	return mi.codes
}

// computeLevelsAndCodes factorizes every decoded column independently.
//
// Factorization is per-column and order-independent, so levels can be encoded
// in parallel; results land in fixed slots and stay deterministic.
func (mi *MultiLevelIndex) computeLevelsAndCodes() {
	n := mi.data.NumColumns()
	levels := make([]*column.Column, n)
	codeCols := make([]*column.Column, n)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			col := mi.data.Column(i)
			codes, distinct := col.Factorize()
			levels[i] = distinct
			codeCols[i] = intColumn(col.Name(), codes)
			return nil
		})
	}
	_ = g.Wait()

	codesTable, err := column.NewTable(codeCols...)
	if err != nil {
		// Decoded columns are equal-length by construction.
		panic(err)
	}
	mi.levels = levels
	mi.codes = codesTable

	mi.logger.LogFactorize(context.Background(), n, mi.data.Len(), nil)
}
