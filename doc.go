// Package colidx implements a hierarchical (multi-level) index over columnar
// data.
//
// A MultiLevelIndex keeps a decoded table of label tuples as its source of
// truth and lazily derives a dictionary-encoded form: per-level dictionaries
// of distinct values plus integer codes. Lookups (GetLoc), row selection
// (SelectTuple and friends) and reshaping (Take, DropLevel, Append) operate
// on whichever representation is cheaper and keep both consistent.
//
// Persistence lives in the snapshot package, storage backends in blobstore.
package colidx
