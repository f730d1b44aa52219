// Package testutil provides seeded random data builders shared by tests and
// benchmarks.
package testutil
