package column

import "errors"

// NullCode is the code value reserved for null entries in factorized output.
const NullCode int64 = -1

// ErrPositionOutOfRange is returned by Gather when a position falls outside
// the column.
var ErrPositionOutOfRange = errors.New("gather position out of range")

// Column is a named, nullable vector of values.
//
// Nulls are represented as KindNull values; there is no separate validity
// mask at this layer.
type Column struct {
	name   string
	values []Value
}

// New creates a column from the given values. The slice is not copied.
func New(name string, values ...Value) *Column {
	return &Column{name: name, values: values}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Renamed returns a shallow copy of the column under a new name.
func (c *Column) Renamed(name string) *Column {
	return &Column{name: name, values: c.values}
}

// Len returns the number of rows.
func (c *Column) Len() int { return len(c.values) }

// At returns the value at row i.
func (c *Column) At(i int) Value { return c.values[i] }

// IsNull reports whether row i is null.
func (c *Column) IsNull(i int) bool { return c.values[i].IsNull() }

// HasNulls reports whether any row is null.
func (c *Column) HasNulls() bool {
	for i := range c.values {
		if c.values[i].IsNull() {
			return true
		}
	}
	return false
}

// Values returns a copy of the underlying values.
func (c *Column) Values() []Value {
	out := make([]Value, len(c.values))
	copy(out, c.values)
	return out
}

// Contains reports whether v occurs in the column.
func (c *Column) Contains(v Value) bool {
	for i := range c.values {
		if c.values[i].Equal(v) {
			return true
		}
	}
	return false
}

// Equal reports value equality, ignoring the column name.
func (c *Column) Equal(o *Column) bool {
	if c.Len() != o.Len() {
		return false
	}
	for i := range c.values {
		if !c.values[i].Equal(o.values[i]) {
			return false
		}
	}
	return true
}

// Factorize dictionary-encodes the column.
//
// Codes are assigned in stable first-occurrence order. Nulls are not added to
// the dictionary; they encode as NullCode.
func (c *Column) Factorize() (codes []int64, distinct *Column) {
	codes = make([]int64, len(c.values))
	seen := make(map[string]int64, len(c.values))
	var dict []Value
	for i, v := range c.values {
		if v.IsNull() {
			codes[i] = NullCode
			continue
		}
		k := v.Key()
		code, ok := seen[k]
		if !ok {
			code = int64(len(dict))
			seen[k] = code
			dict = append(dict, v)
		}
		codes[i] = code
	}
	return codes, New(c.name, dict...)
}

// Gather returns a new column with rows picked at the given positions, in
// order. A NullCode position yields a null row.
func (c *Column) Gather(positions []int64) (*Column, error) {
	out := make([]Value, len(positions))
	for i, p := range positions {
		if p == NullCode {
			out[i] = Null()
			continue
		}
		if p < 0 || p >= int64(len(c.values)) {
			return nil, ErrPositionOutOfRange
		}
		out[i] = c.values[p]
	}
	return &Column{name: c.name, values: out}, nil
}

// Append returns a new column holding this column's rows followed by the
// other's, keeping this column's name.
func (c *Column) Append(o *Column) *Column {
	out := make([]Value, 0, len(c.values)+len(o.values))
	out = append(out, c.values...)
	out = append(out, o.values...)
	return &Column{name: c.name, values: out}
}

// FillNull returns a new column with nulls replaced by v.
func (c *Column) FillNull(v Value) *Column {
	out := make([]Value, len(c.values))
	for i, cur := range c.values {
		if cur.IsNull() {
			out[i] = v
		} else {
			out[i] = cur
		}
	}
	return &Column{name: c.name, values: out}
}
