package colidx

import "strconv"

// Name is an optional level name. The zero value is the missing name.
type Name struct {
	value string
	valid bool
}

// NameOf returns a present Name.
func NameOf(s string) Name { return Name{value: s, valid: true} }

// NoName returns the missing Name.
func NoName() Name { return Name{} }

// Valid reports whether the name is present.
func (n Name) Valid() bool { return n.valid }

// Value returns the name, or empty string when missing.
func (n Name) Value() string { return n.value }

// Or returns n when present, otherwise other.
func (n Name) Or(other Name) Name {
	if n.valid {
		return n
	}
	return other
}

// Equal reports whether two names are both missing or both present with the
// same value.
func (n Name) Equal(o Name) bool { return n.valid == o.valid && n.value == o.value }

func namesEqual(a, b []Name) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func namesUnique(names []Name) bool {
	seen := make(map[Name]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return false
		}
		seen[n] = struct{}{}
	}
	return true
}

// columnKeys derives decoded-table column keys from level names.
//
// If more than one name is missing, all keys are positional integers. With at
// most one missing name, present names key their columns and the missing one
// keys positionally.
func columnKeys(names []Name) []string {
	missing := 0
	for _, n := range names {
		if !n.valid {
			missing++
		}
	}
	keys := make([]string, len(names))
	for i, n := range names {
		if missing > 1 || !n.valid {
			keys[i] = strconv.Itoa(i)
		} else {
			keys[i] = n.value
		}
	}
	return keys
}
