package gate

import (
	"sort"
	"strings"
)

// --------------------------------------------------------------------------
// Feature Name Sets
// --------------------------------------------------------------------------

// Set is an unordered collection of feature names.
// Feature names are case-sensitive ASCII tokens and must not contain commas,
// since the wire and storage representation of a set is a comma-joined list.
type Set map[string]struct{}

// NewSet creates a set from the given names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether name is in the set.
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Add inserts name into the set.
func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Remove deletes name from the set. Removing an absent name is a no-op.
func (s Set) Remove(name string) {
	delete(s, name)
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for n := range s {
		c[n] = struct{}{}
	}
	return c
}

// Sorted returns the names of the set in lexicographic order.
func (s Set) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Join serializes the set as a comma-joined, sorted list of names.
// This is the canonical storage and gossip representation of a feature set.
func (s Set) Join() string {
	return strings.Join(s.Sorted(), ",")
}

// Intersect returns the set of names present in both s and other.
func (s Set) Intersect(other Set) Set {
	res := make(Set)
	for n := range s {
		if other.Contains(n) {
			res[n] = struct{}{}
		}
	}
	return res
}

// Equal reports whether both sets contain exactly the same names.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for n := range s {
		if !other.Contains(n) {
			return false
		}
	}
	return true
}

// ToFeatureSet parses a comma-joined feature list into a set.
// Empty segments (from leading, trailing or doubled commas) are discarded,
// so ToFeatureSet(s.Join()) == s holds for any set of non-empty names.
func ToFeatureSet(features string) Set {
	s := make(Set)
	for _, name := range strings.Split(features, ",") {
		if name != "" {
			s[name] = struct{}{}
		}
	}
	return s
}
