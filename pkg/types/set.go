package types

import (
	"maps"
	"slices"

	"github.com/bytedance/sonic"
)

// Set is a facet selection. Sets are treated as immutable values: the
// toggle helpers return a new Set and never modify the receiver.
type Set map[string]struct{}

func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s Set) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// HasFold reports whether any member equals value after case folding.
func (s Set) HasFold(value string) bool {
	f := Fold(value)
	for v := range s {
		if Fold(v) == f {
			return true
		}
	}
	return false
}

func (s Set) Len() int {
	return len(s)
}

func (s Set) Clone() Set {
	if s == nil {
		return Set{}
	}
	return maps.Clone(s)
}

// Toggle returns a copy with value removed if present, otherwise added.
func (s Set) Toggle(value string) Set {
	ret := s.Clone()
	if ret.Has(value) {
		delete(ret, value)
	} else {
		ret[value] = struct{}{}
	}
	return ret
}

// ToggleFold is Toggle with case-insensitive membership: every member
// equal to value after folding is removed, or value is added as given.
func (s Set) ToggleFold(value string) Set {
	ret := s.Clone()
	f := Fold(value)
	removed := false
	for v := range ret {
		if Fold(v) == f {
			delete(ret, v)
			removed = true
		}
	}
	if !removed {
		ret[value] = struct{}{}
	}
	return ret
}

// Values returns the members in sorted order.
func (s Set) Values() []string {
	if len(s) == 0 {
		return []string{}
	}
	return slices.Sorted(maps.Keys(s))
}

func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for v := range s {
		if !other.Has(v) {
			return false
		}
	}
	return true
}

func (s Set) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(s.Values())
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var values []string
	if err := sonic.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewSet(values...)
	return nil
}
