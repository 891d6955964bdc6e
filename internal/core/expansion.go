package core

import "sort"

// ExpansionSet is the immutable set of expanded node ids of a drill-down view.
type ExpansionSet struct {
	ids map[string]struct{}
}

// NewExpansionSet returns a set with ids expanded. Empty ids are ignored.
func NewExpansionSet(ids ...string) ExpansionSet {
	s := ExpansionSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
	return s
}

// Toggle returns a new set with id inserted when absent or removed when present.
func (s ExpansionSet) Toggle(id string) ExpansionSet {
	out := ExpansionSet{ids: make(map[string]struct{}, len(s.ids)+1)}
	for k := range s.ids {
		out.ids[k] = struct{}{}
	}
	if _, ok := out.ids[id]; ok {
		delete(out.ids, id)
	} else {
		out.ids[id] = struct{}{}
	}
	return out
}

func (s ExpansionSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s ExpansionSet) Len() int {
	return len(s.ids)
}

// IDs returns the expanded ids sorted.
func (s ExpansionSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold the same ids.
func (s ExpansionSet) Equal(o ExpansionSet) bool {
	if len(s.ids) != len(o.ids) {
		return false
	}
	for id := range s.ids {
		if !o.Contains(id) {
			return false
		}
	}
	return true
}
