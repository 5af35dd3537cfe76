// Package selection holds the mutable per-category selection state and the
// global main-name to category reverse index.
//
// Every mutation goes through Store so the reverse index stays consistent
// with the per-category sets.
package selection

import "sort"

// CategoryState is the selection of one category.
type CategoryState struct {
	selected map[string]struct{}
	variant  map[string]string
	ordered  []string
}

func newCategoryState() *CategoryState {
	return &CategoryState{
		selected: make(map[string]struct{}),
		variant:  make(map[string]string),
	}
}

// Store is the selection state of one loaded catalog. It is not safe for
// concurrent use.
type Store struct {
	categories map[string]*CategoryState
	owner      map[string]string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		categories: make(map[string]*CategoryState),
		owner:      make(map[string]string),
	}
}

func (s *Store) state(category string) *CategoryState {
	st, ok := s.categories[category]
	if !ok {
		st = newCategoryState()
		s.categories[category] = st
	}
	return st
}

// --- Mutators ---

// Select marks main as selected in category, represented by variant. A main
// that is already selected keeps its order position and only changes variant.
func (s *Store) Select(category, main, variant string) {
	st := s.state(category)
	if _, ok := st.selected[main]; !ok {
		st.selected[main] = struct{}{}
		st.ordered = append(st.ordered, main)
	}
	st.variant[main] = variant
	s.owner[main] = category
}

// Deselect removes main from category.
func (s *Store) Deselect(category, main string) {
	st, ok := s.categories[category]
	if !ok {
		return
	}
	if _, ok := st.selected[main]; !ok {
		return
	}
	delete(st.selected, main)
	delete(st.variant, main)
	st.ordered = removeString(st.ordered, main)
	if s.owner[main] == category {
		delete(s.owner, main)
	}
}

// ClearCategory deselects everything in category.
func (s *Store) ClearCategory(category string) {
	st, ok := s.categories[category]
	if !ok {
		return
	}
	for _, main := range st.ordered {
		if s.owner[main] == category {
			delete(s.owner, main)
		}
	}
	delete(s.categories, category)
}

// ClearAll resets the store to empty.
func (s *Store) ClearAll() {
	s.categories = make(map[string]*CategoryState)
	s.owner = make(map[string]string)
}

// SortOrdered stably reorders the selection order of category. less receives
// main names.
func (s *Store) SortOrdered(category string, less func(a, b string) bool) {
	st, ok := s.categories[category]
	if !ok {
		return
	}
	sort.SliceStable(st.ordered, func(i, j int) bool {
		return less(st.ordered[i], st.ordered[j])
	})
}

// --- Accessors ---

// IsSelected reports whether main is selected in category.
func (s *Store) IsSelected(category, main string) bool {
	st, ok := s.categories[category]
	if !ok {
		return false
	}
	_, sel := st.selected[main]
	return sel
}

// Variant returns the concrete name representing a selected main.
func (s *Store) Variant(category, main string) (string, bool) {
	st, ok := s.categories[category]
	if !ok {
		return "", false
	}
	v, ok := st.variant[main]
	return v, ok
}

// Ordered returns a copy of the selection order of category.
func (s *Store) Ordered(category string) []string {
	st, ok := s.categories[category]
	if !ok || len(st.ordered) == 0 {
		return nil
	}
	out := make([]string, len(st.ordered))
	copy(out, st.ordered)
	return out
}

// Count returns how many mains are selected in category.
func (s *Store) Count(category string) int {
	st, ok := s.categories[category]
	if !ok {
		return 0
	}
	return len(st.selected)
}

// Owner returns the category a selected main belongs to.
func (s *Store) Owner(main string) (string, bool) {
	c, ok := s.owner[main]
	return c, ok
}

// Empty reports whether nothing is selected anywhere.
func (s *Store) Empty() bool {
	return len(s.owner) == 0
}

func removeString(list []string, v string) []string {
	out := list[:0]
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}
