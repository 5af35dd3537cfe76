package selection

import "sort"

// Snapshot is a detached copy of one category's selection.
type Snapshot struct {
	Category string
	Selected []string
	Variants map[string]string
	Ordered  []string
}

// Snapshot copies the current selection of category.
func (s *Store) Snapshot(category string) Snapshot {
	snap := Snapshot{
		Category: category,
		Variants: make(map[string]string),
	}
	st, ok := s.categories[category]
	if !ok {
		return snap
	}
	for main := range st.selected {
		snap.Selected = append(snap.Selected, main)
	}
	sort.Strings(snap.Selected)
	for main, v := range st.variant {
		snap.Variants[main] = v
	}
	snap.Ordered = append([]string(nil), st.ordered...)
	return snap
}

// Restore replaces the selection of snap.Category with the snapshot and
// repairs the reverse index for both the dropped and the restored mains.
func (s *Store) Restore(snap Snapshot) {
	s.ClearCategory(snap.Category)
	if len(snap.Selected) == 0 {
		return
	}
	st := s.state(snap.Category)
	for _, main := range snap.Selected {
		st.selected[main] = struct{}{}
		st.variant[main] = snap.Variants[main]
		s.owner[main] = snap.Category
	}
	st.ordered = append([]string(nil), snap.Ordered...)
}

// View is a comparable dump of the whole store, keyed by category. Categories
// with nothing selected are omitted.
type View map[string]Snapshot

// View copies the full store.
func (s *Store) View() View {
	out := make(View, len(s.categories))
	for name, st := range s.categories {
		if len(st.selected) == 0 {
			continue
		}
		out[name] = s.Snapshot(name)
	}
	return out
}

// Owners copies the reverse index.
func (s *Store) Owners() map[string]string {
	out := make(map[string]string, len(s.owner))
	for k, v := range s.owner {
		out[k] = v
	}
	return out
}
