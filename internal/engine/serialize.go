package engine

import (
	"strings"

	"github.com/gravitrone/tagbuilder/internal/catalog"
)

// Canonical serializes the selection into the string Parse reads back.
func (e *Engine) Canonical() string {
	var names []string
	e.eachSelected(func(_ *catalog.CategoryIndex, tag catalog.Tag) {
		names = append(names, tag.Name)
	})
	return strings.Join(names, e.index.Separator())
}

// Alternative joins the alternative texts of the selected tags. With dedup,
// entries equal after trimming, lower-casing and collapsing whitespace are
// kept only once, in first-seen order.
func (e *Engine) Alternative(dedup bool) string {
	var alts []string
	seen := make(map[string]bool)
	e.eachSelected(func(_ *catalog.CategoryIndex, tag catalog.Tag) {
		alt := tag.Alternative()
		if alt == "" {
			return
		}
		key := normalizeAlternative(alt)
		if dedup && seen[key] {
			return
		}
		seen[key] = true
		alts = append(alts, alt)
	})
	return strings.Join(alts, e.index.AlternativeSeparator())
}

func normalizeAlternative(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// eachSelected walks selected tags in output order: categories in catalog
// order; ordered categories by selection order; standard categories by tag
// declaration order.
func (e *Engine) eachSelected(fn func(cat *catalog.CategoryIndex, tag catalog.Tag)) {
	for _, cat := range e.index.Categories() {
		c := cat.Name()
		emit := func(main string) {
			name, ok := e.store.Variant(c, main)
			if !ok {
				name = main
			}
			if tag, ok := cat.Tag(name); ok {
				fn(cat, tag)
			}
		}

		switch cat.Type() {
		case catalog.TypeOrdered:
			for _, main := range e.store.Ordered(c) {
				emit(main)
			}
		case catalog.TypeSingle:
			if ordered := e.store.Ordered(c); len(ordered) > 0 {
				emit(ordered[0])
			}
		default:
			done := make(map[string]bool)
			for _, spec := range cat.Specs() {
				main := spec.MainName()
				if done[main] || !e.store.IsSelected(c, main) {
					continue
				}
				done[main] = true
				emit(main)
			}
		}
	}
}
