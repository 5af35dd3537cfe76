package engine

import (
	"go.uber.org/zap"

	"github.com/gravitrone/tagbuilder/internal/catalog"
)

// Toggle applies a click on a concrete tag name without any limit check.
// Use Click for user-driven toggles.
func (e *Engine) Toggle(category, name string) error {
	cat, tag, err := e.resolve(category, name)
	if err != nil {
		return err
	}
	e.toggle(cat, tag)
	return nil
}

func (e *Engine) toggle(cat *catalog.CategoryIndex, tag catalog.Tag) {
	c := cat.Name()
	main := tag.MainName

	switch cat.Type() {
	case catalog.TypeStandard:
		if v, ok := e.store.Variant(c, main); ok && v == tag.Name {
			e.store.Deselect(c, main)
			return
		}
		e.store.Select(c, main, tag.Name)
		e.cascade(cat, tag)

	case catalog.TypeSingle:
		active := e.store.IsSelected(c, main)
		e.store.ClearCategory(c)
		if !active {
			e.store.Select(c, main, tag.Name)
		}

	case catalog.TypeOrdered:
		if e.store.IsSelected(c, main) {
			e.store.Deselect(c, main)
		} else {
			e.store.Select(c, main, tag.Name)
			e.cascade(cat, tag)
		}
		e.sortOrdered(cat)

	default:
		e.log.Debug("toggle ignored for unknown category type",
			zap.String("category", c),
			zap.String("type", string(cat.Type())))
	}
}

// cascade selects the required companions of a freshly selected tag. Only
// names declared in the same category are considered.
func (e *Engine) cascade(cat *catalog.CategoryIndex, tag catalog.Tag) {
	if tag.Spec == nil {
		return
	}
	c := cat.Name()
	for _, req := range tag.Spec.RequiredTag {
		companion, ok := cat.Tag(req)
		if !ok {
			e.log.Debug("required tag not found in category",
				zap.String("category", c),
				zap.String("tag", tag.Name),
				zap.String("required", req))
			continue
		}
		if e.store.IsSelected(c, companion.MainName) {
			continue
		}
		e.store.Select(c, companion.MainName, companion.Name)
	}
}

// sortOrdered moves main tags ahead of the rest, keeping relative order.
func (e *Engine) sortOrdered(cat *catalog.CategoryIndex) {
	e.store.SortOrdered(cat.Name(), func(a, b string) bool {
		return cat.IsMainTag(a) && !cat.IsMainTag(b)
	})
}
