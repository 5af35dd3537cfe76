package engine

import (
	"github.com/gravitrone/tagbuilder/internal/catalog"
)

const (
	defaultAtLeastOneText     = "Select at least one tag"
	defaultAtLeastOneMainText = "Select at least one main tag"
)

// RequirementStatus is the warning state of one category.
type RequirementStatus struct {
	Unmet   bool
	Message string
}

// Requirement evaluates the category's requirement rule against the
// current selection. Message is set for every category that has a rule;
// Unmet says whether it should be shown.
func (e *Engine) Requirement(category string) (RequirementStatus, error) {
	cat, ok := e.index.Category(category)
	if !ok {
		return RequirementStatus{}, unknownCategory(category)
	}

	var unmet bool
	var msg string
	switch cat.Requirement() {
	case catalog.RequireAtLeastOne:
		unmet = e.store.Count(cat.Name()) == 0
		msg = defaultAtLeastOneText
	case catalog.RequireAtLeastOneMain:
		unmet = true
		for _, main := range e.store.Ordered(cat.Name()) {
			if cat.IsMainTag(main) {
				unmet = false
				break
			}
		}
		msg = defaultAtLeastOneMainText
	default:
		return RequirementStatus{}, nil
	}

	if override := cat.OverrideRequirementText(); override != "" {
		msg = override
	}
	return RequirementStatus{Unmet: unmet, Message: msg}, nil
}

// TagState is how a single concrete name renders: selected when its main
// is selected with exactly this name as the variant. Order is the 1-based
// position inside an ordered category, zero otherwise.
type TagState struct {
	Selected bool
	Order    int
}

// TagState reports the render state of one concrete name.
func (e *Engine) TagState(category, name string) (TagState, error) {
	cat, tag, err := e.resolve(category, name)
	if err != nil {
		return TagState{}, err
	}
	v, ok := e.store.Variant(cat.Name(), tag.MainName)
	if !ok || v != tag.Name {
		return TagState{}, nil
	}
	st := TagState{Selected: true}
	if cat.Type() == catalog.TypeOrdered {
		for i, main := range e.store.Ordered(cat.Name()) {
			if main == tag.MainName {
				st.Order = i + 1
				break
			}
		}
	}
	return st, nil
}

// Selected returns the concrete names selected in category, in output
// order.
func (e *Engine) Selected(category string) ([]string, error) {
	if _, ok := e.index.Category(category); !ok {
		return nil, unknownCategory(category)
	}
	var out []string
	e.eachSelected(func(cat *catalog.CategoryIndex, tag catalog.Tag) {
		if cat.Name() == category {
			out = append(out, tag.Name)
		}
	})
	return out, nil
}
