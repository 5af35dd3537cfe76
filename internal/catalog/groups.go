package catalog

import "strings"

// GroupItem is one renderable unit: a variant group or a lone tag.
type GroupItem struct {
	Names       []string
	Description string
	Variant     bool
}

// Subgroup collects the items that share a subgroup title.
type Subgroup struct {
	Title string
	Items []GroupItem
}

// TitleHidden reports whether the title should not be shown. Untitled
// subgroups and titles starting with "!" are hidden.
func (s Subgroup) TitleHidden() bool {
	return s.Title == "" || strings.HasPrefix(s.Title, "!")
}

// Groups arranges the category for display. Subgroups appear in first-seen
// order; within each, variant groups come before lone tags.
func (c *CategoryIndex) Groups() []Subgroup {
	var out []Subgroup
	at := make(map[string]int)
	add := func(title string, item GroupItem) {
		i, ok := at[title]
		if !ok {
			i = len(out)
			at[title] = i
			out = append(out, Subgroup{Title: title})
		}
		out[i].Items = append(out[i].Items, item)
	}

	processed := make(map[string]bool)
	for _, spec := range c.def.Tags {
		main := spec.MainName()
		if !spec.HasVariants() || processed[main] {
			continue
		}
		processed[main] = true
		add(spec.Subgroup, GroupItem{
			Names:       append([]string(nil), spec.Name...),
			Description: spec.Description,
			Variant:     true,
		})
	}

	for _, name := range c.names {
		tag := c.tags[name]
		if tag.IsVariant || processed[tag.MainName] {
			continue
		}
		item := GroupItem{Names: []string{name}}
		var title string
		if tag.Spec != nil {
			item.Description = tag.Spec.Description
			title = tag.Spec.Subgroup
		}
		add(title, item)
	}
	return out
}
