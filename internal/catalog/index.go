package catalog

import (
	"fmt"
	"strings"
)

// LookupKind names one of the three text lookup maps.
type LookupKind int

const (
	LookupName LookupKind = iota
	LookupAlias
	LookupSlash
)

// LookupOrder is the fixed probing priority used when resolving free text.
var LookupOrder = []LookupKind{LookupName, LookupAlias, LookupSlash}

func (k LookupKind) String() string {
	switch k {
	case LookupName:
		return "name"
	case LookupAlias:
		return "alias"
	case LookupSlash:
		return "slash"
	}
	return fmt.Sprintf("lookup(%d)", int(k))
}

// Entry is one concrete tag name in catalog declaration order.
type Entry struct {
	Position int
	Name     string
	MainName string
	Category *CategoryIndex
	Spec     *TagSpec
}

// Tag is a concrete name resolved inside its category.
type Tag struct {
	Name      string
	MainName  string
	IsVariant bool
	Spec      *TagSpec
}

// IsMainTag reports the tag's "main" flag.
func (t Tag) IsMainTag() bool {
	return t.Spec != nil && t.Spec.Main
}

// Alternative returns the secondary output text for the tag.
func (t Tag) Alternative() string {
	if t.Spec == nil {
		return ""
	}
	return t.Spec.Alternative
}

// CategoryIndex is the indexed, read-only view of one category.
type CategoryIndex struct {
	def   *Category
	tags  map[string]Tag
	names []string
}

// Name returns the category key.
func (c *CategoryIndex) Name() string { return c.def.Name }

// Type returns the selection discipline.
func (c *CategoryIndex) Type() CategoryType { return c.def.Type }

// Requirement returns the warning rule of the category.
func (c *CategoryIndex) Requirement() Requirement { return c.def.Requirement }

// OverrideRequirementText returns the custom warning text, if any.
func (c *CategoryIndex) OverrideRequirementText() string { return c.def.OverrideRequirementText }

// Description returns the category help text.
func (c *CategoryIndex) Description() string { return c.def.Description }

// Specs returns the tag declarations in catalog order.
func (c *CategoryIndex) Specs() []TagSpec { return c.def.Tags }

// Names returns every concrete name in declaration order, duplicates removed.
func (c *CategoryIndex) Names() []string { return c.names }

// Tag resolves a concrete name declared in this category.
func (c *CategoryIndex) Tag(name string) (Tag, bool) {
	t, ok := c.tags[name]
	return t, ok
}

// MainOf returns the main name that owns a concrete name.
func (c *CategoryIndex) MainOf(name string) (string, bool) {
	t, ok := c.tags[name]
	if !ok {
		return "", false
	}
	return t.MainName, true
}

// IsMainTag reports whether the tag group identified by main is flagged main.
func (c *CategoryIndex) IsMainTag(main string) bool {
	t, ok := c.tags[main]
	return ok && t.IsMainTag()
}

// Index holds the category graph and the lookup maps built from a Catalog.
type Index struct {
	catalog    *Catalog
	categories []*CategoryIndex
	byName     map[string]*CategoryIndex
	entries    []Entry
	lookups    [3]map[string][]int
}

// Build indexes a decoded catalog. The catalog must not be mutated afterwards.
func Build(cat *Catalog) (*Index, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	cat.applyDefaults()

	ix := &Index{
		catalog: cat,
		byName:  make(map[string]*CategoryIndex, len(cat.Categories)),
	}
	for k := range ix.lookups {
		ix.lookups[k] = make(map[string][]int)
	}

	for ci := range cat.Categories {
		def := &cat.Categories[ci]
		cidx := &CategoryIndex{
			def:  def,
			tags: make(map[string]Tag),
		}

		for ti := range def.Tags {
			spec := &def.Tags[ti]
			main := spec.MainName()
			for _, name := range spec.Name {
				if _, dup := cidx.tags[name]; !dup {
					cidx.names = append(cidx.names, name)
				}
				// Later declarations of the same name win.
				cidx.tags[name] = Tag{
					Name:      name,
					MainName:  main,
					IsVariant: name != main,
					Spec:      spec,
				}

				pos := len(ix.entries)
				ix.entries = append(ix.entries, Entry{
					Position: pos,
					Name:     name,
					MainName: main,
					Category: cidx,
					Spec:     spec,
				})

				ix.add(LookupName, strings.ToLower(name), pos)
				for _, alias := range spec.KnownAs {
					key := strings.ToLower(strings.TrimSpace(alias))
					if key == "" {
						continue
					}
					ix.add(LookupAlias, key, pos)
				}
				if !spec.HasVariants() && strings.Contains(name, "/") {
					for _, alt := range ExpandSlashes(name) {
						ix.add(LookupSlash, strings.ToLower(alt), pos)
					}
				}
			}
		}

		ix.categories = append(ix.categories, cidx)
		ix.byName[def.Name] = cidx
	}

	return ix, nil
}

func (ix *Index) add(kind LookupKind, key string, pos int) {
	ix.lookups[kind][key] = append(ix.lookups[kind][key], pos)
}

// Lookup returns the positions registered under key in one map, in
// declaration order. key must already be lower-cased.
func (ix *Index) Lookup(kind LookupKind, key string) []int {
	if kind < 0 || int(kind) >= len(ix.lookups) {
		return nil
	}
	return ix.lookups[kind][key]
}

// Entry returns the tag at a position of the global declaration order.
func (ix *Index) Entry(pos int) Entry {
	return ix.entries[pos]
}

// Len returns the number of concrete names in the catalog.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Entries returns every concrete name in declaration order.
func (ix *Index) Entries() []Entry {
	return ix.entries
}

// Categories returns the categories in declaration order.
func (ix *Index) Categories() []*CategoryIndex {
	return ix.categories
}

// Category looks a category up by name.
func (ix *Index) Category(name string) (*CategoryIndex, bool) {
	c, ok := ix.byName[name]
	return c, ok
}

// Separator joins and splits the canonical string.
func (ix *Index) Separator() string { return ix.catalog.Separator }

// AlternativeSeparator joins the alternative string.
func (ix *Index) AlternativeSeparator() string { return ix.catalog.AlternativeSeparator }

// CharacterLimit returns the configured budget; zero or less means no limit.
func (ix *Index) CharacterLimit() int { return ix.catalog.CharacterLimit }

// Reference returns the optional reference text of the catalog.
func (ix *Index) Reference() string { return ix.catalog.Reference }
