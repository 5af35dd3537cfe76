package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformed marks a catalog whose shape cannot be indexed.
var ErrMalformed = errors.New("malformed catalog")

// ErrSyntax marks a catalog file that could not be decoded at all.
var ErrSyntax = errors.New("catalog syntax error")

// --- Enumerations ---

// CategoryType selects the selection discipline of a category.
type CategoryType string

const (
	TypeStandard CategoryType = "standard"
	TypeOrdered  CategoryType = "ordered"
	TypeSingle   CategoryType = "single"
)

// Known reports whether the engine has rules for t.
func (t CategoryType) Known() bool {
	switch t {
	case TypeStandard, TypeOrdered, TypeSingle:
		return true
	}
	return false
}

// Requirement describes when a category shows its warning.
type Requirement string

const (
	RequireNone           Requirement = "none"
	RequireAtLeastOne     Requirement = "atLeastOne"
	RequireAtLeastOneMain Requirement = "atLeastOneMain"
)

// Known reports whether r is one of the supported requirement values.
func (r Requirement) Known() bool {
	switch r {
	case RequireNone, RequireAtLeastOne, RequireAtLeastOneMain:
		return true
	}
	return false
}

const (
	// DefaultSeparator is used when a catalog omits its separator.
	DefaultSeparator = ", "
	// DefaultAlternativeSeparator is used when a catalog omits alternativeSeparator.
	DefaultAlternativeSeparator = ", "
)

// --- Catalog Shape ---

// Catalog is the declarative tag configuration. It is read-only once indexed.
type Catalog struct {
	Separator            string     `json:"separator" yaml:"separator" toml:"separator"`
	AlternativeSeparator string     `json:"alternativeSeparator" yaml:"alternativeSeparator" toml:"alternativeSeparator"`
	CharacterLimit       int        `json:"characterLimit,omitempty" yaml:"characterLimit,omitempty" toml:"characterLimit,omitempty"`
	Reference            string     `json:"reference,omitempty" yaml:"reference,omitempty" toml:"reference,omitempty"`
	Categories           []Category `json:"categories" yaml:"categories" toml:"categories"`
}

// Category is one named group of tags.
type Category struct {
	Name                    string       `json:"name" yaml:"name" toml:"name"`
	Type                    CategoryType `json:"type" yaml:"type" toml:"type"`
	Requirement             Requirement  `json:"requirement,omitempty" yaml:"requirement,omitempty" toml:"requirement,omitempty"`
	OverrideRequirementText string       `json:"overrideRequirementText,omitempty" yaml:"overrideRequirementText,omitempty" toml:"overrideRequirementText,omitempty"`
	Description             string       `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Tags                    []TagSpec    `json:"tags" yaml:"tags" toml:"tags"`
}

// TagSpec declares one logical tag choice. The first name is the main name,
// the rest are variants of it.
type TagSpec struct {
	Name        NameList `json:"name" yaml:"name" toml:"name"`
	Alternative string   `json:"alternative,omitempty" yaml:"alternative,omitempty" toml:"alternative,omitempty"`
	Subgroup    string   `json:"subgroup,omitempty" yaml:"subgroup,omitempty" toml:"subgroup,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Main        bool     `json:"main,omitempty" yaml:"main,omitempty" toml:"main,omitempty"`
	KnownAs     []string `json:"knownAs,omitempty" yaml:"knownAs,omitempty" toml:"knownAs,omitempty"`
	RequiredTag NameList `json:"requiredTag,omitempty" yaml:"requiredTag,omitempty" toml:"requiredTag,omitempty"`
}

// MainName returns the first declared name.
func (t TagSpec) MainName() string {
	if len(t.Name) == 0 {
		return ""
	}
	return t.Name[0]
}

// HasVariants reports whether the tag declares more than one name.
func (t TagSpec) HasVariants() bool {
	return len(t.Name) > 1
}

// NameList accepts either a single string or a list of strings.
type NameList []string

func (n *NameList) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*n = nil
		return nil
	}
	// Try as string first
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = NameList{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("name must be a string or a list of strings")
	}
	*n = list
	return nil
}

func (n *NameList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*n = nil
			return nil
		}
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*n = NameList{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*n = list
		return nil
	}
	return fmt.Errorf("line %d: name must be a string or a list of strings", value.Line)
}

// UnmarshalTOML implements toml.Unmarshaler.
func (n *NameList) UnmarshalTOML(data any) error {
	switch typed := data.(type) {
	case string:
		*n = NameList{typed}
		return nil
	case []any:
		list := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("name list entries must be strings, got %T", item)
			}
			list = append(list, s)
		}
		*n = list
		return nil
	}
	return fmt.Errorf("name must be a string or a list of strings, got %T", data)
}

// --- Normalization ---

// applyDefaults fills optional fields the way the catalog format documents them.
func (c *Catalog) applyDefaults() {
	if c.Separator == "" {
		c.Separator = DefaultSeparator
	}
	if c.AlternativeSeparator == "" {
		c.AlternativeSeparator = DefaultAlternativeSeparator
	}
	for i := range c.Categories {
		cat := &c.Categories[i]
		if cat.Type == "" {
			cat.Type = TypeStandard
		}
		if cat.Requirement == "" {
			cat.Requirement = RequireNone
		}
	}
}

// Validate checks the structural constraints the index depends on.
func (c *Catalog) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: empty document", ErrMalformed)
	}
	if c.Categories == nil {
		return fmt.Errorf("%w: missing categories array", ErrMalformed)
	}
	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return fmt.Errorf("%w: category %d has no name", ErrMalformed, i)
		}
		if seen[cat.Name] {
			return fmt.Errorf("%w: duplicate category %q", ErrMalformed, cat.Name)
		}
		seen[cat.Name] = true
		if cat.Tags == nil {
			return fmt.Errorf("%w: category %q missing tags array", ErrMalformed, cat.Name)
		}
		for j, tag := range cat.Tags {
			if len(tag.Name) == 0 {
				return fmt.Errorf("%w: category %q tag %d has no name", ErrMalformed, cat.Name, j)
			}
			for _, n := range tag.Name {
				if n == "" {
					return fmt.Errorf("%w: category %q tag %d has an empty name", ErrMalformed, cat.Name, j)
				}
			}
		}
	}
	return nil
}
