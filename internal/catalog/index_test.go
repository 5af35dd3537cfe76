package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSample(t *testing.T) *Index {
	t.Helper()
	cat, err := Decode([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)
	ix, err := Build(cat)
	require.NoError(t, err)
	return ix
}

func TestBuildOrdersEntriesByDeclaration(t *testing.T) {
	ix := buildSample(t)

	require.Equal(t, 4, ix.Len())
	names := make([]string, 0, ix.Len())
	for _, e := range ix.Entries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Bright", "Luminous", "Dark", "Sci/Hard Fi"}, names)

	lum := ix.Entry(1)
	assert.Equal(t, "Bright", lum.MainName)
	assert.Equal(t, "Mood", lum.Category.Name())
	assert.Equal(t, 1, lum.Position)
}

func TestBuildNameIndexIsLowerCased(t *testing.T) {
	ix := buildSample(t)

	assert.Equal(t, []int{1}, ix.Lookup(LookupName, "luminous"))
	assert.Nil(t, ix.Lookup(LookupName, "Luminous"))
	assert.Equal(t, []int{3}, ix.Lookup(LookupName, "sci/hard fi"))
}

func TestBuildAliasIndexTrimsAndLowers(t *testing.T) {
	ix := buildSample(t)
	assert.Equal(t, []int{2}, ix.Lookup(LookupAlias, "gloomy"))
}

func TestBuildSlashIndexOnlyForSingleNameTags(t *testing.T) {
	cat := &Catalog{Categories: []Category{{
		Name: "X",
		Tags: []TagSpec{
			{Name: NameList{"A/B"}},
			{Name: NameList{"C/D", "E"}},
		},
	}}}
	ix, err := Build(cat)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, ix.Lookup(LookupSlash, "a"))
	assert.Equal(t, []int{0}, ix.Lookup(LookupSlash, "b"))
	assert.Nil(t, ix.Lookup(LookupSlash, "c"))
	assert.Nil(t, ix.Lookup(LookupSlash, "d"))
}

func TestBuildDuplicateNamesKeepEveryPosition(t *testing.T) {
	cat := &Catalog{Categories: []Category{
		{Name: "One", Tags: []TagSpec{{Name: NameList{"x"}}, {Name: NameList{"y"}}}},
		{Name: "Two", Tags: []TagSpec{{Name: NameList{"X"}}}},
	}}
	ix, err := Build(cat)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2}, ix.Lookup(LookupName, "x"))
	assert.Equal(t, "Two", ix.Entry(2).Category.Name())
}

func TestCategoryIndexTagLookup(t *testing.T) {
	ix := buildSample(t)
	mood, ok := ix.Category("Mood")
	require.True(t, ok)

	tag, ok := mood.Tag("Luminous")
	require.True(t, ok)
	assert.Equal(t, "Bright", tag.MainName)
	assert.True(t, tag.IsVariant)
	assert.Equal(t, "well-lit", tag.Alternative())

	main, ok := mood.MainOf("Bright")
	require.True(t, ok)
	assert.Equal(t, "Bright", main)

	_, ok = mood.Tag("Nope")
	assert.False(t, ok)

	genre, _ := ix.Category("Genre")
	assert.True(t, genre.IsMainTag("Sci/Hard Fi"))
	assert.False(t, mood.IsMainTag("Bright"))
	assert.Equal(t, []string{"Bright", "Luminous", "Dark"}, mood.Names())
}

func TestBuildRejectsMalformedCatalog(t *testing.T) {
	_, err := Build(&Catalog{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestLintFindsAuthoringMistakes(t *testing.T) {
	cat := &Catalog{Categories: []Category{
		{
			Name:        "A",
			Type:        "weird",
			Requirement: RequireAtLeastOneMain,
			Tags: []TagSpec{
				{Name: NameList{"x"}, RequiredTag: NameList{"ghost"}},
				{Name: NameList{"x"}},
			},
		},
		{Name: "B", Type: TypeSingle, Tags: []TagSpec{{Name: NameList{"x"}, RequiredTag: NameList{"x"}}}},
	}}
	ix, err := Build(cat)
	require.NoError(t, err)

	findings := Lint(ix)
	var messages []string
	for _, f := range findings {
		messages = append(messages, f.String())
	}
	assert.Contains(t, messages, `warning: A: unknown type "weird"; clicks in this category are ignored`)
	assert.Contains(t, messages, `warning: A / x: required tag "ghost" is not declared in this category`)
	assert.Contains(t, messages, "warning: A / x: name declared more than once; the last declaration wins")
	assert.Contains(t, messages, "warning: A: requires a main tag but declares none")
	assert.Contains(t, messages, `info: B / x: main name also declared in "A"; free text resolves it by position`)
	assert.Contains(t, messages, "info: B / x: required tags are not applied in single categories")
}
