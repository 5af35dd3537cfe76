package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "separator": ", ",
  "alternativeSeparator": "; ",
  "characterLimit": 120,
  "categories": [
    {
      "name": "Mood",
      "type": "standard",
      "tags": [
        {"name": ["Bright", "Luminous"], "alternative": "well-lit"},
        {"name": "Dark", "knownAs": [" Gloomy "]}
      ]
    },
    {
      "name": "Genre",
      "tags": [
        {"name": "Sci/Hard Fi", "main": true}
      ]
    }
  ]
}`

func TestDecodeJSONAcceptsStringAndListNames(t *testing.T) {
	cat, err := Decode([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	require.Len(t, cat.Categories, 2)
	assert.Equal(t, NameList{"Bright", "Luminous"}, cat.Categories[0].Tags[0].Name)
	assert.Equal(t, NameList{"Dark"}, cat.Categories[0].Tags[1].Name)
	assert.Equal(t, "; ", cat.AlternativeSeparator)
	assert.Equal(t, 120, cat.CharacterLimit)
}

func TestDecodeAppliesDefaults(t *testing.T) {
	cat, err := Decode([]byte(`{"categories":[{"name":"A","tags":[]}]}`), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, DefaultSeparator, cat.Separator)
	assert.Equal(t, DefaultAlternativeSeparator, cat.AlternativeSeparator)
	assert.Equal(t, TypeStandard, cat.Categories[0].Type)
	assert.Equal(t, RequireNone, cat.Categories[0].Requirement)
	assert.Equal(t, 0, cat.CharacterLimit)
}

func TestDecodeNullRequiredTagIsEmpty(t *testing.T) {
	cat, err := Decode([]byte(`{"categories":[{"name":"A","tags":[{"name":"x","requiredTag":null}]}]}`), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, cat.Categories[0].Tags[0].RequiredTag)
}

func TestDecodeShapeViolations(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{name: "missing categories", payload: `{"separator": ","}`},
		{name: "null categories", payload: `{"categories": null}`},
		{name: "missing tags", payload: `{"categories":[{"name":"A"}]}`},
		{name: "unnamed category", payload: `{"categories":[{"tags":[]}]}`},
		{name: "duplicate category", payload: `{"categories":[{"name":"A","tags":[]},{"name":"A","tags":[]}]}`},
		{name: "empty tag name list", payload: `{"categories":[{"name":"A","tags":[{"name":[]}]}]}`},
		{name: "empty tag name", payload: `{"categories":[{"name":"A","tags":[{"name":""}]}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.payload), FormatJSON)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := Decode([]byte(`{"categories": [`), FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSyntax))
	assert.False(t, errors.Is(err, ErrMalformed))
}

func TestDecodeNameWrongType(t *testing.T) {
	_, err := Decode([]byte(`{"categories":[{"name":"A","tags":[{"name":42}]}]}`), FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSyntax))
}

func TestDecodeYAML(t *testing.T) {
	doc := `
separator: ", "
alternativeSeparator: " | "
categories:
  - name: Order
    type: ordered
    requirement: atLeastOneMain
    tags:
      - name: A
        main: true
        requiredTag: B
      - name: [B, Bee]
        knownAs: [bb]
`
	cat, err := Decode([]byte(doc), FormatYAML)
	require.NoError(t, err)

	require.Len(t, cat.Categories, 1)
	c := cat.Categories[0]
	assert.Equal(t, TypeOrdered, c.Type)
	assert.Equal(t, RequireAtLeastOneMain, c.Requirement)
	assert.Equal(t, NameList{"B"}, c.Tags[0].RequiredTag)
	assert.Equal(t, NameList{"B", "Bee"}, c.Tags[1].Name)
	assert.Equal(t, []string{"bb"}, c.Tags[1].KnownAs)
}

func TestDecodeTOML(t *testing.T) {
	doc := `
separator = ", "
characterLimit = 10

[[categories]]
name = "Style"
type = "single"

  [[categories.tags]]
  name = "Oil"
  requiredTag = ["Canvas", "Frame"]

  [[categories.tags]]
  name = ["Watercolor", "Aquarelle"]
`
	cat, err := Decode([]byte(doc), FormatTOML)
	require.NoError(t, err)

	require.Len(t, cat.Categories, 1)
	c := cat.Categories[0]
	assert.Equal(t, TypeSingle, c.Type)
	assert.Equal(t, NameList{"Oil"}, c.Tags[0].Name)
	assert.Equal(t, NameList{"Canvas", "Frame"}, c.Tags[0].RequiredTag)
	assert.Equal(t, NameList{"Watercolor", "Aquarelle"}, c.Tags[1].Name)
	assert.Equal(t, 10, cat.CharacterLimit)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("tags.json"))
	assert.Equal(t, FormatYAML, FormatFromPath("/etc/tags.YML"))
	assert.Equal(t, FormatYAML, FormatFromPath("https://example.com/conf/tags.yaml?v=2"))
	assert.Equal(t, FormatTOML, FormatFromPath("tags.toml"))
	assert.Equal(t, FormatJSON, FormatFromPath("tags"))
}

func TestExpandSlashes(t *testing.T) {
	assert.Equal(t, []string{"A C", "A D", "B C", "B D"}, ExpandSlashes("A/B C/D"))
	assert.Equal(t, []string{"Sci Fi", "Hard Fi"}, ExpandSlashes("Sci/Hard Fi"))
	assert.Equal(t, []string{"A", "B"}, ExpandSlashes("A//B"))
	assert.Nil(t, ExpandSlashes("A / B"))
	assert.Nil(t, ExpandSlashes("   "))
}
