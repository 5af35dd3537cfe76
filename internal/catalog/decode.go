package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies the on-disk encoding of a catalog.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a format from a file name or URL path. Unknown
// extensions fall back to JSON, the canonical catalog format.
func FormatFromPath(p string) Format {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return FormatJSON
}

// Decode parses raw catalog bytes, applies defaults and validates the shape.
// Decoding failures wrap ErrSyntax; shape violations wrap ErrMalformed.
func Decode(data []byte, format Format) (*Catalog, error) {
	var cat Catalog
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("%w: yaml: %v", ErrSyntax, err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cat); err != nil {
			return nil, fmt.Errorf("%w: toml: %v", ErrSyntax, err)
		}
	default:
		if err := json.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("%w: json: %v", ErrSyntax, err)
		}
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	cat.applyDefaults()
	return &cat, nil
}
