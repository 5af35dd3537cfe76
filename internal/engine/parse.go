package engine

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gravitrone/tagbuilder/internal/catalog"
)

// Resolution records which catalog position a token was mapped to.
type Resolution struct {
	Token    string
	Position int
	Lookup   catalog.LookupKind
}

// ParseResult is the outcome of re-deriving the selection from free text.
type ParseResult struct {
	Resolved     []Resolution
	Unrecognized []string
}

// Tokenize splits text on sep, trims every piece and drops empty ones.
func Tokenize(text, sep string) []string {
	if sep == "" {
		sep = catalog.DefaultSeparator
	}
	var out []string
	for _, piece := range strings.Split(text, sep) {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

// Parse discards the current selection and rebuilds it from text. Repeated
// or ambiguous names resolve to successive catalog positions (see
// RingSearch). Limit enforcement never applies here.
func (e *Engine) Parse(text string) ParseResult {
	e.store.ClearAll()

	var res ParseResult
	cursor := -1
	for _, token := range Tokenize(text, e.index.Separator()) {
		pos, kind, ok := e.find(strings.ToLower(token), cursor)
		if !ok {
			res.Unrecognized = append(res.Unrecognized, token)
			continue
		}
		e.applyParsed(e.index.Entry(pos))
		cursor = pos
		res.Resolved = append(res.Resolved, Resolution{Token: token, Position: pos, Lookup: kind})
	}

	e.last = res
	return res
}

// Unrecognized returns the tokens the last Parse could not resolve.
func (e *Engine) Unrecognized() []string {
	return e.last.Unrecognized
}

func (e *Engine) find(key string, cursor int) (int, catalog.LookupKind, bool) {
	for _, kind := range catalog.LookupOrder {
		positions := e.index.Lookup(kind, key)
		if len(positions) == 0 {
			continue
		}
		if pos, ok := RingSearch(positions, cursor); ok {
			return pos, kind, true
		}
	}
	return 0, 0, false
}

// RingSearch returns the smallest position strictly after cursor, wrapping
// around to the smallest position overall when none follows it.
func RingSearch(positions []int, cursor int) (int, bool) {
	if len(positions) == 0 {
		return 0, false
	}
	sorted := append([]int(nil), positions...)
	sort.Ints(sorted)
	for _, p := range sorted {
		if p > cursor {
			return p, true
		}
	}
	return sorted[0], true
}

func (e *Engine) applyParsed(entry catalog.Entry) {
	cat := entry.Category
	c := cat.Name()

	switch cat.Type() {
	case catalog.TypeSingle:
		e.store.ClearCategory(c)
		e.store.Select(c, entry.MainName, entry.Name)
	case catalog.TypeStandard:
		e.store.Select(c, entry.MainName, entry.Name)
	case catalog.TypeOrdered:
		e.store.Select(c, entry.MainName, entry.Name)
		e.sortOrdered(cat)
	default:
		e.log.Debug("parsed tag in category of unknown type",
			zap.String("category", c),
			zap.String("tag", entry.Name))
	}
}
