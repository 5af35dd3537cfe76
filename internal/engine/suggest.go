package engine

import (
	"github.com/sahilm/fuzzy"
)

// Suggest returns up to n catalog names that fuzzily match token, best
// match first. Used to hint at typos among unrecognized tokens.
func (e *Engine) Suggest(token string, n int) []string {
	if token == "" || n <= 0 {
		return nil
	}
	names := e.names()
	matches := fuzzy.Find(token, names)
	if len(matches) > n {
		matches = matches[:n]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}

func (e *Engine) names() []string {
	seen := make(map[string]bool, e.index.Len())
	names := make([]string, 0, e.index.Len())
	for _, entry := range e.index.Entries() {
		if seen[entry.Name] {
			continue
		}
		seen[entry.Name] = true
		names = append(names, entry.Name)
	}
	return names
}
