package catalog

import "strings"

// ExpandSlashes returns every combination of the slash-separated choices in
// name. "A/B C/D" expands to "A C", "A D", "B C", "B D". A word that offers no
// choices at all (e.g. a lone "/") yields no expansions.
func ExpandSlashes(name string) []string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return nil
	}
	choices := make([][]string, 0, len(words))
	for _, w := range words {
		var opts []string
		for _, part := range strings.Split(w, "/") {
			if part != "" {
				opts = append(opts, part)
			}
		}
		if len(opts) == 0 {
			return nil
		}
		choices = append(choices, opts)
	}

	out := []string{""}
	for _, opts := range choices {
		next := make([]string, 0, len(out)*len(opts))
		for _, prefix := range out {
			for _, opt := range opts {
				if prefix == "" {
					next = append(next, opt)
				} else {
					next = append(next, prefix+" "+opt)
				}
			}
		}
		out = next
	}
	return out
}
