package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gravitrone/tagbuilder/internal/engine"
)

const maxSuggestions = 3

type unrecognized struct {
	Token       string   `json:"token"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type warning struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type rejection struct {
	Category string `json:"category"`
	Tag      string `json:"tag"`
	Length   int    `json:"length"`
}

// report is the result printed by parse and click.
type report struct {
	Canonical    string         `json:"canonical"`
	Alternative  string         `json:"alternative"`
	Length       int            `json:"length"`
	Limit        int            `json:"limit,omitempty"`
	Exceeded     bool           `json:"exceeded,omitempty"`
	Rejected     []rejection    `json:"rejected,omitempty"`
	Unrecognized []unrecognized `json:"unrecognized,omitempty"`
	Warnings     []warning      `json:"warnings,omitempty"`
}

// buildReport collects the engine state. measured is the text compared
// against the character limit.
func buildReport(e *engine.Engine, dedup bool, measured string) report {
	r := report{
		Canonical:   e.Canonical(),
		Alternative: e.Alternative(dedup),
	}
	st := e.LimitStatus(measured)
	r.Length = st.Length
	if e.LimitActive() {
		r.Limit = st.Limit
		r.Exceeded = st.Exceeded
	}

	for _, tok := range e.Unrecognized() {
		r.Unrecognized = append(r.Unrecognized, unrecognized{
			Token:       tok,
			Suggestions: e.Suggest(tok, maxSuggestions),
		})
	}

	for _, cat := range e.Index().Categories() {
		status, err := e.Requirement(cat.Name())
		if err != nil || !status.Unmet {
			continue
		}
		r.Warnings = append(r.Warnings, warning{Category: cat.Name(), Message: status.Message})
	}
	return r
}

func writeReport(w io.Writer, r report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return nil
	}

	fmt.Fprintln(w, r.Canonical)
	if r.Alternative != "" {
		fmt.Fprintf(w, "alternative: %s\n", r.Alternative)
	}
	if r.Limit > 0 {
		fmt.Fprintf(w, "length: %d/%d", r.Length, r.Limit)
		if r.Exceeded {
			fmt.Fprint(w, " (over limit)")
		}
		fmt.Fprintln(w)
	}
	for _, rej := range r.Rejected {
		fmt.Fprintf(w, "LIMIT! %s:%s rejected (would be %d)\n", rej.Category, rej.Tag, rej.Length)
	}
	for _, u := range r.Unrecognized {
		if len(u.Suggestions) > 0 {
			fmt.Fprintf(w, "unrecognized: %s (did you mean %s?)\n", u.Token, strings.Join(u.Suggestions, ", "))
			continue
		}
		fmt.Fprintf(w, "unrecognized: %s\n", u.Token)
	}
	for _, wn := range r.Warnings {
		fmt.Fprintf(w, "warning: %s: %s\n", wn.Category, wn.Message)
	}
	return nil
}
