package engine

import (
	"unicode/utf16"

	"go.uber.org/zap"
)

// ClickResult reports the state after a click.
type ClickResult struct {
	Canonical string
	Length    int
	// Rejected is set when the click would have exceeded the character
	// limit and the category was rolled back.
	Rejected bool
	// Attempted is the length the rejected click would have produced.
	Attempted int
}

// Click toggles a tag the way a user click does. When limit enforcement is
// active and the resulting canonical string is longer than the limit, the
// category is restored to its state before the click.
func (e *Engine) Click(category, name string) (ClickResult, error) {
	cat, tag, err := e.resolve(category, name)
	if err != nil {
		return ClickResult{}, err
	}

	snap := e.store.Snapshot(cat.Name())
	e.toggle(cat, tag)

	out := e.Canonical()
	res := ClickResult{Canonical: out, Length: Length(out)}
	if e.LimitActive() && res.Length > e.index.CharacterLimit() {
		e.log.Debug("click rejected by character limit",
			zap.String("category", cat.Name()),
			zap.String("tag", name),
			zap.Int("length", res.Length),
			zap.Int("limit", e.index.CharacterLimit()))
		e.store.Restore(snap)
		out = e.Canonical()
		res = ClickResult{Canonical: out, Length: Length(out), Rejected: true, Attempted: res.Length}
	}
	return res, nil
}

// Length counts s in UTF-16 code units, the unit the character limit is
// expressed in.
func Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// SetLimitEnabled switches character limit enforcement on or off.
func (e *Engine) SetLimitEnabled(enabled bool) {
	e.limitEnabled = enabled
}

// LimitEnabled reports the enforcement switch.
func (e *Engine) LimitEnabled() bool {
	return e.limitEnabled
}

// LimitActive reports whether clicks are currently checked against a limit.
func (e *Engine) LimitActive() bool {
	return e.limitEnabled && e.index.CharacterLimit() > 0
}

// LimitStatus describes how text measures against the catalog limit.
type LimitStatus struct {
	Length   int
	Limit    int
	Exceeded bool
}

// LimitStatus measures text against the character limit. Free text may
// exceed the limit; only clicks are rejected.
func (e *Engine) LimitStatus(text string) LimitStatus {
	st := LimitStatus{Length: Length(text), Limit: e.index.CharacterLimit()}
	st.Exceeded = e.LimitActive() && st.Length > st.Limit
	return st
}
