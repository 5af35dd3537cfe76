// Package engine turns clicks and free text into selection state and back
// into the canonical and alternative tag strings.
//
// An Engine is single-owner: every call runs to completion before the next
// one starts and no method may be called concurrently.
package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gravitrone/tagbuilder/internal/catalog"
	"github.com/gravitrone/tagbuilder/internal/selection"
)

var (
	// ErrUnknownCategory is returned for a click on a category the catalog lacks.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownTag is returned for a click on a name its category lacks.
	ErrUnknownTag = errors.New("unknown tag")
)

// Engine owns the selection state of one indexed catalog.
type Engine struct {
	index        *catalog.Index
	store        *selection.Store
	log          *zap.Logger
	limitEnabled bool
	last         ParseResult
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug traces.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithLimitEnabled sets the initial state of character limit enforcement.
func WithLimitEnabled(enabled bool) Option {
	return func(e *Engine) {
		e.limitEnabled = enabled
	}
}

// New creates an engine with an empty selection. Limit enforcement starts
// enabled.
func New(ix *catalog.Index, opts ...Option) *Engine {
	e := &Engine{
		index:        ix,
		store:        selection.New(),
		log:          zap.NewNop(),
		limitEnabled: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Index returns the catalog index the engine was built on.
func (e *Engine) Index() *catalog.Index {
	return e.index
}

// View returns a detached copy of the whole selection.
func (e *Engine) View() selection.View {
	return e.store.View()
}

// Reload swaps in a freshly built index and re-derives the selection from
// text, since positions and names of the old index no longer apply.
func (e *Engine) Reload(ix *catalog.Index, text string) ParseResult {
	e.index = ix
	e.store = selection.New()
	return e.Parse(text)
}

func (e *Engine) resolve(category, name string) (*catalog.CategoryIndex, catalog.Tag, error) {
	cat, ok := e.index.Category(category)
	if !ok {
		return nil, catalog.Tag{}, unknownCategory(category)
	}
	tag, ok := cat.Tag(name)
	if !ok {
		return nil, catalog.Tag{}, fmt.Errorf("%w: %q in %q", ErrUnknownTag, name, category)
	}
	return cat, tag, nil
}

func unknownCategory(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}
