// Package loader fetches catalog documents from local files or HTTP and
// turns them into an index.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gravitrone/tagbuilder/internal/catalog"
	"github.com/gravitrone/tagbuilder/internal/store"
)

// DefaultSource is loaded when no source is named, and is the fallback for
// any other source that fails to load.
const DefaultSource = "tags.json"

// ErrNotFound marks a source that does not exist or could not be reached.
var ErrNotFound = errors.New("catalog not found")

// Cache keeps fetched remote catalogs so they can be served when the remote
// is unavailable. *store.Store satisfies it.
type Cache interface {
	PutCatalog(ctx context.Context, source string, body []byte) error
	GetCatalog(ctx context.Context, source string) (*store.CachedCatalog, error)
}

// Loaded is a successfully indexed catalog and where it came from.
type Loaded struct {
	Source string
	Body   []byte
	Index  *catalog.Index
	// Stale is set when a remote catalog was served from the cache.
	Stale bool
	// FellBack is set when Source is the default after the requested one failed.
	FellBack bool
}

// Loader resolves catalog sources.
type Loader struct {
	httpClient *http.Client
	cache      Cache
	log        *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithCache enables serving remote catalogs from c when fetching fails.
func WithCache(c Cache) Option {
	return func(l *Loader) { l.cache = c }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.httpClient = &http.Client{Timeout: d}
		}
	}
}

// New creates a loader with a 30 second HTTP timeout.
func New(opts ...Option) *Loader {
	l := &Loader{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ResolveSource normalizes a source name: empty means DefaultSource, and a
// name without a catalog extension gets ".json" appended.
func ResolveSource(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultSource
	}
	p := name
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml", ".toml":
		return name
	}
	if IsRemote(name) {
		u, err := url.Parse(name)
		if err == nil {
			u.Path += ".json"
			return u.String()
		}
	}
	return name + ".json"
}

// IsRemote reports whether source is an HTTP(S) URL.
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load fetches, decodes and indexes the named catalog. When a non-default
// source fails, DefaultSource next to it is tried; if that fails too the
// error of the requested source is returned.
func (l *Loader) Load(ctx context.Context, name string) (*Loaded, error) {
	src := ResolveSource(name)
	loaded, err := l.loadOne(ctx, src)
	if err == nil {
		return loaded, nil
	}

	fallback, ok := fallbackFor(src)
	if !ok {
		return nil, err
	}
	l.log.Warn("catalog failed to load, trying default",
		zap.String("source", src),
		zap.String("fallback", fallback),
		zap.Error(err))

	loaded, fbErr := l.loadOne(ctx, fallback)
	if fbErr != nil {
		l.log.Debug("fallback catalog failed", zap.String("source", fallback), zap.Error(fbErr))
		return nil, err
	}
	loaded.FellBack = true
	return loaded, nil
}

func (l *Loader) loadOne(ctx context.Context, src string) (*Loaded, error) {
	loaded := &Loaded{Source: src}

	body, err := l.fetch(ctx, src)
	if err != nil {
		cached, ok := l.fromCache(ctx, src)
		if !ok {
			return nil, err
		}
		l.log.Warn("serving stale catalog from cache",
			zap.String("source", src),
			zap.Time("fetched_at", cached.FetchedAt),
			zap.Error(err))
		body = cached.Body
		loaded.Stale = true
	}

	cat, err := catalog.Decode(body, catalog.FormatFromPath(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	ix, err := catalog.Build(cat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	loaded.Body = body
	loaded.Index = ix

	if IsRemote(src) && !loaded.Stale && l.cache != nil {
		if err := l.cache.PutCatalog(ctx, src, body); err != nil {
			l.log.Warn("cache catalog", zap.String("source", src), zap.Error(err))
		}
	}
	return loaded, nil
}

func (l *Loader) fromCache(ctx context.Context, src string) (*store.CachedCatalog, bool) {
	if l.cache == nil || !IsRemote(src) {
		return nil, false
	}
	cached, err := l.cache.GetCatalog(ctx, src)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			l.log.Warn("read catalog cache", zap.String("source", src), zap.Error(err))
		}
		return nil, false
	}
	return cached, true
}

func (l *Loader) fetch(ctx context.Context, src string) ([]byte, error) {
	if !IsRemote(src) {
		data, err := os.ReadFile(src)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, src)
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml, application/toml, */*")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, src, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %s (HTTP %d)", ErrNotFound, src, resp.StatusCode)
	}
	return body, nil
}

// fallbackFor returns DefaultSource in the same directory or URL base as
// src, or false when src already is the default.
func fallbackFor(src string) (string, bool) {
	if IsRemote(src) {
		u, err := url.Parse(src)
		if err != nil || path.Base(u.Path) == DefaultSource {
			return "", false
		}
		ref := &url.URL{Path: DefaultSource}
		return u.ResolveReference(ref).String(), true
	}
	if filepath.Base(src) == DefaultSource {
		return "", false
	}
	return filepath.Join(filepath.Dir(src), DefaultSource), true
}
