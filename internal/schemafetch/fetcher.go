// Package schemafetch resolves schema references to parsed schema
// documents. Remote references go through the on-disk cache; every
// reference is memoized per fetcher instance so one run performs at most
// one fetch per distinct reference string.
package schemafetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/jsonlint-go/jsonlint/internal/schemacache"
)

// fetchTimeout bounds a single schema GET.
const fetchTimeout = 30 * time.Second

// Schema is a resolved schema document.
type Schema struct {
	// Reference is the reference string as given by the caller.
	Reference string
	// URL is the resource identifier handed to the validation engine.
	// For local references this is a file URL of the absolute path.
	URL string
	// Raw holds the schema bytes exactly as fetched.
	Raw []byte
	// Doc is the parsed schema document.
	Doc any
}

// Fetcher resolves schema references, memoized by the literal reference
// string. A fetcher is constructed once per run and shared across all
// concurrent document pipelines; it holds no other global state.
type Fetcher struct {
	cache  *schemacache.Cache
	client *http.Client

	mu    sync.Mutex
	calls map[string]*call
}

// call tracks one in-flight or completed resolution.
type call struct {
	done   chan struct{}
	schema *Schema
	err    error
}

// New creates a fetcher backed by the given cache.
func New(cache *schemacache.Cache) *Fetcher {
	return NewWithClient(cache, &http.Client{Timeout: fetchTimeout})
}

// NewWithClient creates a fetcher with a custom HTTP client.
func NewWithClient(cache *schemacache.Cache, client *http.Client) *Fetcher {
	return &Fetcher{
		cache:  cache,
		client: client,
		calls:  make(map[string]*call),
	}
}

// Resolve resolves reference to a schema document. Repeat calls with the
// same string return the identical result without re-fetching; concurrent
// callers for the same reference share a single fetch. Failed resolutions
// are memoized too, so a broken reference fails every document the same
// way instead of hammering the network.
func (f *Fetcher) Resolve(ctx context.Context, reference string) (*Schema, error) {
	f.mu.Lock()
	c, ok := f.calls[reference]
	if !ok {
		c = &call{done: make(chan struct{})}
		f.calls[reference] = c
	}
	f.mu.Unlock()

	if !ok {
		c.schema, c.err = f.fetch(ctx, reference)
		close(c.done)
	} else {
		select {
		case <-c.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if c.err != nil {
		return nil, c.err
	}
	return c.schema, nil
}

// Load implements the validation engine's URL loader, so $ref targets are
// resolved through the same cache and memoization as top-level schemas.
func (f *Fetcher) Load(rawURL string) (any, error) {
	schema, err := f.Resolve(context.Background(), rawURL)
	if err != nil {
		return nil, err
	}
	return schema.Doc, nil
}

// isRemote reports whether reference parses as a URI with both a scheme
// and a host. Anything else is a local file reference.
func isRemote(reference string) (*url.URL, bool) {
	u, err := url.Parse(reference)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, false
	}
	return u, true
}

func (f *Fetcher) fetch(ctx context.Context, reference string) (*Schema, error) {
	var (
		raw []byte
		id  string
		err error
	)
	if u, ok := isRemote(reference); ok {
		id = u.String()
		raw, err = f.fetchRemote(ctx, reference)
	} else {
		id, raw, err = f.readLocal(reference)
	}
	if err != nil {
		return nil, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid JSON: %w", ErrSchemaUnavailable, reference, err)
	}

	return &Schema{
		Reference: reference,
		URL:       id,
		Raw:       raw,
		Doc:       doc,
	}, nil
}

// fetchRemote returns cached bytes when present, otherwise performs a GET
// and stores the result. The cache write is best-effort.
func (f *Fetcher) fetchRemote(ctx context.Context, reference string) ([]byte, error) {
	if data, ok := f.cache.Read(reference); ok {
		slog.Debug("schema cache hit", "schema", reference)
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reference, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSchemaUnavailable, reference, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %w", ErrSchemaUnavailable, reference, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetching %s: unexpected status %s", ErrSchemaUnavailable, reference, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrSchemaUnavailable, reference, err)
	}

	f.cache.Write(reference, data)
	slog.Debug("schema fetched", "schema", reference, "bytes", len(data))
	return data, nil
}

// readLocal loads a schema from the filesystem, uncached, and returns the
// file URL used as the engine resource identifier alongside the bytes.
// file:// URLs arrive here too, when the engine asks the loader for a $ref
// target that was originally registered under a file URL.
func (f *Fetcher) readLocal(reference string) (string, []byte, error) {
	path := reference
	if u, err := url.Parse(reference); err == nil && u.Scheme == "file" {
		path = u.Path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: %w", ErrSchemaUnavailable, reference, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: %w", ErrSchemaUnavailable, reference, err)
	}
	fileURL := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return fileURL.String(), data, nil
}
