// Package source resolves a paper descriptor (arXiv id, URL, or local path)
// to a local file, backed by an on-disk cache keyed by source identity.
package source

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Kind tags where a paper comes from.
type Kind string

const (
	KindArxiv Kind = "arxiv"
	KindURL   Kind = "url"
	KindLocal Kind = "local"
)

// Descriptor identifies where to obtain a paper. Immutable once parsed.
type Descriptor struct {
	Kind  Kind
	Value string
}

// ParseKind maps external input to a Kind. "repository" is accepted as an
// alias for arxiv.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arxiv", "repository":
		return KindArxiv, nil
	case "url":
		return KindURL, nil
	case "local":
		return KindLocal, nil
	default:
		return "", fmt.Errorf("unknown source type: %s", s)
	}
}

// NotFoundError indicates a source that does not exist: an arXiv id with no
// matching paper, or a local path that is absent.
type NotFoundError struct {
	Source string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("source not found: %s", e.Source)
}

// DownloadError indicates a fetch that failed: network error, timeout, or
// non-success HTTP status.
type DownloadError struct {
	URL    string
	Status int
	Err    error
}

func (e *DownloadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("download %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Options configures a Resolver.
type Options struct {
	CacheDir         string
	Arxiv            *ArxivClient
	DownloadTimeout  time.Duration
	DownloadAttempts int
	ValidateCache    bool
	Log              *slog.Logger
}

// Resolver turns descriptors into local file paths.
type Resolver struct {
	cacheDir   string
	arxiv      *ArxivClient
	httpClient *http.Client
	attempts   int
	validate   bool
	log        *slog.Logger
}

func NewResolver(opts Options) (*Resolver, error) {
	if err := os.MkdirAll(opts.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	timeout := opts.DownloadTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	attempts := opts.DownloadAttempts
	if attempts <= 0 {
		attempts = 1
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		cacheDir:   opts.CacheDir,
		arxiv:      opts.Arxiv,
		httpClient: &http.Client{Timeout: timeout},
		attempts:   attempts,
		validate:   opts.ValidateCache,
		log:        log,
	}, nil
}

// Resolve produces a local path for the descriptor. Cache hits short-circuit
// all network work, so repeated calls with the same source are idempotent and
// side-effect-free after the first success.
func (r *Resolver) Resolve(ctx context.Context, d Descriptor) (string, error) {
	switch d.Kind {
	case KindArxiv:
		return r.resolveArxiv(ctx, d.Value)
	case KindURL:
		return r.resolveURL(ctx, d.Value)
	case KindLocal:
		if _, err := os.Stat(d.Value); err != nil {
			return "", &NotFoundError{Source: d.Value}
		}
		return d.Value, nil
	default:
		return "", fmt.Errorf("unknown source kind: %s", d.Kind)
	}
}

// NormalizeArxivID canonicalizes an arXiv identifier: lowercase, without the
// "arxiv:" scheme prefix, surrounding whitespace trimmed.
func NormalizeArxivID(id string) string {
	id = strings.TrimSpace(strings.ToLower(id))
	id = strings.TrimPrefix(id, "arxiv:")
	return strings.TrimSpace(id)
}

// CachePathArxiv returns the cache path an arXiv id maps to.
func (r *Resolver) CachePathArxiv(id string) string {
	return filepath.Join(r.cacheDir, "arxiv_"+NormalizeArxivID(id)+".pdf")
}

func (r *Resolver) resolveArxiv(ctx context.Context, rawID string) (string, error) {
	id := NormalizeArxivID(rawID)
	cachePath := r.CachePathArxiv(id)
	if r.cached(cachePath) {
		return cachePath, nil
	}

	entry, err := r.arxiv.Lookup(ctx, id)
	if err != nil {
		return "", err
	}
	if err := r.download(ctx, entry.PDFURL, cachePath); err != nil {
		return "", err
	}
	return cachePath, nil
}

// CachePathURL returns the cache path a URL maps to. The filename is the last
// path segment when it already names a PDF; otherwise a stable digest of the
// URL text, so the same URL maps to the same file across process restarts.
func (r *Resolver) CachePathURL(rawURL string) string {
	name := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		name = path.Base(u.Path)
	} else if i := strings.LastIndex(rawURL, "/"); i >= 0 {
		name = rawURL[i+1:]
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		sum := sha256.Sum256([]byte(rawURL))
		name = fmt.Sprintf("%x.pdf", sum[:8])
	}
	return filepath.Join(r.cacheDir, name)
}

func (r *Resolver) resolveURL(ctx context.Context, rawURL string) (string, error) {
	cachePath := r.CachePathURL(rawURL)
	if r.cached(cachePath) {
		return cachePath, nil
	}
	if err := r.download(ctx, rawURL, cachePath); err != nil {
		return "", err
	}
	return cachePath, nil
}

// cached reports whether a valid copy already exists at path. Cached PDFs are
// structurally validated before being trusted; a truncated file left by an
// interrupted writer is evicted so the next fetch replaces it.
func (r *Resolver) cached(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	if r.validate && strings.HasSuffix(strings.ToLower(path), ".pdf") {
		if err := validatePDF(path); err != nil {
			r.log.Warn("evicting invalid cached pdf", "path", path, "error", err)
			os.Remove(path)
			return false
		}
	}
	return true
}
