package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// download fetches url into dest. Bytes land in a temp file in the cache dir
// and are renamed into place only on full success, so a failed or interrupted
// fetch never leaves a partial file at the cache path.
func (r *Resolver) download(ctx context.Context, url, dest string) error {
	return retry.Do(
		func() error { return r.fetchOnce(ctx, url, dest) },
		retry.Context(ctx),
		retry.Attempts(uint(r.attempts)),
		retry.Delay(1*time.Second),
		retry.LastErrorOnly(true),
	)
}

func (r *Resolver) fetchOnce(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &DownloadError{URL: url, Err: err}
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DownloadError{URL: url, Status: resp.StatusCode}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &DownloadError{URL: url, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename into cache: %w", err)
	}
	return nil
}

// validatePDF checks basic PDF structure so a truncated or bogus cached file
// is not treated as a hit.
func validatePDF(path string) error {
	return api.ValidateFile(path, nil)
}
