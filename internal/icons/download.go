package icons

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Defaults used by NewDownloader for non-positive arguments.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultConcurrency = 4
)

// Result summarizes one DownloadAll run.
type Result struct {
	Found      int
	Downloaded int
	Skipped    int
	Failed     int
}

// Downloader fetches icon files over HTTP.
type Downloader struct {
	httpClient  *http.Client
	concurrency int
	retryDelay  time.Duration
	log         *slog.Logger
}

// NewDownloader creates a Downloader.
func NewDownloader(timeout time.Duration, concurrency int, logger *slog.Logger) *Downloader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Downloader{
		httpClient:  &http.Client{Timeout: timeout},
		concurrency: concurrency,
		retryDelay:  500 * time.Millisecond,
		log:         logger.With("adapter", "icons"),
	}
}

// DownloadAll writes every icon into dir, which is created if missing.
// Files already in dir are skipped unless overwrite is set. A failed
// download is logged and counted; only setup errors and cancellation are
// returned.
func (d *Downloader) DownloadAll(ctx context.Context, icons map[string]string, dir string, overwrite bool) (Result, error) {
	res := Result{Found: len(icons)}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, fmt.Errorf("icons: create output dir: %w", err)
	}

	names := make([]string, 0, len(icons))
	for name := range icons {
		names = append(names, name)
	}
	slices.Sort(names)

	var downloaded, skipped, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for _, name := range names {
		target := filepath.Join(dir, name)
		if !overwrite {
			if _, err := os.Stat(target); err == nil {
				skipped.Add(1)
				continue
			}
		}

		iconURL := icons[name]
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if err := d.download(gctx, iconURL, target); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				failed.Add(1)
				d.log.ErrorContext(gctx, "icon download failed",
					slog.String("name", name),
					slog.String("url", iconURL),
					slog.String("error", err.Error()),
				)
				return nil
			}
			downloaded.Add(1)
			d.log.DebugContext(gctx, "icon downloaded", slog.String("name", name))
			return nil
		})
	}
	err := g.Wait()

	res.Downloaded = int(downloaded.Load())
	res.Skipped = int(skipped.Load())
	res.Failed = int(failed.Load())
	if err != nil {
		return res, fmt.Errorf("icons: download: %w", err)
	}
	return res, nil
}

func (d *Downloader) download(ctx context.Context, iconURL, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, iconURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := d.doWithRetry(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return writeFile(target, resp.Body)
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (d *Downloader) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := d.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	d.log.WarnContext(ctx, "icon retry", slog.String("url", req.URL.String()), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(d.retryDelay):
	}

	return d.httpClient.Do(req)
}

// writeFile stores body at target through a temporary file in the same
// directory, so target is either absent or complete.
func writeFile(target string, body io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".icon-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(target), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(target), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", filepath.Base(target), err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(target), err)
	}
	return nil
}
