package nirtransport

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	quic "github.com/quic-go/quic-go"
	http3 "github.com/quic-go/quic-go/http3"
	"golang.org/x/sync/errgroup"
)

// Client pushes and pulls named blobs to a Server over HTTP/3.
type Client struct {
	http *http.Client
	base string
}

// NewClient builds a Client targeting base (e.g. "https://cache:4433"),
// grounded on the teacher's HTTP3Client helper.
func NewClient(base string, tlsCfg *tls.Config, timeout time.Duration, opts Options) *Client {
	if tlsCfg == nil {
		tlsCfg = &tls.Config{MinVersion: tls.VersionTLS13, NextProtos: []string{"h3"}}
	} else if tlsCfg.MinVersion < tls.VersionTLS13 {
		c := tlsCfg.Clone()
		c.MinVersion = tls.VersionTLS13

		if len(c.NextProtos) == 0 {
			c.NextProtos = []string{"h3"}
		}

		tlsCfg = c
	}

	qc := &quic.Config{}
	if opts.MaxIdleTimeout > 0 {
		qc.MaxIdleTimeout = opts.MaxIdleTimeout
	}

	if opts.KeepAlivePeriod > 0 {
		qc.KeepAlivePeriod = opts.KeepAlivePeriod
	}

	tr := &http3.Transport{TLSClientConfig: tlsCfg, QUICConfig: qc}

	return &Client{http: &http.Client{Transport: tr, Timeout: timeout}, base: base}
}

// Close shuts down the underlying HTTP/3 round tripper.
func (c *Client) Close() {
	if tr, ok := c.http.Transport.(*http3.Transport); ok {
		_ = tr.Close()
	}
}

// Push uploads data under name.
func (c *Client) Push(ctx context.Context, name string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.base+blobPathPrefix+name, bytes.NewReader(data))
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("nirtransport: push %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("nirtransport: push %s: unexpected status %s", name, resp.Status)
	}

	return nil
}

// Pull downloads the full blob stored under name.
func (c *Client) Pull(ctx context.Context, name string) ([]byte, error) {
	return c.pull(ctx, name, "")
}

// PullRange downloads the [offset, offset+length) slice of the blob
// stored under name, for a caller that already knows a Defn's
// name-index offset (spec.md §4.7) and only wants that payload, not the
// whole stream. cmd/nirc itself always pulls whole streams with Pull.
func (c *Client) PullRange(ctx context.Context, name string, offset, length int) ([]byte, error) {
	rng := fmt.Sprintf("bytes=%d-%d", offset, offset+length-1)

	return c.pull(ctx, name, rng)
}

func (c *Client) pull(ctx context.Context, name, rangeHeader string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+blobPathPrefix+name, nil)
	if err != nil {
		return nil, err
	}

	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nirtransport: pull %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("nirtransport: pull %s: unexpected status %s", name, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// PushAll uploads every file concurrently, fanning out with a bounded
// worker pool the same way internal/packagemanager/manager.go's
// ResolveAndFetch parallelizes Find+Fetch with errgroup.WithContext.
func (c *Client) PushAll(ctx context.Context, files map[string][]byte) error {
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, ioConcurrency())

	for name, data := range files {
		name, data := name, data

		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			return c.Push(gctx, name, data)
		})
	}

	return g.Wait()
}

// PullAll downloads every named blob concurrently, same fan-out shape
// as PushAll.
func (c *Client) PullAll(ctx context.Context, names []string) (map[string][]byte, error) {
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, ioConcurrency())

	out := make(map[string][]byte, len(names))

	var mu sync.Mutex

	for _, name := range names {
		name := name

		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			data, err := c.Pull(gctx, name)
			if err != nil {
				return err
			}

			mu.Lock()
			out[name] = data
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// ioConcurrency mirrors internal/packagemanager/manager.go's
// ORIZON_MAX_CONCURRENCY-tunable worker-pool sizing.
func ioConcurrency() int {
	if v := os.Getenv("NIR_MAX_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			if n > 1024 {
				return 1024
			}

			return n
		}
	}

	c := runtime.GOMAXPROCS(0) * 8
	if c < 4 {
		c = 4
	}

	if c > 1024 {
		c = 1024
	}

	return c
}
