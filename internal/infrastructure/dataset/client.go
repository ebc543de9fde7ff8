// Package dataset downloads the source CSV files from a dataset mirror so
// cmd/loader can run against a fresh copy without manual fetching.
package dataset

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/futdados/soccergraph/internal/platform/logging"
	"github.com/futdados/soccergraph/internal/platform/resilience"
	"github.com/futdados/soccergraph/internal/usecase"
)

var errDatasetTransient = crerr.New("dataset transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchFile downloads one dataset file into destDir and returns the local
// path. The file lands atomically: a partial download never replaces a
// previous complete copy.
func (c *Client) FetchFile(ctx context.Context, name, destDir string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("dataset file name is required")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "dataset circuit breaker rejected request", "state", c.breaker.State())
			return "", fmt.Errorf("%w: dataset mirror is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	dest := filepath.Join(destDir, name)
	_, err, _ := c.flight.Do(name, func() (any, error) {
		fetchErr := c.download(ctx, c.baseURL+"/"+name, dest)
		if c.circuitEnabled {
			if fetchErr != nil && stderrors.Is(fetchErr, errDatasetTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return nil, fetchErr
	})
	if err != nil {
		return "", err
	}

	return dest, nil
}

// FetchAll downloads every named file, stopping at the first failure.
func (c *Client) FetchAll(ctx context.Context, names []string, destDir string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		path, err := c.FetchFile(ctx, name, destDir)
		if err != nil {
			return out, crerr.Wrapf(err, "fetch %s", name)
		}
		out = append(out, path)
	}
	return out, nil
}

func (c *Client) download(ctx context.Context, fullURL, dest string) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "text/csv")

		resp, err := c.httpClient.Do(req)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %v", errDatasetTransient, err)
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			writeErr := writeAtomic(dest, resp.Body)
			_ = resp.Body.Close()
			if writeErr != nil {
				return crerr.Wrapf(writeErr, "write %s", dest)
			}
			return nil
		default:
			_ = resp.Body.Close()
			if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: mirror status=%d", errDatasetTransient, resp.StatusCode)
			} else {
				return fmt.Errorf("mirror status=%d for %s", resp.StatusCode, fullURL)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("dataset request failed")
	}
	c.logger.WarnContext(ctx, "dataset download failed", "url", fullURL, "error", lastErr)
	return lastErr
}

func writeAtomic(dest string, body io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dest)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
