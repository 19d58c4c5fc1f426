// Package catalog fetches player rankings from an external CSV feed.
package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/gridironhq/roster-api/internal/domain/player"
	"github.com/gridironhq/roster-api/internal/platform/logging"
	"github.com/gridironhq/roster-api/internal/platform/resilience"
)

const (
	defaultTimeout = 20 * time.Second
	maxBodyBytes   = 16 << 20

	columnName     = "PLAYER NAME"
	columnPosition = "POS"
	columnTeam     = "TEAM"
	columnRank     = "RK"
)

var errCatalogTransient = crerr.New("catalog transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	URL            string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client downloads the rankings CSV. Concurrent fetches collapse into one
// upstream request, and repeated failures trip the breaker instead of
// hammering the feed.
type Client struct {
	httpClient     *http.Client
	url            string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.Group[[]player.CatalogRecord]
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
		httpClient.Timeout = defaultTimeout
	}

	return &Client{
		httpClient:     httpClient,
		url:            strings.TrimSpace(cfg.URL),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

// FetchRankings downloads and parses the current rankings CSV.
func (c *Client) FetchRankings(ctx context.Context) ([]player.CatalogRecord, error) {
	if c.url == "" {
		return nil, crerr.New("catalog url is not configured")
	}

	records, err, shared := c.flight.Do(c.url, func() ([]player.CatalogRecord, error) {
		if !c.circuitEnabled {
			return c.fetchWithRetries(ctx)
		}

		var out []player.CatalogRecord
		doErr := c.breaker.Do(func() error {
			var fetchErr error
			out, fetchErr = c.fetchWithRetries(ctx)
			return fetchErr
		})
		if crerr.Is(doErr, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "catalog circuit breaker rejected request", "state", string(c.breaker.State()))
		}
		return out, doErr
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.DebugContext(ctx, "catalog fetch shared with concurrent caller")
	}

	return records, nil
}

func (c *Client) fetchWithRetries(ctx context.Context) ([]player.CatalogRecord, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		raw, err := c.download(ctx)
		if err != nil {
			lastErr = err
			if !crerr.Is(err, errCatalogTransient) {
				return nil, err
			}
			c.logger.WarnContext(ctx, "catalog fetch attempt failed",
				"attempt", attempt+1, "error", err)
			continue
		}

		records, err := parseRankingsCSV(raw)
		if err != nil {
			return nil, err
		}
		return records, nil
	}

	return nil, fmt.Errorf("catalog fetch failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) download(ctx context.Context) (io.Reader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Wrapf(errCatalogTransient, "send catalog request: %v", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, crerr.Wrapf(errCatalogTransient, "catalog responded with status %d", resp.StatusCode)
	default:
		return nil, crerr.Newf("catalog responded with status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, crerr.Wrapf(errCatalogTransient, "read catalog body: %v", err)
	}

	return strings.NewReader(string(raw)), nil
}

// parseRankingsCSV maps header names to columns so the feed can reorder or
// append columns without breaking ingestion. Rows shorter than the header
// are dropped.
func parseRankingsCSV(r io.Reader) ([]player.CatalogRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, crerr.Newf("read catalog header: %v", err)
	}

	colIndex := make(map[string]int, len(header))
	for idx, name := range header {
		colIndex[strings.ToUpper(strings.TrimSpace(name))] = idx
	}
	for _, required := range []string{columnName, columnPosition, columnTeam} {
		if _, ok := colIndex[required]; !ok {
			return nil, crerr.Newf("catalog header is missing column %q", required)
		}
	}

	var records []player.CatalogRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, crerr.Newf("read catalog row: %v", err)
		}

		record := player.CatalogRecord{
			Name:        fieldAt(row, colIndex, columnName),
			RawPosition: fieldAt(row, colIndex, columnPosition),
			NFLTeam:     fieldAt(row, colIndex, columnTeam),
			RawRank:     fieldAt(row, colIndex, columnRank),
		}
		records = append(records, record)
	}

	return records, nil
}

func fieldAt(row []string, colIndex map[string]int, column string) string {
	idx, ok := colIndex[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
