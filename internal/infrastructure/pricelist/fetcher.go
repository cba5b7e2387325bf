package pricelist

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/infrastructure/config"
)

// Fetcher downloads price-list documents from supplier URLs
type Fetcher struct {
	client  *http.Client
	maxBody int64
}

// NewFetcher creates a fetcher with the configured timeout and size cap
func NewFetcher(cfg config.ImportConfig) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: cfg.FetchTimeout},
		maxBody: cfg.MaxBodySize,
	}
}

// Fetch downloads the document at the given URL
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := catalog.ValidateURL(url); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price list source returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read price list body: %w", err)
	}
	if int64(len(data)) > f.maxBody {
		return nil, fmt.Errorf("price list exceeds the %d byte limit", f.maxBody)
	}

	return data, nil
}
