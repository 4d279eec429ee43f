// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package primo talks to a Primo-style discovery REST API.
package primo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-assistant/internal/httputil"
	"github.com/pdiddy/scholar-assistant/pkg/types"
)

// Searcher is the search contract the orchestrator depends on.
type Searcher interface {
	Search(ctx context.Context, q string, opts SearchOptions) (*types.ResultSet, error)
}

// SearchOptions carries per-request knobs.
type SearchOptions struct {
	// Limit is the page size, clamped to [1, 50].
	Limit int

	// Offset is the zero-based result offset; negative values are
	// treated as zero.
	Offset int

	// Sort is the provider sort order (default "rank").
	Sort string
}

// Client queries the discovery API's pnxs endpoint.
type Client struct {
	cfg    types.PrimoConfig
	client *http.Client
	log    zerolog.Logger
}

// NewClient builds a discovery client from config.
func NewClient(cfg types.PrimoConfig, log zerolog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.With().Str("component", "primo").Logger(),
	}
}

// Search runs a compiled q-string against the pnxs endpoint and decodes
// the result page. Throttled and transient server failures are retried
// with backoff; any other status of 400 or above is an error.
func (c *Client) Search(ctx context.Context, q string, opts SearchOptions) (*types.ResultSet, error) {
	limit := opts.Limit
	if limit < 1 {
		limit = 1
	}
	if limit > types.MaxLimit {
		limit = types.MaxLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	sort := opts.Sort
	if sort == "" {
		sort = "rank"
	}

	params := url.Values{}
	params.Set("vid", c.cfg.VID)
	params.Set("tab", c.cfg.Tab)
	params.Set("scope", c.cfg.Scope)
	params.Set("inst", c.cfg.Inst)
	params.Set("q", q)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("lang", "en")
	params.Set("mode", "advanced")
	params.Set("sort", sort)
	params.Set("skipDelivery", "Y")
	params.Set("rtaLinks", "true")
	params.Set("rapido", "true")
	params.Set("showPnx", "true")

	reqURL := c.cfg.BaseURL + "/pnxs?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	c.log.Debug().Str("q", q).Int("limit", limit).Int("offset", offset).Msg("discovery search")

	resp, err := httputil.DoWithRetry(ctx, c.client, req, c.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("calling discovery API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 400))
		return nil, fmt.Errorf("discovery API returned %d: %s", resp.StatusCode, string(body))
	}

	var rs types.ResultSet
	if err := json.NewDecoder(resp.Body).Decode(&rs); err != nil {
		return nil, fmt.Errorf("decoding discovery response: %w", err)
	}

	c.log.Debug().Int("docs", len(rs.Docs)).Int("total", rs.Info.Total).Msg("discovery response")
	return &rs, nil
}
