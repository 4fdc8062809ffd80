package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"geosearch/internal/domain"
)

// DefaultGeoDBHost is the RapidAPI host of the GeoDB Cities API
const DefaultGeoDBHost = "wft-geo-db.p.rapidapi.com"

// GeoDBOptions configures a GeoDBClient
type GeoDBOptions struct {
	URL     string
	Host    string
	APIKey  string
	Timeout time.Duration
	// HTTPClient overrides the client built from Timeout
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// GeoDBClient fetches places from the GeoDB Cities API
type GeoDBClient struct {
	endpoint *url.URL
	host     string
	apiKey   string
	client   *http.Client
	logger   zerolog.Logger
}

var _ ResultsProvider = (*GeoDBClient)(nil)

type geoDBResponse struct {
	Data     *[]domain.Place `json:"data"`
	Metadata struct {
		CurrentOffset int `json:"currentOffset"`
		TotalCount    int `json:"totalCount"`
	} `json:"metadata"`
}

// NewGeoDBClient creates a client for the given endpoint
func NewGeoDBClient(opts GeoDBOptions) (*GeoDBClient, error) {
	if opts.URL == "" {
		return nil, errors.New("geodb: url must be set")
	}
	endpoint, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("geodb: parse url: %w", err)
	}
	if endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("geodb: url %q is not absolute", opts.URL)
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	host := opts.Host
	if host == "" {
		host = DefaultGeoDBHost
	}

	return &GeoDBClient{
		endpoint: endpoint,
		host:     host,
		apiKey:   opts.APIKey,
		client:   client,
		logger:   opts.Logger.With().Str("component", "geodb").Logger(),
	}, nil
}

// Fetch issues exactly one GET request; it never retries
func (c *GeoDBClient) Fetch(ctx context.Context, namePrefix string, limit, offset int) (domain.Page, error) {
	reqURL := *c.endpoint
	params := reqURL.Query()
	params.Set("namePrefix", namePrefix)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return domain.Page{}, &ProviderError{Op: "build request", Err: err}
	}
	req.Header.Set("x-rapidapi-host", c.host)
	if c.apiKey != "" {
		req.Header.Set("x-rapidapi-key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("prefix", namePrefix).
		Int("limit", limit).
		Int("offset", offset).
		Msg("fetching places")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Page{}, &ProviderError{Op: "request", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Page{}, &ProviderError{Op: "request", StatusCode: resp.StatusCode}
	}

	var body geoDBResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Page{}, &ProviderError{Op: "decode response", Err: err}
	}
	if body.Data == nil {
		return domain.Page{}, &ProviderError{Op: "decode response", Err: errors.New("missing data field")}
	}

	c.logger.Debug().
		Int("items", len(*body.Data)).
		Int("total", body.Metadata.TotalCount).
		Dur("took", time.Since(start)).
		Msg("fetched places")

	return domain.Page{
		Items:      *body.Data,
		TotalCount: body.Metadata.TotalCount,
	}, nil
}
