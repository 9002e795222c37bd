// Package engine wraps the remote search engine behind a single
// synchronous search call.
package engine

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	opensearch "github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"

	"github.com/newsdeck/articles-api/internal/domain"
	"github.com/newsdeck/articles-api/internal/metrics"
)

// Config holds connection settings for the search engine.
type Config struct {
	Endpoint        string
	APIKey          string
	InsecureSkipTLS bool
	RequestTimeout  time.Duration
	MaxIdleConns    int
	IdleConnTimeout time.Duration
}

// Client is a read-only engine client. It issues exactly one search call
// per request; failures surface immediately and are never retried.
type Client struct {
	client *opensearchapi.Client
}

// NewClient creates an engine client. Endpoint and APIKey are required;
// the key is sent as an ApiKey authorization header.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("api key is required")
	}

	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = 10
	}
	if cfg.IdleConnTimeout == 0 {
		cfg.IdleConnTimeout = 90 * time.Second
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipTLS,
		},
		MaxIdleConns:          cfg.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.MaxIdleConns,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.RequestTimeout,
	}

	header := http.Header{}
	header.Set("Authorization", "ApiKey "+cfg.APIKey)

	osClient, err := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses: []string{cfg.Endpoint},
			Header:    header,
			Transport: transport,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create engine client: %w", err)
	}

	return &Client{client: osClient}, nil
}

// Hit is one raw engine hit.
type Hit struct {
	ID     string
	Score  float64
	Source json.RawMessage
}

// Response is the subset of the engine search response this service uses.
type Response struct {
	Total int
	Hits  []Hit
}

// Search marshals body and runs a single search against index.
// Transport-level failures are wrapped in domain.ErrEngineUnavailable.
func (c *Client) Search(ctx context.Context, index string, body any) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Search(ctx, &opensearchapi.SearchReq{
		Indices: []string{index},
		Body:    bytes.NewReader(payload),
	})
	metrics.ObserveEngineRequest(time.Since(start), err == nil)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return nil, fmt.Errorf("%w: %w", domain.ErrEngineUnavailable, err)
		}
		return nil, fmt.Errorf("engine search: %w", err)
	}
	if resp == nil {
		return nil, errors.New("nil response from engine")
	}

	out := &Response{
		Total: resp.Hits.Total.Value,
		Hits:  make([]Hit, len(resp.Hits.Hits)),
	}
	for i, h := range resp.Hits.Hits {
		out.Hits[i] = Hit{ID: h.ID, Score: float64(h.Score), Source: h.Source}
	}
	return out, nil
}
