// Package hn is the remote boundary: a client for the Hacker News
// Firebase-style item API plus the bounded-concurrency tree fetcher that
// pulls whole discussion threads through it.
package hn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/microcosm-cc/bluemonday"

	"github.com/a-Gb/hankerlytics/pkg/model"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

// maxBodyBytes caps a single API response read (1MB; items are small).
const maxBodyBytes = 1 << 20

// ErrNotFound marks an id with no item behind it. The API reports this as
// a literal null body, not an HTTP error.
var ErrNotFound = errors.New("item not found")

// Client fetches items and feed listings over HTTP. Item text passes
// through an HTML sanitizer before anything downstream sees it.
type Client struct {
	baseURL string
	httpc   *http.Client
	policy  *bluemonday.Policy
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root (tests point this at a local server).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// NewClient creates a Client with sane timeouts and a UGC sanitizer
// policy.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		policy:  bluemonday.UGCPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Item fetches a single item by id. Returns ErrNotFound for ids the API
// answers with null.
func (c *Client) Item(ctx context.Context, id int64) (*model.Item, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/item/%d.json", c.baseURL, id))
	if err != nil {
		return nil, err
	}

	var item *model.Item
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("decode item %d: %w", id, err)
	}
	if item == nil {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("item %d: %w", id, err)
	}

	item.Text = c.policy.Sanitize(item.Text)
	item.Title = bluemonday.StrictPolicy().Sanitize(item.Title)
	return item, nil
}

// FeedIDs fetches the ordered id listing for a named feed kind.
func (c *Client) FeedIDs(ctx context.Context, kind model.FeedKind) ([]int64, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown feed kind: %s", kind)
	}
	body, err := c.get(ctx, fmt.Sprintf("%s/%s.json", c.baseURL, kind.Endpoint()))
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("decode %s feed: %w", kind, err)
	}
	return ids, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}
