// Package store is the gateway to the remote REST data store. Every call
// attaches the fixed service credentials and a bounded timeout, and every
// failure — transport error or any status >= 400 — collapses to
// ErrUnavailable. The gateway performs no retries: writes are at-most-once,
// and callers treat ErrUnavailable as "computed but not recorded".
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nhahub/NHA-046/internal/logger"
)

const (
	requestTimeout = 10 * time.Second
	uploadTimeout  = 30 * time.Second
)

// ErrUnavailable is the single failure outcome of every gateway call.
// The gateway deliberately does not distinguish "not found" from "store
// down"; callers that care inspect the empty-record-slice case, which is a
// success, not an ErrUnavailable.
var ErrUnavailable = errors.New("data store unavailable")

// Record is one row of a remote collection.
type Record map[string]any

// String returns the record field as a string, or "" when absent.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Float returns the record field as a float64, or 0 when absent.
func (r Record) Float(key string) float64 {
	f, _ := r[key].(float64)
	return f
}

// Client talks to a Supabase-style REST data API (PostgREST filter syntax).
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	upload  *http.Client
	log     *zap.Logger
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		http:    &http.Client{Timeout: requestTimeout},
		upload:  &http.Client{Timeout: uploadTimeout},
		log:     logger.Named("store"),
	}
}

// Configured reports whether store credentials are present.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// Fetch reads records from a collection. The filter uses PostgREST query
// syntax, e.g. {"email": "eq.a@b.c"} or {"order": "created_at.desc"}.
// An empty result is a successful empty slice, never ErrUnavailable.
func (c *Client) Fetch(ctx context.Context, collection string, filter map[string]string) ([]Record, error) {
	return c.do(ctx, http.MethodGet, c.collectionURL(collection, filter), nil)
}

// Insert appends a record to a collection and returns the stored rows
// (the store echoes the inserted representation).
func (c *Client) Insert(ctx context.Context, collection string, record Record) ([]Record, error) {
	return c.do(ctx, http.MethodPost, c.collectionURL(collection, nil), record)
}

// Update patches the records matched by filter.
func (c *Client) Update(ctx context.Context, collection string, filter map[string]string, patch Record) error {
	_, err := c.do(ctx, http.MethodPatch, c.collectionURL(collection, filter), patch)
	return err
}

// Ping probes store reachability with a cheap read. Used by health checks.
func (c *Client) Ping(ctx context.Context, collection string) bool {
	_, err := c.Fetch(ctx, collection, map[string]string{"select": "id", "limit": "1"})
	return err == nil
}

func (c *Client) collectionURL(collection string, filter map[string]string) string {
	u := c.baseURL + "/rest/v1/" + collection
	if len(filter) == 0 {
		return u
	}
	q := url.Values{}
	for k, v := range filter {
		q.Set(k, v)
	}
	return u + "?" + q.Encode()
}

func (c *Client) do(ctx context.Context, method, rawURL string, body any) ([]Record, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, ErrUnavailable
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, ErrUnavailable
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("store request failed", zap.String("method", method), zap.Error(err))
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrUnavailable
	}

	if resp.StatusCode >= 400 {
		c.log.Warn("store error response",
			zap.String("method", method),
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(data), 300)))
		return nil, ErrUnavailable
	}

	// A successful write with an empty body is an empty sequence, not an error.
	if resp.StatusCode == http.StatusNoContent || len(strings.TrimSpace(string(data))) == 0 {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		// Some endpoints answer with a single object instead of an array.
		var one Record
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, ErrUnavailable
		}
		return []Record{one}, nil
	}
	return records, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("%s... (%d bytes)", s[:n], len(s))
}
