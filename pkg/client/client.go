// Package client is a small helper for calling the /graphql endpoint,
// the server-side counterpart of the browser shim this API ships with.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds each request end to end.
const DefaultTimeout = 15 * time.Second

// ErrTimeout is returned when the overall request deadline elapses, so
// callers can tell a slow server from a failing one.
var ErrTimeout = errors.New("request timed out")

type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
}

func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		timeout:  DefaultTimeout,
		http:     &http.Client{},
	}
}

// WithTimeout overrides the default per-request timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

type request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Do posts query with variables and decodes the "data" payload into
// out (which may be nil). GraphQL errors are folded into a single
// error; transport and HTTP failures are reported as-is.
func (c *Client) Do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return errors.Wrap(err, "encode request")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrTimeout
		}
		return errors.Wrap(err, "network error")
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return errors.Errorf("HTTP %d - %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}

	var payload response
	if err := json.Unmarshal(raw, &payload); err != nil {
		return errors.Wrap(err, "decode response")
	}

	if len(payload.Errors) > 0 {
		msgs := make([]string, len(payload.Errors))
		for i, e := range payload.Errors {
			msgs[i] = e.Message
		}
		return errors.New(strings.Join(msgs, " | "))
	}

	if out != nil {
		if err := json.Unmarshal(payload.Data, out); err != nil {
			return errors.Wrap(err, "decode data")
		}
	}
	return nil
}
