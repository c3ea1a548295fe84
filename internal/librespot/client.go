package librespot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client talks to a go-librespot daemon's HTTP API.
//
// The daemon reports "no active session" as 204 and missing objects as 404;
// both are normal outcomes, not errors. Callers of the typed endpoint
// methods receive (nil, nil) in those cases and must treat absence as an
// expected state.
type Client struct {
	httpClient *http.Client
	baseURL    string
	verbose    bool
	logFunc    func(format string, args ...interface{})
}

// New creates a client for the daemon at baseURL (e.g. "http://localhost:3678").
func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the configured daemon base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetVerbose enables request logging.
func (c *Client) SetVerbose(verbose bool, logFunc func(format string, args ...interface{})) {
	c.verbose = verbose
	c.logFunc = logFunc
}

func (c *Client) log(format string, args ...interface{}) {
	if c.verbose && c.logFunc != nil {
		c.logFunc(format, args...)
	}
}

// get performs a GET request. Returns ok=false (and no error) when the
// daemon answered 204 or 404.
func (c *Client) get(ctx context.Context, path string, result interface{}) (ok bool, err error) {
	return c.request(ctx, http.MethodGet, path, nil, result)
}

// post performs a POST request with an optional JSON body.
func (c *Client) post(ctx context.Context, path string, body interface{}) error {
	_, err := c.request(ctx, http.MethodPost, path, body, nil)
	return err
}

func (c *Client) request(ctx context.Context, method, path string, body, result interface{}) (bool, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
		c.log("[librespot] %s %s\n  body: %s", method, path, string(jsonBody))
	} else {
		c.log("[librespot] %s %s", method, path)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log("[librespot] response: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound:
		// No active session / object not found. Normal outcome.
		return false, nil
	case resp.StatusCode >= 400:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return false, fmt.Errorf("daemon error: status %d, body: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return false, fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return true, nil
}

// BuildURL builds a path with query parameters.
func BuildURL(path string, params map[string]string) string {
	if len(params) == 0 {
		return path
	}

	u, _ := url.Parse(path)
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
