// Package api is the HTTP transport for the StaffDesk client.
//
// The client injects the current session token as an Authorization header on
// every outgoing request and normalizes transport and HTTP failures into a
// uniform *Error. It never touches session state or resource caches; that is
// the callers' responsibility, which keeps the transport reusable by every
// store.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/staffdesk/staffdesk/internal/client/tokenstore"
)

const defaultTimeout = 10 * time.Second

// Client issues JSON requests against the StaffDesk API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  tokenstore.Store
}

// NewClient builds a Client for the given base URL ("http://host:port/api").
// The token store is consulted before every dispatch; it may be shared with
// the session manager.
func NewClient(baseURL string, tokens tokenstore.Store, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// Request dispatches method path with an optional JSON body and returns the
// raw response body on 2xx. Any failure is returned as *Error.
func (c *Client) Request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindTransport, Message: err.Error()}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.tokens.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: err.Error()}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return data, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &Error{Kind: KindUnauthorized, Status: resp.StatusCode, Message: errorMessage(data)}
	default:
		return nil, &Error{Kind: KindServerRejected, Status: resp.StatusCode, Message: errorMessage(data)}
	}
}

// errorMessage extracts a human-readable message from an error response body.
// The API uses both {"error": "..."} objects and plain-text bodies. Returns ""
// when the body carries no message; Error supplies the generic fallback.
func errorMessage(body []byte) string {
	var shaped struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &shaped); err == nil {
		if shaped.Error != "" {
			return shaped.Error
		}
		if shaped.Message != "" {
			return shaped.Message
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
		return text
	}
	return ""
}
