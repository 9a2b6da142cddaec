package api

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

	"github.com/kutbudev/joplin-mcp/internal/config"
)

// requestTimeout bounds every call to the Data API. Joplin is a local
// desktop process that can be slow under load, but an unbounded wait is
// never acceptable.
const requestTimeout = 30 * time.Second

// Client talks to the Joplin Data API (the Web Clipper service) over
// loopback HTTP. It holds no mutable state beyond the loaded-once token and
// base URL, so a single Client is safe for concurrent use.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a client from the resolved configuration.
func NewClient() *Client {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	return &Client{
		BaseURL: cfg.BaseURL(),
		Token:   cfg.Token,
		HTTPClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// request issues one HTTP call and returns the raw response body. The token
// travels as the `token` query parameter, per the Data API convention.
// Failures come back classified; see errors.go for the taxonomy.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	// /ping answers without authentication; everything else needs the token.
	if c.Token == "" && path != "ping" {
		return nil, newError(KindAuth, 0,
			"no API token configured; set JOPLIN_TOKEN or run `joplin-mcp setup`")
	}

	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}
	if c.Token != "" {
		q.Set("token", c.Token)
	}

	endpoint := c.BaseURL + "/" + strings.TrimPrefix(path, "/") + "?" + q.Encode()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, newError(KindValidation, 0, "failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, newError(KindValidation, 0, "failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &Error{
			Kind:    KindTransport,
			Message: fmt.Sprintf("cannot reach Joplin at %s", c.BaseURL),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "failed to read response body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyStatus(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// classifyStatus maps a non-2xx response onto the failure taxonomy. The
// schema case hides inside a generic 500: Joplin surfaces an unrecognized
// field as a database error, so the body has to be inspected.
func classifyStatus(status int, body []byte) *Error {
	detail := strings.TrimSpace(string(body))
	if len(detail) > 500 {
		detail = detail[:500]
	}

	switch {
	case status == http.StatusBadRequest:
		return newError(KindValidation, status, "Joplin rejected the request: %s", detail)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return newError(KindAuth, status, "Joplin rejected the API token (status %d)", status)
	case status == http.StatusNotFound:
		return newError(KindNotFound, status, "resource not found")
	case status >= 500 && isSchemaErrorBody(detail):
		return newError(KindSchema, status,
			"requested a field outside Joplin's storage schema: %s", detail)
	default:
		return newError(KindUpstream, status, "Joplin returned status %d: %s", status, detail)
	}
}

// isSchemaErrorBody detects the field-contract violation signature inside a
// 500 body. Joplin's SQLite layer reports it as a missing column.
func isSchemaErrorBody(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "no such column") ||
		strings.Contains(lower, "unknown field")
}

// get issues a field-selected GET for a single entity and decodes it.
func get[T any](ctx context.Context, c *Client, path, resource string, fields []string) (*T, error) {
	if err := validateFields(resource, fields); err != nil {
		return nil, err
	}
	q := url.Values{"fields": {fieldsParam(fields)}}
	body, err := c.request(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, newError(KindUpstream, 0, "failed to decode %s response: %v", path, err)
	}
	return &out, nil
}

// mutate issues a single POST/PUT/DELETE and decodes the returned entity.
// DELETE responses have no body; pass a nil out destination for those.
func mutate[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	respBody, err := c.request(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	if method == http.MethodDelete || len(respBody) == 0 {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, newError(KindUpstream, 0, "failed to decode %s response: %v", path, err)
	}
	return &out, nil
}

// Ping checks that the Web Clipper service answers. Joplin responds to
// /ping with a plain-text banner; any 2xx counts as alive.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.request(ctx, http.MethodGet, "ping", nil, nil)
	return err
}
