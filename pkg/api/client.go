package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenSource yields the bearer token for authenticated calls. An empty
// string means no session is active.
type TokenSource interface {
	Token() string
}

// Client is the single pre-configured request issuer for the mading API.
// All other packages route their network calls through it.
type Client struct {
	baseURL string
	httpc   *http.Client
	headers map[string]string
	tokens  TokenSource
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithTokenSource wires the session gateway that provides bearer tokens.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the request logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHeader adds a default header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// NewClient creates a Client for the given base URL. No request timeout
// is configured; callers cancel through the context.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		headers: map[string]string{"Accept": "application/json"},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// ImageURL resolves a server-relative image path against the base URL.
func (c *Client) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// RequireToken returns the current bearer token, or ErrUnauthenticated
// when no session is active. Mutating services call this before issuing
// any network request.
func (c *Client) RequireToken() (string, error) {
	if c.tokens == nil || c.tokens.Token() == "" {
		return "", ErrUnauthenticated
	}
	return c.tokens.Token(), nil
}

// Authenticated reports whether a bearer token is currently available.
func (c *Client) Authenticated() bool {
	return c.tokens != nil && c.tokens.Token() != ""
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, "", nil, out)
}

// PostJSON issues a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, "application/json", bytes.NewReader(buf), out)
}

// PutJSON issues a PUT with a JSON body.
func (c *Client) PutJSON(ctx context.Context, path string, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPut, path, nil, "application/json", bytes.NewReader(buf), out)
}

// DeleteJSON issues a DELETE carrying a JSON body, which the API uses to
// identify the entity to remove.
func (c *Client) DeleteJSON(ctx context.Context, path string, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, http.MethodDelete, path, nil, "application/json", bytes.NewReader(buf), out)
}

// Upload is a file attached to a multipart request.
type Upload struct {
	Field    string
	Filename string
	Content  []byte
}

// PostMultipart issues a POST with multipart form fields and an optional
// file attachment. The API routes update and delete semantics through
// POST using a _method override field, so this is also the update path
// for resources that carry files.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, file *Upload, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return fmt.Errorf("write form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, w.FormDataContentType(), &buf, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	log := c.log.With().Str("method", method).Str("path", path).Str("request_id", requestID).Logger()
	log.Debug().Msg("issuing request")

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("transport failure")
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Msg("request failed")
		return decodeAPIError(resp.StatusCode, data)
	}

	// Some endpoints report application errors with a 200 status.
	var probe struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &probe) == nil && probe.Error != "" {
		return &APIError{Status: resp.StatusCode, Message: probe.Error}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	log.Debug().Int("status", resp.StatusCode).Msg("request complete")
	return nil
}

func decodeAPIError(status int, data []byte) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if json.Unmarshal(data, &body) == nil {
		msg = body.Error
		if msg == "" {
			msg = body.Message
		}
	}
	if status == http.StatusNotFound && msg == "" {
		return &APIError{Status: status, Message: ErrNotFound.Error()}
	}
	return &APIError{Status: status, Message: msg}
}
