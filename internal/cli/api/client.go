// Package api is the storefront API dispatcher: a configured HTTP client
// that injects auth headers, negotiates content types, and classifies every
// failure into a single error taxonomy. Verbs return the full response
// envelope so callers can inspect status and headers when they need to.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/shopd-dev/shopd/internal/cli/session"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerRequestID     = "X-Request-ID"

	contentTypeJSON = "application/json"
	bearerPrefix    = "Bearer "
)

// RequestConfig is the minimal request descriptor carried on responses and
// surfaced when a call fails.
type RequestConfig struct {
	URL    string
	Method string
	Params url.Values
}

// Response is the full transport envelope, as opposed to just its payload.
type Response struct {
	Data    []byte
	Status  int
	Headers http.Header
	Config  RequestConfig
}

// Client dispatches requests against the storefront API. A zero timeout is
// deliberate: calls rely on the transport default or the caller's context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Service
	logger     zerolog.Logger
}

// New creates a dispatcher for the given base URL.
func New(baseURL string, sessions *session.Service, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		sessions:   sessions,
		logger:     logger,
	}
}

// SetHTTPClient sets a custom HTTP client.
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// Get issues a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	return c.dispatch(ctx, http.MethodGet, path, params, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.dispatch(ctx, http.MethodPost, path, nil, body)
}

// PostParams issues a POST request with query parameters and no body.
func (c *Client) PostParams(ctx context.Context, path string, params url.Values) (*Response, error) {
	return c.dispatch(ctx, http.MethodPost, path, params, nil)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.dispatch(ctx, http.MethodPut, path, nil, body)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.dispatch(ctx, http.MethodPatch, path, nil, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.dispatch(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) dispatch(ctx context.Context, method, path string, params url.Values, body any) (*Response, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.logger.Error().Str("url", path).Str("method", method).Err(err).Msg("failed to build request body")
			return nil, &SetupError{Err: err}
		}
		reader = bytes.NewReader(data)
		contentType = contentTypeJSON
	}
	return c.send(ctx, method, path, params, reader, contentType)
}

// send runs the full request lifecycle. Multipart callers pass their own
// boundary content type; a JSON content type is never forced onto them.
func (c *Client) send(ctx context.Context, method, path string, params url.Values, body io.Reader, contentType string) (*Response, error) {
	cfg := RequestConfig{URL: path, Method: method, Params: params}
	requestID := ulid.Make().String()

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		c.logger.Error().Str("request_id", requestID).Str("url", path).Str("method", method).Err(err).Msg("request setup failed")
		return nil, &SetupError{Err: err}
	}

	req.Header.Set(headerRequestID, requestID)
	if token := c.sessions.Token(); token != "" {
		req.Header.Set(headerAuthorization, bearerPrefix+token)
	}
	if contentType != "" {
		req.Header.Set(headerContentType, contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Str("request_id", requestID).Str("url", path).Str("method", method).Err(err).Msg("no response received")
		return nil, &NetworkError{URL: path, Method: method, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error().Str("request_id", requestID).Str("url", path).Str("method", method).Err(err).Msg("failed to read response body")
		return nil, &NetworkError{URL: path, Method: method, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Full session teardown happens here, for every 401 anywhere in
		// the app. Navigation is handled by whoever subscribed to the
		// expiry event; the transport layer only reports it.
		c.logger.Warn().Str("request_id", requestID).Str("url", path).Str("method", method).Msg("unauthorized response, tearing down session")
		c.sessions.Expire()
		return nil, &AuthExpiredError{URL: path, Method: method}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Error().
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			Str("url", path).
			Str("method", method).
			Bytes("body", data).
			Msg("server returned an error response")
		return nil, &ServerError{Status: resp.StatusCode, Body: data, URL: path, Method: method}
	}

	return &Response{Data: data, Status: resp.StatusCode, Headers: resp.Header, Config: cfg}, nil
}
