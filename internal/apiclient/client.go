// Package apiclient talks to the club REST backend on behalf of one browser session.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/config"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/observability"
	apperrors "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/pkg/util"
)

const maxBodyBytes = 4 << 20

// TokenSource yields the bearer token of the current session, or "" when signed out.
type TokenSource interface {
	Token() string
}

// UnauthorizedHandler runs for every 401 response with the token that was sent.
type UnauthorizedHandler func(token string)

// Client is a thin JSON client for the backend.
type Client struct {
	baseURL        string
	http           *http.Client
	logger         *zap.Logger
	metrics        *observability.Metrics
	tokens         TokenSource
	onUnauthorized UnauthorizedHandler
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for call tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics records every backend call.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(c *Client) { c.metrics = metrics }
}

// New builds an anonymous client for the configured backend.
func New(cfg config.BackendConfig, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSession returns a copy bound to a token source and its 401 handler. The
// transport is shared between copies.
func (c *Client) WithSession(tokens TokenSource, onUnauthorized UnauthorizedHandler) *Client {
	clone := *c
	clone.tokens = tokens
	clone.onUnauthorized = onUnauthorized
	return &clone
}

type errorBody struct {
	Message string                 `json:"message"`
	Error   string                 `json:"error"`
	Errors  []apperrors.FieldError `json:"errors"`
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		values := url.Values{}
		for k, v := range query {
			values.Set(k, v)
		}
		endpoint += "?" + values.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token := ""
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordBackendCall(path, method, 0, time.Since(start))
		c.logger.Debug("backend call failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return apperrors.NewNetworkError(err)
	}
	defer resp.Body.Close()
	c.metrics.RecordBackendCall(path, method, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return apperrors.NewNetworkError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized(token)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.NewInternalError(errors.New("decode " + method + " " + path + ": " + err.Error()))
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	var body errorBody
	_ = json.Unmarshal(raw, &body)
	message := body.Message
	if message == "" {
		message = body.Error
	}
	return apperrors.FromStatus(status, message, body.Errors)
}

func idPath(prefix, id string, suffix ...string) string {
	path := prefix + "/" + url.PathEscape(id)
	for _, s := range suffix {
		path += "/" + s
	}
	return path
}
