package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/petshopzn/storefront-gateway/internal/config"
	apperrors "github.com/petshopzn/storefront-gateway/pkg/util"
)

// Client talks to the pet-shop REST backend. Every protected call attaches the
// session's bearer token when one is present; requests go out without it
// otherwise and the backend rejects what it must.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a backend client from configuration.
func NewClient(cfg config.BackendConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
	}
}

type upstreamBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one backend call and decodes the response into out (when
// non-nil). Responses are accepted both raw and wrapped in a {data: ...}
// envelope.
func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.NewUpstreamError("", 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewUpstreamError("", 0, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		msg := upstreamMessage(raw)
		c.logger.Debug("backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		if resp.StatusCode == http.StatusUnauthorized {
			if msg == "" {
				msg = "unauthorized"
			}
			return apperrors.NewUnauthorized(msg)
		}
		return apperrors.NewUpstreamError(msg, resp.StatusCode, nil)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(unwrap(raw), out); err != nil {
		return apperrors.NewUpstreamError("unexpected backend response", 0, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, token, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path, token string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.do(ctx, http.MethodPost, path, token, bytes.NewReader(body), "application/json", out)
}

func (c *Client) putJSON(ctx context.Context, path, token string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.do(ctx, http.MethodPut, path, token, bytes.NewReader(body), "application/json", out)
}

func (c *Client) delete(ctx context.Context, path, token string) error {
	return c.do(ctx, http.MethodDelete, path, token, nil, "", nil)
}

func idPath(collection string, id int) string {
	return fmt.Sprintf("%s/%d", collection, id)
}

// unwrap strips the optional {data: ...} envelope, leaving raw payloads
// untouched.
func unwrap(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return trimmed
}

// upstreamMessage pulls a human-readable message out of an error response.
func upstreamMessage(raw []byte) string {
	var body upstreamBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
