// Package ledger implements the LedgerClient port over the finance backend's HTTP API.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/companion/internal/application/adapter"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// RequestIDHeader carries the correlation id of every backend call.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID attaches the correlation id forwarded on backend calls made with ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// maxErrorBody bounds how much of an error response is kept as a message.
const maxErrorBody = 4 << 10

// TokenSource supplies the bearer token of the active session, if any.
type TokenSource interface {
	Token() (string, bool)
}

// Client talks to the finance backend.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	tokens     TokenSource
}

var _ adapter.LedgerClient = (*Client)(nil)

// NewClient creates a new Client. tokens may be nil for anonymous use.
func NewClient(httpClient *http.Client, baseURL string, tokens TokenSource) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid ledger base url %q", baseURL)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    parsed,
		tokens:     tokens,
	}, nil
}

// do sends one request and decodes a 2xx JSON answer into out (when out is non-nil).
// Non-2xx answers become *NetworkError, except 401/403 which become *AuthError.
func (c *Client) do(ctx context.Context, operation, method string, segments []string, body, out any) error {
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}
	endpoint := c.baseURL.JoinPath(escaped...)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := requestIDFrom(ctx)
	req.Header.Set(RequestIDHeader, requestID)
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("Ledger request failed",
			"operation", operation,
			"request_id", requestID,
			"error", err,
		)
		return domainerror.NewNetworkError(domainerror.ErrCodeLedgerUnavailable, operation, 0, errors.Join(domainerror.ErrLedgerUnavailable, err))
	}
	defer resp.Body.Close()

	slog.Debug("Ledger request completed",
		"operation", operation,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(operation, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domainerror.NewNetworkError(domainerror.ErrCodeMalformedResponse, operation, resp.StatusCode, errors.Join(domainerror.ErrMalformedResponse, err))
	}
	return nil
}

func statusError(operation string, resp *http.Response) error {
	message := readErrorMessage(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if message == "" {
			message = domainerror.ErrUnauthorized.Error()
		}
		return domainerror.NewAuthError(domainerror.ErrCodeUnauthorized, message, domainerror.ErrUnauthorized)
	}

	cause := domainerror.ErrUnexpectedStatus
	code := domainerror.ErrCodeUnexpectedStatus
	if resp.StatusCode >= 500 {
		cause = domainerror.ErrLedgerUnavailable
		code = domainerror.ErrCodeLedgerUnavailable
	}
	if message != "" {
		return domainerror.NewNetworkError(code, operation, resp.StatusCode, &backendMessage{cause: cause, text: message})
	}
	return domainerror.NewNetworkError(code, operation, resp.StatusCode, cause)
}

// backendMessage keeps the backend's own wording next to the failure cause.
type backendMessage struct {
	cause error
	text  string
}

func (m *backendMessage) Error() string {
	return m.cause.Error() + ": " + m.text
}

func (m *backendMessage) Unwrap() error {
	return m.cause
}

// readErrorMessage extracts a human readable message from an error body.
// JSON bodies with a message, error or title field win; otherwise the trimmed text is used.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return ""
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return ""
	}

	var payload map[string]any
	if json.Unmarshal(raw, &payload) == nil {
		for _, field := range []string{"message", "Message", "error", "title"} {
			if s, ok := payload[field].(string); ok && s != "" {
				return s
			}
		}
		return ""
	}

	var quoted string
	if json.Unmarshal(raw, &quoted) == nil {
		return quoted
	}
	return text
}
