package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "covoit/pkg/errors"
	"covoit/pkg/logger"

	"github.com/google/uuid"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
)

// publicPaths never carry a bearer token.
var publicPaths = map[string]bool{
	"/api/auth/login":    true,
	"/api/auth/register": true,
}

// TokenSource supplies the bearer token attached to authenticated calls.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

type HttpClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
	Log        *logger.Logger
}

func NewHttpClient(baseURL string, timeout time.Duration) *HttpClient {
	return &HttpClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Log: logger.Discard(),
	}
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

func (r *Response) ToString() string {
	return fmt.Sprintf("status=%d body=%s", r.StatusCode, string(r.Body))
}

type requestIDKey struct{}

// ContextWithRequestID makes outgoing calls reuse id instead of generating one.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

func (c *HttpClient) GET(ctx context.Context, path string) (*Response, error) {
	return c.request(ctx, http.MethodGet, path, nil)
}

func (c *HttpClient) POST(ctx context.Context, path string, body any) (*Response, error) {
	return c.request(ctx, http.MethodPost, path, body)
}

func (c *HttpClient) PUT(ctx context.Context, path string, body any) (*Response, error) {
	return c.request(ctx, http.MethodPut, path, body)
}

func (c *HttpClient) DELETE(ctx context.Context, path string) (*Response, error) {
	return c.request(ctx, http.MethodDelete, path, nil)
}

// Ping issues a bare GET on the base URL. Only transport failures matter to
// the caller; an error status still proves the backend is up.
func (c *HttpClient) Ping(ctx context.Context) error {
	_, err := c.GET(ctx, "/")
	return err
}

func (c *HttpClient) request(ctx context.Context, method, path string, body any) (*Response, error) {
	var reqBody io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Internal("failed to marshal request body", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	return c.do(ctx, method, path, reqBody, body != nil)
}

func (c *HttpClient) do(ctx context.Context, method, path string, reqBody io.Reader, hasBody bool) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, apperrors.Internal("failed to create request", err)
	}

	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	req.Header.Set(HeaderRequestID, requestID)

	if !isPublic(path) && c.Tokens != nil {
		if token := c.Tokens.Token(); token != "" {
			req.Header.Set(HeaderAuthorization, "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("Backend request failed",
			"request_id", requestID,
			"method", method,
			"path", path,
			"error", err,
		)
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Network(fmt.Errorf("failed to read response body: %w", err))
	}

	c.Log.Debug("Backend request completed",
		"request_id", requestID,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		appErr := apperrors.FromResponse(resp.StatusCode, respBody)
		if resp.StatusCode >= 500 {
			c.Log.Error("Backend returned an error",
				"request_id", requestID,
				"method", method,
				"path", path,
				"status", resp.StatusCode,
			)
		}
		return nil, appErr
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

func isPublic(path string) bool {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return publicPaths[path]
}

func transportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Timeout("The server took too long to answer")
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.Timeout("The server took too long to answer")
	}
	return apperrors.Network(err)
}

// decodeData reads either a plain JSON body or a {"data": ...} envelope.
// An empty body decodes to the zero value.
func decodeData[T any](resp *Response, what string) (T, error) {
	var out T
	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 {
		return out, nil
	}

	if body[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err == nil && len(envelope) == 1 {
			if data, ok := envelope["data"]; ok {
				body = data
			}
		}
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, apperrors.Internal(fmt.Sprintf("could not decode %s", what), fmt.Errorf("%s: %w", resp.ToString(), err))
	}
	return out, nil
}
