package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CodeSuccess is the envelope code the HRMS API uses for a successful call.
const CodeSuccess = 1

const (
	// TokenHeader carries the session token on every request.
	TokenHeader = "Token"
	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"

	loginPath       = "/login"
	formContentType = "application/x-www-form-urlencoded"
	jsonContentType = "application/json"
)

// envelope is the wire shape of every HRMS API response.
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// Empty is used as the result type of calls whose payload is ignored.
type Empty struct{}

// UnmarshalJSON accepts and discards any payload.
func (*Empty) UnmarshalJSON([]byte) error { return nil }

// Client provides a typed interface to the HRMS REST API.
// It attaches the stored session token to every request and drops the
// token when the server answers 401.
type Client struct {
	http           *resty.Client
	baseURL        string
	tokens         TokenStore
	logger         *zap.Logger
	onUnauthorized func()
}

// ClientOptions configures SDK client construction.
type ClientOptions struct {
	HTTPClient     *http.Client
	Tokens         TokenStore
	Logger         *zap.Logger
	Timeout        time.Duration
	OnUnauthorized func()
}

// ClientOption mutates ClientOptions.
type ClientOption func(*ClientOptions)

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(opts *ClientOptions) {
		opts.HTTPClient = client
	}
}

// WithTokenStore sets where the session token is read from and removed.
func WithTokenStore(store TokenStore) ClientOption {
	return func(opts *ClientOptions) {
		opts.Tokens = store
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(opts *ClientOptions) {
		opts.Logger = logger
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(opts *ClientOptions) {
		opts.Timeout = timeout
	}
}

// WithUnauthorizedHandler registers a callback invoked after a 401 response
// has cleared the stored token.
func WithUnauthorizedHandler(fn func()) ClientOption {
	return func(opts *ClientOptions) {
		opts.OnUnauthorized = fn
	}
}

// NewClient creates a new HRMS SDK client for the API server at baseURL.
// Without a token store the client keeps the token in memory.
func NewClient(baseURL string, optFns ...ClientOption) *Client {
	opts := ClientOptions{
		Timeout: 10 * time.Second,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Tokens == nil {
		opts.Tokens = NewMemoryStore(nil)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	var rc *resty.Client
	if opts.HTTPClient != nil {
		rc = resty.NewWithClient(opts.HTTPClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(strings.TrimRight(baseURL, "/"))
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}

	c := &Client{
		http:           rc,
		baseURL:        baseURL,
		tokens:         opts.Tokens,
		logger:         opts.Logger,
		onUnauthorized: opts.OnUnauthorized,
	}
	rc.OnBeforeRequest(c.beforeRequest)
	rc.OnAfterResponse(c.afterResponse)
	return c
}

// BaseURL returns the API server URL the client was built for.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Tokens returns the token store backing the client.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// beforeRequest attaches the session token and picks the content type.
func (c *Client) beforeRequest(_ *resty.Client, req *resty.Request) error {
	if tok, err := c.tokens.LoadToken(); err == nil && tok.Value != "" {
		req.SetHeader(TokenHeader, tok.Value)
	}
	if strings.Contains(req.URL, loginPath) {
		req.SetHeader("Content-Type", formContentType)
	} else {
		req.SetHeader("Content-Type", jsonContentType)
	}
	if req.Header.Get(RequestIDHeader) == "" {
		req.SetHeader(RequestIDHeader, uuid.NewString())
	}
	return nil
}

// afterResponse drops the session token when the server rejects it.
func (c *Client) afterResponse(_ *resty.Client, resp *resty.Response) error {
	if resp.StatusCode() != http.StatusUnauthorized {
		return nil
	}
	c.logger.Warn("server rejected session token",
		zap.String("method", resp.Request.Method),
		zap.String("url", resp.Request.URL),
	)
	if err := c.tokens.DeleteToken(); err != nil {
		c.logger.Error("failed to remove session token", zap.Error(err))
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// do executes req and decodes the envelope into T. A missing payload yields
// the zero T.
func do[T any](c *Client, req *resty.Request, method, path string) (T, error) {
	out, _, err := execute[T](c, req, method, path)
	return out, err
}

// doRequired is do for calls whose success envelope must carry a payload.
// A null or missing data field is reported as ErrRejected.
func doRequired[T any](c *Client, req *resty.Request, method, path string) (T, error) {
	out, present, err := execute[T](c, req, method, path)
	if err != nil {
		return out, err
	}
	if !present {
		var zero T
		return zero, &APIError{Op: method + " " + path, StatusCode: http.StatusOK, Code: CodeSuccess, Message: "response carried no data", Err: ErrRejected}
	}
	return out, nil
}

func execute[T any](c *Client, req *resty.Request, method, path string) (T, bool, error) {
	var zero T
	op := method + " " + path

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Debug("request failed", zap.String("op", op), zap.Error(err))
		return zero, false, &APIError{Op: op, Err: err}
	}

	status := resp.StatusCode()
	if status == http.StatusUnauthorized {
		return zero, false, &APIError{Op: op, StatusCode: status, Message: messageFrom(resp.Body()), Err: ErrUnauthorized}
	}
	if resp.IsError() {
		return zero, false, &APIError{Op: op, StatusCode: status, Message: messageFrom(resp.Body())}
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return zero, false, &APIError{Op: op, StatusCode: status, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if env.Code != CodeSuccess {
		c.logger.Debug("request rejected", zap.String("op", op), zap.Int("code", env.Code), zap.String("msg", env.Msg))
		return zero, false, &APIError{Op: op, StatusCode: status, Code: env.Code, Message: env.Msg, Err: ErrRejected}
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return zero, false, nil
	}
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return zero, false, &APIError{Op: op, StatusCode: status, Code: env.Code, Err: fmt.Errorf("failed to decode data: %w", err)}
	}
	return out, true, nil
}

// messageFrom extracts the msg field from an error body, falling back to the raw text.
func messageFrom(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Msg != "" {
		return env.Msg
	}
	return strings.TrimSpace(string(body))
}

// joinIDs renders ids the way the API expects them in a path segment.
func joinIDs[T string | int64](ids []T) (string, error) {
	if len(ids) == 0 {
		return "", errors.New("at least one id is required")
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		switch v := any(id).(type) {
		case string:
			parts = append(parts, v)
		case int64:
			parts = append(parts, strconv.FormatInt(v, 10))
		}
	}
	return strings.Join(parts, ","), nil
}
