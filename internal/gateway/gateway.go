// Package gateway is the single path from the dashboard to the backend REST
// API. Every call returns a Result whose Kind tells the caller which of the
// three outcomes happened; transport problems never surface as panics or
// returned errors, they are logged, posted to the request's notice board and
// reported as Unavailable.
package gateway

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

	"fundboard/internal/log"
	"fundboard/internal/notice"
)

// DefaultBaseURL is used when no API URL is configured.
const DefaultBaseURL = "http://localhost:5000/api"

const maxBodyBytes = 4 << 20

// Kind identifies the outcome of a gateway call.
type Kind int

const (
	// Unavailable means no usable response: transport failure, undecodable
	// body or an unsupported method.
	Unavailable Kind = iota
	// OK means the backend answered with success:true.
	OK
	// Failed means the backend answered with success:false.
	Failed
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "ok"
	case Failed:
		return "failed"
	default:
		return "unavailable"
	}
}

var (
	ErrUnsupportedMethod = errors.New("unsupported method")
	ErrMalformedResponse = errors.New("malformed response")
)

// Result is the normalized outcome of a call. Data is meaningful only when
// Kind is OK, Message only when Kind is Failed, Err only when Kind is
// Unavailable.
type Result[T any] struct {
	Kind    Kind
	Data    T
	Message string
	Err     error
}

// Call describes one outbound request.
type Call struct {
	Method     string
	Path       string
	Body       any
	Credential string
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Config configures a Client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client performs backend calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// New creates a Client. A nil HTTPClient gets a dedicated client using
// Timeout (zero means no client-side timeout).
func New(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}
	return &Client{
		baseURL:    base,
		httpClient: hc,
		logger:     logger.WithComponent(log.ComponentGateway),
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Request sends call and returns the backend envelope's data untouched.
func (c *Client) Request(ctx context.Context, call Call) Result[json.RawMessage] {
	switch call.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut:
	default:
		c.logger.DebugContext(ctx, "Skipping call with unsupported method",
			log.FieldAPIMethod, call.Method, log.FieldAPIPath, call.Path)
		return Result[json.RawMessage]{Kind: Unavailable, Err: ErrUnsupportedMethod}
	}

	var body io.Reader
	if call.Body != nil && call.Method != http.MethodGet {
		payload, err := json.Marshal(call.Body)
		if err != nil {
			return unavailable[json.RawMessage](c.report(ctx, call, fmt.Errorf("encode request body: %w", err)))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, c.baseURL+call.Path, body)
	if err != nil {
		return unavailable[json.RawMessage](c.report(ctx, call, fmt.Errorf("build request: %w", err)))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if call.Credential != "" {
		req.Header.Set("Authorization", "Bearer "+call.Credential)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return unavailable[json.RawMessage](c.report(ctx, call, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return unavailable[json.RawMessage](c.report(ctx, call, fmt.Errorf("read response: %w", err)))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return unavailable[json.RawMessage](c.report(ctx, call,
			fmt.Errorf("%w (status %d): %v", ErrMalformedResponse, resp.StatusCode, err)))
	}

	c.logger.DebugContext(ctx, "Backend call completed",
		log.FieldAPIMethod, call.Method,
		log.FieldAPIPath, call.Path,
		log.FieldAPIStatus, resp.StatusCode,
		log.FieldSuccess, env.Success,
		log.FieldDuration, time.Since(start).Milliseconds())

	if !env.Success {
		return Result[json.RawMessage]{Kind: Failed, Message: env.Message}
	}
	return Result[json.RawMessage]{Kind: OK, Data: env.Data}
}

// Fetch performs call and decodes the envelope's data into T. A data payload
// that does not fit T is treated like any other malformed response.
func Fetch[T any](ctx context.Context, c *Client, call Call) Result[T] {
	raw := c.Request(ctx, call)
	out := Result[T]{Kind: raw.Kind, Message: raw.Message, Err: raw.Err}
	if raw.Kind != OK {
		return out
	}
	if len(raw.Data) == 0 || string(raw.Data) == "null" {
		return out
	}
	if err := json.Unmarshal(raw.Data, &out.Data); err != nil {
		return unavailable[T](c.report(ctx, call, fmt.Errorf("%w: decode data: %v", ErrMalformedResponse, err)))
	}
	return out
}

// report logs a transport failure and posts it to the request's notice board.
func (c *Client) report(ctx context.Context, call Call, err error) error {
	c.logger.ErrorContext(ctx, "Backend call failed",
		log.FieldAPIMethod, call.Method,
		log.FieldAPIPath, call.Path,
		log.FieldError, err)
	notice.FromContext(ctx).Error("API Error: " + err.Error())
	return err
}

func unavailable[T any](err error) Result[T] {
	return Result[T]{Kind: Unavailable, Err: err}
}
