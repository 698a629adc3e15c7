package refapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/iota-uz/refconsole/pkg/composables"
)

// Envelope wraps every reference API response.
type Envelope[T any] struct {
	Status  int    `json:"status"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Err returns nil for a successful envelope.
func (e Envelope[T]) Err() error {
	if e.Success && e.Status == StatusSuccess {
		return nil
	}
	return &Error{Status: e.Status, Message: e.Message}
}

type Options struct {
	BaseURL         string
	Authorization   string
	Timeout         time.Duration
	RequestIDHeader string
	HTTPClient      *http.Client
}

type Client struct {
	baseURL         *url.URL
	authorization   string
	httpClient      *http.Client
	requestIDHeader string
}

var tracer = otel.Tracer("refconsole-refapi")

func NewClient(opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid base url: %q", opts.BaseURL)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:         u,
		authorization:   strings.TrimSpace(opts.Authorization),
		httpClient:      httpClient,
		requestIDHeader: opts.RequestIDHeader,
	}, nil
}

// Do sends reqBody as JSON and decodes the response envelope. A returned
// error means no envelope could be obtained; an unsuccessful envelope is
// returned as is for the caller to inspect.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, reqBody any) (Envelope[json.RawMessage], error) {
	var env Envelope[json.RawMessage]

	ctx, span := tracer.Start(ctx, "refapi."+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("refapi.path", path),
		),
	)
	defer span.End()

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return env, errors.Wrap(err, "marshal request")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return env, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.requestIDHeader != "" {
		req.Header.Set(c.requestIDHeader, requestID(ctx))
	}
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}
	propagation.TraceContext{}.Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return env, errors.Wrapf(err, "%s %s", method, path)
	}
	defer func() { _ = resp.Body.Close() }()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return env, errors.Wrap(err, "read response")
	}
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return env, &Error{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		}
		return env, errors.Wrap(err, "decode envelope")
	}
	if env.Status == 0 {
		env.Status = resp.StatusCode
	}
	if env.Err() != nil {
		span.SetStatus(codes.Error, env.Message)
	}
	return env, nil
}

func decode[T any](env Envelope[json.RawMessage]) (T, error) {
	var out T
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, errors.Wrap(err, "decode data")
	}
	return out, nil
}

// requestID forwards the inbound request id carried by the request logger.
func requestID(ctx context.Context) string {
	if logger, err := composables.TryUseLogger(ctx); err == nil {
		if id, ok := logger.Data["request-id"].(string); ok && id != "" {
			return id
		}
	}
	return uuid.NewString()
}
