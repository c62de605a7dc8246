package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/dagerber/spring-cloud-commons/message"
	"github.com/dagerber/spring-cloud-commons/registry"
)

// HTTPExecutor executes attempts over HTTP. A single http.Client is shared
// across all attempts and invocations; its transport pools connections per
// host, so retries against the same instance reuse the connection.
type HTTPExecutor struct {
	client *http.Client
	scheme string
}

type HTTPOption func(*HTTPExecutor)

// WithClient swaps the underlying http.Client (custom timeouts, TLS, ...).
func WithClient(c *http.Client) HTTPOption {
	return func(e *HTTPExecutor) { e.client = c }
}

// WithScheme sets the URL scheme, default "http".
func WithScheme(scheme string) HTTPOption {
	return func(e *HTTPExecutor) { e.scheme = scheme }
}

func NewHTTPExecutor(opts ...HTTPOption) *HTTPExecutor {
	e := &HTTPExecutor{
		client: &http.Client{Timeout: 30 * time.Second},
		scheme: "http",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute resolves the request path against the instance's host:port and
// performs the call. The response body is read fully so the connection can
// go back to the pool before the retry loop moves on.
func (e *HTTPExecutor) Execute(ctx context.Context, instance *registry.ServiceInstance, req *message.Request) (*message.Response, error) {
	url := e.scheme + "://" + instance.Addr() + req.Path

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, bytes.NewReader(req.Body))
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s", url)
	}
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(err, "executing %s %s", req.Method, url)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading response from %s", url)
	}

	header := make(map[string]string, len(httpResp.Header))
	for k := range httpResp.Header {
		header[k] = httpResp.Header.Get(k)
	}

	return &message.Response{
		StatusCode: httpResp.StatusCode,
		Header:     header,
		Body:       body,
	}, nil
}
