package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dagerber/spring-cloud-commons/message"
	"github.com/dagerber/spring-cloud-commons/registry"
)

func instanceFor(t *testing.T, server *httptest.Server) *registry.ServiceInstance {
	t.Helper()
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return &registry.ServiceInstance{Host: u.Hostname(), Port: port}
}

func TestHTTPExecute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/orders", r.URL.Path)
		require.Equal(t, "yes", r.Header.Get("X-Test"))
		w.Header().Set("X-Answer", "42")
		w.WriteHeader(201)
		w.Write([]byte("created"))
	}))
	defer server.Close()

	e := NewHTTPExecutor()
	resp, err := e.Execute(context.Background(), instanceFor(t, server), &message.Request{
		Method: "POST",
		Path:   "/v1/orders",
		Header: map[string]string{"X-Test": "yes"},
		Body:   []byte(`{}`),
	})
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)
	require.Equal(t, "created", string(resp.Body))
	require.Equal(t, "42", resp.Header["X-Answer"])
}

func TestHTTPExecuteErrorStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(503)
	}))
	defer server.Close()

	e := NewHTTPExecutor()
	resp, err := e.Execute(context.Background(), instanceFor(t, server), &message.Request{Method: "GET", Path: "/"})
	require.NoError(t, err, "a 503 is a transport-level success")
	require.Equal(t, 503, resp.StatusCode)
}

func TestHTTPExecuteTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	instance := instanceFor(t, server)
	server.Close() // nothing listens anymore

	e := NewHTTPExecutor()
	_, err := e.Execute(context.Background(), instance, &message.Request{Method: "GET", Path: "/"})
	require.Error(t, err)
}

func TestHTTPExecuteCancellation(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewHTTPExecutor()
	_, err := e.Execute(ctx, instanceFor(t, server), &message.Request{Method: "GET", Path: "/"})
	require.ErrorIs(t, err, context.Canceled)
}
