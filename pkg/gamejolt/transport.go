package gamejolt

import (
	"context"
	"fmt"

	"github.com/Adda-Baaj/gamejolt-go/pkg/httpclient"
)

// RawResult is what the transport observed for one request: either no
// response at all, or a response with a status and body.
type RawResult struct {
	Reached bool
	Status  int
	Body    []byte
	Err     error
}

// Unreachable reports that no HTTP conversation took place.
func Unreachable(err error) RawResult {
	return RawResult{Err: err}
}

// Reached reports a response, whatever its status.
func Reached(status int, body []byte) RawResult {
	return RawResult{Reached: true, Status: status, Body: body}
}

// Transport performs a request without blocking the caller. The returned
// channel receives exactly one RawResult and is then closed.
type Transport interface {
	Send(ctx context.Context, url string) <-chan RawResult
}

// TransportFunc runs a blocking exchange function on its own goroutine.
type TransportFunc func(ctx context.Context, url string) RawResult

// Send implements Transport.
func (f TransportFunc) Send(ctx context.Context, url string) <-chan RawResult {
	out := make(chan RawResult, 1)
	go func() {
		defer close(out)
		out <- f(ctx, url)
	}()
	return out
}

// HTTPTransport sends requests through an httpclient.Client.
type HTTPTransport struct {
	client  httpclient.Client
	headers map[string]string
	log     Logger
}

// NewHTTPTransport wraps client. A nil client is not allowed.
func NewHTTPTransport(client httpclient.Client, log Logger) *HTTPTransport {
	return &HTTPTransport{
		client:  client,
		headers: map[string]string{"Accept": "application/json, text/plain"},
		log:     ensureLogger(log),
	}
}

// Send implements Transport.
func (t *HTTPTransport) Send(ctx context.Context, url string) <-chan RawResult {
	return TransportFunc(t.exchange).Send(ctx, url)
}

func (t *HTTPTransport) exchange(ctx context.Context, url string) (raw RawResult) {
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() {
		if r := recover(); r != nil {
			raw = Unreachable(fmt.Errorf("http client panic: %v", r))
		}
	}()

	resp, err := t.client.Get(ctx, url, t.headers)
	if err != nil {
		t.log.DebugObj("gamejolt request unreachable", "transport_error", map[string]any{
			"url":   redactSignature(url),
			"error": err.Error(),
		})
		return Unreachable(err)
	}
	return Reached(resp.StatusCode(), resp.Body())
}
