package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP GETs so the API transport can be driven by a stub in
// tests. An error means no response arrived at all; any HTTP status,
// including 4xx and 5xx, is returned as a Response.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
