package gamejolt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/gamejolt-go/pkg/httpclient"
)

const defaultTimeout = 15 * time.Second

// Client issues signed calls for one game. It holds no per-call state and
// is safe for concurrent use.
type Client struct {
	creds      Credentials
	root       string
	transport  Transport
	dispatcher Dispatcher
	log        Logger
}

type options struct {
	root       string
	transport  Transport
	httpClient httpclient.Client
	timeout    time.Duration
	dispatcher Dispatcher
	log        Logger
}

// Option configures a Client.
type Option func(*options)

// WithAPIRoot overrides DefaultAPIRoot.
func WithAPIRoot(root string) Option {
	return func(o *options) { o.root = strings.TrimSpace(root) }
}

// WithTransport replaces the HTTP transport entirely.
func WithTransport(t Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithHTTPClient keeps the HTTP transport but sends through client.
func WithHTTPClient(client httpclient.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithTimeout bounds each request when the default HTTP client is used.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithDispatcher selects where completions run. The default runs them on
// the goroutine that finished the request.
func WithDispatcher(d Dispatcher) Option {
	return func(o *options) { o.dispatcher = d }
}

// WithLogger sets the diagnostics sink.
func WithLogger(log Logger) Option {
	return func(o *options) { o.log = log }
}

// New creates a client for the game identified by creds.
func New(creds Credentials, opts ...Option) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	o := options{root: DefaultAPIRoot, timeout: defaultTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.root == "" {
		o.root = DefaultAPIRoot
	}
	if !strings.HasPrefix(o.root, "http://") && !strings.HasPrefix(o.root, "https://") {
		return nil, fmt.Errorf("api root %q must be an http(s) URL", o.root)
	}

	log := ensureLogger(o.log)
	transport := o.transport
	if transport == nil {
		client := o.httpClient
		if client == nil {
			client = httpclient.NewRestyClient(o.timeout)
		}
		transport = NewHTTPTransport(client, log)
	}
	dispatcher := o.dispatcher
	if dispatcher == nil {
		dispatcher = InlineDispatcher{}
	}

	return &Client{
		creds:      creds,
		root:       o.root,
		transport:  transport,
		dispatcher: dispatcher,
		log:        log,
	}, nil
}

// GameID returns the game the client targets.
func (c *Client) GameID() string {
	return c.creds.GameID
}

// request is one call as assembled by an endpoint wrapper.
type request struct {
	endpoint   Endpoint
	params     []Param
	echo       []any
	translator Translator
	err        error
}

// issue builds, signs and sends req and returns immediately. The result is
// delivered through the dispatcher exactly once, even when building fails.
func (c *Client) issue(ctx context.Context, req request, done Completion) *Call {
	if ctx == nil {
		ctx = context.Background()
	}
	call := newCall(req.endpoint)

	url, err := c.build(req)
	if err != nil {
		c.log.WarnObj("gamejolt call rejected", "call_rejected", map[string]any{
			"endpoint": req.endpoint.Name,
			"error":    err.Error(),
		})
		go c.dispatcher.Dispatch(call, unreachedResult(req.echo, err), done)
		return call
	}

	pending := c.transport.Send(ctx, url)
	go func() {
		raw, ok := <-pending
		if !ok {
			raw = Unreachable(fmt.Errorf("transport closed without a result"))
		}
		c.dispatcher.Dispatch(call, c.translate(req, raw), done)
	}()
	return call
}

func (c *Client) build(req request) (string, error) {
	if req.err != nil {
		return "", req.err
	}
	if req.translator == nil {
		return "", fmt.Errorf("%w: %s has no translator", ErrContract, req.endpoint.Name)
	}
	return BuildURL(c.root, req.endpoint, c.creds, req.params...)
}

// translate never lets a translator fault escape; a panic becomes the
// malformed outcome.
func (c *Client) translate(req request, raw RawResult) (res CallResult) {
	defer func() {
		if r := recover(); r != nil {
			c.log.ErrorObj("gamejolt translator panic", "translate_panic", map[string]any{
				"endpoint": req.endpoint.Name,
				"panic":    fmt.Sprint(r),
				"body":     responseSnippet(raw.Body),
			})
			res = malformedResult(req.echo, fmt.Errorf("translator panic: %v", r))
		}
	}()
	res = req.translator.Translate(raw, req.echo)
	c.log.DebugObj("gamejolt call completed", "call_result", map[string]any{
		"endpoint": req.endpoint.Name,
		"outcome":  res.Outcome().String(),
		"status":   raw.Status,
	})
	return res
}

// echo captures call arguments in order.
func echo(args ...any) []any {
	if args == nil {
		return []any{}
	}
	return args
}

// echoVariadic captures the leading arguments followed by each variadic
// value as its own element.
func echoVariadic(values []string, lead ...any) []any {
	out := make([]any, 0, len(lead)+len(values))
	out = append(out, lead...)
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
