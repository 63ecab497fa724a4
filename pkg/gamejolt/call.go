package gamejolt

import (
	"context"
	"sync"
)

// Completion receives the result of a call. A nil Completion is allowed;
// the result is then only observable through the returned Call.
type Completion func(CallResult)

// Call is the pending result of one operation. It resolves exactly once.
type Call struct {
	endpoint Endpoint
	done     chan struct{}
	once     sync.Once
	result   CallResult
}

func newCall(ep Endpoint) *Call {
	return &Call{endpoint: ep, done: make(chan struct{})}
}

// Endpoint returns the operation the call targets.
func (c *Call) Endpoint() Endpoint {
	return c.endpoint
}

// Done is closed once the result is available and the completion, if any,
// has returned.
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// Result returns the result if the call has resolved.
func (c *Call) Result() (CallResult, bool) {
	select {
	case <-c.done:
		return c.result, true
	default:
		return CallResult{}, false
	}
}

// Wait blocks until the call resolves or ctx is done. Abandoning the wait
// does not cancel the request.
func (c *Call) Wait(ctx context.Context) (CallResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-c.done:
		return c.result, nil
	case <-ctx.Done():
		return CallResult{}, ctx.Err()
	}
}

// deliver stores result, runs done, then resolves the call. Later
// invocations are ignored.
func (c *Call) deliver(result CallResult, done Completion) {
	c.once.Do(func() {
		c.result = result
		defer close(c.done)
		if done != nil {
			done(result)
		}
	})
}
