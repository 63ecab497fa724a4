package gamejolt

import (
	"context"
	"fmt"
)

// SessionStatus is reported with a session ping.
type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionIdle   SessionStatus = "idle"
)

// ParseSessionStatus accepts the two statuses the service knows.
func ParseSessionStatus(raw string) (SessionStatus, error) {
	switch s := SessionStatus(raw); s {
	case SessionActive, SessionIdle:
		return s, nil
	default:
		return "", fmt.Errorf("%w: unknown session status %q", ErrContract, raw)
	}
}

// OpenSession opens a game session for the user.
func (c *Client) OpenSession(ctx context.Context, s Session, done Completion) *Call {
	return c.issue(ctx, c.sessionRequest(EndpointSessionOpen, s), done)
}

// PingSession keeps the user's session alive. Sessions close on the
// service after two minutes without a ping.
func (c *Client) PingSession(ctx context.Context, s Session, done Completion) *Call {
	return c.issue(ctx, c.sessionRequest(EndpointSessionPing, s), done)
}

// PingSessionStatus pings the session and sets its status.
func (c *Client) PingSessionStatus(ctx context.Context, s Session, status SessionStatus, done Completion) *Call {
	req := c.sessionRequest(EndpointSessionPing, s, Param{Key: "status", Value: string(status)})
	req.echo = echo(s, status)
	if req.err == nil {
		_, req.err = ParseSessionStatus(string(status))
	}
	return c.issue(ctx, req, done)
}

// CloseSession closes the user's session.
func (c *Client) CloseSession(ctx context.Context, s Session, done Completion) *Call {
	return c.issue(ctx, c.sessionRequest(EndpointSessionClose, s), done)
}
