package gamejolt

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) userTranslator(single bool) Translator {
	return newRecordTranslator("users", single, userRecord.toUser, c.log)
}

// FetchUser fetches one user by username. The payload is a Record[User].
func (c *Client) FetchUser(ctx context.Context, username string, done Completion) *Call {
	return c.issue(ctx, request{
		endpoint:   EndpointUsers,
		params:     []Param{{Key: "username", Value: username}},
		echo:       echo(username),
		translator: c.userTranslator(true),
		err:        requireValue("username", username),
	}, done)
}

// FetchUsers fetches several users by username in one request. The payload
// is a List[User] in the order the service returns them.
func (c *Client) FetchUsers(ctx context.Context, done Completion, usernames ...string) *Call {
	return c.fetchUserList(ctx, "username", usernames, done)
}

// FetchUserByID fetches one user by numeric id. The payload is a
// Record[User].
func (c *Client) FetchUserByID(ctx context.Context, id string, done Completion) *Call {
	return c.issue(ctx, request{
		endpoint:   EndpointUsers,
		params:     []Param{{Key: "user_id", Value: id}},
		echo:       echo(id),
		translator: c.userTranslator(true),
		err:        requireValue("user_id", id),
	}, done)
}

// FetchUsersByID fetches several users by id in one request.
func (c *Client) FetchUsersByID(ctx context.Context, done Completion, ids ...string) *Call {
	return c.fetchUserList(ctx, "user_id", ids, done)
}

func (c *Client) fetchUserList(ctx context.Context, key string, values []string, done Completion) *Call {
	joined, err := JoinIDs(values)
	return c.issue(ctx, request{
		endpoint:   EndpointUsers,
		params:     []Param{{Key: key, Value: joined}},
		echo:       echoVariadic(values),
		translator: c.userTranslator(false),
		err:        err,
	}, done)
}

// AuthenticateUser verifies a username and game token pair.
func (c *Client) AuthenticateUser(ctx context.Context, s Session, done Completion) *Call {
	return c.issue(ctx, c.sessionRequest(EndpointUsersAuth, s), done)
}

// sessionRequest is a call whose only parameters are the session identity.
func (c *Client) sessionRequest(ep Endpoint, s Session, extra ...Param) request {
	return request{
		endpoint:   ep,
		params:     append(s.params(), extra...),
		echo:       echo(s),
		translator: newEnvelopeTranslator(c.log),
		err:        s.validate(),
	}
}

func requireValue(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is empty", ErrContract, name)
	}
	return nil
}
