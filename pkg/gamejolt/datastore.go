package gamejolt

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// DataScope selects the game-wide store or one user's store.
type DataScope struct {
	// User is nil for the game store.
	User *Session `json:"user,omitempty"`
}

// GameScope addresses data shared by every player of the game.
func GameScope() DataScope {
	return DataScope{}
}

// UserScope addresses data private to the session's user.
func UserScope(s Session) DataScope {
	return DataScope{User: &s}
}

// IsUser reports whether the scope is a user store.
func (d DataScope) IsUser() bool {
	return d.User != nil
}

func (d DataScope) String() string {
	if d.User == nil {
		return "game"
	}
	return "user:" + d.User.Username
}

func (d DataScope) clone() DataScope {
	if d.User != nil {
		s := *d.User
		d.User = &s
	}
	return d
}

func (d DataScope) params() ([]Param, error) {
	if d.User == nil {
		return nil, nil
	}
	if err := d.User.validate(); err != nil {
		return nil, err
	}
	return d.User.params(), nil
}

// DataOperation is an in-place update applied by the service.
type DataOperation int

const (
	DataAdd DataOperation = iota
	DataSubtract
	DataMultiply
	DataDivide
	DataAppend
	DataPrepend
)

var dataOperationNames = [...]string{"add", "subtract", "multiply", "divide", "append", "prepend"}

func (o DataOperation) String() string {
	if o < 0 || int(o) >= len(dataOperationNames) {
		return fmt.Sprintf("DataOperation(%d)", int(o))
	}
	return dataOperationNames[o]
}

// MarshalText renders the operation by name.
func (o DataOperation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// ParseDataOperation reads an operation name case-insensitively.
func ParseDataOperation(raw string) (DataOperation, error) {
	for i, name := range dataOperationNames {
		if strings.EqualFold(raw, name) {
			return DataOperation(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown data operation %q", ErrContract, raw)
}

func (o DataOperation) valid() bool {
	return o >= 0 && int(o) < len(dataOperationNames)
}

// dataRequest prefixes params with the scope identity and the key.
func (c *Client) dataRequest(ep Endpoint, scope DataScope, key string, translator Translator, extra ...Param) request {
	scopeParams, err := scope.params()
	if err == nil {
		err = requireValue("key", key)
	}
	params := append(scopeParams, Param{Key: "key", Value: url.QueryEscape(key)})
	return request{
		endpoint:   ep,
		params:     append(params, extra...),
		translator: translator,
		err:        err,
	}
}

// FetchData reads a raw value. The payload is the value as Text, or the
// failure reason when the key does not exist.
func (c *Client) FetchData(ctx context.Context, scope DataScope, key string, done Completion) *Call {
	scope = scope.clone()
	req := c.dataRequest(EndpointDataFetch, scope, key, newDumpTranslator(c.log))
	req.echo = echo(scope, key)
	return c.issue(ctx, req, done)
}

// SetData stores value under key, replacing any previous value.
func (c *Client) SetData(ctx context.Context, scope DataScope, key, value string, done Completion) *Call {
	scope = scope.clone()
	req := c.dataRequest(EndpointDataSet, scope, key, newEnvelopeTranslator(c.log),
		Param{Key: "data", Value: url.QueryEscape(value)})
	req.echo = echo(scope, key, value)
	return c.issue(ctx, req, done)
}

// UpdateData applies op with value to the stored value. The payload is the
// new value as Text.
func (c *Client) UpdateData(ctx context.Context, scope DataScope, key string, op DataOperation, value string, done Completion) *Call {
	scope = scope.clone()
	req := c.dataRequest(EndpointDataUpdate, scope, key, newDumpTranslator(c.log),
		Param{Key: "operation", Value: op.String()},
		Param{Key: "value", Value: url.QueryEscape(value)})
	req.echo = echo(scope, key, op, value)
	if req.err == nil && !op.valid() {
		req.err = fmt.Errorf("%w: invalid data operation %d", ErrContract, int(op))
	}
	return c.issue(ctx, req, done)
}

// RemoveData deletes key.
func (c *Client) RemoveData(ctx context.Context, scope DataScope, key string, done Completion) *Call {
	scope = scope.clone()
	req := c.dataRequest(EndpointDataRemove, scope, key, newEnvelopeTranslator(c.log))
	req.echo = echo(scope, key)
	return c.issue(ctx, req, done)
}

// FetchDataKeys lists the keys in the scope. The payload is a List[string].
func (c *Client) FetchDataKeys(ctx context.Context, scope DataScope, done Completion) *Call {
	scope = scope.clone()
	params, err := scope.params()
	return c.issue(ctx, request{
		endpoint:   EndpointDataKeys,
		params:     params,
		echo:       echo(scope),
		translator: newRecordTranslator("keys", false, keyRecord.toKey, c.log),
		err:        err,
	}, done)
}
