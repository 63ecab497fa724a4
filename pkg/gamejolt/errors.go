package gamejolt

import "errors"

var (
	// ErrContract marks a call that violated a caller contract, such as an
	// empty id list or a single-record fetch that matched nothing.
	ErrContract = errors.New("gamejolt: caller contract violation")

	// ErrMalformedResponse marks a response body that did not match the
	// endpoint's wire dialect.
	ErrMalformedResponse = errors.New("gamejolt: malformed response")

	// ErrUnreachable marks a call for which no HTTP response arrived.
	ErrUnreachable = errors.New("gamejolt: service unreachable")

	// ErrInvalidCredentials is returned by New when the game id or private
	// key is missing.
	ErrInvalidCredentials = errors.New("gamejolt: invalid credentials")
)
