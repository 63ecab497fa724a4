package gamejolt

import "errors"

// Payload is the data carried by a CallResult. It is one of Text,
// Record[T] or List[T]; a nil Payload means absent.
type Payload interface {
	payload()
}

// Text is a plain string payload: a dump value or a failure message.
type Text string

func (Text) payload() {}

// Record is a single decoded value object.
type Record[T any] struct {
	Value T `json:"value"`
}

func (Record[T]) payload() {}

// List is a list of decoded value objects.
type List[T any] []T

func (List[T]) payload() {}

// AsText returns the string held by p.
func AsText(p Payload) (string, bool) {
	t, ok := p.(Text)
	return string(t), ok
}

// AsRecord returns the value held by p when p is a Record[T].
func AsRecord[T any](p Payload) (T, bool) {
	r, ok := p.(Record[T])
	return r.Value, ok
}

// AsList returns the values held by p when p is a List[T].
func AsList[T any](p Payload) ([]T, bool) {
	l, ok := p.(List[T])
	return []T(l), ok
}

// Outcome classifies a CallResult.
type Outcome int

const (
	OutcomeUnreached Outcome = iota
	OutcomeFailed
	OutcomeSucceeded
	OutcomeMalformed
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnreached:
		return "unreached"
	case OutcomeFailed:
		return "failed"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// CallResult is the uniform outcome of every operation.
//
// Succeeded is only meaningful when Reached is true, and Payload is always
// nil when Reached is false. Err is nil for plain failures and successes; it
// carries the cause for unreachable, malformed and rejected calls.
type CallResult struct {
	Reached   bool
	Succeeded bool
	Payload   Payload
	Params    []any
	Err       error
}

// OK reports whether the service was reached and reported success.
func (r CallResult) OK() bool {
	return r.Reached && r.Succeeded
}

// Malformed reports whether the response body could not be translated.
func (r CallResult) Malformed() bool {
	return errors.Is(r.Err, ErrMalformedResponse)
}

// Outcome classifies the result.
func (r CallResult) Outcome() Outcome {
	switch {
	case errors.Is(r.Err, ErrContract):
		return OutcomeRejected
	case !r.Reached:
		return OutcomeUnreached
	case r.Malformed():
		return OutcomeMalformed
	case r.Succeeded:
		return OutcomeSucceeded
	default:
		return OutcomeFailed
	}
}

// Message returns the failure message carried as a Text payload, if any.
func (r CallResult) Message() string {
	if r.Succeeded {
		return ""
	}
	msg, _ := AsText(r.Payload)
	return msg
}

func unreachedResult(params []any, err error) CallResult {
	if err == nil {
		err = ErrUnreachable
	} else if !errors.Is(err, ErrUnreachable) && !errors.Is(err, ErrContract) {
		err = errors.Join(ErrUnreachable, err)
	}
	return CallResult{Params: params, Err: err}
}

func malformedResult(params []any, err error) CallResult {
	if !errors.Is(err, ErrMalformedResponse) {
		err = errors.Join(ErrMalformedResponse, err)
	}
	return CallResult{Reached: true, Params: params, Err: err}
}
