package gamejolt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Translator turns what the transport observed into a CallResult. The
// dialect is fixed per endpoint; translators never guess it from the body.
type Translator interface {
	Translate(raw RawResult, params []any) CallResult
}

// envelopeView is a decoded envelope whose payload fields are still raw.
type envelopeView struct {
	success bool
	fields  map[string]json.RawMessage
}

func parseEnvelope(data []byte) (envelopeView, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return envelopeView{}, fmt.Errorf("%w: decode envelope: %v", ErrMalformedResponse, err)
	}
	if env.Response == nil {
		return envelopeView{}, fmt.Errorf("%w: envelope has no response object", ErrMalformedResponse)
	}
	flag, ok := scalarText(env.Response["success"])
	if !ok || flag == "" {
		return envelopeView{}, fmt.Errorf("%w: envelope has no success flag", ErrMalformedResponse)
	}
	return envelopeView{
		success: firstChar(flag) == 't',
		fields:  env.Response,
	}, nil
}

// failure builds the reached-but-rejected result carrying the remote message.
func (v envelopeView) failure(params []any, log Logger) CallResult {
	res := CallResult{Reached: true, Params: params}
	raw, present := v.fields["message"]
	if !present {
		return res
	}
	msg, ok := scalarText(raw)
	if !ok {
		log.WarnObj("gamejolt message field undecodable", "translate_field", map[string]any{
			"field": "message",
			"value": responseSnippet(raw),
		})
		return res
	}
	res.Payload = Text(msg)
	return res
}

// envelopeTranslator handles endpoints that only report success or failure.
type envelopeTranslator struct {
	log Logger
}

func newEnvelopeTranslator(log Logger) Translator {
	return envelopeTranslator{log: ensureLogger(log)}
}

func (t envelopeTranslator) Translate(raw RawResult, params []any) CallResult {
	if !raw.Reached {
		return unreachedResult(params, raw.Err)
	}
	view, err := parseEnvelope(raw.Body)
	if err != nil {
		logMalformed(t.log, DialectEnvelope, raw, err)
		return malformedResult(params, err)
	}
	if !view.success {
		return view.failure(params, t.log)
	}
	return CallResult{Reached: true, Succeeded: true, Params: params}
}

// recordTranslator decodes the list held in field and converts every
// record. In single mode only the first record is returned.
type recordTranslator[R any, T any] struct {
	field   string
	single  bool
	convert func(R) T
	log     Logger
}

func newRecordTranslator[R any, T any](field string, single bool, convert func(R) T, log Logger) Translator {
	return recordTranslator[R, T]{
		field:   field,
		single:  single,
		convert: convert,
		log:     ensureLogger(log),
	}
}

func (t recordTranslator[R, T]) Translate(raw RawResult, params []any) CallResult {
	if !raw.Reached {
		return unreachedResult(params, raw.Err)
	}
	view, err := parseEnvelope(raw.Body)
	if err != nil {
		logMalformed(t.log, DialectRecords, raw, err)
		return malformedResult(params, err)
	}
	if !view.success {
		return view.failure(params, t.log)
	}

	items, err := t.decode(view.fields[t.field])
	if err != nil && len(items) == 0 {
		logMalformed(t.log, DialectRecords, raw, err)
		return malformedResult(params, err)
	}
	if !t.single {
		return CallResult{Reached: true, Succeeded: true, Payload: List[T](items), Params: params}
	}
	if len(items) == 0 {
		return CallResult{
			Reached: true,
			Params:  params,
			Err:     fmt.Errorf("%w: %s list is empty on a successful single-record fetch", ErrContract, t.field),
		}
	}
	return CallResult{Reached: true, Succeeded: true, Payload: Record[T]{Value: items[0]}, Params: params}
}

// decode converts raw into values. A field that fails to decode is logged
// and whatever part decoded cleanly is kept along with the error; an absent
// field yields an empty list.
func (t recordTranslator[R, T]) decode(raw json.RawMessage) ([]T, error) {
	out := make([]T, 0)
	if text := strings.TrimSpace(string(raw)); text == "" || text == "null" {
		return out, nil
	}

	var records []R
	err := json.Unmarshal(raw, &records)
	if err != nil {
		attrs := map[string]any{
			"field": t.field,
			"error": err.Error(),
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			attrs["path"] = typeErr.Field
		}
		t.log.WarnObj("gamejolt record field decode failed", "translate_field", attrs)
	}

	for _, r := range records {
		out = append(out, t.convert(r))
	}
	if err != nil {
		return out, fmt.Errorf("%w: %s field: %v", ErrMalformedResponse, t.field, err)
	}
	return out, nil
}

// dumpTranslator handles the line-based S/F format.
type dumpTranslator struct {
	log Logger
}

func newDumpTranslator(log Logger) Translator {
	return dumpTranslator{log: ensureLogger(log)}
}

func (t dumpTranslator) Translate(raw RawResult, params []any) CallResult {
	if !raw.Reached {
		return unreachedResult(params, raw.Err)
	}
	ok, payload, err := parseDump(raw.Body)
	if err != nil {
		logMalformed(t.log, DialectDump, raw, err)
		return malformedResult(params, err)
	}
	return CallResult{Reached: true, Succeeded: ok, Payload: Text(payload), Params: params}
}

// parseDump reads the status from the first character of the first line.
// The status may be spelled out (SUCCESS, FAILURE). The payload is the rest
// of the first line followed by any further lines; it may be empty.
func parseDump(body []byte) (bool, string, error) {
	s := strings.TrimPrefix(string(body), "\ufeff")
	first, rest, hasRest := strings.Cut(s, "\n")
	first = strings.TrimSuffix(first, "\r")
	if first == "" {
		return false, "", fmt.Errorf("%w: dump body has no status line", ErrMalformedResponse)
	}

	var ok bool
	var word string
	switch first[0] {
	case 'S':
		ok, word = true, "SUCCESS"
	case 'F':
		ok, word = false, "FAILURE"
	default:
		return false, "", fmt.Errorf("%w: dump status %q is neither S nor F", ErrMalformedResponse, first[:1])
	}

	head := first[1:]
	if strings.EqualFold(first, word) {
		head = ""
	}
	switch {
	case !hasRest:
		return ok, head, nil
	case head == "":
		return ok, rest, nil
	default:
		return ok, head + "\n" + rest, nil
	}
}

func logMalformed(log Logger, dialect Dialect, raw RawResult, err error) {
	log.WarnObj("gamejolt response malformed", "translate_error", map[string]any{
		"dialect": dialect.String(),
		"status":  raw.Status,
		"error":   err.Error(),
		"body":    responseSnippet(raw.Body),
	})
}
