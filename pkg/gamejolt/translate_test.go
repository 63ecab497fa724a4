package gamejolt

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) record(level, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+":"+key)
}

func (l *recordingLogger) InfoObj(_, key string, _ interface{})  { l.record("info", key) }
func (l *recordingLogger) DebugObj(_, key string, _ interface{}) { l.record("debug", key) }
func (l *recordingLogger) WarnObj(_, key string, _ interface{})  { l.record("warn", key) }
func (l *recordingLogger) ErrorObj(_, key string, _ interface{}) { l.record("error", key) }

func (l *recordingLogger) has(entry string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e == entry {
			return true
		}
	}
	return false
}

func reached(body string) RawResult {
	return Reached(200, []byte(body))
}

func TestEnvelopeSuccessFollowsFirstCharacter(t *testing.T) {
	tr := newEnvelopeTranslator(nil)
	cases := map[string]bool{
		`{"response":{"success":"true"}}`:  true,
		`{"response":{"success":"t"}}`:     true,
		`{"response":{"success":true}}`:    true,
		`{"response":{"success":"false"}}`: false,
		`{"response":{"success":"yes"}}`:   false,
	}
	for body, want := range cases {
		res := tr.Translate(reached(body), nil)
		if !res.Reached || res.Succeeded != want || res.Err != nil {
			t.Fatalf("%s: got %+v, want succeeded=%v", body, res, want)
		}
		if want && res.Payload != nil {
			t.Fatalf("%s: expected no payload, got %#v", body, res.Payload)
		}
	}
}

func TestEnvelopeFailureCarriesMessage(t *testing.T) {
	res := newEnvelopeTranslator(nil).Translate(
		reached(`{"response":{"success":"false","message":"No such user could be found."}}`),
		[]any{"x"},
	)
	if res.Succeeded || !res.Reached {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Message() != "No such user could be found." {
		t.Fatalf("Message() = %q", res.Message())
	}
	if res.Outcome() != OutcomeFailed {
		t.Fatalf("Outcome() = %v", res.Outcome())
	}
	if !reflect.DeepEqual(res.Params, []any{"x"}) {
		t.Fatalf("params not echoed: %v", res.Params)
	}
}

func TestMalformedBodiesAreReportedNotPanicked(t *testing.T) {
	bodies := []string{
		"",
		"not json",
		`{"nope":{}}`,
		`{"response":{}}`,
		`{"response":{"success":""}}`,
		`{"response":{"success":null}}`,
		`{"response":"x"}`,
	}
	factories := map[string]func(Logger) Translator{
		"envelope": newEnvelopeTranslator,
		"records": func(log Logger) Translator {
			return newRecordTranslator("users", false, userRecord.toUser, log)
		},
	}
	for name, factory := range factories {
		for _, body := range bodies {
			log := &recordingLogger{}
			tr := factory(log)
			res := tr.Translate(reached(body), []any{"p"})
			if !res.Reached || res.Succeeded || res.Payload != nil {
				t.Fatalf("%s %q: unexpected result %+v", name, body, res)
			}
			if !errors.Is(res.Err, ErrMalformedResponse) || !res.Malformed() {
				t.Fatalf("%s %q: expected ErrMalformedResponse, got %v", name, body, res.Err)
			}
			if res.Outcome() != OutcomeMalformed {
				t.Fatalf("%s %q: Outcome() = %v", name, body, res.Outcome())
			}
			if !log.has("warn:translate_error") {
				t.Fatalf("%s %q: expected a warning to be logged", name, body)
			}
		}
	}
}

func TestUnreachableHasNoPayloadForEveryDialect(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	translators := []Translator{
		newEnvelopeTranslator(nil),
		newRecordTranslator("trophies", true, trophyRecord.toTrophy, nil),
		newRecordTranslator("scores", false, scoreRecord.toScoreEntry, nil),
		newDumpTranslator(nil),
	}
	for _, tr := range translators {
		res := tr.Translate(Unreachable(cause), []any{"a", 1})
		if res.Reached || res.Succeeded || res.Payload != nil {
			t.Fatalf("%T: unexpected result %+v", tr, res)
		}
		if !errors.Is(res.Err, ErrUnreachable) || !errors.Is(res.Err, cause) {
			t.Fatalf("%T: expected unreachable error wrapping cause, got %v", tr, res.Err)
		}
		if res.Outcome() != OutcomeUnreached {
			t.Fatalf("%T: Outcome() = %v", tr, res.Outcome())
		}
		if !reflect.DeepEqual(res.Params, []any{"a", 1}) {
			t.Fatalf("%T: params = %v", tr, res.Params)
		}
	}
}

func TestSingleTrophyRecord(t *testing.T) {
	body := `{"response":{"success":"true","trophies":[{"id":"12","title":"First","description":"Jump once","difficulty":"g","image_url":"http://img/t.png","achieved":"false"}]}}`
	res := newRecordTranslator("trophies", true, trophyRecord.toTrophy, nil).Translate(reached(body), nil)
	if !res.OK() {
		t.Fatalf("expected success, got %+v", res)
	}
	trophy, ok := AsRecord[Trophy](res.Payload)
	if !ok {
		t.Fatalf("payload is %T, want Record[Trophy]", res.Payload)
	}
	want := Trophy{
		ID:          "12",
		Title:       "First",
		Description: "Jump once",
		Difficulty:  TrophyGold,
		ImageURL:    "http://img/t.png",
	}
	if trophy != want {
		t.Fatalf("trophy = %+v, want %+v", trophy, want)
	}
}

func TestSingleRecordEmptyListIsContractViolation(t *testing.T) {
	body := `{"response":{"success":"true","users":[]}}`
	res := newRecordTranslator("users", true, userRecord.toUser, nil).Translate(reached(body), nil)
	if !res.Reached || res.Succeeded || res.Payload != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if !errors.Is(res.Err, ErrContract) || res.Outcome() != OutcomeRejected {
		t.Fatalf("expected ErrContract, got %v", res.Err)
	}
}

func TestRecordListDecodesEveryRecord(t *testing.T) {
	body := `{"response":{"success":"true","users":[
		{"id":"1","type":"Developer","username":"cros","status":"Active","developer_name":"Cros","developer_website":"http://c","developer_description":"d"},
		{"id":"2","type":"User","username":"guy","status":"Banned"}
	]}}`
	res := newRecordTranslator("users", false, userRecord.toUser, nil).Translate(reached(body), nil)
	users, ok := AsList[User](res.Payload)
	if !res.OK() || !ok || len(users) != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if users[0].Type != UserTypeDeveloper || !users[0].IsDeveloper || users[0].DisplayName() != "Cros" {
		t.Fatalf("developer not mapped: %+v", users[0])
	}
	if users[1].Status != UserStatusBanned || users[1].IsDeveloper || users[1].DisplayName() != "guy" {
		t.Fatalf("user not mapped: %+v", users[1])
	}
}

func TestRecordListAbsentFieldIsEmpty(t *testing.T) {
	res := newRecordTranslator("keys", false, keyRecord.toKey, nil).Translate(reached(`{"response":{"success":"true"}}`), nil)
	keys, ok := AsList[string](res.Payload)
	if !res.OK() || !ok || len(keys) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRecordFieldTypeMismatchIsLenient(t *testing.T) {
	log := &recordingLogger{}
	body := `{"response":{"success":"true","tables":[{"id":"1","name":"Main","description":7,"primary":"1"}]}}`
	res := newRecordTranslator("tables", false, tableRecord.toScoreTable, log).Translate(reached(body), nil)
	tables, ok := AsList[ScoreTable](res.Payload)
	if !res.OK() || !ok || len(tables) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	want := ScoreTable{ID: "1", Name: "Main", Primary: true}
	if tables[0] != want {
		t.Fatalf("table = %+v, want %+v", tables[0], want)
	}
	if !log.has("warn:translate_field") {
		t.Fatalf("expected field decode warning")
	}
}

func TestUndecodableRecordFieldIsMalformed(t *testing.T) {
	bodies := []string{
		`{"response":{"success":"true","trophies":"oops"}}`,
		`{"response":{"success":"true","trophies":{"id":"1"}}}`,
	}
	for _, body := range bodies {
		for _, single := range []bool{false, true} {
			log := &recordingLogger{}
			res := newRecordTranslator("trophies", single, trophyRecord.toTrophy, log).Translate(reached(body), []any{"x"})
			if !res.Reached || res.Succeeded || res.Payload != nil {
				t.Fatalf("%s single=%v: unexpected result %+v", body, single, res)
			}
			if !res.Malformed() || res.Outcome() != OutcomeMalformed || errors.Is(res.Err, ErrContract) {
				t.Fatalf("%s single=%v: outcome %s, err %v", body, single, res.Outcome(), res.Err)
			}
			if !reflect.DeepEqual(res.Params, []any{"x"}) {
				t.Fatalf("%s single=%v: Params = %#v", body, single, res.Params)
			}
			if !log.has("warn:translate_error") {
				t.Fatalf("%s single=%v: expected malformed warning", body, single)
			}
		}
	}
}

func TestRecordFailureCarriesMessage(t *testing.T) {
	body := `{"response":{"success":"false","message":"Invalid token."}}`
	res := newRecordTranslator("trophies", false, trophyRecord.toTrophy, nil).Translate(reached(body), nil)
	if !res.Reached || res.Succeeded || res.Message() != "Invalid token." {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestParseDump(t *testing.T) {
	cases := []struct {
		body    string
		ok      bool
		payload string
	}{
		{body: "S", ok: true, payload: ""},
		{body: "Ferror: bad key", ok: false, payload: "error: bad key"},
		{body: "SUCCESS\r\n42", ok: true, payload: "42"},
		{body: "FAILURE\nNo item with that key could be found.", ok: false, payload: "No item with that key could be found."},
		{body: "S\nline one\nline two", ok: true, payload: "line one\nline two"},
		{body: "S\n", ok: true, payload: ""},
		{body: "\ufeffS\nv", ok: true, payload: "v"},
	}
	for _, tc := range cases {
		ok, payload, err := parseDump([]byte(tc.body))
		if err != nil {
			t.Fatalf("parseDump(%q): %v", tc.body, err)
		}
		if ok != tc.ok || payload != tc.payload {
			t.Fatalf("parseDump(%q) = %v %q, want %v %q", tc.body, ok, payload, tc.ok, tc.payload)
		}
	}
}

func TestDumpTranslator(t *testing.T) {
	tr := newDumpTranslator(nil)

	res := tr.Translate(reached("S"), []any{"k"})
	if text, ok := AsText(res.Payload); !res.OK() || !ok || text != "" {
		t.Fatalf("\"S\": unexpected result %+v", res)
	}

	res = tr.Translate(reached("Ferror: bad key"), nil)
	if text, _ := AsText(res.Payload); !res.Reached || res.Succeeded || text != "error: bad key" {
		t.Fatalf("\"Ferror: bad key\": unexpected result %+v", res)
	}

	for _, body := range []string{"", "\n", "Xyz"} {
		log := &recordingLogger{}
		res = newDumpTranslator(log).Translate(reached(body), nil)
		if !res.Malformed() || res.Payload != nil || !res.Reached {
			t.Fatalf("%q: expected malformed, got %+v", body, res)
		}
		if !log.has("warn:translate_error") {
			t.Fatalf("%q: expected warning", body)
		}
	}
}
