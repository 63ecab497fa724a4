package gamejolt

import (
	"errors"
	"strings"
	"testing"
)

var testCreds = Credentials{GameID: "1234", PrivateKey: "secret"}

func TestBuildURLOrdersFragmentsAndSignsLast(t *testing.T) {
	got, err := BuildURL("http://api.test/v1/", EndpointUsers, testCreds,
		Param{Key: "username", Value: "cros"},
		Param{Key: "user_token", Value: "tok"},
	)
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}

	unsigned := "http://api.test/v1/users/?format=json&username=cros&user_token=tok&game_id=1234"
	want := unsigned + "&signature=" + Sign(unsigned, "secret")
	if got != want {
		t.Fatalf("BuildURL =\n%s\nwant\n%s", got, want)
	}
	if strings.Contains(got, "secret") {
		t.Fatalf("private key leaked into url: %s", got)
	}
}

func TestBuildURLUsesDumpFormat(t *testing.T) {
	got, err := BuildURL("http://api.test/v1", EndpointDataFetch, testCreds, Param{Key: "key", Value: "k"})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	if !strings.HasPrefix(got, "http://api.test/v1/data-store/?format=dump&key=k&game_id=1234&signature=") {
		t.Fatalf("unexpected url %s", got)
	}
}

func TestBuildURLRejectsBadInput(t *testing.T) {
	if _, err := BuildURL("", EndpointUsers, Credentials{GameID: "1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := BuildURL("", EndpointUsers, testCreds, Param{Key: " ", Value: "x"}); !errors.Is(err, ErrContract) {
		t.Fatalf("expected ErrContract for empty key, got %v", err)
	}
}

func TestBuildURLDefaultsRoot(t *testing.T) {
	got, err := BuildURL("", EndpointScoreTables, testCreds)
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	if !strings.HasPrefix(got, DefaultAPIRoot+"scores/tables/?format=json&game_id=1234&signature=") {
		t.Fatalf("unexpected url %s", got)
	}
}

func TestJoinIDs(t *testing.T) {
	cases := []struct {
		ids  []string
		want string
	}{
		{ids: []string{"1"}, want: "1"},
		{ids: []string{"1", "2"}, want: "1,2"},
		{ids: []string{" 7 ", "8"}, want: "7,8"},
	}
	for _, tc := range cases {
		got, err := JoinIDs(tc.ids)
		if err != nil {
			t.Fatalf("JoinIDs(%v): %v", tc.ids, err)
		}
		if got != tc.want {
			t.Fatalf("JoinIDs(%v) = %q, want %q", tc.ids, got, tc.want)
		}
	}
}

func TestJoinIDsFailsFast(t *testing.T) {
	for _, ids := range [][]string{nil, {}, {"1", ""}, {"a,b"}} {
		if _, err := JoinIDs(ids); !errors.Is(err, ErrContract) {
			t.Fatalf("JoinIDs(%q): expected ErrContract, got %v", ids, err)
		}
	}
}
