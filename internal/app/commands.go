package app

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/Adda-Baaj/gamejolt-go/pkg/gamejolt"
)

type issueFunc func(ctx context.Context, r *Runner) (*gamejolt.Call, error)

type command struct {
	summary string
	// bind registers the command's flags and returns the function that
	// issues the call once they are parsed.
	bind func(fs *flag.FlagSet) issueFunc
}

var commands = map[string]command{
	"user":          {summary: "fetch a user by -name or -id", bind: bindUser},
	"users":         {summary: "fetch users by comma-separated -names or -ids", bind: bindUsers},
	"auth":          {summary: "verify a username and game token", bind: sessionCommand((*gamejolt.Client).AuthenticateUser)},
	"session-open":  {summary: "open a game session and remember it", bind: sessionCommand((*gamejolt.Client).OpenSession)},
	"session-ping":  {summary: "ping the session, optionally with -status active|idle", bind: bindSessionPing},
	"session-close": {summary: "close the game session and forget it", bind: sessionCommand((*gamejolt.Client).CloseSession)},
	"trophies":      {summary: "list trophies, -filter all|achieved|unachieved or -ids", bind: bindTrophies},
	"trophy":        {summary: "fetch one trophy by -id", bind: bindTrophy},
	"achieve":       {summary: "mark trophy -id as achieved", bind: bindAchieve},
	"scores":        {summary: "list scores, -table -limit -mine", bind: bindScores},
	"add-score":     {summary: "add -score with -sort, as the user or as -guest", bind: bindAddScore},
	"tables":        {summary: "list score tables", bind: bindTables},
	"data-get":      {summary: "read data-store -key", bind: bindDataGet},
	"data-set":      {summary: "store -value under -key", bind: bindDataSet},
	"data-update":   {summary: "apply -op with -value to -key", bind: bindDataUpdate},
	"data-remove":   {summary: "remove -key", bind: bindDataRemove},
	"data-keys":     {summary: "list data-store keys", bind: bindDataKeys},
}

// sessionFlags are the identity flags shared by user-scoped commands.
type sessionFlags struct {
	username *string
	token    *string
}

func addSessionFlags(fs *flag.FlagSet) sessionFlags {
	return sessionFlags{
		username: fs.String("username", "", "user name; defaults to the last stored session"),
		token:    fs.String("token", "", "game token; defaults to the stored token"),
	}
}

func (f sessionFlags) resolve(r *Runner) (gamejolt.Session, error) {
	return r.resolveSession(*f.username, *f.token)
}

func sessionCommand(op func(*gamejolt.Client, context.Context, gamejolt.Session, gamejolt.Completion) *gamejolt.Call) func(*flag.FlagSet) issueFunc {
	return func(fs *flag.FlagSet) issueFunc {
		sf := addSessionFlags(fs)
		return func(ctx context.Context, r *Runner) (*gamejolt.Call, error) {
			s, err := sf.resolve(r)
			if err != nil {
				return nil, err
			}
			return op(r.client, ctx, s, nil), nil
		}
	}
}

func bindUser(fs *flag.FlagSet) issueFunc {
	name := fs.String("name", "", "username")
	id := fs.String("id", "", "user id")
	return func(ctx context.Context, r *Runner) (*gamejolt.Call, error) {
		switch {
		case *name != "" && *id != "":
			return nil, fmt.Errorf("use either -name or -id")
		case *id != "":
			return r.client.FetchUserByID(ctx, *id, nil), nil
		case *name != "":
			return r.client.FetchUser(ctx, *name, nil), nil
		default:
			return nil, fmt.Errorf("-name or -id is required")
		}
	}
}

func bindUsers(fs *flag.FlagSet) issueFunc {
	names := fs.String("names", "", "comma-separated usernames")
	ids := fs.String("ids", "", "comma-separated user ids")
	return func(ctx context.Context, r *Runner) (*gamejolt.Call, error) {
		switch {
		case *names != "" && *ids != "":
			return nil, fmt.Errorf("use either -names or -ids")
		case *ids != "":
			return r.client.FetchUsersByID(ctx, nil, splitList(*ids)...), nil
		case *names != "":
			return r.client.FetchUsers(ctx, nil, splitList(*names)...), nil
		default:
			return nil, fmt.Errorf("-names or -ids is required")
		}
	}
}

func bindSessionPing(fs *flag.FlagSet) issueFunc {
	sf := addSessionFlags(fs)
	status := fs.String("status", "", "active or idle")
	return func(ctx context.Context, r *Runner) (*gamejolt.Call, error) {
		s, err := sf.resolve(r)
		if err != nil {
			return nil, err
		}
		if *status == "" {
			return r.client.PingSession(ctx, s, nil), nil
		}
		st, err := gamejolt.ParseSessionStatus(*status)
		if err != nil {
			return nil, err
		}
		return r.client.PingSessionStatus(ctx, s, st, nil), nil
	}
}

func bindTrophies(fs *flag.FlagSet) issueFunc {
	sf := addSessionFlags(fs)
	filter := fs.String("filter", "all", "all, achieved or unachieved")
	ids := fs.String("ids", "", "comma-separated trophy ids")
	return func(ctx context.Context, r *Runner) (*gamejolt.Call, error) {
		s, err := sf.resolve(r)
		if err != nil {
			return nil, err
		}
		if *ids != "" {
			return r.client.FetchTrophiesByID(ctx, s, nil, splitList(*ids)...), nil
		}
		f, err := gamejolt.ParseTrophyFilter(*filter)
		if err != nil {
			return nil, err
		}
		return r.client.FetchTrophies(ctx, s, f, nil), nil
	}
}

func bindTrophy(fs *flag.FlagSet) issueFunc {
	sf := addSessionFlags(fs)
	id := fs.String("id", "", "trophy id")
	return func(ctx context.Context, r *Runner) (*gamejolt.Call, error) {
		s, err := sf.resolve(r)
		if err != nil {
			return nil, err
		}
		return r.client.FetchTrophy(ctx, s, *id, nil), nil
	}
}

func bindAchieve(fs *flag.FlagSet) issueFunc {
	sf := addSessionFlags(fs)
	id := fs.String("id", "", "trophy id")
	return func(ctx context.Context, r *Runner) (*gamejolt.Call, error) {
		s, err := sf.resolve(r)
		if err != nil {
			return nil, err
		}
		return r.client.AchieveTrophy(ctx, s, *id, nil), nil
	}
}

func bindScores(fs *flag.FlagSet) issueFunc {
	sf := addSessionFlags(fs)
	table := fs.String("table", "", "score table id; default is the primary table")
	limit := fs.Int("limit", 0, "maximum number of scores")
	mine := fs.Bool("mine", false, "only the session user's scores")
	return func(ctx context.Context, r *Runner) (*gamejolt.Call, error) {
		q := gamejolt.ScoreQuery{TableID: *table, Limit: *limit}
		if *mine {
			s, err := sf.resolve(r)
			if err != nil {
				return nil, err
			}
			q.Session = &s
		}
		return r.client.FetchScores(ctx, q, nil), nil
	}
}

func bindAddScore(fs *flag.FlagSet) issueFunc {
	sf := addSessionFlags(fs)
	score := fs.String("score", "", "displayed score text")
	sortValue := fs.Int64("sort", 0, "numeric sort value")
	extra := fs.String("extra", "", "extra data stored with the score")
	table := fs.String("table", "", "score table id")
	guest := fs.String("guest", "", "submit as a guest with this name")
	return func(ctx context.Context, r *Runner) (*gamejolt.Call, error) {
		sub := gamejolt.ScoreSubmission{Score: *score, Sort: *sortValue, ExtraData: *extra, TableID: *table}
		if *guest != "" {
			return r.client.AddGuestScore(ctx, *guest, sub, nil), nil
		}
		s, err := sf.resolve(r)
		if err != nil {
			return nil, err
		}
		return r.client.AddScore(ctx, s, sub, nil), nil
	}
}

func bindTables(*flag.FlagSet) issueFunc {
	return func(ctx context.Context, r *Runner) (*gamejolt.Call, error) {
		return r.client.FetchScoreTables(ctx, nil), nil
	}
}

// dataFlags select the data-store scope.
type dataFlags struct {
	session sessionFlags
	user    *bool
}

func addDataFlags(fs *flag.FlagSet) dataFlags {
	return dataFlags{
		session: addSessionFlags(fs),
		user:    fs.Bool("user", false, "use the session user's store instead of the game store"),
	}
}

func (f dataFlags) scope(r *Runner) (gamejolt.DataScope, error) {
	if !*f.user {
		return gamejolt.GameScope(), nil
	}
	s, err := f.session.resolve(r)
	if err != nil {
		return gamejolt.DataScope{}, err
	}
	return gamejolt.UserScope(s), nil
}

func bindDataGet(fs *flag.FlagSet) issueFunc {
	df := addDataFlags(fs)
	key := fs.String("key", "", "data key")
	return func(ctx context.Context, r *Runner) (*gamejolt.Call, error) {
		scope, err := df.scope(r)
		if err != nil {
			return nil, err
		}
		return r.client.FetchData(ctx, scope, *key, nil), nil
	}
}

func bindDataSet(fs *flag.FlagSet) issueFunc {
	df := addDataFlags(fs)
	key := fs.String("key", "", "data key")
	value := fs.String("value", "", "value to store")
	return func(ctx context.Context, r *Runner) (*gamejolt.Call, error) {
		scope, err := df.scope(r)
		if err != nil {
			return nil, err
		}
		return r.client.SetData(ctx, scope, *key, *value, nil), nil
	}
}

func bindDataUpdate(fs *flag.FlagSet) issueFunc {
	df := addDataFlags(fs)
	key := fs.String("key", "", "data key")
	op := fs.String("op", "", "add, subtract, multiply, divide, append or prepend")
	value := fs.String("value", "", "operand")
	return func(ctx context.Context, r *Runner) (*gamejolt.Call, error) {
		scope, err := df.scope(r)
		if err != nil {
			return nil, err
		}
		operation, err := gamejolt.ParseDataOperation(*op)
		if err != nil {
			return nil, err
		}
		return r.client.UpdateData(ctx, scope, *key, operation, *value, nil), nil
	}
}

func bindDataRemove(fs *flag.FlagSet) issueFunc {
	df := addDataFlags(fs)
	key := fs.String("key", "", "data key")
	return func(ctx context.Context, r *Runner) (*gamejolt.Call, error) {
		scope, err := df.scope(r)
		if err != nil {
			return nil, err
		}
		return r.client.RemoveData(ctx, scope, *key, nil), nil
	}
}

func bindDataKeys(fs *flag.FlagSet) issueFunc {
	df := addDataFlags(fs)
	return func(ctx context.Context, r *Runner) (*gamejolt.Call, error) {
		scope, err := df.scope(r)
		if err != nil {
			return nil, err
		}
		return r.client.FetchDataKeys(ctx, scope, nil), nil
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
