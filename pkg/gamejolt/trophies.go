package gamejolt

import (
	"context"
	"fmt"
)

// TrophyFilter narrows a trophy listing by the user's progress.
type TrophyFilter int

const (
	TrophiesAll TrophyFilter = iota
	TrophiesAchieved
	TrophiesUnachieved
)

func (f TrophyFilter) String() string {
	switch f {
	case TrophiesAchieved:
		return "achieved"
	case TrophiesUnachieved:
		return "unachieved"
	default:
		return "all"
	}
}

// MarshalText renders the filter by name.
func (f TrophyFilter) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// ParseTrophyFilter reads all, achieved or unachieved. Empty means all.
func ParseTrophyFilter(raw string) (TrophyFilter, error) {
	switch raw {
	case "", "all":
		return TrophiesAll, nil
	case "achieved":
		return TrophiesAchieved, nil
	case "unachieved":
		return TrophiesUnachieved, nil
	default:
		return TrophiesAll, fmt.Errorf("%w: unknown trophy filter %q", ErrContract, raw)
	}
}

func (f TrophyFilter) params() []Param {
	switch f {
	case TrophiesAchieved:
		return []Param{{Key: "achieved", Value: "true"}}
	case TrophiesUnachieved:
		return []Param{{Key: "achieved", Value: "false"}}
	default:
		return nil
	}
}

func (c *Client) trophyTranslator(single bool) Translator {
	return newRecordTranslator("trophies", single, trophyRecord.toTrophy, c.log)
}

// FetchTrophies lists the game's trophies with the user's progress. The
// payload is a List[Trophy].
func (c *Client) FetchTrophies(ctx context.Context, s Session, filter TrophyFilter, done Completion) *Call {
	req := c.sessionRequest(EndpointTrophies, s, filter.params()...)
	req.echo = echo(s, filter)
	req.translator = c.trophyTranslator(false)
	return c.issue(ctx, req, done)
}

// FetchTrophy fetches one trophy. The payload is a Record[Trophy].
func (c *Client) FetchTrophy(ctx context.Context, s Session, id string, done Completion) *Call {
	req := c.sessionRequest(EndpointTrophies, s, Param{Key: "trophy_id", Value: id})
	req.echo = echo(s, id)
	req.translator = c.trophyTranslator(true)
	if req.err == nil {
		req.err = requireValue("trophy_id", id)
	}
	return c.issue(ctx, req, done)
}

// FetchTrophiesByID fetches the listed trophies in one request.
func (c *Client) FetchTrophiesByID(ctx context.Context, s Session, done Completion, ids ...string) *Call {
	joined, err := JoinIDs(ids)
	req := c.sessionRequest(EndpointTrophies, s, Param{Key: "trophy_id", Value: joined})
	req.echo = echoVariadic(ids, s)
	req.translator = c.trophyTranslator(false)
	if req.err == nil {
		req.err = err
	}
	return c.issue(ctx, req, done)
}

// AchieveTrophy marks a trophy as achieved by the user.
func (c *Client) AchieveTrophy(ctx context.Context, s Session, id string, done Completion) *Call {
	req := c.sessionRequest(EndpointTrophyAchieved, s, Param{Key: "trophy_id", Value: id})
	req.echo = echo(s, id)
	if req.err == nil {
		req.err = requireValue("trophy_id", id)
	}
	return c.issue(ctx, req, done)
}
