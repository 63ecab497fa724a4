package gamejolt

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ScoreQuery selects scores. A zero query returns the primary table's
// scores with the service's default limit.
type ScoreQuery struct {
	// TableID selects a table; empty means the primary table.
	TableID string `json:"table_id,omitempty"`
	// Limit caps the number of rows; zero leaves it to the service.
	Limit int `json:"limit,omitempty"`
	// Session restricts the listing to the user's own scores when set.
	Session *Session `json:"session,omitempty"`
}

func (q ScoreQuery) clone() ScoreQuery {
	if q.Session != nil {
		s := *q.Session
		q.Session = &s
	}
	return q
}

func (q ScoreQuery) params() ([]Param, error) {
	var params []Param
	if q.Session != nil {
		if err := q.Session.validate(); err != nil {
			return nil, err
		}
		params = append(params, q.Session.params()...)
	}
	if q.TableID != "" {
		params = append(params, Param{Key: "table_id", Value: q.TableID})
	}
	if q.Limit < 0 {
		return nil, fmt.Errorf("%w: negative score limit %d", ErrContract, q.Limit)
	}
	if q.Limit > 0 {
		params = append(params, Param{Key: "limit", Value: strconv.Itoa(q.Limit)})
	}
	return params, nil
}

// ScoreSubmission is a score to add to a table.
type ScoreSubmission struct {
	// Score is the displayed text, such as "234 Jumps".
	Score string `json:"score"`
	// Sort is the value the table orders by.
	Sort int64 `json:"sort"`
	// ExtraData is stored with the score and only visible to the developer.
	ExtraData string `json:"extra_data,omitempty"`
	// TableID selects a table; empty means the primary table.
	TableID string `json:"table_id,omitempty"`
}

func (s ScoreSubmission) params() ([]Param, error) {
	if err := requireValue("score", s.Score); err != nil {
		return nil, err
	}
	params := []Param{
		{Key: "score", Value: url.QueryEscape(s.Score)},
		{Key: "sort", Value: strconv.FormatInt(s.Sort, 10)},
	}
	if s.ExtraData != "" {
		params = append(params, Param{Key: "extra_data", Value: url.QueryEscape(s.ExtraData)})
	}
	if s.TableID != "" {
		params = append(params, Param{Key: "table_id", Value: s.TableID})
	}
	return params, nil
}

// FetchScores lists scores. The payload is a List[ScoreEntry].
func (c *Client) FetchScores(ctx context.Context, q ScoreQuery, done Completion) *Call {
	q = q.clone()
	params, err := q.params()
	return c.issue(ctx, request{
		endpoint:   EndpointScores,
		params:     params,
		echo:       echo(q),
		translator: newRecordTranslator("scores", false, scoreRecord.toScoreEntry, c.log),
		err:        err,
	}, done)
}

// AddScore records a score for the user.
func (c *Client) AddScore(ctx context.Context, s Session, sub ScoreSubmission, done Completion) *Call {
	params, err := sub.params()
	req := c.sessionRequest(EndpointScoreAdd, s, params...)
	req.echo = echo(s, sub)
	if req.err == nil {
		req.err = err
	}
	return c.issue(ctx, req, done)
}

// AddGuestScore records a score under a guest name.
func (c *Client) AddGuestScore(ctx context.Context, guest string, sub ScoreSubmission, done Completion) *Call {
	params, err := sub.params()
	if err == nil {
		err = requireValue("guest", guest)
	}
	return c.issue(ctx, request{
		endpoint:   EndpointScoreAdd,
		params:     append([]Param{{Key: "guest", Value: url.QueryEscape(guest)}}, params...),
		echo:       echo(guest, sub),
		translator: newEnvelopeTranslator(c.log),
		err:        err,
	}, done)
}

// FetchScoreTables lists the game's score tables. The payload is a
// List[ScoreTable].
func (c *Client) FetchScoreTables(ctx context.Context, done Completion) *Call {
	return c.issue(ctx, request{
		endpoint:   EndpointScoreTables,
		echo:       echo(),
		translator: newRecordTranslator("tables", false, tableRecord.toScoreTable, c.log),
	}, done)
}
