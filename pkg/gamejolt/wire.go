package gamejolt

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Wire records mirror the remote JSON. Every field is a string on the wire.

type userRecord struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Username     string  `json:"username"`
	AvatarURL    string  `json:"avatar_url"`
	SignedUp     string  `json:"signed_up"`
	LastLoggedIn string  `json:"last_logged_in"`
	Status       string  `json:"status"`
	DevName      *string `json:"developer_name"`
	DevWebsite   *string `json:"developer_website"`
	DevDesc      *string `json:"developer_description"`
	// Older API revisions misspell the description key.
	DevDescLegacy *string `json:"deverloper_description"`
}

func (r userRecord) toUser() User {
	u := User{
		ID:           r.ID,
		Type:         ParseUserType(r.Type),
		Username:     r.Username,
		AvatarURL:    r.AvatarURL,
		SignedUp:     r.SignedUp,
		LastLoggedIn: r.LastLoggedIn,
		Status:       ParseUserStatus(r.Status),
	}
	desc := r.DevDesc
	if desc == nil {
		desc = r.DevDescLegacy
	}
	u.DeveloperName = deref(r.DevName)
	u.DeveloperWebsite = deref(r.DevWebsite)
	u.DeveloperDescription = deref(desc)
	u.IsDeveloper = u.Type == UserTypeDeveloper || (r.DevName != nil && r.DevWebsite != nil && desc != nil)
	return u
}

type trophyRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	ImageURL    string `json:"image_url"`
	Achieved    string `json:"achieved"`
}

func (r trophyRecord) toTrophy() Trophy {
	t := Trophy{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Difficulty:  ParseTrophyDifficulty(r.Difficulty),
		ImageURL:    r.ImageURL,
	}
	// The remote sends "false" or a relative date such as "5 days ago".
	if c := lower(firstChar(r.Achieved)); c != 0 && c != 'f' {
		t.Achieved = true
		if c != 't' {
			t.AchievedWhen = r.Achieved
		}
	}
	return t
}

type scoreRecord struct {
	Score     string `json:"score"`
	Sort      string `json:"sort"`
	ExtraData string `json:"extra_data"`
	User      string `json:"user"`
	UserID    string `json:"user_id"`
	Guest     string `json:"guest"`
	Stored    string `json:"stored"`
}

func (r scoreRecord) toScoreEntry() ScoreEntry {
	s := ScoreEntry{
		Score:     r.Score,
		Sort:      r.Sort,
		ExtraData: r.ExtraData,
		Stored:    r.Stored,
		UserID:    r.UserID,
		IsGuest:   r.Guest != "",
	}
	if s.IsGuest {
		s.Name = r.Guest
	} else {
		s.Name = r.User
	}
	return s
}

type tableRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Primary     string `json:"primary"`
}

func (r tableRecord) toScoreTable() ScoreTable {
	return ScoreTable{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Primary:     parseFlag(r.Primary),
	}
}

type keyRecord struct {
	Key string `json:"key"`
}

func (r keyRecord) toKey() string { return r.Key }

// envelope is the outer {"response": {...}} document. Fields stay raw until
// the translator knows which ones the endpoint carries.
type envelope struct {
	Response map[string]json.RawMessage `json:"response"`
}

// scalarText decodes a JSON scalar into its text form. Strings are
// unquoted, literals (true, 1) are returned as written, and null, objects
// and arrays report ok=false.
func scalarText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case '{', '[', 'n':
		return "", false
	default:
		return strings.TrimSpace(string(raw)), true
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
