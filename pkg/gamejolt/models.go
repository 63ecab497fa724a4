package gamejolt

import "fmt"

// UserType is the account level of a Game Jolt user.
type UserType int

const (
	UserTypeUser UserType = iota
	UserTypeDeveloper
	UserTypeModerator
	UserTypeAdministrator
)

func (t UserType) String() string {
	switch t {
	case UserTypeDeveloper:
		return "Developer"
	case UserTypeModerator:
		return "Moderator"
	case UserTypeAdministrator:
		return "Administrator"
	default:
		return "User"
	}
}

// MarshalText renders the type by name.
func (t UserType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// ParseUserType maps the remote type by its first letter: A, M and D select
// Administrator, Moderator and Developer. Anything else is a plain User.
func ParseUserType(raw string) UserType {
	switch firstChar(raw) {
	case 'A', 'a':
		return UserTypeAdministrator
	case 'M', 'm':
		return UserTypeModerator
	case 'D', 'd':
		return UserTypeDeveloper
	default:
		return UserTypeUser
	}
}

// UserStatus is a user's standing on the site.
type UserStatus int

const (
	UserStatusActive UserStatus = iota
	UserStatusBanned
)

func (s UserStatus) String() string {
	if s == UserStatusBanned {
		return "Banned"
	}
	return "Active"
}

// MarshalText renders the status by name.
func (s UserStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ParseUserStatus maps a status starting with B to Banned, all else to Active.
func ParseUserStatus(raw string) UserStatus {
	if lower(firstChar(raw)) == 'b' {
		return UserStatusBanned
	}
	return UserStatusActive
}

// TrophyDifficulty is how hard a trophy is to obtain.
type TrophyDifficulty int

const (
	TrophyBronze TrophyDifficulty = iota
	TrophySilver
	TrophyGold
	TrophyPlatinum
)

func (d TrophyDifficulty) String() string {
	switch d {
	case TrophySilver:
		return "Silver"
	case TrophyGold:
		return "Gold"
	case TrophyPlatinum:
		return "Platinum"
	default:
		return "Bronze"
	}
}

// MarshalText renders the difficulty by name.
func (d TrophyDifficulty) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// ParseTrophyDifficulty maps by first letter, case-insensitively: s, g and p
// select Silver, Gold and Platinum. Unknown values are Bronze.
func ParseTrophyDifficulty(raw string) TrophyDifficulty {
	switch lower(firstChar(raw)) {
	case 's':
		return TrophySilver
	case 'g':
		return TrophyGold
	case 'p':
		return TrophyPlatinum
	default:
		return TrophyBronze
	}
}

// parseFlag reads the remote "true"/"false" strings by first character.
func parseFlag(raw string) bool {
	c := lower(firstChar(raw))
	return c == 't' || c == '1'
}

// User is a snapshot of a Game Jolt account.
type User struct {
	ID                   string     `json:"id"`
	Type                 UserType   `json:"type"`
	Username             string     `json:"username"`
	AvatarURL            string     `json:"avatar_url"`
	SignedUp             string     `json:"signed_up"`
	LastLoggedIn         string     `json:"last_logged_in"`
	Status               UserStatus `json:"status"`
	IsDeveloper          bool       `json:"is_developer"`
	DeveloperName        string     `json:"developer_name,omitempty"`
	DeveloperWebsite     string     `json:"developer_website,omitempty"`
	DeveloperDescription string     `json:"developer_description,omitempty"`
}

// DisplayName is the developer name for developers and the username otherwise.
func (u User) DisplayName() string {
	if u.IsDeveloper && u.DeveloperName != "" {
		return u.DeveloperName
	}
	return u.Username
}

// ProfileURL links to the user's profile page.
func (u User) ProfileURL() string {
	return fmt.Sprintf("http://gamejolt.com/profile/%s/%s/", u.Username, u.ID)
}

// Clone returns an independent copy.
func (u User) Clone() User { return u }

// Trophy is a snapshot of one of the game's trophies.
type Trophy struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Difficulty  TrophyDifficulty `json:"difficulty"`
	ImageURL    string           `json:"image_url"`
	Achieved    bool             `json:"achieved"`
	// AchievedWhen is the remote's relative time ("5 days ago") when achieved.
	AchievedWhen string `json:"achieved_when,omitempty"`
}

// Clone returns an independent copy.
func (t Trophy) Clone() Trophy { return t }

// ScoreEntry is one row of a high score table.
type ScoreEntry struct {
	Score     string `json:"score"`
	Sort      string `json:"sort"`
	ExtraData string `json:"extra_data,omitempty"`
	Stored    string `json:"stored"`
	// Name is the user's display name, or the submitted name for guests.
	Name    string `json:"name"`
	UserID  string `json:"user_id,omitempty"`
	IsGuest bool   `json:"is_guest"`
}

// Clone returns an independent copy.
func (s ScoreEntry) Clone() ScoreEntry { return s }

// ScoreTable describes a high score table, not its scores.
type ScoreTable struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Primary     bool   `json:"primary"`
}

// Clone returns an independent copy.
func (t ScoreTable) Clone() ScoreTable { return t }
