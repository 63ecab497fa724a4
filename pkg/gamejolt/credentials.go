package gamejolt

import (
	"fmt"
	"strings"
)

// Credentials identify the game a request targets. GameID is the numeric id
// from the game's page; PrivateKey is the key listed on the game dashboard.
// The key never appears in a URL, it is only folded into the signature.
type Credentials struct {
	GameID     string
	PrivateKey string
}

// Validate reports whether both fields are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.GameID) == "" {
		return fmt.Errorf("%w: game id is empty", ErrInvalidCredentials)
	}
	if strings.TrimSpace(c.PrivateKey) == "" {
		return fmt.Errorf("%w: private key is empty", ErrInvalidCredentials)
	}
	return nil
}

// String hides the private key so credentials can be logged.
func (c Credentials) String() string {
	return fmt.Sprintf("game_id=%s private_key=<redacted>", c.GameID)
}

// Session is a user's identity for user-scoped calls. The pipeline never
// interprets it; both values travel as plain query parameters.
type Session struct {
	Username string `json:"username"`
	Token    string `json:"-"`
}

func (s Session) params() []Param {
	return []Param{
		{Key: "username", Value: s.Username},
		{Key: "user_token", Value: s.Token},
	}
}

func (s Session) validate() error {
	if err := requireValue("username", s.Username); err != nil {
		return err
	}
	return requireValue("user_token", s.Token)
}
