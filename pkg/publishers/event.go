package publishers

import (
	"time"

	"github.com/Adda-Baaj/gamejolt-go/pkg/gamejolt"
	"github.com/google/uuid"
)

// Event describes one finished game API call.
type Event struct {
	ID          string           `json:"id"`
	GameID      string           `json:"game_id"`
	Command     string           `json:"command"`
	Endpoint    string           `json:"endpoint"`
	Outcome     string           `json:"outcome"`
	Reached     bool             `json:"reached"`
	Succeeded   bool             `json:"succeeded"`
	Params      []any            `json:"params"`
	Payload     gamejolt.Payload `json:"payload,omitempty"`
	Message     string           `json:"message,omitempty"`
	Error       string           `json:"error,omitempty"`
	CompletedAt time.Time        `json:"completed_at"`
}

// NewEvent constructs an Event for a finished call.
func NewEvent(gameID, command string, ep gamejolt.Endpoint, res gamejolt.CallResult) Event {
	evt := Event{
		ID:          uuid.NewString(),
		GameID:      gameID,
		Command:     command,
		Endpoint:    ep.Name,
		Outcome:     res.Outcome().String(),
		Reached:     res.Reached,
		Succeeded:   res.Succeeded,
		Params:      res.Params,
		Payload:     res.Payload,
		Message:     res.Message(),
		CompletedAt: time.Now().UTC(),
	}
	if res.Err != nil {
		evt.Error = res.Err.Error()
	}
	return evt
}

// attributes are the routing attributes attached to queue messages.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"event_id": e.ID,
		"game_id":  e.GameID,
		"endpoint": e.Endpoint,
		"outcome":  e.Outcome,
	}
}
