package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/rps-backend/internal/entity"
)

const (
	actionConnect     = "connect"
	actionRoundStart  = "round:start"
	actionRoundMove   = "round:move"
	actionRoundResult = "round:result"
	actionSessionMode = "session:mode"
	actionSessionNew  = "session:new"
)

// Message is one frame of the protocol: an action name plus its payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries every field the actions exchange; unused fields are omitted.
type Payload struct {
	Player  *entity.Player  `json:"player,omitempty"`
	Session *entity.Session `json:"session,omitempty"`
	Move    string          `json:"move,omitempty"`
	Mode    string          `json:"mode,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func decodePayload(msg *Message) (*Payload, error) {
	payload := &Payload{}

	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		return nil, err
	}

	return payload, nil
}
