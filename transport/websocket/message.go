package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

const (
	actionConnect  = "connect"
	actionSettings = "game:settings"
	actionCard     = "game:card"
	actionStart    = "game:start"
	actionCall     = "game:call"
	actionMark     = "game:mark"
	actionAuto     = "game:auto"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload carries the arguments of every action. Fields an action does
// not use are ignored.
type RequestPayload struct {
	Session string `json:"session,omitempty"`

	MinNumber *int `json:"min_number,omitempty"`
	MaxNumber *int `json:"max_number,omitempty"`

	Row *int `json:"row,omitempty"`
	Col *int `json:"col,omitempty"`

	Enabled *bool `json:"enabled,omitempty"`
}

type ResponsePayload struct {
	Session string             `json:"session,omitempty"`
	Game    *entity.GameView   `json:"game,omitempty"`
	Result  *entity.MoveResult `json:"result,omitempty"`
	Auto    *bool              `json:"auto,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func encodeMessage(action string, payload ResponsePayload) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{Action: action, Payload: body})
}
