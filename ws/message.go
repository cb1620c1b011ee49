package ws

import "encoding/json"

// InboundEnvelope is the generic envelope for all display-to-server messages.
// The Type field is used for routing; Raw holds the full JSON payload.
type InboundEnvelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture the raw payload.
func (e *InboundEnvelope) UnmarshalJSON(data []byte) error {
	type typeOnly struct {
		Type string `json:"type"`
	}
	var t typeOnly
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	e.Type = t.Type
	e.Raw = json.RawMessage(data)
	return nil
}

// --- Display-to-server message payloads ---

// AuthMsg must be the first message when the server is configured with an auth provider.
type AuthMsg struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// StartMatchMsg starts a new match from a vocabulary list. An empty ListID uses the first list.
type StartMatchMsg struct {
	Type            string `json:"type"`
	ListID          string `json:"listId"`
	DurationSeconds int    `json:"durationSeconds"`
}

// SelectCardMsg picks a card on one player's board.
type SelectCardMsg struct {
	Type   string `json:"type"`
	Player int    `json:"player"`
	CardID string `json:"cardId"`
}

// CastSkillMsg casts a skill from one player at the other.
type CastSkillMsg struct {
	Type   string `json:"type"`
	Player int    `json:"player"`
	Skill  string `json:"skill"`
}

// --- Server-to-display messages ---

// ErrorMsg is sent when a display message cannot be processed.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// AuthOKMsg confirms a successful auth message.
type AuthOKMsg struct {
	Type string `json:"type"`
	Name string `json:"name"`
}
