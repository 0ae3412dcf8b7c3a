package chat

import "encoding/json"

// Event names of the live session protocol.
const (
	EventInitSession         = "initChatSession"
	EventInitSessionResponse = "initChatSessionResponse"
	EventMessage             = "message"
	EventMessageResponse     = "messageResponse"
)

// Envelope is one frame on the session socket.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewEnvelope encodes data under the given event name.
func NewEnvelope(event string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: event, Data: raw}, nil
}

// InitResponse is the backend acknowledgment of initChatSession.
// Error is whatever the backend reports; any non-empty value means failure.
type InitResponse struct {
	Error     any       `json:"error,omitempty"`
	SessionID string    `json:"sessionId"`
	Chat      []Message `json:"chat"`
}

// Failed reports whether the acknowledgment carries an error.
func (r InitResponse) Failed() bool {
	switch v := r.Error.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	default:
		return true
	}
}

// OutgoingMessage is a user message forwarded with the raw credential token.
type OutgoingMessage struct {
	Message
	UserToken string `json:"userToken"`
}
