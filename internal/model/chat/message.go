package chat

import "time"

// Role identifies the author of a transcript entry.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// IgnoreName marks entries that are neither rendered nor considered for send eligibility.
const IgnoreName = "Ignore"

// UserName is the display label of messages authored on this client.
const UserName = "User"

// Part is a text block of a message.
type Part struct {
	Text string `json:"text"`
}

// Message 是会话记录中的一条消息，后端为权威来源。
type Message struct {
	ID    *string   `json:"id"`
	Date  time.Time `json:"date"`
	Name  string    `json:"name"`
	Role  Role      `json:"role"`
	Parts []Part    `json:"parts"`
}

// Text returns the first text block, or "" when the message has none.
func (m Message) Text() string {
	if len(m.Parts) == 0 {
		return ""
	}
	return m.Parts[0].Text
}

// Ignored reports whether the message carries the ignore sentinel.
func (m Message) Ignored() bool {
	return m.Name == IgnoreName
}

// LastReal returns the most recent message not tagged with the ignore sentinel.
func LastReal(transcript []Message) (Message, bool) {
	for i := len(transcript) - 1; i >= 0; i-- {
		if !transcript[i].Ignored() {
			return transcript[i], true
		}
	}
	return Message{}, false
}

// CanSend 最后一条非 Ignore 消息由用户发出时禁止继续发送。
func CanSend(transcript []Message) bool {
	last, ok := LastReal(transcript)
	if !ok {
		return true
	}
	return last.Role != RoleUser
}
