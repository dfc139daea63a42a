package models

import (
	"encoding/json"
	"time"
)

// InboundFrame is the only shape a client may send over the chat socket:
// a single "message" field with the text body. Anything else is treated
// as malformed and dropped.
type InboundFrame struct {
	Message string `json:"message"`
}

// MessageData is the per-message payload pushed to chat sockets, both in
// the history replay and in live broadcasts. Timestamp is ISO-8601.
type MessageData struct {
	ID         uint   `json:"id"`
	Sender     uint   `json:"sender"`
	SenderName string `json:"sender_name"`
	Receiver   uint   `json:"receiver"`
	Body       string `json:"body"`
	Timestamp  string `json:"timestamp"`
}

// Frame is an outbound socket frame. Exactly one of the two shapes is
// populated:
//
//	history replay:  {"type": "message_history", "messages": [...]}
//	live broadcast:  {"message": {...}}
type Frame struct {
	Type     string        `json:"type,omitempty"`
	Messages []MessageData `json:"messages,omitempty"`
	Message  *MessageData  `json:"message,omitempty"`
}

// MarshalJSON emits the two frame shapes exactly: a broadcast is only the
// message object, and a history replay always carries the messages array,
// even when empty.
func (f Frame) MarshalJSON() ([]byte, error) {
	if f.Message != nil {
		return json.Marshal(struct {
			Message *MessageData `json:"message"`
		}{f.Message})
	}
	messages := f.Messages
	if messages == nil {
		messages = []MessageData{}
	}
	return json.Marshal(struct {
		Type     string        `json:"type"`
		Messages []MessageData `json:"messages"`
	}{f.Type, messages})
}

// NewHistoryFrame builds the replay frame sent to a freshly admitted
// connection. The messages slice must already be in ascending
// chronological order.
func NewHistoryFrame(messages []MessageData) Frame {
	if messages == nil {
		messages = []MessageData{}
	}
	return Frame{Type: "message_history", Messages: messages}
}

// NewBroadcastFrame wraps a single persisted message for fan-out.
func NewBroadcastFrame(data MessageData) Frame {
	return Frame{Message: &data}
}

// NewMessageData serializes a persisted message for the wire. The sender
// display name is resolved by the caller, which already holds the job's
// participants.
func NewMessageData(m *Message, senderName string) MessageData {
	return MessageData{
		ID:         m.ID,
		Sender:     m.SenderID,
		SenderName: senderName,
		Receiver:   m.ReceiverID,
		Body:       m.Body,
		Timestamp:  m.CreatedAt.Format(time.RFC3339),
	}
}
