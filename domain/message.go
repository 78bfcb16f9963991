// Package domain contains core concepts of the chat room.
// This file defines Message records and the visibility rules.
// Messages are immutable and validated by the domain.
package domain

// Broadcast is the recipient sentinel for room-wide messages.
const Broadcast = "Todos"

// TimeLayout is the wall-clock format carried by every message.
const TimeLayout = "15:04:05"

type MessageType string

const (
	TypeMessage MessageType = "message"
	TypePrivate MessageType = "private_message"
	TypeStatus  MessageType = "status"
)

// Message represents an immutable chat record. Time is server-assigned
// at creation; clients never supply it.
type Message struct {
	From string      `json:"from" validate:"required"`
	To   string      `json:"to" validate:"required,min=1"`
	Text string      `json:"text" validate:"required,min=1"`
	Type MessageType `json:"type" validate:"required,oneof=message private_message status"`
	Time string      `json:"time"`
}

// VisibleTo reports whether reader may see the message: own messages,
// messages addressed to the reader, broadcasts, and public-typed
// messages regardless of recipient.
func (m Message) VisibleTo(reader string) bool {
	return m.From == reader ||
		m.To == reader ||
		m.To == Broadcast ||
		m.Type == TypeMessage
}
