// Package domain contains core concepts of the chat room.
// This file defines Participant entities and their invariants.
// No runtime, network, or UI logic should be added here.
package domain

// Participant is a presence record. Name is the sole identity and must
// be unique across the directory (case-sensitive). LastStatus holds the
// last-known liveness in epoch milliseconds, always server-assigned.
type Participant struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	LastStatus int64  `json:"lastStatus"`
}
