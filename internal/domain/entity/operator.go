package entity

import "github.com/google/uuid"

// Operator is the authenticated identity attached to a request. It is
// built from validated token claims, never from request payloads.
type Operator struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	CounterID int       `json:"counter_id"`
}
