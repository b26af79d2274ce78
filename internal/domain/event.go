package domain

import "time"

// EventType distinguishes a resisted urge from a relapse.
type EventType string

const (
	// EventCraving is an urge the user successfully resisted.
	EventCraving EventType = "craving"
	// EventSlip is a logged relapse — the user smoked despite trying to quit.
	EventSlip EventType = "slip"
)

// CravingEvent is an append-only log entry, one per logged user action.
// Events are never mutated after creation.
type CravingEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      EventType `json:"type"`
	Trigger   Trigger   `json:"trigger"`
	Intensity int       `json:"intensity"` // 1–5
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks structural validity of a new event.
func (e CravingEvent) Validate() error {
	switch e.Type {
	case EventCraving, EventSlip:
	default:
		return ErrInvalidEventType
	}
	if e.Intensity < 1 || e.Intensity > 5 {
		return ErrInvalidIntensity
	}
	return nil
}
