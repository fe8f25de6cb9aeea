package models

import "time"

// CandidateSlot is a bookable start time offered to a patient. Derived data:
// recomputed on every read, never persisted.
type CandidateSlot struct {
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"durationMinutes"`
}
