package models

import "time"

// DayWindow is a provider's working window for one weekday.
// Start and End are minutes from midnight (e.g., 600 for 10:00 AM).
type DayWindow struct {
	Enabled bool `bson:"enabled" json:"enabled"`
	Start   int  `bson:"start" json:"start"`
	End     int  `bson:"end" json:"end"`
}

// WeeklyAvailability is a provider's recurring weekly schedule. One document
// per provider, overwritten in place from the settings screen.
type WeeklyAvailability struct {
	ProviderID          string               `bson:"provider_id" json:"providerId"`
	SlotDurationMinutes int                  `bson:"slot_duration_minutes" json:"slotDurationMinutes"`
	Days                map[string]DayWindow `bson:"days" json:"days"` // keyed by weekday name ("Sunday".."Saturday")
	UpdatedAt           time.Time            `bson:"updated_at" json:"updatedAt"`
}

// WindowFor returns the configured window for the given weekday.
func (w WeeklyAvailability) WindowFor(day time.Weekday) (DayWindow, bool) {
	win, ok := w.Days[day.String()]
	return win, ok
}
