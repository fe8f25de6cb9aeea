package scheduling

import (
	"fmt"
	"time"

	"telecare/models"
)

// ValidateAvailability checks the configuration invariants before a weekly
// availability document may be written: positive slot duration, and start
// strictly before end on every enabled day. Violations never reach the slot
// generator.
func ValidateAvailability(cfg models.WeeklyAvailability) error {
	if cfg.SlotDurationMinutes <= 0 {
		return NewInvalidConfigurationError("slot duration must be positive")
	}
	const minutesPerDay = 24 * 60
	for name, win := range cfg.Days {
		if !win.Enabled {
			continue
		}
		if win.Start < 0 || win.End > minutesPerDay {
			return NewInvalidConfigurationError(fmt.Sprintf("%s: window outside the day", name))
		}
		if win.Start >= win.End {
			return NewInvalidConfigurationError(fmt.Sprintf("%s: start must be before end", name))
		}
	}
	return nil
}

// GenerateSlots computes the bookable start times for one provider and date.
// It is pure: config, existing bookings and the clock all come in as
// arguments, and no input combination makes it fail.
//
// Slots step from the day window's start in slot-duration increments over the
// half-open window [start, end). A slot is skipped when it has already
// elapsed relative to now, or when an active (pending or confirmed) booking
// holds its exact start time. The last slot of a window is offered even if it
// runs past the window end. Output is strictly ascending.
func GenerateSlots(cfg models.WeeklyAvailability, bookings []models.Appointment, targetDate, now time.Time) []models.CandidateSlot {
	if cfg.SlotDurationMinutes <= 0 {
		return nil
	}

	win, ok := cfg.WindowFor(targetDate.Weekday())
	if !ok || !win.Enabled {
		return nil
	}

	midnight := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, targetDate.Location())
	if midnight.Before(today) {
		return nil
	}

	booked := make(map[int64]struct{}, len(bookings))
	for _, b := range bookings {
		if b.Status.IsActive() {
			booked[b.StartTime.Unix()] = struct{}{}
		}
	}

	step := time.Duration(cfg.SlotDurationMinutes) * time.Minute
	end := midnight.Add(time.Duration(win.End) * time.Minute)

	var slots []models.CandidateSlot
	for cursor := midnight.Add(time.Duration(win.Start) * time.Minute); cursor.Before(end); cursor = cursor.Add(step) {
		if cursor.Before(now) {
			continue
		}
		if _, taken := booked[cursor.Unix()]; taken {
			continue
		}
		slots = append(slots, models.CandidateSlot{
			Start:           cursor,
			DurationMinutes: cfg.SlotDurationMinutes,
		})
	}
	return slots
}
