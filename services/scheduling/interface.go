package scheduling

import (
	"context"
	"time"

	appointmentRepo "telecare/database/repository/appointment"
	availabilityRepo "telecare/database/repository/availability"
	"telecare/models"
	"telecare/services/notification"
)

// SchedulingService is the calendar core consumed by the HTTP layer. Slot
// listing is read-only; ReserveSlot is the only entry point that creates
// appointment records.
type SchedulingService interface {
	GetAvailability(ctx context.Context, providerID string) (*models.WeeklyAvailability, error)
	SetAvailability(ctx context.Context, cfg models.WeeklyAvailability) error

	// AvailableSlots computes the bookable slots for a provider on a date
	// ("2006-01-02").
	AvailableSlots(ctx context.Context, providerID, date string) ([]models.CandidateSlot, error)

	// ReserveSlot re-validates the requested slot against the ledger and
	// atomically creates a pending appointment, or fails with a
	// slotUnavailable error.
	ReserveSlot(ctx context.Context, providerID, patientID string, start time.Time, reason string) (*models.Appointment, error)

	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	ConfirmAppointment(ctx context.Context, id string) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id string) (*models.Appointment, error)
	CompleteAppointment(ctx context.Context, id string) (*models.Appointment, error)

	ListForProvider(ctx context.Context, providerID string) ([]models.Appointment, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
}

// ReminderScheduler enqueues a reminder push to fire at a given time.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}

// DefaultSchedulingEngine implements SchedulingService.
type DefaultSchedulingEngine struct {
	Appointments appointmentRepo.AppointmentRepository
	Availability availabilityRepo.AvailabilityRepository

	// Optional collaborators; nil disables the side effect.
	Notifier  notification.NotificationService
	Reminders ReminderScheduler

	// Now overrides the clock in tests.
	Now func() time.Time
}

func (se *DefaultSchedulingEngine) now() time.Time {
	if se.Now != nil {
		return se.Now()
	}
	return time.Now()
}
