package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"telecare/models"
)

var (
	// ErrNotFound is returned when no appointment matches the given ID.
	ErrNotFound = errors.New("appointment not found")
	// ErrSlotTaken is returned by CreateIfSlotFree when an active appointment
	// already holds the same (provider, start time) pair.
	ErrSlotTaken = errors.New("slot already taken")
	// ErrStaleStatus is returned by UpdateStatus when the record is no longer
	// in the expected source status.
	ErrStaleStatus = errors.New("appointment status changed concurrently")
)

// AppointmentRepository is the booking ledger. All writes of appointment
// records go through it; CreateIfSlotFree is the only way a record comes into
// existence.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)

	// ListActiveByProviderDay returns the pending and confirmed appointments
	// for a provider with start times in [dayStart, dayEnd).
	ListActiveByProviderDay(ctx context.Context, providerID string, dayStart, dayEnd time.Time) ([]models.Appointment, error)

	ListByProvider(ctx context.Context, providerID string) ([]models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)

	// CreateIfSlotFree atomically checks that no active appointment exists for
	// (appt.ProviderID, appt.StartTime) and inserts the record. Returns
	// ErrSlotTaken if the slot is held; on error no partial state remains.
	CreateIfSlotFree(ctx context.Context, appt *models.Appointment) error

	// UpdateStatus moves an appointment from one status to another, stamping
	// updated_at with the caller's transition time. The update is guarded on
	// the source status so concurrent transitions cannot skip a lifecycle
	// state; returns ErrStaleStatus when the guard fails.
	UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus, at time.Time) error

	// ListElapsedConfirmed returns confirmed appointments whose start time is
	// before the cutoff; the sweep worker completes them.
	ListElapsedConfirmed(ctx context.Context, cutoff time.Time) ([]models.Appointment, error)
}
