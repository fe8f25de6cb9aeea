package scheduling

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "telecare/database/repository/appointment"
	availabilityRepo "telecare/database/repository/availability"
	"telecare/models"
	"telecare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// AvailableSlots computes the bookable slots for a provider on a date.
// The read is side-effect-free; slots are derived fresh from the availability
// config and the current active bookings.
func (se *DefaultSchedulingEngine) AvailableSlots(ctx context.Context, providerID, date string) ([]models.CandidateSlot, error) {
	cfg, err := se.Availability.Get(ctx, providerID)
	if err != nil {
		if err == availabilityRepo.ErrNotFound {
			return nil, NewNotFoundError(fmt.Sprintf("provider %s has no availability configured", providerID))
		}
		return nil, fmt.Errorf("loading availability: %w", err)
	}

	targetDate, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	bookings, err := se.activeBookingsForDay(ctx, providerID, targetDate)
	if err != nil {
		return nil, err
	}

	return GenerateSlots(*cfg, bookings, targetDate, se.now()), nil
}

// ReserveSlot is the booking reconciler. Candidate slots may have been
// computed from a stale read, so the slot is re-derived here and the
// existence check plus insert run as one atomic unit in the ledger. Among
// concurrent attempts for the same (provider, start) pair exactly one wins.
func (se *DefaultSchedulingEngine) ReserveSlot(ctx context.Context, providerID, patientID string, start time.Time, reason string) (*models.Appointment, error) {
	cfg, err := se.Availability.Get(ctx, providerID)
	if err != nil {
		if err == availabilityRepo.ErrNotFound {
			return nil, NewNotFoundError(fmt.Sprintf("provider %s has no availability configured", providerID))
		}
		return nil, fmt.Errorf("loading availability: %w", err)
	}

	targetDate := start.In(time.Local)
	bookings, err := se.activeBookingsForDay(ctx, providerID, targetDate)
	if err != nil {
		return nil, err
	}

	if !slotOffered(GenerateSlots(*cfg, bookings, targetDate, se.now()), start) {
		return nil, NewSlotUnavailableError("requested slot is not currently offered")
	}

	now := se.now().UTC()
	appt := &models.Appointment{
		ID:              uuid.New().String(),
		ProviderID:      providerID,
		PatientID:       patientID,
		StartTime:       start.UTC(),
		DurationMinutes: cfg.SlotDurationMinutes,
		Reason:          reason,
		Status:          models.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := se.Appointments.CreateIfSlotFree(ctx, appt); err != nil {
		if err == appointmentRepo.ErrSlotTaken {
			return nil, NewSlotUnavailableError("slot was booked by someone else")
		}
		return nil, fmt.Errorf("reservation failed: %w", err)
	}

	se.notify(ctx, appt.ProviderID, "New appointment request",
		fmt.Sprintf("Requested for %s", appt.StartTime.Format(time.RFC1123)), appt)

	return appt, nil
}

func (se *DefaultSchedulingEngine) activeBookingsForDay(ctx context.Context, providerID string, targetDate time.Time) ([]models.Appointment, error) {
	dayStart := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	bookings, err := se.Appointments.ListActiveByProviderDay(ctx, providerID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("loading bookings: %w", err)
	}
	return bookings, nil
}

func slotOffered(slots []models.CandidateSlot, start time.Time) bool {
	for _, s := range slots {
		if s.Start.Equal(start) {
			return true
		}
	}
	return false
}

// notify sends a best-effort push; delivery failures are logged, never
// propagated into the booking path.
func (se *DefaultSchedulingEngine) notify(ctx context.Context, userID, title, body string, appt *models.Appointment) {
	if se.Notifier == nil {
		return
	}
	data := map[string]string{"appointmentId": appt.ID}
	if err := se.Notifier.SendPush(ctx, userID, title, body, data); err != nil {
		utils.GetLogger().Warn("push notification failed",
			zap.String("userID", userID),
			zap.String("appointmentID", appt.ID),
			zap.Error(err))
	}
}
