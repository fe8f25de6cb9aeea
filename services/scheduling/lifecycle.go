package scheduling

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "telecare/database/repository/appointment"
	"telecare/models"
	"telecare/utils"

	"go.uber.org/zap"
)

// reminderLead is how long before the start time the reminder push fires.
const reminderLead = 30 * time.Minute

// GetAppointment fetches a single appointment record.
func (se *DefaultSchedulingEngine) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := se.Appointments.GetByID(ctx, id)
	if err != nil {
		if err == appointmentRepo.ErrNotFound {
			return nil, NewNotFoundError(fmt.Sprintf("appointment %s not found", id))
		}
		return nil, err
	}
	return appt, nil
}

// ConfirmAppointment moves a pending appointment to confirmed, notifies the
// patient and schedules the reminder push.
func (se *DefaultSchedulingEngine) ConfirmAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := se.transition(ctx, id, models.StatusConfirmed)
	if err != nil {
		return nil, err
	}

	se.notify(ctx, appt.PatientID, "Appointment confirmed",
		fmt.Sprintf("Your appointment on %s was confirmed", appt.StartTime.Format(time.RFC1123)), appt)
	se.scheduleReminder(ctx, appt)

	return appt, nil
}

// CancelAppointment cancels a pending or confirmed appointment and notifies
// both parties. The record stays in the ledger; cancelling releases the slot.
func (se *DefaultSchedulingEngine) CancelAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := se.transition(ctx, id, models.StatusCancelled)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Appointment on %s was cancelled", appt.StartTime.Format(time.RFC1123))
	se.notify(ctx, appt.PatientID, "Appointment cancelled", body, appt)
	se.notify(ctx, appt.ProviderID, "Appointment cancelled", body, appt)

	return appt, nil
}

// CompleteAppointment marks a confirmed appointment as completed after the visit.
func (se *DefaultSchedulingEngine) CompleteAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	return se.transition(ctx, id, models.StatusCompleted)
}

// transition applies the status machine and performs a guarded update so a
// concurrent transition cannot be overwritten.
func (se *DefaultSchedulingEngine) transition(ctx context.Context, id string, to models.AppointmentStatus) (*models.Appointment, error) {
	appt, err := se.Appointments.GetByID(ctx, id)
	if err != nil {
		if err == appointmentRepo.ErrNotFound {
			return nil, NewNotFoundError(fmt.Sprintf("appointment %s not found", id))
		}
		return nil, err
	}

	if !appt.Status.CanTransition(to) {
		return nil, NewInvalidTransitionError(fmt.Sprintf("cannot move appointment from %s to %s", appt.Status, to))
	}

	now := se.now().UTC()
	if err := se.Appointments.UpdateStatus(ctx, id, appt.Status, to, now); err != nil {
		if err == appointmentRepo.ErrStaleStatus {
			return nil, NewInvalidTransitionError("appointment status changed concurrently")
		}
		return nil, err
	}

	appt.Status = to
	appt.UpdatedAt = now
	return appt, nil
}

// ListForProvider returns all appointments on a provider's calendar.
func (se *DefaultSchedulingEngine) ListForProvider(ctx context.Context, providerID string) ([]models.Appointment, error) {
	return se.Appointments.ListByProvider(ctx, providerID)
}

// ListForPatient returns all appointments booked by a patient.
func (se *DefaultSchedulingEngine) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return se.Appointments.ListByPatient(ctx, patientID)
}

func (se *DefaultSchedulingEngine) scheduleReminder(ctx context.Context, appt *models.Appointment) {
	if se.Reminders == nil {
		return
	}
	fireAt := appt.StartTime.Add(-reminderLead)
	if fireAt.Before(se.now()) {
		return
	}
	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		Target:        "patient",
		UserID:        appt.PatientID,
		Title:         "Upcoming appointment",
		Body:          fmt.Sprintf("Your appointment starts at %s", appt.StartTime.Format(time.Kitchen)),
		FireDate:      fireAt.Format(time.RFC3339),
	}
	if err := se.Reminders.ScheduleReminder(ctx, payload, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule reminder",
			zap.String("appointmentID", appt.ID),
			zap.Error(err))
	}
}
