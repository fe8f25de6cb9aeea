package models

import "time"

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ActiveStatuses are the statuses that hold a slot. Two appointments for one
// provider may never share a start time while both are active.
func ActiveStatuses() []AppointmentStatus {
	return []AppointmentStatus{StatusPending, StatusConfirmed}
}

// IsActive reports whether the status holds a slot.
func (s AppointmentStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransition reports whether moving from s to next is a legal lifecycle
// transition: pending -> confirmed|cancelled, confirmed -> completed|cancelled.
// Completed and cancelled are terminal.
func (s AppointmentStatus) CanTransition(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// Appointment is one booked consultation. Records are never hard-deleted;
// cancelled and completed appointments remain as the audit trail.
type Appointment struct {
	ID              string            `bson:"id" json:"id"`
	ProviderID      string            `bson:"provider_id" json:"providerId"`
	PatientID       string            `bson:"patient_id" json:"patientId"`
	StartTime       time.Time         `bson:"start_time" json:"startTime"`
	DurationMinutes int               `bson:"duration_minutes" json:"durationMinutes"`
	Reason          string            `bson:"reason,omitempty" json:"reason,omitempty"`
	Status          AppointmentStatus `bson:"status" json:"status"`
	CreatedAt       time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time         `bson:"updated_at" json:"updatedAt"`
}
