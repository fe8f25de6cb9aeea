package appointmentRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"telecare/models"
)

// InMemoryAppointmentRepo is a mutex-guarded ledger used by tests and local
// runs without Mongo. The slot map mirrors the partial unique index: one entry
// per active (provider, start time) pair.
type InMemoryAppointmentRepo struct {
	mu    sync.Mutex
	byID  map[string]models.Appointment
	slots map[slotKey]string // active slot -> appointment ID
}

type slotKey struct {
	providerID string
	startUnix  int64
}

// NewInMemoryAppointmentRepo constructs an empty in-memory ledger.
func NewInMemoryAppointmentRepo() *InMemoryAppointmentRepo {
	return &InMemoryAppointmentRepo{
		byID:  make(map[string]models.Appointment),
		slots: make(map[slotKey]string),
	}
}

func keyFor(appt models.Appointment) slotKey {
	return slotKey{providerID: appt.ProviderID, startUnix: appt.StartTime.Unix()}
}

func (repo *InMemoryAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	appt, ok := repo.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &appt, nil
}

func (repo *InMemoryAppointmentRepo) ListActiveByProviderDay(ctx context.Context, providerID string, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	return repo.filter(func(a models.Appointment) bool {
		return a.ProviderID == providerID &&
			a.Status.IsActive() &&
			!a.StartTime.Before(dayStart) && a.StartTime.Before(dayEnd)
	}), nil
}

func (repo *InMemoryAppointmentRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Appointment, error) {
	return repo.filter(func(a models.Appointment) bool { return a.ProviderID == providerID }), nil
}

func (repo *InMemoryAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return repo.filter(func(a models.Appointment) bool { return a.PatientID == patientID }), nil
}

func (repo *InMemoryAppointmentRepo) filter(keep func(models.Appointment) bool) []models.Appointment {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var appts []models.Appointment
	for _, a := range repo.byID {
		if keep(a) {
			appts = append(appts, a)
		}
	}
	sort.Slice(appts, func(i, j int) bool { return appts[i].StartTime.Before(appts[j].StartTime) })
	return appts
}

func (repo *InMemoryAppointmentRepo) CreateIfSlotFree(ctx context.Context, appt *models.Appointment) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	key := keyFor(*appt)
	if _, held := repo.slots[key]; held {
		return ErrSlotTaken
	}
	repo.slots[key] = appt.ID
	repo.byID[appt.ID] = *appt
	return nil
}

func (repo *InMemoryAppointmentRepo) UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus, at time.Time) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	appt, ok := repo.byID[id]
	if !ok {
		return ErrNotFound
	}
	if appt.Status != from {
		return ErrStaleStatus
	}
	appt.Status = to
	appt.UpdatedAt = at
	repo.byID[id] = appt

	// Terminal statuses release the slot.
	if !to.IsActive() {
		delete(repo.slots, keyFor(appt))
	}
	return nil
}

func (repo *InMemoryAppointmentRepo) ListElapsedConfirmed(ctx context.Context, cutoff time.Time) ([]models.Appointment, error) {
	return repo.filter(func(a models.Appointment) bool {
		return a.Status == models.StatusConfirmed && a.StartTime.Before(cutoff)
	}), nil
}
