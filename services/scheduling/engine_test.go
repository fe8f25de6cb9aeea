package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	appointmentRepo "telecare/database/repository/appointment"
	availabilityRepo "telecare/database/repository/availability"
	"telecare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAvailabilityRepo is an in-memory availability store.
type fakeAvailabilityRepo struct {
	mu   sync.Mutex
	docs map[string]models.WeeklyAvailability
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{docs: make(map[string]models.WeeklyAvailability)}
}

func (f *fakeAvailabilityRepo) Get(ctx context.Context, providerID string) (*models.WeeklyAvailability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[providerID]
	if !ok {
		return nil, availabilityRepo.ErrNotFound
	}
	return &doc, nil
}

func (f *fakeAvailabilityRepo) Upsert(ctx context.Context, avail *models.WeeklyAvailability) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[avail.ProviderID] = *avail
	return nil
}

func newTestEngine(t *testing.T, now time.Time) *DefaultSchedulingEngine {
	t.Helper()
	engine := &DefaultSchedulingEngine{
		Appointments: appointmentRepo.NewInMemoryAppointmentRepo(),
		Availability: newFakeAvailabilityRepo(),
		Now:          func() time.Time { return now },
	}
	cfg := models.WeeklyAvailability{
		ProviderID:          "doc-1",
		SlotDurationMinutes: 30,
		Days: map[string]models.DayWindow{
			"Monday": {Enabled: true, Start: 600, End: 720},
			"Sunday": {Enabled: false, Start: 600, End: 720},
		},
	}
	require.NoError(t, engine.SetAvailability(context.Background(), cfg))
	return engine
}

var (
	testNow    = time.Date(2026, 2, 25, 9, 0, 0, 0, time.Local)  // Wednesday
	testMonday = time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)  // Monday 10:00
	testSunday = time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)  // Sunday 10:00
)

func TestReserveSlot_CreatesPendingAppointment(t *testing.T) {
	engine := newTestEngine(t, testNow)
	ctx := context.Background()

	appt, err := engine.ReserveSlot(ctx, "doc-1", "pat-1", testMonday, "follow-up")
	require.NoError(t, err)

	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, 30, appt.DurationMinutes)
	assert.True(t, appt.StartTime.Equal(testMonday))

	stored, err := engine.Appointments.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestReserveSlot_ConflictOnSecondAttempt(t *testing.T) {
	engine := newTestEngine(t, testNow)
	ctx := context.Background()

	_, err := engine.ReserveSlot(ctx, "doc-1", "pat-1", testMonday, "")
	require.NoError(t, err)

	_, err = engine.ReserveSlot(ctx, "doc-1", "pat-2", testMonday, "")
	assert.True(t, IsSlotUnavailable(err), "expected slotUnavailable, got %v", err)
}

func TestReserveSlot_RejectsSlotsNotOffered(t *testing.T) {
	engine := newTestEngine(t, testNow)
	ctx := context.Background()

	// Misaligned start.
	_, err := engine.ReserveSlot(ctx, "doc-1", "pat-1", testMonday.Add(15*time.Minute), "")
	assert.True(t, IsSlotUnavailable(err))

	// Disabled weekday.
	_, err = engine.ReserveSlot(ctx, "doc-1", "pat-1", testSunday, "")
	assert.True(t, IsSlotUnavailable(err))

	// Past day.
	_, err = engine.ReserveSlot(ctx, "doc-1", "pat-1", testMonday.AddDate(0, 0, -14), "")
	assert.True(t, IsSlotUnavailable(err))
}

func TestReserveSlot_ConcurrentAttemptsOneWinner(t *testing.T) {
	engine := newTestEngine(t, testNow)
	ctx := context.Background()

	const attempts = 16
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.ReserveSlot(ctx, "doc-1", "pat-1", testMonday, "")
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.True(t, IsSlotUnavailable(err), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent reservation must win")
}

func TestAvailableSlots_ExcludesReservedSlot(t *testing.T) {
	engine := newTestEngine(t, testNow)
	ctx := context.Background()

	_, err := engine.ReserveSlot(ctx, "doc-1", "pat-1", testMonday.Add(time.Hour), "")
	require.NoError(t, err)

	slots, err := engine.AvailableSlots(ctx, "doc-1", "2026-03-02")
	require.NoError(t, err)

	var got []string
	for _, s := range slots {
		got = append(got, s.Start.In(time.Local).Format("15:04"))
	}
	assert.Equal(t, []string{"10:00", "10:30", "11:30"}, got)
}

func TestAvailableSlots_UnknownProvider(t *testing.T) {
	engine := newTestEngine(t, testNow)

	_, err := engine.AvailableSlots(context.Background(), "doc-404", "2026-03-02")
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}

func TestLifecycle_Transitions(t *testing.T) {
	engine := newTestEngine(t, testNow)
	ctx := context.Background()

	appt, err := engine.ReserveSlot(ctx, "doc-1", "pat-1", testMonday, "")
	require.NoError(t, err)

	confirmed, err := engine.ConfirmAppointment(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)

	// Confirming twice is illegal.
	_, err = engine.ConfirmAppointment(ctx, appt.ID)
	assert.Equal(t, CodeInvalidTransition, ErrorCode(err))

	completed, err := engine.CompleteAppointment(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)

	// Completed is terminal.
	_, err = engine.CancelAppointment(ctx, appt.ID)
	assert.Equal(t, CodeInvalidTransition, ErrorCode(err))
}

func TestLifecycle_StampsStoredUpdatedAt(t *testing.T) {
	engine := newTestEngine(t, testNow)
	ctx := context.Background()

	appt, err := engine.ReserveSlot(ctx, "doc-1", "pat-1", testMonday, "")
	require.NoError(t, err)

	confirmed, err := engine.ConfirmAppointment(ctx, appt.ID)
	require.NoError(t, err)

	// The returned record and the stored one carry the same timestamp.
	stored, err := engine.Appointments.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.True(t, stored.UpdatedAt.Equal(confirmed.UpdatedAt))
	assert.True(t, confirmed.UpdatedAt.Equal(testNow.UTC()))
}

func TestLifecycle_CancelReleasesSlot(t *testing.T) {
	engine := newTestEngine(t, testNow)
	ctx := context.Background()

	appt, err := engine.ReserveSlot(ctx, "doc-1", "pat-1", testMonday, "")
	require.NoError(t, err)

	_, err = engine.CancelAppointment(ctx, appt.ID)
	require.NoError(t, err)

	// The slot is offered again and can be rebooked.
	rebooked, err := engine.ReserveSlot(ctx, "doc-1", "pat-2", testMonday, "")
	require.NoError(t, err)
	assert.NotEqual(t, appt.ID, rebooked.ID)
}

func TestLifecycle_UnknownAppointment(t *testing.T) {
	engine := newTestEngine(t, testNow)

	_, err := engine.ConfirmAppointment(context.Background(), "missing")
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}
