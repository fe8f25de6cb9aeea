package scheduling

import (
	"testing"
	"time"

	"telecare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 10:00-12:00, 30-minute slots.
func mondayConfig() models.WeeklyAvailability {
	return models.WeeklyAvailability{
		ProviderID:          "doc-1",
		SlotDurationMinutes: 30,
		Days: map[string]models.DayWindow{
			"Monday": {Enabled: true, Start: 600, End: 720},
			"Sunday": {Enabled: false, Start: 600, End: 720},
		},
	}
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func starts(slots []models.CandidateSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start.Format("15:04")
	}
	return out
}

func TestGenerateSlots_FullWindow(t *testing.T) {
	now := at(t, "2026-02-25T09:00:00Z")
	target := at(t, "2026-03-02T00:00:00Z") // a future Monday

	slots := GenerateSlots(mondayConfig(), nil, target, now)

	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, starts(slots))
	for _, s := range slots {
		assert.Equal(t, 30, s.DurationMinutes)
	}
}

func TestGenerateSlots_SkipsBookedStart(t *testing.T) {
	now := at(t, "2026-02-25T09:00:00Z")
	target := at(t, "2026-03-02T00:00:00Z")
	bookings := []models.Appointment{
		{ProviderID: "doc-1", StartTime: at(t, "2026-03-02T11:00:00Z"), Status: models.StatusPending},
	}

	slots := GenerateSlots(mondayConfig(), bookings, target, now)

	assert.Equal(t, []string{"10:00", "10:30", "11:30"}, starts(slots))
}

func TestGenerateSlots_CancelledBookingDoesNotBlock(t *testing.T) {
	now := at(t, "2026-02-25T09:00:00Z")
	target := at(t, "2026-03-02T00:00:00Z")
	bookings := []models.Appointment{
		{ProviderID: "doc-1", StartTime: at(t, "2026-03-02T11:00:00Z"), Status: models.StatusCancelled},
	}

	slots := GenerateSlots(mondayConfig(), bookings, target, now)

	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, starts(slots))
}

func TestGenerateSlots_SkipsElapsedSlotsToday(t *testing.T) {
	// Target date is "today"; 10:45 has passed.
	now := at(t, "2026-03-02T10:45:00Z")
	target := at(t, "2026-03-02T00:00:00Z")

	slots := GenerateSlots(mondayConfig(), nil, target, now)

	assert.Equal(t, []string{"11:00", "11:30"}, starts(slots))
}

func TestGenerateSlots_DisabledDay(t *testing.T) {
	now := at(t, "2026-02-25T09:00:00Z")
	target := at(t, "2026-03-01T00:00:00Z") // Sunday, disabled

	assert.Empty(t, GenerateSlots(mondayConfig(), nil, target, now))
}

func TestGenerateSlots_UnconfiguredDay(t *testing.T) {
	now := at(t, "2026-02-25T09:00:00Z")
	target := at(t, "2026-02-27T00:00:00Z") // Friday, absent from config

	assert.Empty(t, GenerateSlots(mondayConfig(), nil, target, now))
}

func TestGenerateSlots_PastDate(t *testing.T) {
	now := at(t, "2026-02-25T09:00:00Z")
	target := at(t, "2026-02-23T00:00:00Z") // a Monday before today

	assert.Empty(t, GenerateSlots(mondayConfig(), nil, target, now))
}

func TestGenerateSlots_WindowEndExcluded(t *testing.T) {
	now := at(t, "2026-02-25T09:00:00Z")
	target := at(t, "2026-03-02T00:00:00Z")

	slots := GenerateSlots(mondayConfig(), nil, target, now)

	require.NotEmpty(t, slots)
	last := slots[len(slots)-1]
	// 12:00 itself is never offered: window is [start, end).
	assert.Equal(t, "11:30", last.Start.Format("15:04"))
}

func TestGenerateSlots_OverrunSlotEmitted(t *testing.T) {
	// 10:00-11:10 with 30-minute slots: the 11:00 slot runs past closing but
	// is still offered.
	cfg := mondayConfig()
	cfg.Days["Monday"] = models.DayWindow{Enabled: true, Start: 600, End: 670}
	now := at(t, "2026-02-25T09:00:00Z")
	target := at(t, "2026-03-02T00:00:00Z")

	slots := GenerateSlots(cfg, nil, target, now)

	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, starts(slots))
}

func TestGenerateSlots_StrictlyAscending(t *testing.T) {
	cfg := mondayConfig()
	cfg.Days["Monday"] = models.DayWindow{Enabled: true, Start: 480, End: 1020}
	cfg.SlotDurationMinutes = 15
	now := at(t, "2026-02-25T09:00:00Z")
	target := at(t, "2026-03-02T00:00:00Z")

	slots := GenerateSlots(cfg, nil, target, now)

	require.NotEmpty(t, slots)
	dayStart := target.Add(8 * time.Hour)
	dayEnd := target.Add(17 * time.Hour)
	for i, s := range slots {
		assert.False(t, s.Start.Before(dayStart), "slot %d before window start", i)
		assert.True(t, s.Start.Before(dayEnd), "slot %d at or past window end", i)
		if i > 0 {
			assert.True(t, slots[i-1].Start.Before(s.Start), "slots not strictly ascending at %d", i)
		}
	}
}

func TestValidateAvailability(t *testing.T) {
	valid := mondayConfig()
	assert.NoError(t, ValidateAvailability(valid))

	zeroDuration := mondayConfig()
	zeroDuration.SlotDurationMinutes = 0
	err := ValidateAvailability(zeroDuration)
	assert.Equal(t, CodeInvalidConfiguration, ErrorCode(err))

	inverted := mondayConfig()
	inverted.Days["Monday"] = models.DayWindow{Enabled: true, Start: 720, End: 600}
	err = ValidateAvailability(inverted)
	assert.Equal(t, CodeInvalidConfiguration, ErrorCode(err))

	// Inverted windows on disabled days are tolerated.
	disabledInverted := mondayConfig()
	disabledInverted.Days["Sunday"] = models.DayWindow{Enabled: false, Start: 720, End: 600}
	assert.NoError(t, ValidateAvailability(disabledInverted))

	outsideDay := mondayConfig()
	outsideDay.Days["Monday"] = models.DayWindow{Enabled: true, Start: 600, End: 1500}
	err = ValidateAvailability(outsideDay)
	assert.Equal(t, CodeInvalidConfiguration, ErrorCode(err))
}
