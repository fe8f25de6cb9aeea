package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appointmentRepo "telecare/database/repository/appointment"
	availabilityRepo "telecare/database/repository/availability"
	"telecare/models"
	"telecare/services/scheduling"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAvailabilityRepo is an in-memory availability store.
type stubAvailabilityRepo struct {
	docs map[string]models.WeeklyAvailability
}

func (s *stubAvailabilityRepo) Get(ctx context.Context, providerID string) (*models.WeeklyAvailability, error) {
	doc, ok := s.docs[providerID]
	if !ok {
		return nil, availabilityRepo.ErrNotFound
	}
	return &doc, nil
}

func (s *stubAvailabilityRepo) Upsert(ctx context.Context, avail *models.WeeklyAvailability) error {
	s.docs[avail.ProviderID] = *avail
	return nil
}

var (
	handlerTestNow    = time.Date(2026, 2, 25, 9, 0, 0, 0, time.Local) // Wednesday
	handlerTestMonday = time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local) // Monday 10:00
)

func newApptTestHandler(t *testing.T) *AppointmentHandler {
	t.Helper()
	engine := &scheduling.DefaultSchedulingEngine{
		Appointments: appointmentRepo.NewInMemoryAppointmentRepo(),
		Availability: &stubAvailabilityRepo{docs: make(map[string]models.WeeklyAvailability)},
		Now:          func() time.Time { return handlerTestNow },
	}
	cfg := models.WeeklyAvailability{
		ProviderID:          "doc-1",
		SlotDurationMinutes: 30,
		Days: map[string]models.DayWindow{
			"Monday": {Enabled: true, Start: 600, End: 720},
		},
	}
	require.NoError(t, engine.SetAvailability(context.Background(), cfg))
	return NewAppointmentHandler(engine, zap.NewNop())
}

func reserveAs(t *testing.T, h *AppointmentHandler, patientID string) *models.Appointment {
	t.Helper()
	appt, err := h.Engine.ReserveSlot(context.Background(), "doc-1", patientID, handlerTestMonday, "")
	require.NoError(t, err)
	return appt
}

func performStatusUpdate(h *AppointmentHandler, userID string, role models.Role, apptID, action string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/appointments/"+apptID+"/"+action, nil)
	c.Params = gin.Params{{Key: "id", Value: apptID}, {Key: "action", Value: action}}
	c.Set("userID", userID)
	c.Set("userRole", string(role))

	h.UpdateStatusHandler(c)
	return w
}

func TestUpdateStatus_PatientCannotCancelOthersAppointment(t *testing.T) {
	h := newApptTestHandler(t)
	appt := reserveAs(t, h, "pat-1")

	w := performStatusUpdate(h, "pat-2", models.RolePatient, appt.ID, "cancel")
	assert.Equal(t, http.StatusForbidden, w.Code)

	stored, err := h.Engine.GetAppointment(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestUpdateStatus_DoctorCannotTouchOtherCalendar(t *testing.T) {
	h := newApptTestHandler(t)
	appt := reserveAs(t, h, "pat-1")

	for _, action := range []string{"confirm", "complete", "cancel"} {
		w := performStatusUpdate(h, "doc-2", models.RoleDoctor, appt.ID, action)
		assert.Equal(t, http.StatusForbidden, w.Code, "action %s", action)
	}

	stored, err := h.Engine.GetAppointment(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestUpdateStatus_OwnersMayActOnTheirAppointment(t *testing.T) {
	h := newApptTestHandler(t)
	appt := reserveAs(t, h, "pat-1")

	w := performStatusUpdate(h, "doc-1", models.RoleDoctor, appt.ID, "confirm")
	assert.Equal(t, http.StatusOK, w.Code)

	w = performStatusUpdate(h, "pat-1", models.RolePatient, appt.ID, "cancel")
	assert.Equal(t, http.StatusOK, w.Code)

	stored, err := h.Engine.GetAppointment(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
}

func TestUpdateStatus_PatientCannotConfirm(t *testing.T) {
	h := newApptTestHandler(t)
	appt := reserveAs(t, h, "pat-1")

	w := performStatusUpdate(h, "pat-1", models.RolePatient, appt.ID, "confirm")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateStatus_UnknownAppointment(t *testing.T) {
	h := newApptTestHandler(t)

	w := performStatusUpdate(h, "doc-1", models.RoleDoctor, "missing", "confirm")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
