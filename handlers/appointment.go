package handlers

import (
	"net/http"
	"time"

	"telecare/middleware"
	"telecare/models"
	"telecare/services/scheduling"
	"telecare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes slot listing and the booking lifecycle.
type AppointmentHandler struct {
	Engine scheduling.SchedulingService
	Logger *zap.Logger
}

func NewAppointmentHandler(engine scheduling.SchedulingService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Engine: engine, Logger: logger}
}

// GetSlotsHandler lists the bookable slots for a provider on a date.
func (h *AppointmentHandler) GetSlotsHandler(c *gin.Context) {
	providerID := c.Param("providerId")
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing date query parameter", "expected date=YYYY-MM-DD")
		return
	}

	slots, err := h.Engine.AvailableSlots(c.Request.Context(), providerID, date)
	if err != nil {
		if scheduling.ErrorCode(err) == scheduling.CodeNotFound {
			utils.JSONError(c, http.StatusNotFound, "No availability configured", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to compute slots", err.Error())
		return
	}
	if slots == nil {
		slots = []models.CandidateSlot{}
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

type reserveRequest struct {
	ProviderID string    `json:"providerId" binding:"required"`
	Start      time.Time `json:"start" binding:"required"`
	Reason     string    `json:"reason"`
}

// ReserveHandler books a slot for the authenticated patient. A conflict with
// a concurrent booking returns 409; the client should re-fetch slots.
func (h *AppointmentHandler) ReserveHandler(c *gin.Context) {
	patientID, ok := middleware.GetUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}

	var req reserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reservation payload", err.Error())
		return
	}

	appt, err := h.Engine.ReserveSlot(c.Request.Context(), req.ProviderID, patientID, req.Start, req.Reason)
	if err != nil {
		switch scheduling.ErrorCode(err) {
		case scheduling.CodeSlotUnavailable:
			utils.JSONError(c, http.StatusConflict, "Slot no longer available", "please pick another time")
		case scheduling.CodeNotFound:
			utils.JSONError(c, http.StatusNotFound, "No availability configured", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to reserve slot", err.Error())
		}
		return
	}

	h.Logger.Info("appointment reserved",
		zap.String("appointmentID", appt.ID),
		zap.String("providerID", appt.ProviderID),
		zap.Time("start", appt.StartTime))
	c.JSON(http.StatusCreated, appt)
}

// UpdateStatusHandler applies a lifecycle transition to an appointment.
// Only the provider on the appointment may confirm, complete or cancel it;
// the booking patient may cancel their own.
func (h *AppointmentHandler) UpdateStatusHandler(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)
	id := c.Param("id")
	action := c.Param("action")

	appt, err := h.apply(c, role, userID, id, action)
	if err != nil {
		switch scheduling.ErrorCode(err) {
		case scheduling.CodeNotFound:
			utils.JSONError(c, http.StatusNotFound, "Appointment not found", "")
		case scheduling.CodeInvalidTransition:
			utils.JSONError(c, http.StatusUnprocessableEntity, "Illegal status transition", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update appointment", err.Error())
		}
		return
	}
	if appt == nil {
		// apply already wrote the response.
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) apply(c *gin.Context, role models.Role, userID, id, action string) (*models.Appointment, error) {
	ctx := c.Request.Context()

	appt, err := h.Engine.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	switch action {
	case "confirm", "complete":
		if role != models.RoleDoctor {
			utils.JSONError(c, http.StatusForbidden, "Only doctors can "+action+" appointments", "")
			return nil, nil
		}
		if appt.ProviderID != userID {
			utils.JSONError(c, http.StatusForbidden, "Appointment is not on your calendar", "")
			return nil, nil
		}
		if action == "confirm" {
			return h.Engine.ConfirmAppointment(ctx, id)
		}
		return h.Engine.CompleteAppointment(ctx, id)
	case "cancel":
		party := appt.PatientID == userID || appt.ProviderID == userID
		if role != models.RoleAdmin && !party {
			utils.JSONError(c, http.StatusForbidden, "Not your appointment", "")
			return nil, nil
		}
		return h.Engine.CancelAppointment(ctx, id)
	default:
		utils.JSONError(c, http.StatusBadRequest, "Unknown action", action)
		return nil, nil
	}
}

// ListMineHandler returns the caller's appointments (by role).
func (h *AppointmentHandler) ListMineHandler(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	var (
		appts []models.Appointment
		err   error
	)
	if role == models.RoleDoctor {
		appts, err = h.Engine.ListForProvider(c.Request.Context(), userID)
	} else {
		appts, err = h.Engine.ListForPatient(c.Request.Context(), userID)
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list appointments", err.Error())
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}
