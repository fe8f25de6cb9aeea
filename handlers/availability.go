package handlers

import (
	"net/http"

	"telecare/middleware"
	"telecare/models"
	"telecare/services/scheduling"
	"telecare/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes the provider schedule settings.
type AvailabilityHandler struct {
	Engine scheduling.SchedulingService
}

func NewAvailabilityHandler(engine scheduling.SchedulingService) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: engine}
}

// GetAvailabilityHandler returns a provider's weekly schedule.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	providerID := c.Param("providerId")

	cfg, err := h.Engine.GetAvailability(c.Request.Context(), providerID)
	if err != nil {
		if scheduling.ErrorCode(err) == scheduling.CodeNotFound {
			utils.JSONError(c, http.StatusNotFound, "No availability configured", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, cfg)
}

type setAvailabilityRequest struct {
	SlotDurationMinutes int                         `json:"slotDurationMinutes" binding:"required"`
	Days                map[string]models.DayWindow `json:"days" binding:"required"`
}

// SetAvailabilityHandler overwrites the authenticated doctor's weekly schedule.
// Invalid windows are rejected here, before they can reach slot generation.
func (h *AvailabilityHandler) SetAvailabilityHandler(c *gin.Context) {
	doctorID, ok := middleware.GetUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}

	var req setAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid availability payload", err.Error())
		return
	}

	cfg := models.WeeklyAvailability{
		ProviderID:          doctorID,
		SlotDurationMinutes: req.SlotDurationMinutes,
		Days:                req.Days,
	}
	if err := h.Engine.SetAvailability(c.Request.Context(), cfg); err != nil {
		if scheduling.ErrorCode(err) == scheduling.CodeInvalidConfiguration {
			utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid availability configuration", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
