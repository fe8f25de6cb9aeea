package handlers

import (
	"net/http"
	"strings"

	userRepo "telecare/database/repository/user"
	"telecare/middleware"
	"telecare/services/user"
	"telecare/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes account endpoints.
type UserHandler struct {
	Service user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

// RegisterHandler creates a patient or doctor account.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req user.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration payload", err.Error())
		return
	}

	res, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		if err == userRepo.ErrDuplicateEmail {
			utils.JSONError(c, http.StatusConflict, "Email already registered", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to register user", err.Error())
		return
	}
	c.JSON(http.StatusCreated, res)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler authenticates with email and password.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid login payload", err.Error())
		return
	}

	res, err := h.Service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == user.ErrInvalidCredentials {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to authenticate", err.Error())
		return
	}
	c.JSON(http.StatusOK, res)
}

// MeHandler returns the authenticated account.
func (h *UserHandler) MeHandler(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}

	u, err := h.Service.GetByID(c.Request.Context(), userID)
	if err != nil {
		if err == userRepo.ErrNotFound {
			utils.JSONError(c, http.StatusNotFound, "User not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch user", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

// ListDoctorsHandler lists the doctors available for booking.
func (h *UserHandler) ListDoctorsHandler(c *gin.Context) {
	doctors, err := h.Service.ListDoctors(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list doctors", err.Error())
		return
	}
	c.JSON(http.StatusOK, doctors)
}

type fcmTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// UpdateFCMTokenHandler stores the device token used for pushes.
func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req fcmTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid token payload", err.Error())
		return
	}

	if err := h.Service.UpdateFCMToken(c.Request.Context(), userID, req.Token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update FCM token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// LogoutHandler revokes the current session token.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.Service.RevokeToken(c.Request.Context(), tokenString); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to revoke token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
