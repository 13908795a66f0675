package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gradevision/internal/models"
	"gradevision/internal/services"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) SendOtp(c *gin.Context) {
	var req struct {
		Email   string `json:"email" binding:"required,email"`
		Purpose string `json:"purpose"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][send-otp] bad request: bind json failed: err=%v", err)
		fail(c, http.StatusBadRequest, "Valid email is required")
		return
	}
	purpose := req.Purpose
	if purpose == "" {
		purpose = models.PurposeSignup
	}
	if !models.IsValidPurpose(purpose) {
		fail(c, http.StatusBadRequest, "Invalid OTP purpose")
		return
	}
	email := strings.TrimSpace(req.Email)

	if err := h.userService.SendOtp(email, purpose); err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken),
			errors.Is(err, services.ErrDemoAccount):
			fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrDeliveryFailed):
			fail(c, http.StatusInternalServerError, err.Error())
		default:
			log.Printf("[auth][send-otp] failed email=%q purpose=%q: %v", email, purpose, err)
			fail(c, http.StatusInternalServerError, "Failed to send verification code")
		}
		return
	}
	ok(c, gin.H{"message": "Verification code sent to your email"})
}

func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req struct {
		Email   string `json:"email" binding:"required"`
		Code    string `json:"code" binding:"required"`
		Purpose string `json:"purpose"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Email and code are required")
		return
	}
	purpose := req.Purpose
	if purpose == "" {
		purpose = models.PurposeSignup
	}

	verified, reason := h.userService.VerifyOtp(strings.TrimSpace(req.Email), strings.TrimSpace(req.Code), purpose)
	if !verified {
		fail(c, http.StatusBadRequest, reason)
		return
	}
	ok(c, gin.H{"message": "Email verified successfully"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][register] bad request: bind json failed: err=%v", err)
		fail(c, http.StatusBadRequest, "Email, password, first name and last name are required")
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	user, token, err := h.userService.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[auth][register] failed email=%q: %v", req.Email, err)
		fail(c, http.StatusInternalServerError, "Registration failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login] bad request: bind json failed: err=%v", err)
		fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}
	email := strings.TrimSpace(req.Email)

	user, token, err := h.userService.Login(email, req.Password)
	if err != nil {
		var locked *services.LockedError
		var badPassword *services.InvalidPasswordError
		switch {
		case errors.As(err, &locked):
			fail(c, http.StatusLocked, locked.Error())
		case errors.As(err, &badPassword):
			fail(c, http.StatusUnauthorized, badPassword.Error())
		case errors.Is(err, services.ErrInvalidCredentials):
			fail(c, http.StatusUnauthorized, err.Error())
		default:
			log.Printf("[auth][login] failed email=%q: %v", email, err)
			fail(c, http.StatusInternalServerError, "Login failed")
		}
		return
	}
	ok(c, gin.H{"token": token, "user": user})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Email and a password of at least 6 characters are required")
		return
	}

	if err := h.userService.ResetPassword(strings.TrimSpace(req.Email), req.NewPassword); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("[auth][reset-password] failed email=%q: %v", req.Email, err)
		fail(c, http.StatusInternalServerError, "Password reset failed")
		return
	}
	ok(c, gin.H{"message": "Password has been reset successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, found := getUserID(c)
	if !found {
		fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load user")
		return
	}
	if user == nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	ok(c, gin.H{"user": user})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, found := getUserID(c)
	if !found {
		fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Avatar    string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(userID, req.FirstName, req.LastName, req.Avatar)
	if err != nil {
		log.Printf("[auth][profile] update failed userID=%s: %v", userID, err)
		fail(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if user == nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	ok(c, gin.H{"user": user})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, found := getUserID(c)
	if !found {
		fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Current and new password are required")
		return
	}

	if err := h.userService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			fail(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, err.Error())
		default:
			log.Printf("[auth][password] change failed userID=%s: %v", userID, err)
			fail(c, http.StatusInternalServerError, "Failed to change password")
		}
		return
	}
	ok(c, gin.H{"message": "Password changed successfully"})
}

// Logout exists for API symmetry; JWTs are stateless, the client drops the token.
func (h *AuthHandler) Logout(c *gin.Context) {
	ok(c, gin.H{"message": "Logged out successfully"})
}
