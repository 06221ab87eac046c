package api

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifeec/go-backend/internal/auth"
	"github.com/lifeec/go-backend/internal/models"
	"github.com/lifeec/go-backend/internal/repository"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type registerRequest struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone"`
	UserType   string `json:"userType"`
	ResidentID string `json:"residentId"`
}

// Self-service registration is limited to these roles; admin and owner
// accounts are provisioned out of band.
var selfRegisterTypes = map[models.UserType]bool{
	models.UserTypeNurse:        true,
	models.UserTypeNutritionist: true,
	models.UserTypeRelative:     true,
}

func (h *Handler) registerUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	userType := models.UserType(req.UserType)
	if !selfRegisterTypes[userType] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user type. Must be nurse, nutritionist, or relative"})
		return
	}
	if req.FullName == "" || !emailRegex.MatchString(req.Email) || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Full name, email and password are required"})
		return
	}

	if _, err := h.store.GetUserByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration"})
		return
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration"})
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration"})
		return
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		UserType:     userType,
		OTP: models.OTP{
			Code:   otp,
			Expiry: time.Now().Add(auth.OTPValidity),
		},
		CreatedAt: time.Now().UTC(),
	}
	if userType == models.UserTypeRelative {
		user.ResidentID = req.ResidentID
	}

	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration"})
		return
	}

	if err := h.sender.SendOTP(c.Request.Context(), user.Email, otp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send verification email"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Please verify your email with the OTP sent.",
		"userId":  user.ID,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) loginUser(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login"})
		return
	}

	if user.IsArchived {
		c.JSON(http.StatusForbidden, gin.H{"message": "This account has been archived. Please contact your administrator."})
		return
	}
	if !selfRegisterTypes[user.UserType] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user type. Please contact administrator"})
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type otpRequest struct {
	UserID string `json:"userId"`
	OTP    string `json:"otp"`
}

func (h *Handler) verifyOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), req.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during verification"})
		return
	}

	if user.OTP.Verified {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already verified"})
		return
	}
	if user.OTP.Code != req.OTP {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
		return
	}
	if time.Now().After(user.OTP.Expiry) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "OTP expired"})
		return
	}

	user.OTP.Verified = true
	user.IsVerified = true
	if err := h.store.UpdateUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during verification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"message": "Email verified successfully",
	})
}

func (h *Handler) resendOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), req.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during OTP resend"})
		return
	}

	if user.OTP.Verified {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already verified"})
		return
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during OTP resend"})
		return
	}
	user.OTP = models.OTP{
		Code:   otp,
		Expiry: time.Now().Add(auth.OTPValidity),
	}
	if err := h.store.UpdateUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during OTP resend"})
		return
	}

	if err := h.sender.SendOTP(c.Request.Context(), user.Email, otp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send verification email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "New OTP sent successfully"})
}

func (h *Handler) getUserProfile(c *gin.Context) {
	user, err := h.store.GetUserByID(c.Request.Context(), c.Param("userId"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

func (h *Handler) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.FullName == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Full name and email are required"})
		return
	}
	if !emailRegex.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide a valid email address"})
		return
	}

	userID := c.Param("userId")
	if existing, err := h.store.GetUserByEmail(c.Request.Context(), req.Email); err == nil && existing.ID != userID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use by another account"})
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during profile update"})
		return
	}

	user.FullName = req.FullName
	user.Email = req.Email
	user.Phone = req.Phone
	if err := h.store.UpdateUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during profile update"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func (h *Handler) deleteUser(c *gin.Context) {
	err := h.store.DeleteUser(c.Request.Context(), c.Param("userId"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during deletion"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), c.Param("userId"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during password change"})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Current password is incorrect"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during password change"})
		return
	}
	user.PasswordHash = hash
	if err := h.store.UpdateUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during password change"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

type archiveRequest struct {
	IsArchived bool `json:"isArchived"`
}

func (h *Handler) archiveUser(c *gin.Context) {
	var req archiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), c.Param("userId"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during user archive operation"})
		return
	}

	user.IsArchived = req.IsArchived
	if req.IsArchived {
		now := time.Now().UTC()
		user.ArchivedDate = &now
	} else {
		user.ArchivedDate = nil
	}
	if err := h.store.UpdateUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during user archive operation"})
		return
	}

	action := "unarchived"
	if req.IsArchived {
		action = "archived"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User " + action + " successfully",
		"user":    user,
	})
}

func (h *Handler) getContactsList(c *gin.Context) {
	currentUserID := c.Query("currentUserId")
	if currentUserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "currentUserId is required"})
		return
	}

	users, err := h.store.ListContacts(c.Request.Context(), []models.UserType{
		models.UserTypeAdmin, models.UserTypeNurse, models.UserTypeNutritionist, models.UserTypeRelative,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error retrieving contacts"})
		return
	}

	conversations, err := h.store.ListRecentConversations(c.Request.Context(), currentUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error retrieving contacts"})
		return
	}
	stats := map[string]models.Conversation{}
	for _, conv := range conversations {
		if conv.Contact != nil {
			stats[conv.Contact.ID] = conv
		}
	}

	grouped := map[string][]gin.H{}
	for _, u := range users {
		if u.ID == currentUserID {
			continue
		}

		lastMessage := "No messages yet"
		lastMessageTime := u.CreatedAt
		unread := 0
		if conv, ok := stats[u.ID]; ok {
			lastMessage = conv.LastMessage
			lastMessageTime = conv.Timestamp
			unread = conv.UnreadCount
		}

		role := capitalize(string(u.UserType))
		grouped[role] = append(grouped[role], gin.H{
			"name":            u.FullName,
			"role":            role,
			"email":           u.Email,
			"phone":           u.Phone,
			"userId":          u.ID,
			"lastMessage":     lastMessage,
			"lastMessageTime": lastMessageTime,
			"unreadCount":     unread,
			"isOnline":        false,
			"isArchived":      u.IsArchived,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "contacts": grouped})
}

func (h *Handler) getContactDetails(c *gin.Context) {
	user, err := h.store.GetUserByID(c.Request.Context(), c.Param("userId"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Contact not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error retrieving contact details"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"contact": gin.H{
			"name":     user.FullName,
			"role":     capitalize(string(user.UserType)),
			"email":    user.Email,
			"phone":    user.Phone,
			"userId":   user.ID,
			"isOnline": false,
		},
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
