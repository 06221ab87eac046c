package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lifeec/go-backend/internal/models"
	"github.com/lifeec/go-backend/internal/repository"
)

type createAlertRequest struct {
	ResidentID string `json:"residentId"`
	Message    string `json:"message"`
}

func (h *Handler) createEmergencyAlert(c *gin.Context) {
	var req createAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ResidentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "residentId is required"})
		return
	}

	alert, stats, err := h.alertSvc.CreateAlert(c.Request.Context(), req.ResidentID, req.Message)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Resident not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating emergency alert"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Emergency alert created successfully",
		"alert":             alert,
		"notificationStats": stats,
	})
}

// listEmergencyAlerts returns all alerts for staff callers. Relative
// callers (userType=relative&email=...) only see alerts for the resident
// their account is associated with; an unassociated or unknown relative
// gets an empty array.
func (h *Handler) listEmergencyAlerts(c *gin.Context) {
	filter := repository.AlertFilter{}

	if c.Query("userType") == string(models.UserTypeRelative) {
		email := c.Query("email")
		if email == "" {
			c.JSON(http.StatusOK, []models.EmergencyAlert{})
			return
		}
		user, err := h.store.GetUserByEmail(c.Request.Context(), email)
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusOK, []models.EmergencyAlert{})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching emergency alerts"})
			return
		}
		if user.ResidentID == "" {
			c.JSON(http.StatusOK, []models.EmergencyAlert{})
			return
		}
		filter.ResidentID = user.ResidentID
	}

	alerts, err := h.store.ListAlerts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching emergency alerts"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *Handler) listAlertsByResident(c *gin.Context) {
	alerts, err := h.store.ListAlerts(c.Request.Context(), repository.AlertFilter{
		ResidentID: c.Param("residentId"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching resident emergency alerts"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *Handler) markAlertRead(c *gin.Context) {
	alert, err := h.store.MarkAlertRead(c.Request.Context(), c.Param("alertId"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Alert not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating alert status"})
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *Handler) purgeAlerts(c *gin.Context) {
	cutoff := time.Now().UTC().Add(-h.retention)
	deleted, err := h.store.PurgeAlertsOlderThan(c.Request.Context(), cutoff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error purging alerts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}

func (h *Handler) unreadAlertCount(c *gin.Context) {
	count, err := h.store.CountUnreadAlerts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error counting unread alerts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}
