package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifeec/go-backend/internal/models"
	"github.com/lifeec/go-backend/internal/repository"
)

type residentRequest struct {
	FullName         string                  `json:"fullName"`
	DateOfBirth      time.Time               `json:"dateOfBirth"`
	Gender           string                  `json:"gender"`
	ContactNumber    string                  `json:"contactNumber"`
	Address          string                  `json:"address"`
	EmergencyContact models.EmergencyContact `json:"emergencyContact"`
	Status           models.ResidentStatus   `json:"status"`
	UserID           string                  `json:"userId"`
}

func (h *Handler) listResidents(c *gin.Context) {
	residents, err := h.store.ListResidents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching residents"})
		return
	}
	c.JSON(http.StatusOK, residents)
}

func (h *Handler) getResident(c *gin.Context) {
	resident, err := h.store.GetResidentByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Resident not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching resident"})
		return
	}
	c.JSON(http.StatusOK, resident)
}

func (h *Handler) createResident(c *gin.Context) {
	var req residentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.FullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Full name is required"})
		return
	}

	status := req.Status
	if status == "" {
		status = models.ResidentStatusActive
	}

	now := time.Now().UTC()
	resident := &models.Resident{
		ID:               uuid.NewString(),
		FullName:         req.FullName,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		ContactNumber:    req.ContactNumber,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		Status:           status,
		CreatedBy:        req.UserID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := h.store.CreateResident(c.Request.Context(), resident); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while creating resident"})
		return
	}
	c.JSON(http.StatusCreated, resident)
}

func (h *Handler) updateResident(c *gin.Context) {
	var req residentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	resident, err := h.store.GetResidentByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Resident not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while updating resident"})
		return
	}

	if req.FullName != "" {
		resident.FullName = req.FullName
	}
	if !req.DateOfBirth.IsZero() {
		resident.DateOfBirth = req.DateOfBirth
	}
	if req.Gender != "" {
		resident.Gender = req.Gender
	}
	if req.ContactNumber != "" {
		resident.ContactNumber = req.ContactNumber
	}
	if req.Address != "" {
		resident.Address = req.Address
	}
	if req.EmergencyContact != (models.EmergencyContact{}) {
		resident.EmergencyContact = req.EmergencyContact
	}
	if req.Status != "" {
		resident.Status = req.Status
	}
	resident.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateResident(c.Request.Context(), resident); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while updating resident"})
		return
	}
	c.JSON(http.StatusOK, resident)
}

func (h *Handler) deleteResident(c *gin.Context) {
	err := h.store.DeleteResident(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Resident not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while deleting resident"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resident deleted successfully"})
}

func (h *Handler) searchResidents(c *gin.Context) {
	status := c.Query("status")
	if status == "all" {
		status = ""
	}

	residents, err := h.store.SearchResidents(c.Request.Context(), c.Query("query"), models.ResidentStatus(status))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while searching residents"})
		return
	}
	c.JSON(http.StatusOK, residents)
}
