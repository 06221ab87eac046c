package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifeec/go-backend/internal/models"
	"github.com/lifeec/go-backend/internal/repository"
)

// StringList accepts either a JSON array of strings or a single
// comma-separated string and normalizes both to a []string before the
// value reaches the repositories.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*l = []string{}
		return nil
	}
	parts := strings.Split(single, ",")
	items = make([]string, 0, len(parts))
	for _, p := range parts {
		items = append(items, strings.TrimSpace(p))
	}
	*l = items
	return nil
}

type healthPlanRequest struct {
	ResidentID       string              `json:"residentId"`
	Date             string              `json:"date"`
	Status           models.HealthStatus `json:"status"`
	Allergies        StringList          `json:"allergies"`
	MedicalCondition StringList          `json:"medicalCondition"`
	Medications      []models.Medication `json:"medications"`
	Assessment       string              `json:"assessment"`
	Instructions     string              `json:"instructions"`
}

func (h *Handler) getHealthPlan(c *gin.Context) {
	plan, err := h.store.GetLatestHealthPlan(c.Request.Context(), c.Param("residentId"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Health plan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching health plan"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *Handler) getHealthHistory(c *gin.Context) {
	plans, err := h.store.ListHealthPlans(c.Request.Context(), c.Param("residentId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching health history"})
		return
	}
	if len(plans) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No health records found"})
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *Handler) getHealthPlanByID(c *gin.Context) {
	plan, err := h.store.GetHealthPlanByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Health plan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching health plan"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *Handler) createHealthPlan(c *gin.Context) {
	var req healthPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.ResidentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "residentId is required"})
		return
	}

	status := req.Status
	if status == "" {
		status = models.HealthStatusStable
	}

	now := time.Now().UTC()
	plan := &models.HealthPlan{
		ID:               uuid.NewString(),
		ResidentID:       req.ResidentID,
		Date:             req.Date,
		Status:           status,
		Allergies:        req.Allergies,
		MedicalCondition: req.MedicalCondition,
		Medications:      normalizeMedications(req.Medications),
		Assessment:       req.Assessment,
		Instructions:     req.Instructions,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := h.store.CreateHealthPlan(c.Request.Context(), plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while creating health plan"})
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *Handler) updateHealthPlan(c *gin.Context) {
	var req healthPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	plan, err := h.store.GetHealthPlanByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Health plan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while updating health plan"})
		return
	}

	if req.Date != "" {
		plan.Date = req.Date
	}
	if req.Status != "" {
		plan.Status = req.Status
	}
	if req.Allergies != nil {
		plan.Allergies = req.Allergies
	}
	if req.MedicalCondition != nil {
		plan.MedicalCondition = req.MedicalCondition
	}
	if req.Medications != nil {
		plan.Medications = normalizeMedications(req.Medications)
	}
	if req.Assessment != "" {
		plan.Assessment = req.Assessment
	}
	if req.Instructions != "" {
		plan.Instructions = req.Instructions
	}
	plan.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateHealthPlan(c.Request.Context(), plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while updating health plan"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

func normalizeMedications(meds []models.Medication) []models.Medication {
	for i := range meds {
		if meds[i].Status == "" {
			meds[i].Status = models.MedicationNotTaken
		}
		if meds[i].Time == nil {
			meds[i].Time = []string{}
		}
	}
	return meds
}

type mealRecordRequest struct {
	ResidentID       string `json:"residentId"`
	DietaryNeeds     string `json:"dietaryNeeds"`
	NutritionalGoals string `json:"nutritionalGoals"`
	Date             string `json:"date"`
	Breakfast        string `json:"breakfast"`
	Lunch            string `json:"lunch"`
	Snacks           string `json:"snacks"`
	Dinner           string `json:"dinner"`
}

func (h *Handler) listMealRecords(c *gin.Context) {
	records, err := h.store.ListMealRecords(c.Request.Context(), c.Param("residentId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching meal records"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) getLatestMealRecord(c *gin.Context) {
	record, err := h.store.GetLatestMealRecord(c.Request.Context(), c.Param("residentId"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "No meal records found for this resident"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching meal record"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) getMealRecord(c *gin.Context) {
	record, err := h.store.GetMealRecordByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Meal record not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching meal record"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) createMealRecord(c *gin.Context) {
	var req mealRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.ResidentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "residentId is required"})
		return
	}

	now := time.Now().UTC()
	record := &models.MealRecord{
		ID:               uuid.NewString(),
		ResidentID:       req.ResidentID,
		DietaryNeeds:     req.DietaryNeeds,
		NutritionalGoals: req.NutritionalGoals,
		Date:             req.Date,
		Breakfast:        req.Breakfast,
		Lunch:            req.Lunch,
		Snacks:           req.Snacks,
		Dinner:           req.Dinner,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := h.store.CreateMealRecord(c.Request.Context(), record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while creating meal record"})
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) updateMealRecord(c *gin.Context) {
	var req mealRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	record, err := h.store.GetMealRecordByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Meal record not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while updating meal record"})
		return
	}

	record.DietaryNeeds = req.DietaryNeeds
	record.NutritionalGoals = req.NutritionalGoals
	record.Date = req.Date
	record.Breakfast = req.Breakfast
	record.Lunch = req.Lunch
	record.Snacks = req.Snacks
	record.Dinner = req.Dinner
	record.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateMealRecord(c.Request.Context(), record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while updating meal record"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) deleteMealRecord(c *gin.Context) {
	err := h.store.DeleteMealRecord(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Meal record not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while deleting meal record"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal record deleted successfully"})
}

type activityRecordRequest struct {
	ResidentID  string                `json:"residentId"`
	Name        string                `json:"name"`
	Date        string                `json:"date"`
	Description string                `json:"description"`
	Status      models.ActivityStatus `json:"status"`
	Duration    int                   `json:"duration"`
	Location    string                `json:"location"`
	Notes       string                `json:"notes"`
}

func (h *Handler) listActivityRecords(c *gin.Context) {
	records, err := h.store.ListActivityRecords(c.Request.Context(), c.Param("residentId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching activity records"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) getLatestActivityRecord(c *gin.Context) {
	record, err := h.store.GetLatestActivityRecord(c.Request.Context(), c.Param("residentId"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "No activity records found for this resident"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching activity record"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) getActivityRecord(c *gin.Context) {
	record, err := h.store.GetActivityRecordByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Activity record not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching activity record"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) createActivityRecord(c *gin.Context) {
	var req activityRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.ResidentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "residentId is required"})
		return
	}

	status := req.Status
	if status == "" {
		status = models.ActivityNotStarted
	}

	now := time.Now().UTC()
	record := &models.ActivityRecord{
		ID:          uuid.NewString(),
		ResidentID:  req.ResidentID,
		Name:        req.Name,
		Date:        req.Date,
		Description: req.Description,
		Status:      status,
		Duration:    req.Duration,
		Location:    req.Location,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateActivityRecord(c.Request.Context(), record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while creating activity record"})
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) updateActivityRecord(c *gin.Context) {
	var req activityRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	record, err := h.store.GetActivityRecordByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Activity record not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while updating activity record"})
		return
	}

	record.Name = req.Name
	record.Date = req.Date
	record.Description = req.Description
	if req.Status != "" {
		record.Status = req.Status
	}
	record.Duration = req.Duration
	record.Location = req.Location
	record.Notes = req.Notes
	record.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateActivityRecord(c.Request.Context(), record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while updating activity record"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) deleteActivityRecord(c *gin.Context) {
	err := h.store.DeleteActivityRecord(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Activity record not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while deleting activity record"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Activity record deleted successfully"})
}
