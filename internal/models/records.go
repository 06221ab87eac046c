package models

import "time"

type HealthStatus string

const (
	HealthStatusCritical HealthStatus = "Critical"
	HealthStatusStable   HealthStatus = "Stable"
)

type MedicationStatus string

const (
	MedicationTaken    MedicationStatus = "Taken"
	MedicationNotTaken MedicationStatus = "Not taken"
)

type Medication struct {
	Medication string           `json:"medication"`
	Dosage     string           `json:"dosage"`
	Quantity   string           `json:"quantity"`
	Time       []string         `json:"time"`
	Status     MedicationStatus `json:"status"`
}

type HealthPlan struct {
	ID               string       `json:"id"`
	ResidentID       string       `json:"residentId"`
	Date             string       `json:"date"`
	Status           HealthStatus `json:"status"`
	Allergies        []string     `json:"allergies"`
	MedicalCondition []string     `json:"medicalCondition"`
	Medications      []Medication `json:"medications"`
	Assessment       string       `json:"assessment,omitempty"`
	Instructions     string       `json:"instructions,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

type MealRecord struct {
	ID               string    `json:"id"`
	ResidentID       string    `json:"residentId"`
	DietaryNeeds     string    `json:"dietaryNeeds"`
	NutritionalGoals string    `json:"nutritionalGoals"`
	Date             string    `json:"date"`
	Breakfast        string    `json:"breakfast"`
	Lunch            string    `json:"lunch"`
	Snacks           string    `json:"snacks"`
	Dinner           string    `json:"dinner"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type ActivityStatus string

const (
	ActivityNotStarted ActivityStatus = "Not Started"
	ActivityInProgress ActivityStatus = "In Progress"
	ActivityCompleted  ActivityStatus = "Completed"
)

type ActivityRecord struct {
	ID          string         `json:"id"`
	ResidentID  string         `json:"residentId"`
	Name        string         `json:"name"`
	Date        string         `json:"date"`
	Description string         `json:"description"`
	Status      ActivityStatus `json:"status"`
	Duration    int            `json:"duration"` // minutes
	Location    string         `json:"location"`
	Notes       string         `json:"notes"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
