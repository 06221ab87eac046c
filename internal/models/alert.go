package models

import "time"

// EmergencyAlert is a persisted record of a triggered emergency for one
// resident. ResidentName and EmergencyContact are snapshots taken at
// creation time and never updated when the resident record changes.
type EmergencyAlert struct {
	ID               string           `json:"id"`
	ResidentID       string           `json:"residentId"`
	ResidentName     string           `json:"residentName"`
	Message          string           `json:"message"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	Read             bool             `json:"read"`
	Timestamp        time.Time        `json:"timestamp"`
}

// NotificationStats summarizes delivery outcomes for one alert fan-out.
// Partial delivery failure is reported here, never as a request error.
type NotificationStats struct {
	NotifiedUsers            int  `json:"notifiedUsers"`
	StaffNotified            int  `json:"staffNotified"`
	RelativesNotified        int  `json:"relativesNotified"`
	EmailsSent               int  `json:"emailsSent"`
	EmergencyContactNotified bool `json:"emergencyContactNotified"`
}
