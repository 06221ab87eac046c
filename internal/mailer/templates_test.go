package mailer

import (
	"strings"
	"testing"
	"time"

	"github.com/lifeec/go-backend/internal/models"
)

func TestRenderEmergencyBody(t *testing.T) {
	alert := &models.EmergencyAlert{
		ID:           "a1",
		ResidentID:   "r1",
		ResidentName: "Harold Green",
		Message:      "fall in room 12",
		EmergencyContact: models.EmergencyContact{
			Name:     "Jane Green",
			Phone:    "555-0100",
			Relation: "daughter",
		},
		Timestamp: time.Date(2026, 8, 29, 14, 30, 5, 0, time.UTC),
	}

	body, err := renderEmergencyBody(alert, time.UTC)
	if err != nil {
		t.Fatalf("renderEmergencyBody failed: %v", err)
	}

	for _, want := range []string{
		"Harold Green",
		"fall in room 12",
		"August 29, 2026 2:30:05 PM UTC",
		"Jane Green",
		"555-0100",
		"daughter",
		"Emergency Contact",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestRenderEmergencyBody_MissingContactFields(t *testing.T) {
	alert := &models.EmergencyAlert{
		ResidentName: "Harold Green",
		Message:      "check in",
		EmergencyContact: models.EmergencyContact{
			Name: "Jane Green",
		},
		Timestamp: time.Now().UTC(),
	}

	body, err := renderEmergencyBody(alert, time.UTC)
	if err != nil {
		t.Fatalf("renderEmergencyBody failed: %v", err)
	}

	if !strings.Contains(body, "Not provided") {
		t.Error("expected 'Not provided' placeholder for missing phone")
	}
	if !strings.Contains(body, "Not specified") {
		t.Error("expected 'Not specified' placeholder for missing relation")
	}
}

func TestRenderEmergencyBody_NoContact(t *testing.T) {
	alert := &models.EmergencyAlert{
		ResidentName: "Harold Green",
		Message:      "check in",
		Timestamp:    time.Now().UTC(),
	}

	body, err := renderEmergencyBody(alert, time.UTC)
	if err != nil {
		t.Fatalf("renderEmergencyBody failed: %v", err)
	}
	if strings.Contains(body, "Emergency Contact") {
		t.Error("expected contact block to be omitted when no contact is set")
	}
}

func TestRenderEmergencyBody_EscapesContent(t *testing.T) {
	alert := &models.EmergencyAlert{
		ResidentName: "<script>alert(1)</script>",
		Message:      "ok",
		Timestamp:    time.Now().UTC(),
	}

	body, err := renderEmergencyBody(alert, time.UTC)
	if err != nil {
		t.Fatalf("renderEmergencyBody failed: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Error("expected resident name to be HTML-escaped")
	}
}

func TestRenderOTPBody(t *testing.T) {
	body, err := renderOTPBody("482913")
	if err != nil {
		t.Fatalf("renderOTPBody failed: %v", err)
	}
	if !strings.Contains(body, "482913") {
		t.Error("body missing OTP code")
	}
	if !strings.Contains(body, "expire in 10 minutes") {
		t.Error("body missing expiry notice")
	}
}
