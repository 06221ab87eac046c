package mailer

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/lifeec/go-backend/internal/models"
)

var emergencyTmpl = template.Must(template.New("emergency").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #dc3545;">Emergency Alert</h2>
  <div style="background-color: #f8d7da; border: 1px solid #f5c6cb; padding: 15px; border-radius: 4px; margin: 20px 0;">
    <p><strong>Resident:</strong> {{.ResidentName}}</p>
    <p><strong>Message:</strong> {{.Message}}</p>
    <p><strong>Time:</strong> {{.Time}}</p>
  </div>
  {{if .HasContact}}
  <div style="border: 1px solid #ddd; padding: 15px; border-radius: 4px; margin: 20px 0;">
    <h3 style="margin-top: 0;">Emergency Contact</h3>
    <p><strong>Name:</strong> {{.ContactName}}</p>
    <p><strong>Phone:</strong> {{.ContactPhone}}</p>
    <p><strong>Relation:</strong> {{.ContactRelation}}</p>
  </div>
  {{end}}
  <p style="color: #721c24;"><strong>Important:</strong> Please check the LIFEEC app for more details and required actions.</p>
  <hr style="border: 0; border-top: 1px solid #ddd; margin: 20px 0;">
  <p style="color: #666; font-size: 12px;">This is an automated emergency alert. Please do not reply to this email.</p>
</div>`))

var otpTmpl = template.Must(template.New("otp").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2196f3;">LIFEEC Email Verification</h2>
  <p>Your verification code is:</p>
  <h1 style="color: #1976d2; font-size: 36px; letter-spacing: 5px;">{{.Code}}</h1>
  <p>This code will expire in 10 minutes.</p>
  <p>If you didn't request this code, please ignore this email.</p>
</div>`))

type emergencyData struct {
	ResidentName    string
	Message         string
	Time            string
	HasContact      bool
	ContactName     string
	ContactPhone    string
	ContactRelation string
}

func renderEmergencyBody(alert *models.EmergencyAlert, loc *time.Location) (string, error) {
	contact := alert.EmergencyContact
	data := emergencyData{
		ResidentName:    alert.ResidentName,
		Message:         alert.Message,
		Time:            alert.Timestamp.In(loc).Format("January 2, 2006 3:04:05 PM MST"),
		HasContact:      contact.Name != "" || contact.Phone != "",
		ContactName:     orPlaceholder(contact.Name, "Not provided"),
		ContactPhone:    orPlaceholder(contact.Phone, "Not provided"),
		ContactRelation: orPlaceholder(contact.Relation, "Not specified"),
	}

	var b strings.Builder
	if err := emergencyTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("error rendering emergency template: %w", err)
	}
	return b.String(), nil
}

func renderOTPBody(code string) (string, error) {
	var b strings.Builder
	if err := otpTmpl.Execute(&b, struct{ Code string }{code}); err != nil {
		return "", fmt.Errorf("error rendering OTP template: %w", err)
	}
	return b.String(), nil
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
