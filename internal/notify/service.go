package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lifeec/go-backend/internal/mailer"
	"github.com/lifeec/go-backend/internal/models"
	"github.com/lifeec/go-backend/internal/repository"
)

// Service orchestrates alert creation: validate the resident, persist the
// alert with snapshot fields, resolve recipients, dispatch concurrently,
// aggregate delivery statistics. The alert is durable before any email is
// attempted; delivery failure only shows up in the stats.
type Service struct {
	residents  repository.ResidentRepository
	alerts     repository.AlertRepository
	resolver   *Resolver
	dispatcher *Dispatcher
}

func NewService(residents repository.ResidentRepository, alerts repository.AlertRepository, users repository.UserRepository, sender mailer.Sender) *Service {
	return &Service{
		residents:  residents,
		alerts:     alerts,
		resolver:   NewResolver(users),
		dispatcher: NewDispatcher(sender),
	}
}

func (s *Service) CreateAlert(ctx context.Context, residentID, message string) (*models.EmergencyAlert, *models.NotificationStats, error) {
	resident, err := s.residents.GetResidentByID(ctx, residentID)
	if err != nil {
		return nil, nil, err
	}

	if message == "" {
		message = fmt.Sprintf("Emergency alert triggered for %s", resident.FullName)
	}

	alert := &models.EmergencyAlert{
		ID:               uuid.NewString(),
		ResidentID:       resident.ID,
		ResidentName:     resident.FullName,
		Message:          message,
		EmergencyContact: resident.EmergencyContact,
		Read:             false,
		Timestamp:        time.Now().UTC(),
	}

	if err := s.alerts.CreateAlert(ctx, alert); err != nil {
		return nil, nil, err
	}

	// The alert is durable from here on. Resolution failure still fails
	// the request; individual delivery failures never do.
	recipients, err := s.resolver.Resolve(ctx, resident)
	if err != nil {
		return nil, nil, err
	}

	outcomes := s.dispatcher.Dispatch(ctx, alert, recipients)
	stats := aggregate(outcomes, resident.EmergencyContact.Email)

	slog.Info("emergency alert dispatched",
		"alert_id", alert.ID, "resident_id", resident.ID,
		"recipients", len(recipients), "emails_sent", stats.EmailsSent)

	return alert, stats, nil
}

// aggregate counts delivery outcomes. The emergency-contact flag reports
// the outcome for that specific address even when dedup routed it through
// a staff or relative account send.
func aggregate(outcomes []Outcome, contactEmail string) *models.NotificationStats {
	stats := &models.NotificationStats{}
	contactKey := strings.ToLower(strings.TrimSpace(contactEmail))

	for _, o := range outcomes {
		switch o.Recipient.Category {
		case CategoryStaff, CategoryRelative:
			stats.NotifiedUsers++
		}
		if !o.Sent {
			continue
		}
		stats.EmailsSent++
		switch o.Recipient.Category {
		case CategoryStaff:
			stats.StaffNotified++
		case CategoryRelative:
			stats.RelativesNotified++
		}
		if contactKey != "" && strings.ToLower(strings.TrimSpace(o.Recipient.Email)) == contactKey {
			stats.EmergencyContactNotified = true
		}
	}
	return stats
}
