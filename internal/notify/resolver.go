package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/lifeec/go-backend/internal/models"
	"github.com/lifeec/go-backend/internal/repository"
)

type RecipientCategory string

const (
	CategoryStaff            RecipientCategory = "staff"
	CategoryRelative         RecipientCategory = "relative"
	CategoryEmergencyContact RecipientCategory = "emergency-contact"
)

type Recipient struct {
	Email    string
	Name     string
	Category RecipientCategory
}

// Resolver determines the notification targets for a resident: all active
// verified staff (nurse, admin, owner), all active verified relatives
// associated with the resident by resident id, and the resident's declared
// emergency contact. Targets are deduplicated by lower-cased email so a
// contact who also holds a relative account gets exactly one email.
type Resolver struct {
	users repository.UserRepository
}

func NewResolver(users repository.UserRepository) *Resolver {
	return &Resolver{users: users}
}

func (r *Resolver) Resolve(ctx context.Context, resident *models.Resident) ([]Recipient, error) {
	staff, err := r.users.ListNotifiableByRoles(ctx, models.StaffAlertRoles)
	if err != nil {
		return nil, fmt.Errorf("error resolving staff recipients: %w", err)
	}

	relatives, err := r.users.ListNotifiableRelatives(ctx, resident.ID)
	if err != nil {
		return nil, fmt.Errorf("error resolving relative recipients: %w", err)
	}

	seen := map[string]bool{}
	recipients := []Recipient{}

	add := func(email, name string, category RecipientCategory) {
		key := strings.ToLower(strings.TrimSpace(email))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		recipients = append(recipients, Recipient{Email: email, Name: name, Category: category})
	}

	for _, u := range staff {
		add(u.Email, u.FullName, CategoryStaff)
	}
	for _, u := range relatives {
		add(u.Email, u.FullName, CategoryRelative)
	}
	add(resident.EmergencyContact.Email, resident.EmergencyContact.Name, CategoryEmergencyContact)

	return recipients, nil
}
