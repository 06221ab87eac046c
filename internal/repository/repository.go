package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lifeec/go-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// AlertFilter narrows alert listings. Zero value lists everything.
type AlertFilter struct {
	ResidentID string
	Limit      int
}

type UserRepository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id string) error
	// ListNotifiableByRoles returns non-archived, verified users whose
	// role is in roles.
	ListNotifiableByRoles(ctx context.Context, roles []models.UserType) ([]models.User, error)
	// ListNotifiableRelatives returns non-archived, verified relative
	// users associated with the resident.
	ListNotifiableRelatives(ctx context.Context, residentID string) ([]models.User, error)
	ListContacts(ctx context.Context, roles []models.UserType) ([]models.User, error)
}

type ResidentRepository interface {
	CreateResident(ctx context.Context, r *models.Resident) error
	GetResidentByID(ctx context.Context, id string) (*models.Resident, error)
	ListResidents(ctx context.Context) ([]models.Resident, error)
	UpdateResident(ctx context.Context, r *models.Resident) error
	DeleteResident(ctx context.Context, id string) error
	SearchResidents(ctx context.Context, query string, status models.ResidentStatus) ([]models.Resident, error)
}

type AlertRepository interface {
	CreateAlert(ctx context.Context, a *models.EmergencyAlert) error
	ListAlerts(ctx context.Context, f AlertFilter) ([]models.EmergencyAlert, error)
	MarkAlertRead(ctx context.Context, id string) (*models.EmergencyAlert, error)
	PurgeAlertsOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	CountUnreadAlerts(ctx context.Context) (int64, error)
}

type HealthPlanRepository interface {
	CreateHealthPlan(ctx context.Context, p *models.HealthPlan) error
	GetHealthPlanByID(ctx context.Context, id string) (*models.HealthPlan, error)
	GetLatestHealthPlan(ctx context.Context, residentID string) (*models.HealthPlan, error)
	ListHealthPlans(ctx context.Context, residentID string) ([]models.HealthPlan, error)
	UpdateHealthPlan(ctx context.Context, p *models.HealthPlan) error
}

type MealRecordRepository interface {
	CreateMealRecord(ctx context.Context, m *models.MealRecord) error
	GetMealRecordByID(ctx context.Context, id string) (*models.MealRecord, error)
	GetLatestMealRecord(ctx context.Context, residentID string) (*models.MealRecord, error)
	ListMealRecords(ctx context.Context, residentID string) ([]models.MealRecord, error)
	UpdateMealRecord(ctx context.Context, m *models.MealRecord) error
	DeleteMealRecord(ctx context.Context, id string) error
}

type ActivityRecordRepository interface {
	CreateActivityRecord(ctx context.Context, a *models.ActivityRecord) error
	GetActivityRecordByID(ctx context.Context, id string) (*models.ActivityRecord, error)
	GetLatestActivityRecord(ctx context.Context, residentID string) (*models.ActivityRecord, error)
	ListActivityRecords(ctx context.Context, residentID string) ([]models.ActivityRecord, error)
	UpdateActivityRecord(ctx context.Context, a *models.ActivityRecord) error
	DeleteActivityRecord(ctx context.Context, id string) error
}

type MessageRepository interface {
	CreateMessage(ctx context.Context, m *models.Message) error
	GetConversation(ctx context.Context, userID, otherUserID string) ([]models.Message, error)
	MarkConversationRead(ctx context.Context, senderID, receiverID string) error
	MarkMessagesRead(ctx context.Context, ids []string) error
	ListRecentConversations(ctx context.Context, userID string) ([]models.Conversation, error)
	DeleteMessage(ctx context.Context, id string) error
}
