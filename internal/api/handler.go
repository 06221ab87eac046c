package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lifeec/go-backend/internal/mailer"
	"github.com/lifeec/go-backend/internal/notify"
	"github.com/lifeec/go-backend/internal/repository"
)

// Store is the persistence surface the HTTP layer needs.
type Store interface {
	repository.UserRepository
	repository.ResidentRepository
	repository.AlertRepository
	repository.HealthPlanRepository
	repository.MealRecordRepository
	repository.ActivityRecordRepository
	repository.MessageRepository
}

type Handler struct {
	store     Store
	alertSvc  *notify.Service
	sender    mailer.Sender
	retention time.Duration
}

func NewHandler(store Store, alertSvc *notify.Service, sender mailer.Sender, retention time.Duration) *Handler {
	return &Handler{
		store:     store,
		alertSvc:  alertSvc,
		sender:    sender,
		retention: retention,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	users := r.Group("/api/users")
	{
		users.POST("/register", h.registerUser)
		users.POST("/login", h.loginUser)
		users.POST("/verify-otp", h.verifyOTP)
		users.POST("/resend-otp", h.resendOTP)
		users.GET("/profile/:userId", h.getUserProfile)
		users.PUT("/update/:userId", h.updateUser)
		users.DELETE("/delete/:userId", h.deleteUser)
		users.PUT("/change-password/:userId", h.changePassword)
		users.PUT("/archive/:userId", h.archiveUser)
		users.GET("/contacts", h.getContactsList)
		users.GET("/contacts/:userId", h.getContactDetails)
	}

	residents := r.Group("/api/residents")
	{
		residents.GET("", h.listResidents)
		residents.GET("/search", h.searchResidents)
		residents.GET("/:id", h.getResident)
		residents.POST("", h.createResident)
		residents.PUT("/:id", h.updateResident)
		residents.DELETE("/:id", h.deleteResident)
	}

	plans := r.Group("/api/health-plans")
	{
		plans.GET("/resident/:residentId", h.getHealthPlan)
		plans.GET("/resident/:residentId/history", h.getHealthHistory)
		plans.GET("/:id", h.getHealthPlanByID)
		plans.POST("", h.createHealthPlan)
		plans.PUT("/:id", h.updateHealthPlan)
	}

	meals := r.Group("/api/meal-records")
	{
		meals.GET("/resident/:residentId", h.listMealRecords)
		meals.GET("/resident/:residentId/latest", h.getLatestMealRecord)
		meals.GET("/:id", h.getMealRecord)
		meals.POST("", h.createMealRecord)
		meals.PUT("/:id", h.updateMealRecord)
		meals.DELETE("/:id", h.deleteMealRecord)
	}

	activities := r.Group("/api/activity-records")
	{
		activities.GET("/resident/:residentId", h.listActivityRecords)
		activities.GET("/resident/:residentId/latest", h.getLatestActivityRecord)
		activities.GET("/:id", h.getActivityRecord)
		activities.POST("", h.createActivityRecord)
		activities.PUT("/:id", h.updateActivityRecord)
		activities.DELETE("/:id", h.deleteActivityRecord)
	}

	messages := r.Group("/api/messages")
	{
		messages.POST("", h.sendMessage)
		messages.GET("/conversation/:userId/:otherUserId", h.getConversation)
		messages.GET("/recent/:userId", h.getRecentConversations)
		messages.PUT("/read", h.markMessagesRead)
		messages.DELETE("/:messageId", h.deleteMessage)
	}

	alerts := r.Group("/api/emergency-alerts")
	{
		alerts.POST("", h.createEmergencyAlert)
		alerts.GET("", h.listEmergencyAlerts)
		alerts.GET("/resident/:residentId", h.listAlertsByResident)
		alerts.PATCH("/:alertId/read", h.markAlertRead)
		alerts.POST("/maintenance/purge", h.purgeAlerts)
		alerts.GET("/maintenance/unread-count", h.unreadAlertCount)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
