package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lifeec/go-backend/internal/auth"
	"github.com/lifeec/go-backend/internal/models"
	"github.com/lifeec/go-backend/internal/notify"
	"github.com/lifeec/go-backend/internal/repository"
)

// stubSender records outbound mail instead of talking to SMTP.
type stubSender struct {
	mu         sync.Mutex
	alertsSent []string
	otpsSent   map[string]string
}

func newStubSender() *stubSender {
	return &stubSender{otpsSent: map[string]string{}}
}

func (s *stubSender) SendEmergencyAlert(ctx context.Context, to string, alert *models.EmergencyAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alertsSent = append(s.alertsSent, to)
	return nil
}

func (s *stubSender) SendOTP(ctx context.Context, to, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otpsSent[to] = code
	return nil
}

func setupTestRouter(t *testing.T) (*gin.Engine, *repository.SQLiteStore, *stubSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := repository.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sender := newStubSender()
	alertSvc := notify.NewService(store, store, store, sender)

	router := gin.New()
	handler := NewHandler(store, alertSvc, sender, 24*time.Hour)
	handler.RegisterRoutes(router)
	return router, store, sender
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func seedTestResident(t *testing.T, store *repository.SQLiteStore, id, name, contactEmail string) {
	t.Helper()
	now := time.Now().UTC()
	err := store.CreateResident(context.Background(), &models.Resident{
		ID:            id,
		FullName:      name,
		DateOfBirth:   time.Date(1941, 3, 9, 0, 0, 0, 0, time.UTC),
		Gender:        "female",
		ContactNumber: "555-0120",
		Address:       "8 Pine Rd",
		EmergencyContact: models.EmergencyContact{
			Name:  "Contact " + name,
			Phone: "555-0121",
			Email: contactEmail,
		},
		Status:    models.ResidentStatusActive,
		CreatedBy: "admin",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("failed to seed resident: %v", err)
	}
}

func seedTestUser(t *testing.T, store *repository.SQLiteStore, u *models.User) {
	t.Helper()
	if u.PasswordHash == "" {
		hash, err := auth.HashPassword("password123")
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		u.PasswordHash = hash
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCreateEmergencyAlert(t *testing.T) {
	router, store, sender := setupTestRouter(t)

	seedTestResident(t, store, "r1", "Harold Green", "daughter@example.com")
	seedTestUser(t, store, &models.User{
		ID: "n1", FullName: "Nina Nurse", Email: "nurse@example.com",
		UserType: models.UserTypeNurse, IsVerified: true,
	})

	// Missing residentId
	w := doJSON(t, router, http.MethodPost, "/api/emergency-alerts", gin.H{"message": "help"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing residentId, got %d", w.Code)
	}

	// Unknown resident
	w = doJSON(t, router, http.MethodPost, "/api/emergency-alerts", gin.H{"residentId": "missing"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown resident, got %d", w.Code)
	}
	if len(sender.alertsSent) != 0 {
		t.Errorf("no email should be sent for unknown resident, got %v", sender.alertsSent)
	}

	// Success
	w = doJSON(t, router, http.MethodPost, "/api/emergency-alerts", gin.H{"residentId": "r1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Alert models.EmergencyAlert    `json:"alert"`
		Stats models.NotificationStats `json:"notificationStats"`
	}
	decodeBody(t, w, &resp)

	if resp.Alert.ResidentName != "Harold Green" {
		t.Errorf("expected snapshot name, got %q", resp.Alert.ResidentName)
	}
	if resp.Alert.Message != "Emergency alert triggered for Harold Green" {
		t.Errorf("unexpected default message %q", resp.Alert.Message)
	}
	if resp.Stats.EmailsSent != 2 {
		t.Errorf("expected 2 emails (nurse + contact), got %d", resp.Stats.EmailsSent)
	}
	if !resp.Stats.EmergencyContactNotified {
		t.Error("expected emergency contact to be notified")
	}

	alerts, err := store.ListAlerts(context.Background(), repository.AlertFilter{})
	if err != nil {
		t.Fatalf("ListAlerts failed: %v", err)
	}
	if len(alerts) != 1 || alerts[0].ID != resp.Alert.ID {
		t.Errorf("expected the alert to be persisted, got %v", alerts)
	}
}

func TestListEmergencyAlerts_RelativeScope(t *testing.T) {
	router, store, _ := setupTestRouter(t)
	ctx := context.Background()

	now := time.Now().UTC()
	store.CreateAlert(ctx, &models.EmergencyAlert{ID: "a1", ResidentID: "r1", ResidentName: "A", Message: "m", Timestamp: now})
	store.CreateAlert(ctx, &models.EmergencyAlert{ID: "a2", ResidentID: "r2", ResidentName: "B", Message: "m", Timestamp: now})

	seedTestUser(t, store, &models.User{
		ID: "rel1", FullName: "Rita Relative", Email: "rita@example.com",
		UserType: models.UserTypeRelative, ResidentID: "r1", IsVerified: true,
	})

	// Staff view sees everything.
	w := doJSON(t, router, http.MethodGet, "/api/emergency-alerts", nil)
	var all []models.EmergencyAlert
	decodeBody(t, w, &all)
	if len(all) != 2 {
		t.Errorf("expected 2 alerts for staff, got %d", len(all))
	}

	// A relative only sees their resident's alerts.
	w = doJSON(t, router, http.MethodGet, "/api/emergency-alerts?userType=relative&email=rita@example.com", nil)
	var scoped []models.EmergencyAlert
	decodeBody(t, w, &scoped)
	if len(scoped) != 1 || scoped[0].ID != "a1" {
		t.Errorf("expected only a1 for the relative, got %v", scoped)
	}

	// Unknown relative gets an empty array, not an error.
	w = doJSON(t, router, http.MethodGet, "/api/emergency-alerts?userType=relative&email=nobody@example.com", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var empty []models.EmergencyAlert
	decodeBody(t, w, &empty)
	if len(empty) != 0 {
		t.Errorf("expected empty array, got %v", empty)
	}
}

func TestMarkAlertRead(t *testing.T) {
	router, store, _ := setupTestRouter(t)

	store.CreateAlert(context.Background(), &models.EmergencyAlert{
		ID: "a1", ResidentID: "r1", ResidentName: "A", Message: "m", Timestamp: time.Now().UTC(),
	})

	w := doJSON(t, router, http.MethodPatch, "/api/emergency-alerts/a1/read", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var alert models.EmergencyAlert
	decodeBody(t, w, &alert)
	if !alert.Read {
		t.Error("expected alert to be read")
	}

	w = doJSON(t, router, http.MethodPatch, "/api/emergency-alerts/missing/read", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown alert, got %d", w.Code)
	}
}

func TestAlertMaintenance(t *testing.T) {
	router, store, _ := setupTestRouter(t)
	ctx := context.Background()
	now := time.Now().UTC()

	store.CreateAlert(ctx, &models.EmergencyAlert{ID: "old", ResidentID: "r1", ResidentName: "A", Message: "m", Timestamp: now.Add(-25 * time.Hour)})
	store.CreateAlert(ctx, &models.EmergencyAlert{ID: "fresh", ResidentID: "r1", ResidentName: "A", Message: "m", Timestamp: now})

	w := doJSON(t, router, http.MethodGet, "/api/emergency-alerts/maintenance/unread-count", nil)
	var count struct {
		UnreadCount int64 `json:"unreadCount"`
	}
	decodeBody(t, w, &count)
	if count.UnreadCount != 2 {
		t.Errorf("expected 2 unread, got %d", count.UnreadCount)
	}

	w = doJSON(t, router, http.MethodPost, "/api/emergency-alerts/maintenance/purge", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var purge struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	decodeBody(t, w, &purge)
	if purge.DeletedCount != 1 {
		t.Errorf("expected 1 purged alert, got %d", purge.DeletedCount)
	}
}

func TestRegisterUser(t *testing.T) {
	router, store, sender := setupTestRouter(t)

	// Admin accounts cannot self-register.
	w := doJSON(t, router, http.MethodPost, "/api/users/register", gin.H{
		"fullName": "Eve Admin", "email": "eve@example.com", "password": "pw", "userType": "admin",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for admin registration, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/users/register", gin.H{
		"fullName": "Nina Nurse", "email": "not-an-email", "password": "pw", "userType": "nurse",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid email, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/users/register", gin.H{
		"fullName": "Nina Nurse", "email": "nina@example.com", "password": "password123", "userType": "nurse",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	code, ok := sender.otpsSent["nina@example.com"]
	if !ok || len(code) != 6 {
		t.Errorf("expected a 6-digit OTP email, got %q", code)
	}

	user, err := store.GetUserByEmail(context.Background(), "nina@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if user.IsVerified {
		t.Error("new accounts must start unverified")
	}
	if user.PasswordHash == "password123" {
		t.Error("password must be stored hashed")
	}

	// Duplicate email
	w = doJSON(t, router, http.MethodPost, "/api/users/register", gin.H{
		"fullName": "Other Nina", "email": "nina@example.com", "password": "pw2", "userType": "nurse",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate email, got %d", w.Code)
	}
}

func TestRegisterRelative_KeepsResidentAssociation(t *testing.T) {
	router, store, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/users/register", gin.H{
		"fullName": "Rita Relative", "email": "rita@example.com", "password": "pw",
		"userType": "relative", "residentId": "r1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	user, err := store.GetUserByEmail(context.Background(), "rita@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if user.ResidentID != "r1" {
		t.Errorf("expected resident association r1, got %q", user.ResidentID)
	}
}

func TestLoginUser(t *testing.T) {
	router, store, _ := setupTestRouter(t)

	seedTestUser(t, store, &models.User{
		ID: "n1", FullName: "Nina Nurse", Email: "nina@example.com",
		UserType: models.UserTypeNurse, IsVerified: true,
	})

	w := doJSON(t, router, http.MethodPost, "/api/users/login", gin.H{
		"email": "nina@example.com", "password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Error("login response must not leak password material")
	}

	w = doJSON(t, router, http.MethodPost, "/api/users/login", gin.H{
		"email": "nina@example.com", "password": "wrong",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for wrong password, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/users/login", gin.H{
		"email": "ghost@example.com", "password": "password123",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown email, got %d", w.Code)
	}
}

func TestLoginUser_ArchivedAndAdmin(t *testing.T) {
	router, store, _ := setupTestRouter(t)

	seedTestUser(t, store, &models.User{
		ID: "n1", FullName: "Old Nurse", Email: "old@example.com",
		UserType: models.UserTypeNurse, IsVerified: true, IsArchived: true,
	})
	seedTestUser(t, store, &models.User{
		ID: "ad1", FullName: "Eve Admin", Email: "eve@example.com",
		UserType: models.UserTypeAdmin, IsVerified: true,
	})

	w := doJSON(t, router, http.MethodPost, "/api/users/login", gin.H{
		"email": "old@example.com", "password": "password123",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for archived account, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/users/login", gin.H{
		"email": "eve@example.com", "password": "password123",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for admin app login, got %d", w.Code)
	}
}

func TestVerifyOTP(t *testing.T) {
	router, store, _ := setupTestRouter(t)
	ctx := context.Background()

	w := doJSON(t, router, http.MethodPost, "/api/users/register", gin.H{
		"fullName": "Nina Nurse", "email": "nina@example.com", "password": "pw", "userType": "nurse",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("registration failed: %d", w.Code)
	}
	user, err := store.GetUserByEmail(ctx, "nina@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}

	// Wrong code
	w = doJSON(t, router, http.MethodPost, "/api/users/verify-otp", gin.H{
		"userId": user.ID, "otp": "000000",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for wrong OTP, got %d", w.Code)
	}

	// Correct code
	w = doJSON(t, router, http.MethodPost, "/api/users/verify-otp", gin.H{
		"userId": user.ID, "otp": user.OTP.Code,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	verified, _ := store.GetUserByID(ctx, user.ID)
	if !verified.IsVerified || !verified.OTP.Verified {
		t.Error("expected account to be verified")
	}

	// Verifying again is rejected.
	w = doJSON(t, router, http.MethodPost, "/api/users/verify-otp", gin.H{
		"userId": user.ID, "otp": user.OTP.Code,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for already verified account, got %d", w.Code)
	}
}

func TestVerifyOTP_Expired(t *testing.T) {
	router, store, _ := setupTestRouter(t)
	ctx := context.Background()

	w := doJSON(t, router, http.MethodPost, "/api/users/register", gin.H{
		"fullName": "Nina Nurse", "email": "nina@example.com", "password": "pw", "userType": "nurse",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("registration failed: %d", w.Code)
	}
	user, _ := store.GetUserByEmail(ctx, "nina@example.com")
	user.OTP.Expiry = time.Now().Add(-time.Minute)
	if err := store.UpdateUser(ctx, user); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	w = doJSON(t, router, http.MethodPost, "/api/users/verify-otp", gin.H{
		"userId": user.ID, "otp": user.OTP.Code,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for expired OTP, got %d", w.Code)
	}

	// resend-otp issues a fresh code that then verifies.
	w = doJSON(t, router, http.MethodPost, "/api/users/resend-otp", gin.H{"userId": user.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("resend-otp failed: %d", w.Code)
	}
	user, _ = store.GetUserByID(ctx, user.ID)
	w = doJSON(t, router, http.MethodPost, "/api/users/verify-otp", gin.H{
		"userId": user.ID, "otp": user.OTP.Code,
	})
	if w.Code != http.StatusOK {
		t.Errorf("expected fresh OTP to verify, got %d: %s", w.Code, w.Body.String())
	}
}

func TestArchiveUser(t *testing.T) {
	router, store, _ := setupTestRouter(t)

	seedTestUser(t, store, &models.User{
		ID: "n1", FullName: "Nina Nurse", Email: "nina@example.com",
		UserType: models.UserTypeNurse, IsVerified: true,
	})

	w := doJSON(t, router, http.MethodPut, "/api/users/archive/n1", gin.H{"isArchived": true})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	user, _ := store.GetUserByID(context.Background(), "n1")
	if !user.IsArchived || user.ArchivedDate == nil {
		t.Errorf("expected archived user with date, got %+v", user)
	}

	w = doJSON(t, router, http.MethodPut, "/api/users/archive/n1", gin.H{"isArchived": false})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	user, _ = store.GetUserByID(context.Background(), "n1")
	if user.IsArchived || user.ArchivedDate != nil {
		t.Errorf("expected unarchived user without date, got %+v", user)
	}
}

func TestResidentLifecycle(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/residents", gin.H{
		"fullName":      "Alice Smith",
		"gender":        "female",
		"contactNumber": "555-0130",
		"address":       "3 Birch Ln",
		"emergencyContact": gin.H{
			"name": "Sam Smith", "phone": "555-0131", "email": "sam@example.com",
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created models.Resident
	decodeBody(t, w, &created)
	if created.Status != models.ResidentStatusActive {
		t.Errorf("expected default active status, got %s", created.Status)
	}

	// Partial update leaves untouched fields alone.
	w = doJSON(t, router, http.MethodPut, "/api/residents/"+created.ID, gin.H{"status": "critical"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var updated models.Resident
	decodeBody(t, w, &updated)
	if updated.Status != models.ResidentStatusCritical || updated.FullName != "Alice Smith" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	w = doJSON(t, router, http.MethodGet, "/api/residents/search?query=alice&status=all", nil)
	var found []models.Resident
	decodeBody(t, w, &found)
	if len(found) != 1 {
		t.Errorf("expected 1 search hit, got %d", len(found))
	}

	w = doJSON(t, router, http.MethodDelete, "/api/residents/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/residents/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}

	// Missing name is rejected.
	w = doJSON(t, router, http.MethodPost, "/api/residents", gin.H{"gender": "male"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing name, got %d", w.Code)
	}
}

func TestCreateHealthPlan_NormalizesListFields(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	// Allergies arrive as a comma-separated string, conditions as an array.
	w := doJSON(t, router, http.MethodPost, "/api/health-plans", gin.H{
		"residentId":       "r1",
		"date":             "2026-08-29",
		"allergies":        "penicillin, nuts",
		"medicalCondition": []string{"diabetes"},
		"medications": []gin.H{
			{"medication": "insulin", "dosage": "10u", "quantity": "1"},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var plan models.HealthPlan
	decodeBody(t, w, &plan)
	if len(plan.Allergies) != 2 || plan.Allergies[1] != "nuts" {
		t.Errorf("expected normalized allergies, got %v", plan.Allergies)
	}
	if plan.Status != models.HealthStatusStable {
		t.Errorf("expected default Stable status, got %s", plan.Status)
	}
	if len(plan.Medications) != 1 || plan.Medications[0].Status != models.MedicationNotTaken {
		t.Errorf("expected medication status default, got %+v", plan.Medications)
	}
	if plan.Medications[0].Time == nil {
		t.Error("expected medication times to default to an empty list")
	}

	// Latest plan is now served for the resident.
	w = doJSON(t, router, http.MethodGet, "/api/health-plans/resident/r1", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for latest plan, got %d", w.Code)
	}

	// History of an unknown resident is a 404.
	w = doJSON(t, router, http.MethodGet, "/api/health-plans/resident/unknown/history", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for empty history, got %d", w.Code)
	}
}

func TestMealRecords(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/meal-records/resident/r1/latest", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 with no records, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/meal-records", gin.H{
		"residentId": "r1", "dietaryNeeds": "low sodium", "nutritionalGoals": "maintain",
		"date": "2026-08-29", "breakfast": "oatmeal", "lunch": "soup", "snacks": "fruit", "dinner": "fish",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/meal-records/resident/r1/latest", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var record models.MealRecord
	decodeBody(t, w, &record)
	if record.Breakfast != "oatmeal" {
		t.Errorf("unexpected record: %+v", record)
	}
}

func TestActivityRecords(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/activity-records", gin.H{
		"residentId": "r1", "name": "walk", "date": "2026-08-29",
		"description": "morning walk", "duration": 30, "location": "garden",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var record models.ActivityRecord
	decodeBody(t, w, &record)
	if record.Status != models.ActivityNotStarted {
		t.Errorf("expected default Not Started status, got %s", record.Status)
	}

	w = doJSON(t, router, http.MethodPut, "/api/activity-records/"+record.ID, gin.H{
		"residentId": "r1", "name": "walk", "date": "2026-08-29",
		"description": "morning walk", "duration": 45, "location": "garden", "status": "Completed",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	decodeBody(t, w, &record)
	if record.Status != models.ActivityCompleted || record.Duration != 45 {
		t.Errorf("unexpected update: %+v", record)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/activity-records/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown record, got %d", w.Code)
	}
}

func TestMessagingFlow(t *testing.T) {
	router, store, _ := setupTestRouter(t)
	ctx := context.Background()

	seedTestUser(t, store, &models.User{
		ID: "n1", FullName: "Nina Nurse", Email: "nina@example.com",
		UserType: models.UserTypeNurse, IsVerified: true,
	})
	seedTestUser(t, store, &models.User{
		ID: "rel1", FullName: "Rita Relative", Email: "rita@example.com",
		UserType: models.UserTypeRelative, IsVerified: true,
	})

	w := doJSON(t, router, http.MethodPost, "/api/messages", gin.H{
		"senderId": "rel1", "receiverId": "n1", "content": "How is dad today?",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Content is required.
	w = doJSON(t, router, http.MethodPost, "/api/messages", gin.H{
		"senderId": "rel1", "receiverId": "n1",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty content, got %d", w.Code)
	}

	// Opening the conversation marks inbound messages read.
	w = doJSON(t, router, http.MethodGet, "/api/messages/conversation/n1/rel1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	conv, err := store.GetConversation(ctx, "n1", "rel1")
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if len(conv) != 1 || !conv[0].IsRead {
		t.Errorf("expected inbound message marked read, got %+v", conv)
	}

	w = doJSON(t, router, http.MethodGet, "/api/messages/recent/n1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/messages/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown message, got %d", w.Code)
	}
}

func TestGetContactsList(t *testing.T) {
	router, store, _ := setupTestRouter(t)

	seedTestUser(t, store, &models.User{
		ID: "n1", FullName: "Nina Nurse", Email: "nina@example.com",
		UserType: models.UserTypeNurse, IsVerified: true,
	})
	seedTestUser(t, store, &models.User{
		ID: "rel1", FullName: "Rita Relative", Email: "rita@example.com",
		UserType: models.UserTypeRelative, IsVerified: true,
	})

	w := doJSON(t, router, http.MethodGet, "/api/users/contacts", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without currentUserId, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/users/contacts?currentUserId=n1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success  bool                        `json:"success"`
		Contacts map[string][]map[string]any `json:"contacts"`
	}
	decodeBody(t, w, &resp)
	if !resp.Success {
		t.Error("expected success response")
	}
	if len(resp.Contacts["Relative"]) != 1 {
		t.Errorf("expected Rita under Relative, got %v", resp.Contacts)
	}
	for _, group := range resp.Contacts {
		for _, contact := range group {
			if contact["userId"] == "n1" {
				t.Error("caller must be excluded from their own contact list")
			}
		}
	}
}
