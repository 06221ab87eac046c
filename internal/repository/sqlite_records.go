package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lifeec/go-backend/internal/models"
)

// Health plan list fields (allergies, conditions, medications) are stored
// as JSON text columns; sqlite has no array type and the fields are only
// ever read back whole.

func (s *SQLiteStore) CreateHealthPlan(ctx context.Context, p *models.HealthPlan) error {
	allergies, conditions, medications, err := marshalPlanFields(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO health_plans (id, resident_id, date, status, allergies, medical_condition, medications, assessment, instructions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ResidentID, p.Date, p.Status, allergies, conditions, medications,
		p.Assessment, p.Instructions, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting health plan: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetHealthPlanByID(ctx context.Context, id string) (*models.HealthPlan, error) {
	row := s.db.QueryRowContext(ctx, healthPlanSelect+` WHERE id = ?`, id)
	return healthPlanFromRow(row)
}

func (s *SQLiteStore) GetLatestHealthPlan(ctx context.Context, residentID string) (*models.HealthPlan, error) {
	row := s.db.QueryRowContext(ctx, healthPlanSelect+` WHERE resident_id = ? ORDER BY created_at DESC LIMIT 1`, residentID)
	return healthPlanFromRow(row)
}

func (s *SQLiteStore) ListHealthPlans(ctx context.Context, residentID string) ([]models.HealthPlan, error) {
	rows, err := s.db.QueryContext(ctx, healthPlanSelect+` WHERE resident_id = ? ORDER BY created_at DESC`, residentID)
	if err != nil {
		return nil, fmt.Errorf("error listing health plans: %w", err)
	}
	defer rows.Close()

	plans := []models.HealthPlan{}
	for rows.Next() {
		p, err := scanHealthPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

func (s *SQLiteStore) UpdateHealthPlan(ctx context.Context, p *models.HealthPlan) error {
	allergies, conditions, medications, err := marshalPlanFields(p)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE health_plans SET date = ?, status = ?, allergies = ?, medical_condition = ?, medications = ?,
			assessment = ?, instructions = ?, updated_at = ?
		WHERE id = ?`,
		p.Date, p.Status, allergies, conditions, medications, p.Assessment, p.Instructions, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating health plan: %w", err)
	}
	return rowsAffectedOrNotFound(res)
}

const healthPlanSelect = `SELECT id, resident_id, date, status, allergies, medical_condition, medications, assessment, instructions, created_at, updated_at FROM health_plans`

func marshalPlanFields(p *models.HealthPlan) (string, string, string, error) {
	allergies, err := json.Marshal(p.Allergies)
	if err != nil {
		return "", "", "", fmt.Errorf("error encoding allergies: %w", err)
	}
	conditions, err := json.Marshal(p.MedicalCondition)
	if err != nil {
		return "", "", "", fmt.Errorf("error encoding medical conditions: %w", err)
	}
	medications, err := json.Marshal(p.Medications)
	if err != nil {
		return "", "", "", fmt.Errorf("error encoding medications: %w", err)
	}
	return string(allergies), string(conditions), string(medications), nil
}

func healthPlanFromRow(row *sql.Row) (*models.HealthPlan, error) {
	p, err := scanHealthPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func scanHealthPlan(row rowScanner) (*models.HealthPlan, error) {
	var p models.HealthPlan
	var allergies, conditions, medications sql.NullString
	var assessment, instructions sql.NullString

	err := row.Scan(&p.ID, &p.ResidentID, &p.Date, &p.Status, &allergies, &conditions, &medications,
		&assessment, &instructions, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.Assessment = assessment.String
	p.Instructions = instructions.String
	if allergies.Valid && allergies.String != "" {
		if err := json.Unmarshal([]byte(allergies.String), &p.Allergies); err != nil {
			return nil, fmt.Errorf("error decoding allergies: %w", err)
		}
	}
	if conditions.Valid && conditions.String != "" {
		if err := json.Unmarshal([]byte(conditions.String), &p.MedicalCondition); err != nil {
			return nil, fmt.Errorf("error decoding medical conditions: %w", err)
		}
	}
	if medications.Valid && medications.String != "" {
		if err := json.Unmarshal([]byte(medications.String), &p.Medications); err != nil {
			return nil, fmt.Errorf("error decoding medications: %w", err)
		}
	}
	return &p, nil
}

func (s *SQLiteStore) CreateMealRecord(ctx context.Context, m *models.MealRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meal_records (id, resident_id, dietary_needs, nutritional_goals, date, breakfast, lunch, snacks, dinner, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ResidentID, m.DietaryNeeds, m.NutritionalGoals, m.Date,
		m.Breakfast, m.Lunch, m.Snacks, m.Dinner, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting meal record: %w", err)
	}
	return nil
}

const mealRecordSelect = `SELECT id, resident_id, dietary_needs, nutritional_goals, date, breakfast, lunch, snacks, dinner, created_at, updated_at FROM meal_records`

func (s *SQLiteStore) GetMealRecordByID(ctx context.Context, id string) (*models.MealRecord, error) {
	var m models.MealRecord
	err := s.db.QueryRowContext(ctx, mealRecordSelect+` WHERE id = ?`, id).Scan(
		&m.ID, &m.ResidentID, &m.DietaryNeeds, &m.NutritionalGoals, &m.Date,
		&m.Breakfast, &m.Lunch, &m.Snacks, &m.Dinner, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching meal record: %w", err)
	}
	return &m, nil
}

func (s *SQLiteStore) GetLatestMealRecord(ctx context.Context, residentID string) (*models.MealRecord, error) {
	var m models.MealRecord
	err := s.db.QueryRowContext(ctx, mealRecordSelect+` WHERE resident_id = ? ORDER BY date DESC LIMIT 1`, residentID).Scan(
		&m.ID, &m.ResidentID, &m.DietaryNeeds, &m.NutritionalGoals, &m.Date,
		&m.Breakfast, &m.Lunch, &m.Snacks, &m.Dinner, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching meal record: %w", err)
	}
	return &m, nil
}

func (s *SQLiteStore) ListMealRecords(ctx context.Context, residentID string) ([]models.MealRecord, error) {
	rows, err := s.db.QueryContext(ctx, mealRecordSelect+` WHERE resident_id = ? ORDER BY date DESC`, residentID)
	if err != nil {
		return nil, fmt.Errorf("error listing meal records: %w", err)
	}
	defer rows.Close()

	records := []models.MealRecord{}
	for rows.Next() {
		var m models.MealRecord
		if err := rows.Scan(
			&m.ID, &m.ResidentID, &m.DietaryNeeds, &m.NutritionalGoals, &m.Date,
			&m.Breakfast, &m.Lunch, &m.Snacks, &m.Dinner, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning meal record: %w", err)
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) UpdateMealRecord(ctx context.Context, m *models.MealRecord) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE meal_records SET dietary_needs = ?, nutritional_goals = ?, date = ?, breakfast = ?, lunch = ?, snacks = ?, dinner = ?, updated_at = ?
		WHERE id = ?`,
		m.DietaryNeeds, m.NutritionalGoals, m.Date, m.Breakfast, m.Lunch, m.Snacks, m.Dinner, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating meal record: %w", err)
	}
	return rowsAffectedOrNotFound(res)
}

func (s *SQLiteStore) DeleteMealRecord(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM meal_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting meal record: %w", err)
	}
	return rowsAffectedOrNotFound(res)
}

func (s *SQLiteStore) CreateActivityRecord(ctx context.Context, a *models.ActivityRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity_records (id, resident_id, name, date, description, status, duration, location, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ResidentID, a.Name, a.Date, a.Description, a.Status,
		a.Duration, a.Location, a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting activity record: %w", err)
	}
	return nil
}

const activityRecordSelect = `SELECT id, resident_id, name, date, description, status, duration, location, notes, created_at, updated_at FROM activity_records`

func (s *SQLiteStore) GetActivityRecordByID(ctx context.Context, id string) (*models.ActivityRecord, error) {
	var a models.ActivityRecord
	err := s.db.QueryRowContext(ctx, activityRecordSelect+` WHERE id = ?`, id).Scan(
		&a.ID, &a.ResidentID, &a.Name, &a.Date, &a.Description, &a.Status,
		&a.Duration, &a.Location, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching activity record: %w", err)
	}
	return &a, nil
}

func (s *SQLiteStore) GetLatestActivityRecord(ctx context.Context, residentID string) (*models.ActivityRecord, error) {
	var a models.ActivityRecord
	err := s.db.QueryRowContext(ctx, activityRecordSelect+` WHERE resident_id = ? ORDER BY date DESC LIMIT 1`, residentID).Scan(
		&a.ID, &a.ResidentID, &a.Name, &a.Date, &a.Description, &a.Status,
		&a.Duration, &a.Location, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching activity record: %w", err)
	}
	return &a, nil
}

func (s *SQLiteStore) ListActivityRecords(ctx context.Context, residentID string) ([]models.ActivityRecord, error) {
	rows, err := s.db.QueryContext(ctx, activityRecordSelect+` WHERE resident_id = ? ORDER BY date DESC`, residentID)
	if err != nil {
		return nil, fmt.Errorf("error listing activity records: %w", err)
	}
	defer rows.Close()

	records := []models.ActivityRecord{}
	for rows.Next() {
		var a models.ActivityRecord
		if err := rows.Scan(
			&a.ID, &a.ResidentID, &a.Name, &a.Date, &a.Description, &a.Status,
			&a.Duration, &a.Location, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning activity record: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) UpdateActivityRecord(ctx context.Context, a *models.ActivityRecord) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE activity_records SET name = ?, date = ?, description = ?, status = ?, duration = ?, location = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		a.Name, a.Date, a.Description, a.Status, a.Duration, a.Location, a.Notes, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating activity record: %w", err)
	}
	return rowsAffectedOrNotFound(res)
}

func (s *SQLiteStore) DeleteActivityRecord(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM activity_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting activity record: %w", err)
	}
	return rowsAffectedOrNotFound(res)
}
