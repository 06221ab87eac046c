package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lifeec/go-backend/internal/models"
)

func (s *SQLiteStore) CreateAlert(ctx context.Context, a *models.EmergencyAlert) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO emergency_alerts (id, resident_id, resident_name, message, ec_name, ec_phone, ec_email, ec_relation, read, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ResidentID, a.ResidentName, a.Message,
		a.EmergencyContact.Name, a.EmergencyContact.Phone, a.EmergencyContact.Email, a.EmergencyContact.Relation,
		a.Read, a.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("error inserting alert: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListAlerts(ctx context.Context, f AlertFilter) ([]models.EmergencyAlert, error) {
	query := `
		SELECT id, resident_id, resident_name, message, ec_name, ec_phone, ec_email, ec_relation, read, timestamp
		FROM emergency_alerts`
	args := []any{}

	if f.ResidentID != "" {
		query += ` WHERE resident_id = ?`
		args = append(args, f.ResidentID)
	}
	query += ` ORDER BY timestamp DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing alerts: %w", err)
	}
	defer rows.Close()

	alerts := []models.EmergencyAlert{}
	for rows.Next() {
		var a models.EmergencyAlert
		if err := rows.Scan(
			&a.ID, &a.ResidentID, &a.ResidentName, &a.Message,
			&a.EmergencyContact.Name, &a.EmergencyContact.Phone, &a.EmergencyContact.Email, &a.EmergencyContact.Relation,
			&a.Read, &a.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("error scanning alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (s *SQLiteStore) MarkAlertRead(ctx context.Context, id string) (*models.EmergencyAlert, error) {
	// Idempotent: marking an already-read alert is not an error.
	_, err := s.db.ExecContext(ctx, `UPDATE emergency_alerts SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("error updating alert: %w", err)
	}

	var a models.EmergencyAlert
	err = s.db.QueryRowContext(ctx, `
		SELECT id, resident_id, resident_name, message, ec_name, ec_phone, ec_email, ec_relation, read, timestamp
		FROM emergency_alerts WHERE id = ?`, id,
	).Scan(
		&a.ID, &a.ResidentID, &a.ResidentName, &a.Message,
		&a.EmergencyContact.Name, &a.EmergencyContact.Phone, &a.EmergencyContact.Email, &a.EmergencyContact.Relation,
		&a.Read, &a.Timestamp,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching alert: %w", err)
	}
	return &a, nil
}

func (s *SQLiteStore) PurgeAlertsOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM emergency_alerts WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error purging alerts: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) CountUnreadAlerts(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM emergency_alerts WHERE read = 0`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting unread alerts: %w", err)
	}
	return n, nil
}
