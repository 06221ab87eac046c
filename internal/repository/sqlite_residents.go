package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lifeec/go-backend/internal/models"
)

const residentColumns = `id, full_name, date_of_birth, gender, contact_number, address,
	ec_name, ec_phone, ec_email, ec_relation, status, created_by, created_at, updated_at`

func (s *SQLiteStore) CreateResident(ctx context.Context, r *models.Resident) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO residents (`+residentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.FullName, r.DateOfBirth, r.Gender, r.ContactNumber, r.Address,
		r.EmergencyContact.Name, r.EmergencyContact.Phone, r.EmergencyContact.Email, r.EmergencyContact.Relation,
		r.Status, r.CreatedBy, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting resident: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetResidentByID(ctx context.Context, id string) (*models.Resident, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+residentColumns+` FROM residents WHERE id = ?`, id)
	r, err := scanResident(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching resident: %w", err)
	}
	return r, nil
}

func (s *SQLiteStore) ListResidents(ctx context.Context) ([]models.Resident, error) {
	return s.listResidents(ctx, `SELECT `+residentColumns+` FROM residents ORDER BY created_at DESC`)
}

func (s *SQLiteStore) UpdateResident(ctx context.Context, r *models.Resident) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE residents SET full_name = ?, date_of_birth = ?, gender = ?, contact_number = ?, address = ?,
			ec_name = ?, ec_phone = ?, ec_email = ?, ec_relation = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		r.FullName, r.DateOfBirth, r.Gender, r.ContactNumber, r.Address,
		r.EmergencyContact.Name, r.EmergencyContact.Phone, r.EmergencyContact.Email, r.EmergencyContact.Relation,
		r.Status, r.UpdatedAt,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating resident: %w", err)
	}
	return rowsAffectedOrNotFound(res)
}

func (s *SQLiteStore) DeleteResident(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM residents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting resident: %w", err)
	}
	return rowsAffectedOrNotFound(res)
}

func (s *SQLiteStore) SearchResidents(ctx context.Context, query string, status models.ResidentStatus) ([]models.Resident, error) {
	q := `SELECT ` + residentColumns + ` FROM residents WHERE 1=1`
	args := []any{}
	if query != "" {
		q += ` AND full_name LIKE ? COLLATE NOCASE`
		args = append(args, "%"+query+"%")
	}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, string(status))
	}
	q += ` ORDER BY created_at DESC`
	return s.listResidents(ctx, q, args...)
}

func (s *SQLiteStore) listResidents(ctx context.Context, query string, args ...any) ([]models.Resident, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing residents: %w", err)
	}
	defer rows.Close()

	residents := []models.Resident{}
	for rows.Next() {
		r, err := scanResident(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning resident: %w", err)
		}
		residents = append(residents, *r)
	}
	return residents, rows.Err()
}

func scanResident(row rowScanner) (*models.Resident, error) {
	var r models.Resident
	var ecName, ecPhone, ecEmail, ecRelation sql.NullString

	err := row.Scan(
		&r.ID, &r.FullName, &r.DateOfBirth, &r.Gender, &r.ContactNumber, &r.Address,
		&ecName, &ecPhone, &ecEmail, &ecRelation, &r.Status, &r.CreatedBy, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.EmergencyContact = models.EmergencyContact{
		Name:     ecName.String,
		Phone:    ecPhone.String,
		Email:    ecEmail.String,
		Relation: ecRelation.String,
	}
	return &r, nil
}
