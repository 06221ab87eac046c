package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lifeec/go-backend/internal/models"
)

const userColumns = `id, full_name, email, password_hash, phone, user_type, resident_id,
	is_archived, archived_date, is_verified, otp_code, otp_expiry, otp_verified, created_at`

func (s *SQLiteStore) CreateUser(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.FullName, u.Email, u.PasswordHash, u.Phone, u.UserType, u.ResidentID,
		u.IsArchived, u.ArchivedDate, u.IsVerified, u.OTP.Code, nullableTime(u.OTP.Expiry), u.OTP.Verified, u.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicate
		}
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ? COLLATE NOCASE`, email)
}

func (s *SQLiteStore) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, query, arg)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return u, nil
}

func (s *SQLiteStore) UpdateUser(ctx context.Context, u *models.User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET full_name = ?, email = ?, password_hash = ?, phone = ?, user_type = ?,
			resident_id = ?, is_archived = ?, archived_date = ?, is_verified = ?,
			otp_code = ?, otp_expiry = ?, otp_verified = ?
		WHERE id = ?`,
		u.FullName, u.Email, u.PasswordHash, u.Phone, u.UserType,
		u.ResidentID, u.IsArchived, u.ArchivedDate, u.IsVerified,
		u.OTP.Code, nullableTime(u.OTP.Expiry), u.OTP.Verified,
		u.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicate
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	return rowsAffectedOrNotFound(res)
}

func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	return rowsAffectedOrNotFound(res)
}

func (s *SQLiteStore) ListNotifiableByRoles(ctx context.Context, roles []models.UserType) ([]models.User, error) {
	if len(roles) == 0 {
		return []models.User{}, nil
	}
	query := `SELECT ` + userColumns + ` FROM users
		WHERE is_archived = 0 AND is_verified = 1 AND user_type IN (?` + strings.Repeat(", ?", len(roles)-1) + `)`
	args := make([]any, 0, len(roles))
	for _, r := range roles {
		args = append(args, string(r))
	}
	return s.listUsers(ctx, query, args...)
}

func (s *SQLiteStore) ListNotifiableRelatives(ctx context.Context, residentID string) ([]models.User, error) {
	return s.listUsers(ctx, `SELECT `+userColumns+` FROM users
		WHERE is_archived = 0 AND is_verified = 1 AND user_type = ? AND resident_id = ?`,
		string(models.UserTypeRelative), residentID)
}

func (s *SQLiteStore) ListContacts(ctx context.Context, roles []models.UserType) ([]models.User, error) {
	if len(roles) == 0 {
		return []models.User{}, nil
	}
	query := `SELECT ` + userColumns + ` FROM users
		WHERE is_archived = 0 AND user_type IN (?` + strings.Repeat(", ?", len(roles)-1) + `)
		ORDER BY full_name`
	args := make([]any, 0, len(roles))
	for _, r := range roles {
		args = append(args, string(r))
	}
	return s.listUsers(ctx, query, args...)
}

func (s *SQLiteStore) listUsers(ctx context.Context, query string, args ...any) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var phone, residentID, otpCode sql.NullString
	var archivedDate, otpExpiry sql.NullTime

	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &phone, &u.UserType, &residentID,
		&u.IsArchived, &archivedDate, &u.IsVerified, &otpCode, &otpExpiry, &u.OTP.Verified, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Phone = phone.String
	u.ResidentID = residentID.String
	u.OTP.Code = otpCode.String
	if otpExpiry.Valid {
		u.OTP.Expiry = otpExpiry.Time
	}
	if archivedDate.Valid {
		t := archivedDate.Time
		u.ArchivedDate = &t
	}
	return &u, nil
}
