package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	// Serialized writes; the service is read-heavy and sqlite locks whole-db.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			phone TEXT,
			user_type TEXT NOT NULL,
			resident_id TEXT,
			is_archived INTEGER NOT NULL DEFAULT 0,
			archived_date DATETIME,
			is_verified INTEGER NOT NULL DEFAULT 0,
			otp_code TEXT,
			otp_expiry DATETIME,
			otp_verified INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS residents (
			id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			date_of_birth DATETIME NOT NULL,
			gender TEXT NOT NULL,
			contact_number TEXT NOT NULL,
			address TEXT NOT NULL,
			ec_name TEXT,
			ec_phone TEXT,
			ec_email TEXT,
			ec_relation TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_by TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS emergency_alerts (
			id TEXT PRIMARY KEY,
			resident_id TEXT NOT NULL,
			resident_name TEXT NOT NULL,
			message TEXT NOT NULL,
			ec_name TEXT,
			ec_phone TEXT,
			ec_email TEXT,
			ec_relation TEXT,
			read INTEGER NOT NULL DEFAULT 0,
			timestamp DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS health_plans (
			id TEXT PRIMARY KEY,
			resident_id TEXT NOT NULL,
			date TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Stable',
			allergies TEXT,
			medical_condition TEXT,
			medications TEXT,
			assessment TEXT,
			instructions TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meal_records (
			id TEXT PRIMARY KEY,
			resident_id TEXT NOT NULL,
			dietary_needs TEXT NOT NULL,
			nutritional_goals TEXT NOT NULL,
			date TEXT NOT NULL,
			breakfast TEXT NOT NULL,
			lunch TEXT NOT NULL,
			snacks TEXT NOT NULL,
			dinner TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS activity_records (
			id TEXT PRIMARY KEY,
			resident_id TEXT NOT NULL,
			name TEXT NOT NULL,
			date TEXT NOT NULL,
			description TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Not Started',
			duration INTEGER NOT NULL,
			location TEXT NOT NULL,
			notes TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			sender_id TEXT NOT NULL,
			receiver_id TEXT NOT NULL,
			content TEXT NOT NULL,
			is_read INTEGER NOT NULL DEFAULT 0,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
		CREATE INDEX IF NOT EXISTS idx_users_type ON users(user_type);
		CREATE INDEX IF NOT EXISTS idx_alerts_resident_id ON emergency_alerts(resident_id);
		CREATE INDEX IF NOT EXISTS idx_alerts_timestamp ON emergency_alerts(timestamp);
		CREATE INDEX IF NOT EXISTS idx_health_plans_resident ON health_plans(resident_id);
		CREATE INDEX IF NOT EXISTS idx_meal_records_resident ON meal_records(resident_id);
		CREATE INDEX IF NOT EXISTS idx_activity_records_resident ON activity_records(resident_id);
		CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(sender_id, receiver_id, timestamp);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
