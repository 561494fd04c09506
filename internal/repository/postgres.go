package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/creditkeeper/creditkeeper/internal/models"
)

// Postgres-backed stores. Profiles are document-shaped aggregates, so they
// are stored as JSONB keyed by id rather than normalized across tables.

// Migrate creates the schema and tables if they do not exist
func Migrate(db *sql.DB) error {
	statements := []string{
		`CREATE SCHEMA IF NOT EXISTS creditkeeper`,
		`CREATE TABLE IF NOT EXISTS creditkeeper.profiles (
			id         TEXT PRIMARY KEY,
			doc        JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS creditkeeper.user_profiles (
			customer_id TEXT PRIMARY KEY,
			doc         JSONB NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS creditkeeper.users (
			id            BIGSERIAL PRIMARY KEY,
			username      TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// PostgresProfileStore persists profiles in the creditkeeper.profiles table
type PostgresProfileStore struct {
	db *sql.DB
}

// NewPostgresProfileStore initializes a Postgres profile store
func NewPostgresProfileStore(db *sql.DB) *PostgresProfileStore {
	return &PostgresProfileStore{db: db}
}

// Get returns the profile with the given id
func (s *PostgresProfileStore) Get(id string) (*models.Profile, error) {
	var doc []byte
	query := `SELECT doc FROM creditkeeper.profiles WHERE id = $1`
	err := s.db.QueryRow(query, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	profile := &models.Profile{}
	if err := json.Unmarshal(doc, profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", id, err)
	}
	return profile, nil
}

// Put stores the profile under its id, replacing any previous version
func (s *PostgresProfileStore) Put(profile *models.Profile) error {
	doc, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile %s: %w", profile.ID, err)
	}

	query := `
		INSERT INTO creditkeeper.profiles (id, doc, created_at, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET doc = $2, updated_at = CURRENT_TIMESTAMP`
	if _, err := s.db.Exec(query, profile.ID, doc); err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}
	return nil
}

// List returns all stored profiles
func (s *PostgresProfileStore) List() ([]*models.Profile, error) {
	rows, err := s.db.Query(`SELECT doc FROM creditkeeper.profiles`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profile := &models.Profile{}
		if err := json.Unmarshal(doc, profile); err != nil {
			return nil, fmt.Errorf("failed to decode profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// PostgresUserProfileStore persists learner profiles as JSONB documents
type PostgresUserProfileStore struct {
	db *sql.DB
}

// NewPostgresUserProfileStore initializes a Postgres user-profile store
func NewPostgresUserProfileStore(db *sql.DB) *PostgresUserProfileStore {
	return &PostgresUserProfileStore{db: db}
}

// Get returns the learner profile for the given customer id
func (s *PostgresUserProfileStore) Get(customerID string) (*models.UserProfile, error) {
	var doc []byte
	query := `SELECT doc FROM creditkeeper.user_profiles WHERE customer_id = $1`
	err := s.db.QueryRow(query, customerID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user profile %s: %w", customerID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}

	profile := &models.UserProfile{}
	if err := json.Unmarshal(doc, profile); err != nil {
		return nil, fmt.Errorf("failed to decode user profile %s: %w", customerID, err)
	}
	return profile, nil
}

// Put stores the learner profile under its customer id
func (s *PostgresUserProfileStore) Put(profile *models.UserProfile) error {
	doc, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode user profile %s: %w", profile.CustomerID, err)
	}

	query := `
		INSERT INTO creditkeeper.user_profiles (customer_id, doc, created_at, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (customer_id) DO UPDATE SET doc = $2, updated_at = CURRENT_TIMESTAMP`
	if _, err := s.db.Exec(query, profile.CustomerID, doc); err != nil {
		return fmt.Errorf("failed to store user profile: %w", err)
	}
	return nil
}

// PostgresUserStore persists registered users
type PostgresUserStore struct {
	db *sql.DB
}

// NewPostgresUserStore initializes a Postgres user store
func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

// CreateUser creates a new user row
func (s *PostgresUserStore) CreateUser(user *models.User) error {
	query := `
		INSERT INTO creditkeeper.users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := s.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (s *PostgresUserStore) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM creditkeeper.users
		WHERE email = $1`
	err := s.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
