// Package postgres implements the storage.Store interface on PostgreSQL.
package postgres

import (
	"database/sql"
	"fmt"

	"github.com/mkral/budget-planner/internal/models"
	"github.com/mkral/budget-planner/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store provides database operations backed by PostgreSQL
type Store struct {
	db *sql.DB
}

// New initializes a new Postgres store and ensures the schema exists
func New(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

const schema = `
CREATE SCHEMA IF NOT EXISTS budget;

CREATE TABLE IF NOT EXISTS budget.users (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS budget.members (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES budget.users(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	color      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS budget.incomes (
	id           BIGSERIAL PRIMARY KEY,
	member_id    BIGINT NOT NULL REFERENCES budget.members(id) ON DELETE CASCADE,
	name         TEXT NOT NULL,
	amount       NUMERIC(14,2) NOT NULL DEFAULT 0,
	frequency    TEXT NOT NULL DEFAULT 'monthly',
	day_of_month INT NOT NULL DEFAULT 0,
	account_id   BIGINT,
	active       BOOLEAN NOT NULL DEFAULT TRUE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS budget.banks (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES budget.users(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	short_name TEXT NOT NULL DEFAULT '',
	color      TEXT NOT NULL DEFAULT '',
	notes      TEXT NOT NULL DEFAULT '',
	active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS budget.accounts (
	id               BIGSERIAL PRIMARY KEY,
	user_id          BIGINT NOT NULL REFERENCES budget.users(id) ON DELETE CASCADE,
	name             TEXT NOT NULL,
	type             TEXT NOT NULL DEFAULT 'checking',
	bank_id          BIGINT REFERENCES budget.banks(id) ON DELETE SET NULL,
	member_id        BIGINT REFERENCES budget.members(id) ON DELETE SET NULL,
	currency         TEXT NOT NULL DEFAULT 'EUR',
	balance          NUMERIC(14,2) NOT NULL DEFAULT 0,
	account_number   TEXT NOT NULL DEFAULT '',
	is_premium       BOOLEAN NOT NULL DEFAULT FALSE,
	premium_min_flow NUMERIC(14,2),
	credit_limit     NUMERIC(14,2),
	active           BOOLEAN NOT NULL DEFAULT TRUE,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS budget.transfers (
	id              BIGSERIAL PRIMARY KEY,
	user_id         BIGINT NOT NULL REFERENCES budget.users(id) ON DELETE CASCADE,
	name            TEXT NOT NULL,
	from_account_id BIGINT NOT NULL REFERENCES budget.accounts(id) ON DELETE CASCADE,
	to_account_id   BIGINT NOT NULL REFERENCES budget.accounts(id) ON DELETE CASCADE,
	amount          NUMERIC(14,2) NOT NULL,
	day_of_month    INT NOT NULL DEFAULT 1,
	description     TEXT NOT NULL DEFAULT '',
	category        TEXT NOT NULL DEFAULT 'technical',
	display_order   INT NOT NULL DEFAULT 0,
	active          BOOLEAN NOT NULL DEFAULT TRUE,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	CHECK (from_account_id <> to_account_id)
);

CREATE TABLE IF NOT EXISTS budget.expenses (
	id           BIGSERIAL PRIMARY KEY,
	user_id      BIGINT NOT NULL REFERENCES budget.users(id) ON DELETE CASCADE,
	name         TEXT NOT NULL,
	amount       NUMERIC(14,2) NOT NULL,
	category     TEXT NOT NULL DEFAULT '',
	frequency    TEXT NOT NULL DEFAULT 'monthly',
	day_of_month INT NOT NULL DEFAULT 1,
	due_month    INT NOT NULL DEFAULT 0,
	account_id   BIGINT REFERENCES budget.accounts(id) ON DELETE SET NULL,
	member_id    BIGINT REFERENCES budget.members(id) ON DELETE SET NULL,
	notes        TEXT NOT NULL DEFAULT '',
	active       BOOLEAN NOT NULL DEFAULT TRUE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS budget.budgets (
	id            BIGSERIAL PRIMARY KEY,
	user_id       BIGINT NOT NULL REFERENCES budget.users(id) ON DELETE CASCADE,
	name          TEXT NOT NULL,
	type          TEXT NOT NULL DEFAULT '',
	monthly_limit NUMERIC(14,2) NOT NULL DEFAULT 0,
	color         TEXT NOT NULL DEFAULT '',
	icon          TEXT NOT NULL DEFAULT '',
	member_id     BIGINT REFERENCES budget.members(id) ON DELETE SET NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS budget.goals (
	id                   BIGSERIAL PRIMARY KEY,
	user_id              BIGINT NOT NULL REFERENCES budget.users(id) ON DELETE CASCADE,
	name                 TEXT NOT NULL,
	variant              TEXT NOT NULL,
	color                TEXT NOT NULL DEFAULT '',
	icon                 TEXT NOT NULL DEFAULT '',
	weekly_amount        NUMERIC(14,2) NOT NULL DEFAULT 0,
	day_of_week          INT NOT NULL DEFAULT 0,
	monthly_contribution NUMERIC(14,2) NOT NULL DEFAULT 0,
	current_balance      NUMERIC(14,2) NOT NULL DEFAULT 0,
	yearly_amount        NUMERIC(14,2) NOT NULL DEFAULT 0,
	target_month         INT NOT NULL DEFAULT 1,
	current_saved        NUMERIC(14,2) NOT NULL DEFAULT 0,
	account_id           BIGINT REFERENCES budget.accounts(id) ON DELETE SET NULL,
	notes                TEXT NOT NULL DEFAULT '',
	active               BOOLEAN NOT NULL DEFAULT TRUE,
	created_at           TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS budget.monthly_plans (
	id             BIGSERIAL PRIMARY KEY,
	goal_id        BIGINT NOT NULL REFERENCES budget.goals(id) ON DELETE CASCADE,
	year           INT NOT NULL,
	month          INT NOT NULL,
	planned_count  INT NOT NULL DEFAULT 0,
	realized_count INT NOT NULL DEFAULT 0,
	planned_total  NUMERIC(14,2) NOT NULL DEFAULT 0,
	realized_total NUMERIC(14,2) NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (goal_id, year, month)
);
`

// ensureSchema applies the schema DDL (idempotent)
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// CreateUser creates a new user in the database
func (s *Store) CreateUser(user *models.User) error {
	query := `
		INSERT INTO budget.users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := s.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (s *Store) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM budget.users
		WHERE email = $1`
	err := s.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id
func (s *Store) FindUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM budget.users
		WHERE id = $1`
	err := s.db.QueryRow(query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all users
func (s *Store) ListUsers() ([]models.User, error) {
	rows, err := s.db.Query(`SELECT id, username, email, password_hash, created_at FROM budget.users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()
	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
