package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alertclinique/alertclinique-go/internal/model"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrAdminNotFound     = errors.New("admin not found")
)

// AccountRepository reads and writes the unified users table.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetByUsername retrieves an account by username (the email for patients and doctors).
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	query := `SELECT id, username, COALESCE(password, ''), user_type FROM users WHERE username = ?`

	a := &model.Account{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.UserType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return a, nil
}

// CreateTx inserts an account within tx and sets its generated ID.
func (r *AccountRepository) CreateTx(ctx context.Context, tx *sql.Tx, a *model.Account) error {
	query := `INSERT INTO users (username, password, user_type) VALUES (?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, a.Username, a.PasswordHash, a.UserType)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateUsername
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	a.ID = id
	return nil
}

// UpdateCredentialsTx renames the account keyed by oldUsername and replaces its
// hash when passwordHash is non-empty. A missing account is not an error.
func (r *AccountRepository) UpdateCredentialsTx(ctx context.Context, tx *sql.Tx, oldUsername, newUsername, passwordHash string) error {
	query := `UPDATE users SET username = ?, password = COALESCE(NULLIF(?, ''), password) WHERE username = ?`

	_, err := tx.ExecContext(ctx, query, newUsername, passwordHash, oldUsername)
	if isDuplicateEntryError(err) {
		return ErrDuplicateUsername
	}
	return err
}

// AdminRepository reads and writes the admins table.
type AdminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetByUsername retrieves an admin by username.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	query := `SELECT id, username, password FROM admins WHERE username = ?`

	a := &model.Admin{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&a.ID, &a.Username, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	return a, nil
}

// Create inserts a new admin and sets its generated ID.
func (r *AdminRepository) Create(ctx context.Context, a *model.Admin) error {
	query := `INSERT INTO admins (username, password) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, a.Username, a.PasswordHash)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateUsername
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	a.ID = id
	return nil
}
