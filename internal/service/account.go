package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/alertclinique/alertclinique-go/internal/crypto"
	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/alertclinique/alertclinique-go/internal/repository"
)

var (
	ErrNameRequired  = errors.New("name is required")
	ErrEmailMissing  = errors.New("email is required")
	ErrEmailConflict = errors.New("email already in use")
)

// credentials holds the hash to store and, when the server chose the
// password, the plaintext to hand back once.
type credentials struct {
	hash    string
	initial string
}

// newCredentials hashes the supplied password, or generates one when empty.
func newCredentials(password string) (credentials, error) {
	var c credentials
	if password == "" {
		generated, err := crypto.GenerateInitialPassword(crypto.InitialPasswordLength)
		if err != nil {
			return c, err
		}
		password = generated
		c.initial = generated
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return c, err
	}
	c.hash = hash
	return c, nil
}

// updatedHash returns the new hash for a supplied password, or "" to keep the
// stored one.
func updatedHash(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	return crypto.HashPassword(password)
}

// provisionAccount creates the unified account for a new profile. An existing
// account with the same username is left untouched.
func provisionAccount(ctx context.Context, tx *sql.Tx, accounts *repository.AccountRepository, email, hash string, role model.Role) error {
	acct := &model.Account{Username: email, PasswordHash: hash, UserType: role.AccountType()}
	err := accounts.CreateTx(ctx, tx, acct)
	if errors.Is(err, repository.ErrDuplicateUsername) {
		slog.Info("unified account already exists", "username", email, "role", role)
		return nil
	}
	return err
}

// syncAccount mirrors a profile's email or password change onto its unified
// account.
func syncAccount(ctx context.Context, tx *sql.Tx, accounts *repository.AccountRepository, oldEmail, newEmail, hash string) error {
	if oldEmail == newEmail && hash == "" {
		return nil
	}
	err := accounts.UpdateCredentialsTx(ctx, tx, oldEmail, newEmail, hash)
	if errors.Is(err, repository.ErrDuplicateUsername) {
		return ErrEmailConflict
	}
	return err
}
