package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alertclinique/alertclinique-go/internal/crypto"
	"github.com/alertclinique/alertclinique-go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminCreate(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewAdminService(repository.NewAdminRepository(db))

	mock.ExpectExec(`INSERT INTO admins`).
		WithArgs("root", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	admin, err := svc.Create(context.Background(), " root ", "admin-pass")

	require.NoError(t, err)
	assert.Equal(t, int64(1), admin.ID)
	ok, err := crypto.VerifyPassword("admin-pass", admin.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminCreate_Exists(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewAdminService(repository.NewAdminRepository(db))

	mock.ExpectExec(`INSERT INTO admins`).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'root' for key 'username'"))

	_, err := svc.Create(context.Background(), "root", "admin-pass")

	assert.ErrorIs(t, err, ErrAdminExists)
}

func TestAdminCreate_Validation(t *testing.T) {
	svc := NewAdminService(repository.NewAdminRepository(nil))

	_, err := svc.Create(context.Background(), "  ", "pw")
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.Create(context.Background(), "root", "")
	assert.ErrorIs(t, err, ErrAdminPasswordRequired)
}
