package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alertclinique/alertclinique-go/internal/crypto"
	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/alertclinique/alertclinique-go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var patientRowColumns = []string{
	"id", "name", "email", "phone", "age", "gender", "medical_condition",
	"status", "last_visit", "assigned_doctor", "adresse", "password",
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newMockPatientService(t *testing.T) (*PatientService, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	return NewPatientService(repository.NewPatientRepository(db), repository.NewAccountRepository(db)), mock
}

func TestPatientCreate_Validation(t *testing.T) {
	svc := NewPatientService(repository.NewPatientRepository(nil), repository.NewAccountRepository(nil))

	tests := []struct {
		name string
		req  model.PatientRequest
		want error
	}{
		{"missing name", model.PatientRequest{Email: "a@x.com"}, ErrNameRequired},
		{"blank name", model.PatientRequest{Name: "   ", Email: "a@x.com"}, ErrNameRequired},
		{"missing email", model.PatientRequest{Name: "Alice"}, ErrEmailMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPatientCreate_GeneratesInitialPassword(t *testing.T) {
	svc, mock := newMockPatientService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO patients`).WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("alice@x.com", sqlmock.AnyArg(), "Patient").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), model.PatientRequest{Name: "Alice", Email: " alice@x.com "})

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "alice@x.com", resp.Email)
	assert.Len(t, resp.InitialPassword, crypto.InitialPasswordLength)

	ok, err := crypto.VerifyPassword(resp.InitialPassword, resp.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok, "stored hash should match the returned initial password")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientCreate_SuppliedPasswordNotEchoed(t *testing.T) {
	svc, mock := newMockPatientService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO patients`).WillReturnResult(sqlmock.NewResult(6, 1))
	mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), model.PatientRequest{Name: "Bob", Email: "bob@x.com", Password: "s3cret-pass"})

	require.NoError(t, err)
	assert.Empty(t, resp.InitialPassword)
	ok, err := crypto.VerifyPassword("s3cret-pass", resp.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientCreate_ExistingAccountKept(t *testing.T) {
	svc, mock := newMockPatientService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO patients`).WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'carl@x.com' for key 'username'"))
	mock.ExpectCommit()

	_, err := svc.Create(context.Background(), model.PatientRequest{Name: "Carl", Email: "carl@x.com", Password: "pw-12345"})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientCreate_DuplicateEmail(t *testing.T) {
	svc, mock := newMockPatientService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO patients`).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'dup@x.com' for key 'email'"))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), model.PatientRequest{Name: "Dup", Email: "dup@x.com", Password: "pw-12345"})

	assert.ErrorIs(t, err, ErrEmailConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientUpdate_NotFound(t *testing.T) {
	svc, mock := newMockPatientService(t)

	mock.ExpectQuery(`SELECT id, name, email`).WithArgs(int64(42)).WillReturnError(sql.ErrNoRows)

	_, err := svc.Update(context.Background(), 42, model.PatientRequest{Name: "X", Email: "x@x.com"})

	assert.ErrorIs(t, err, ErrPatientNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientUpdate_EmailChangeRenamesAccount(t *testing.T) {
	svc, mock := newMockPatientService(t)

	mock.ExpectQuery(`SELECT id, name, email`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(patientRowColumns).
			AddRow(3, "Marie", "old@x.com", "", nil, "F", "", "", "", "", "", "hash"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE patients SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET`).
		WithArgs("new@x.com", "", "old@x.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p, err := svc.Update(context.Background(), 3, model.PatientRequest{Name: "Marie", Email: "new@x.com", Gender: "F"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, "new@x.com", p.Email)
	assert.Empty(t, p.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientUpdate_UnchangedCredentialsSkipAccount(t *testing.T) {
	svc, mock := newMockPatientService(t)

	mock.ExpectQuery(`SELECT id, name, email`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(patientRowColumns).
			AddRow(3, "Marie", "marie@x.com", "", 60, "F", "", "", "", "", "", "hash"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE patients SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := svc.Update(context.Background(), 3, model.PatientRequest{Name: "Marie C.", Email: "marie@x.com"})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientDelete_NotFound(t *testing.T) {
	svc, mock := newMockPatientService(t)

	mock.ExpectExec(`DELETE FROM patients`).WithArgs(int64(8)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Delete(context.Background(), 8)

	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestPatientList_EmptyIsNotNil(t *testing.T) {
	svc, mock := newMockPatientService(t)

	mock.ExpectQuery(`SELECT id, name, email`).WillReturnRows(sqlmock.NewRows(patientRowColumns))

	patients, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, patients)
	assert.Empty(t, patients)
}
