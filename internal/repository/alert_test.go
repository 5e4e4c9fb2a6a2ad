package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alertRowColumns = []string{"id", "type", "message", "timestamp", "patient_id", "name", "medecin_id"}

func TestAlertRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAlertRepository(db)

	ts := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT a.id, a.type`).
		WillReturnRows(sqlmock.NewRows(alertRowColumns).
			AddRow(1, "cardiaque", "Rythme élevé", ts, 3, "Marie Curie", 9).
			AddRow(2, "sommeil", "Réveils fréquents", ts, nil, nil, nil))

	alerts, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, alerts, 2)
	require.NotNil(t, alerts[0].PatientName)
	assert.Equal(t, "Marie Curie", *alerts[0].PatientName)
	assert.Equal(t, int64(9), *alerts[0].DoctorID)
	assert.Nil(t, alerts[1].PatientID)
	assert.Nil(t, alerts[1].PatientName)
	assert.Equal(t, ts, alerts[1].Timestamp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAlertRepository(db)

	mock.ExpectQuery(`SELECT a.id, a.type`).WithArgs(int64(4)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, ErrAlertNotFound)
}

func TestAlertRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAlertRepository(db)

	patientID := int64(3)
	ts := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO alertes`).
		WithArgs("cardiaque", "Rythme élevé", ts, patientID, nil).
		WillReturnResult(sqlmock.NewResult(15, 1))

	a := &model.Alert{Type: "cardiaque", Message: "Rythme élevé", Timestamp: ts, PatientID: &patientID}
	require.NoError(t, repo.Create(context.Background(), a))

	assert.Equal(t, int64(15), a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepository_Delete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAlertRepository(db)

	mock.ExpectExec(`DELETE FROM alertes`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 1), ErrAlertNotFound)
}
