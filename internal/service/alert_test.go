package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/alertclinique/alertclinique-go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alertRowColumns = []string{"id", "type", "message", "timestamp", "patient_id", "name", "medecin_id"}

func newMockAlertService(t *testing.T, now time.Time) (*AlertService, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	svc := NewAlertService(repository.NewAlertRepository(db))
	svc.now = func() time.Time { return now }
	return svc, mock
}

func TestAlertCreate_Validation(t *testing.T) {
	svc := NewAlertService(repository.NewAlertRepository(nil))

	_, err := svc.Create(context.Background(), model.AlertRequest{Message: "HR high"})
	if !errors.Is(err, ErrAlertTypeRequired) {
		t.Errorf("expected ErrAlertTypeRequired, got %v", err)
	}

	_, err = svc.Create(context.Background(), model.AlertRequest{Type: "vital", Message: "  "})
	if !errors.Is(err, ErrAlertMessageRequired) {
		t.Errorf("expected ErrAlertMessageRequired, got %v", err)
	}
}

func TestAlertCreate_DefaultsTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	svc, mock := newMockAlertService(t, now)

	mock.ExpectExec(`INSERT INTO alertes`).
		WithArgs("vital", "HR high", now, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(14, 1))
	mock.ExpectQuery(`SELECT a.id`).WithArgs(int64(14)).
		WillReturnRows(sqlmock.NewRows(alertRowColumns).AddRow(14, "vital", "HR high", now, nil, nil, nil))

	resp, err := svc.Create(context.Background(), model.AlertRequest{Type: "vital", Message: "HR high"})

	require.NoError(t, err)
	assert.Equal(t, int64(14), resp.ID)
	assert.True(t, resp.Timestamp.Equal(now))
	assert.Equal(t, model.UnknownPatientName, resp.PatientName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertCreate_KeepsSuppliedTimestamp(t *testing.T) {
	svc, mock := newMockAlertService(t, time.Now())
	paris := time.FixedZone("CEST", 2*3600)
	supplied := time.Date(2024, 5, 1, 12, 0, 0, 0, paris)
	patientID := int64(3)

	mock.ExpectExec(`INSERT INTO alertes`).WillReturnResult(sqlmock.NewResult(15, 1))
	mock.ExpectQuery(`SELECT a.id`).WithArgs(int64(15)).
		WillReturnRows(sqlmock.NewRows(alertRowColumns).
			AddRow(15, "chute", "Chute détectée", supplied.UTC(), patientID, "Marie Curie", nil))

	resp, err := svc.Create(context.Background(), model.AlertRequest{
		Type: "chute", Message: "Chute détectée", Timestamp: &supplied, PatientID: &patientID,
	})

	require.NoError(t, err)
	assert.True(t, resp.Timestamp.Equal(supplied))
	assert.Equal(t, "Marie Curie", resp.PatientName)
	require.NotNil(t, resp.PatientID)
	assert.Equal(t, patientID, *resp.PatientID)
}

func TestAlertGet_NotFound(t *testing.T) {
	svc, mock := newMockAlertService(t, time.Now())

	mock.ExpectQuery(`SELECT a.id`).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	_, err := svc.Get(context.Background(), 99)

	assert.ErrorIs(t, err, ErrAlertNotFound)
}

func TestAlertList_PatientNameFallback(t *testing.T) {
	svc, mock := newMockAlertService(t, time.Now())
	ts := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT a.id`).WillReturnRows(sqlmock.NewRows(alertRowColumns).
		AddRow(2, "vital", "SpO2 bas", ts, 1, "Paul", 4).
		AddRow(1, "vital", "HR high", ts, 77, nil, nil))

	alerts, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "Paul", alerts[0].PatientName)
	assert.Equal(t, model.UnknownPatientName, alerts[1].PatientName)
	require.NotNil(t, alerts[0].DoctorID)
	assert.Equal(t, int64(4), *alerts[0].DoctorID)
}

func TestAlertsToResponse_EmptySlice(t *testing.T) {
	result := alertsToResponse(nil)

	if result == nil {
		t.Fatal("expected non-nil empty slice, got nil")
	}
	if len(result) != 0 {
		t.Errorf("expected 0 alerts, got %d", len(result))
	}
}

func TestAlertDelete_NotFound(t *testing.T) {
	svc, mock := newMockAlertService(t, time.Now())

	mock.ExpectExec(`DELETE FROM alertes`).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, svc.Delete(context.Background(), 5), ErrAlertNotFound)
}
