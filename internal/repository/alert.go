package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alertclinique/alertclinique-go/internal/model"
)

var ErrAlertNotFound = errors.New("alert not found")

const alertSelect = `SELECT a.id, a.type, a.message, a.timestamp, a.patient_id, p.name, a.medecin_id
	FROM alertes a LEFT JOIN patients p ON p.id = a.patient_id`

// AlertRepository handles alert persistence operations.
type AlertRepository struct {
	db *sql.DB
}

// NewAlertRepository creates a new AlertRepository.
func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func scanAlert(row rowScanner) (*model.Alert, error) {
	a := &model.Alert{}
	var patientID, doctorID sql.NullInt64
	var patientName sql.NullString
	if err := row.Scan(&a.ID, &a.Type, &a.Message, &a.Timestamp, &patientID, &patientName, &doctorID); err != nil {
		return nil, err
	}
	if patientID.Valid {
		a.PatientID = &patientID.Int64
	}
	if patientName.Valid {
		a.PatientName = &patientName.String
	}
	if doctorID.Valid {
		a.DoctorID = &doctorID.Int64
	}
	return a, nil
}

// Create inserts a new alert and sets its generated ID.
func (r *AlertRepository) Create(ctx context.Context, a *model.Alert) error {
	query := `INSERT INTO alertes (type, message, timestamp, patient_id, medecin_id) VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, a.Type, a.Message, a.Timestamp, a.PatientID, a.DoctorID)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	a.ID = id
	return nil
}

// GetByID retrieves an alert with its patient name.
func (r *AlertRepository) GetByID(ctx context.Context, id int64) (*model.Alert, error) {
	a, err := scanAlert(r.db.QueryRowContext(ctx, alertSelect+` WHERE a.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return a, nil
}

// List retrieves all alerts, most recent first.
func (r *AlertRepository) List(ctx context.Context) ([]model.Alert, error) {
	rows, err := r.db.QueryContext(ctx, alertSelect+` ORDER BY a.timestamp DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *a)
	}

	return alerts, rows.Err()
}

// Delete removes an alert by ID.
func (r *AlertRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM alertes WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlertNotFound
	}
	return nil
}
