package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alertclinique/alertclinique-go/internal/model"
)

var ErrPatientNotFound = errors.New("patient not found")

const patientColumns = `id, name, email, COALESCE(phone, ''), age, COALESCE(gender, ''),
	COALESCE(medical_condition, ''), COALESCE(status, ''), COALESCE(last_visit, ''),
	COALESCE(assigned_doctor, ''), COALESCE(adresse, ''), COALESCE(password, '')`

// PatientRepository handles patient persistence operations.
type PatientRepository struct {
	db *sql.DB
}

// NewPatientRepository creates a new PatientRepository.
func NewPatientRepository(db *sql.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// BeginTx starts a new database transaction.
func (r *PatientRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

func scanPatient(row rowScanner) (*model.Patient, error) {
	p := &model.Patient{}
	var age sql.NullInt64
	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.Phone, &age, &p.Gender,
		&p.Condition, &p.Status, &p.LastVisit,
		&p.AssignedDoctor, &p.Address, &p.PasswordHash,
	)
	if err != nil {
		return nil, err
	}
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	return p, nil
}

func (r *PatientRepository) getOne(ctx context.Context, where string, arg any) (*model.Patient, error) {
	p, err := scanPatient(r.db.QueryRowContext(ctx, `SELECT `+patientColumns+` FROM patients WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetByID retrieves a patient by ID.
func (r *PatientRepository) GetByID(ctx context.Context, id int64) (*model.Patient, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByEmail retrieves a patient by email.
func (r *PatientRepository) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	return r.getOne(ctx, "email = ?", email)
}

// List retrieves all patients ordered by ID.
func (r *PatientRepository) List(ctx context.Context) ([]model.Patient, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+patientColumns+` FROM patients ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patients []model.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, *p)
	}

	return patients, rows.Err()
}

// CreateTx inserts a patient within tx and sets its generated ID.
func (r *PatientRepository) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Patient) error {
	query := `INSERT INTO patients (name, email, phone, age, gender, medical_condition, status,
		last_visit, assigned_doctor, adresse, password)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		p.Name, p.Email, nullString(p.Phone), p.Age, nullString(p.Gender),
		nullString(p.Condition), nullString(p.Status), nullString(p.LastVisit),
		nullString(p.AssignedDoctor), nullString(p.Address), nullString(p.PasswordHash),
	)
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

	p.ID = id
	return nil
}

// UpdateTx replaces a patient's attributes within tx. An empty PasswordHash
// keeps the stored hash. MySQL reports unchanged rows as unaffected, so the
// caller checks existence first.
func (r *PatientRepository) UpdateTx(ctx context.Context, tx *sql.Tx, p *model.Patient) error {
	query := `UPDATE patients SET name = ?, email = ?, phone = ?, age = ?, gender = ?,
		medical_condition = ?, status = ?, last_visit = ?, assigned_doctor = ?, adresse = ?,
		password = COALESCE(NULLIF(?, ''), password)
		WHERE id = ?`

	_, err := tx.ExecContext(ctx, query,
		p.Name, p.Email, nullString(p.Phone), p.Age, nullString(p.Gender),
		nullString(p.Condition), nullString(p.Status), nullString(p.LastVisit),
		nullString(p.AssignedDoctor), nullString(p.Address), p.PasswordHash, p.ID,
	)
	if isDuplicateEntryError(err) {
		return ErrDuplicateUsername
	}
	return err
}

// Delete removes a patient by ID.
func (r *PatientRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPatientNotFound
	}
	return nil
}
