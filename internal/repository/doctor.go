package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alertclinique/alertclinique-go/internal/model"
)

var ErrDoctorNotFound = errors.New("doctor not found")

const doctorColumns = `id, nom, COALESCE(specialite, ''), email, COALESCE(phone, ''), COALESCE(password, '')`

// DoctorRepository handles persistence for the medecins table.
type DoctorRepository struct {
	db *sql.DB
}

// NewDoctorRepository creates a new DoctorRepository.
func NewDoctorRepository(db *sql.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// BeginTx starts a new database transaction.
func (r *DoctorRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

func scanDoctor(row rowScanner) (*model.Doctor, error) {
	d := &model.Doctor{}
	if err := row.Scan(&d.ID, &d.Name, &d.Specialty, &d.Email, &d.Phone, &d.PasswordHash); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DoctorRepository) getOne(ctx context.Context, where string, arg any) (*model.Doctor, error) {
	d, err := scanDoctor(r.db.QueryRowContext(ctx, `SELECT `+doctorColumns+` FROM medecins WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return d, nil
}

// GetByID retrieves a doctor by ID.
func (r *DoctorRepository) GetByID(ctx context.Context, id int64) (*model.Doctor, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByEmail retrieves a doctor by email.
func (r *DoctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	return r.getOne(ctx, "email = ?", email)
}

// List retrieves all doctors ordered by ID.
func (r *DoctorRepository) List(ctx context.Context) ([]model.Doctor, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+doctorColumns+` FROM medecins ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []model.Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, *d)
	}

	return doctors, rows.Err()
}

// CreateTx inserts a doctor within tx and sets its generated ID.
func (r *DoctorRepository) CreateTx(ctx context.Context, tx *sql.Tx, d *model.Doctor) error {
	query := `INSERT INTO medecins (nom, specialite, email, phone, password) VALUES (?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		d.Name, nullString(d.Specialty), d.Email, nullString(d.Phone), nullString(d.PasswordHash),
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

	d.ID = id
	return nil
}

// UpdateTx replaces a doctor's attributes within tx. An empty PasswordHash
// keeps the stored hash.
func (r *DoctorRepository) UpdateTx(ctx context.Context, tx *sql.Tx, d *model.Doctor) error {
	query := `UPDATE medecins SET nom = ?, specialite = ?, email = ?, phone = ?,
		password = COALESCE(NULLIF(?, ''), password)
		WHERE id = ?`

	_, err := tx.ExecContext(ctx, query,
		d.Name, nullString(d.Specialty), d.Email, nullString(d.Phone), d.PasswordHash, d.ID,
	)
	if isDuplicateEntryError(err) {
		return ErrDuplicateUsername
	}
	return err
}

// Delete removes a doctor by ID.
func (r *DoctorRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM medecins WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDoctorNotFound
	}
	return nil
}
