package service

import (
	"context"
	"errors"
	"strings"

	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/alertclinique/alertclinique-go/internal/repository"
)

var ErrPatientNotFound = errors.New("patient not found")

// PatientService handles patient profile business logic.
type PatientService struct {
	repo     *repository.PatientRepository
	accounts *repository.AccountRepository
}

// NewPatientService creates a new PatientService.
func NewPatientService(repo *repository.PatientRepository, accounts *repository.AccountRepository) *PatientService {
	return &PatientService{repo: repo, accounts: accounts}
}

// List returns all patients.
func (s *PatientService) List(ctx context.Context) ([]model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if patients == nil {
		patients = []model.Patient{}
	}
	return patients, nil
}

// Get returns a single patient.
func (s *PatientService) Get(ctx context.Context, id int64) (model.Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			return model.Patient{}, ErrPatientNotFound
		}
		return model.Patient{}, err
	}
	return *p, nil
}

// Create stores a patient and its unified account in one transaction.
func (s *PatientService) Create(ctx context.Context, req model.PatientRequest) (model.PatientResponse, error) {
	p, err := patientFromRequest(req)
	if err != nil {
		return model.PatientResponse{}, err
	}

	creds, err := newCredentials(req.Password)
	if err != nil {
		return model.PatientResponse{}, err
	}
	p.PasswordHash = creds.hash

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return model.PatientResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.CreateTx(ctx, tx, &p); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.PatientResponse{}, ErrEmailConflict
		}
		return model.PatientResponse{}, err
	}
	if err := provisionAccount(ctx, tx, s.accounts, p.Email, creds.hash, model.RolePatient); err != nil {
		return model.PatientResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.PatientResponse{}, err
	}

	return model.PatientResponse{Patient: p, InitialPassword: creds.initial}, nil
}

// Update replaces a patient's attributes. A changed email or a new password
// is carried over to the unified account.
func (s *PatientService) Update(ctx context.Context, id int64, req model.PatientRequest) (model.Patient, error) {
	p, err := patientFromRequest(req)
	if err != nil {
		return model.Patient{}, err
	}
	p.ID = id

	existing, err := s.Get(ctx, id)
	if err != nil {
		return model.Patient{}, err
	}

	hash, err := updatedHash(req.Password)
	if err != nil {
		return model.Patient{}, err
	}
	p.PasswordHash = hash

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return model.Patient{}, err
	}
	defer tx.Rollback()

	if err := s.repo.UpdateTx(ctx, tx, &p); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.Patient{}, ErrEmailConflict
		}
		return model.Patient{}, err
	}
	if err := syncAccount(ctx, tx, s.accounts, existing.Email, p.Email, hash); err != nil {
		return model.Patient{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Patient{}, err
	}

	p.PasswordHash = ""
	return p, nil
}

// Delete removes a patient.
func (s *PatientService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrPatientNotFound) {
		return ErrPatientNotFound
	}
	return err
}

func patientFromRequest(req model.PatientRequest) (model.Patient, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" {
		return model.Patient{}, ErrNameRequired
	}
	if email == "" {
		return model.Patient{}, ErrEmailMissing
	}

	return model.Patient{
		Name:           name,
		Email:          email,
		Phone:          req.Phone,
		Age:            req.Age,
		Gender:         req.Gender,
		Condition:      req.Condition,
		Status:         req.Status,
		LastVisit:      req.LastVisit,
		AssignedDoctor: req.AssignedDoctor,
		Address:        req.Address,
	}, nil
}
