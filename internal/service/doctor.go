package service

import (
	"context"
	"errors"
	"strings"

	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/alertclinique/alertclinique-go/internal/repository"
)

var ErrDoctorNotFound = errors.New("doctor not found")

// DoctorService handles doctor (medecin) profile business logic.
type DoctorService struct {
	repo     *repository.DoctorRepository
	accounts *repository.AccountRepository
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(repo *repository.DoctorRepository, accounts *repository.AccountRepository) *DoctorService {
	return &DoctorService{repo: repo, accounts: accounts}
}

// List returns all doctors.
func (s *DoctorService) List(ctx context.Context) ([]model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if doctors == nil {
		doctors = []model.Doctor{}
	}
	return doctors, nil
}

// Get returns a single doctor.
func (s *DoctorService) Get(ctx context.Context, id int64) (model.Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return model.Doctor{}, ErrDoctorNotFound
		}
		return model.Doctor{}, err
	}
	return *d, nil
}

// Create stores a doctor and its unified account in one transaction.
func (s *DoctorService) Create(ctx context.Context, req model.DoctorRequest) (model.DoctorResponse, error) {
	d, err := doctorFromRequest(req)
	if err != nil {
		return model.DoctorResponse{}, err
	}

	creds, err := newCredentials(req.Password)
	if err != nil {
		return model.DoctorResponse{}, err
	}
	d.PasswordHash = creds.hash

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return model.DoctorResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.CreateTx(ctx, tx, &d); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.DoctorResponse{}, ErrEmailConflict
		}
		return model.DoctorResponse{}, err
	}
	if err := provisionAccount(ctx, tx, s.accounts, d.Email, creds.hash, model.RoleDoctor); err != nil {
		return model.DoctorResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.DoctorResponse{}, err
	}

	return model.DoctorResponse{Doctor: d, InitialPassword: creds.initial}, nil
}

// Update replaces a doctor's attributes and keeps the unified account in step.
func (s *DoctorService) Update(ctx context.Context, id int64, req model.DoctorRequest) (model.Doctor, error) {
	d, err := doctorFromRequest(req)
	if err != nil {
		return model.Doctor{}, err
	}
	d.ID = id

	existing, err := s.Get(ctx, id)
	if err != nil {
		return model.Doctor{}, err
	}

	hash, err := updatedHash(req.Password)
	if err != nil {
		return model.Doctor{}, err
	}
	d.PasswordHash = hash

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return model.Doctor{}, err
	}
	defer tx.Rollback()

	if err := s.repo.UpdateTx(ctx, tx, &d); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.Doctor{}, ErrEmailConflict
		}
		return model.Doctor{}, err
	}
	if err := syncAccount(ctx, tx, s.accounts, existing.Email, d.Email, hash); err != nil {
		return model.Doctor{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Doctor{}, err
	}

	d.PasswordHash = ""
	return d, nil
}

// Delete removes a doctor.
func (s *DoctorService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrDoctorNotFound) {
		return ErrDoctorNotFound
	}
	return err
}

func doctorFromRequest(req model.DoctorRequest) (model.Doctor, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" {
		return model.Doctor{}, ErrNameRequired
	}
	if email == "" {
		return model.Doctor{}, ErrEmailMissing
	}

	return model.Doctor{
		Name:      name,
		Specialty: req.Specialty,
		Email:     email,
		Phone:     req.Phone,
	}, nil
}
