package service

import (
	"context"
	"errors"
	"strings"

	"github.com/alertclinique/alertclinique-go/internal/crypto"
	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/alertclinique/alertclinique-go/internal/repository"
)

var (
	ErrUsernameRequired      = errors.New("username is required")
	ErrAdminPasswordRequired = errors.New("password is required")
	ErrAdminExists           = errors.New("admin already exists")
)

// AdminService provisions administrator accounts.
type AdminService struct {
	repo *repository.AdminRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(repo *repository.AdminRepository) *AdminService {
	return &AdminService{repo: repo}
}

// Create hashes password and stores a new administrator.
func (s *AdminService) Create(ctx context.Context, username, password string) (model.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return model.Admin{}, ErrUsernameRequired
	}
	if password == "" {
		return model.Admin{}, ErrAdminPasswordRequired
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return model.Admin{}, err
	}

	admin := model.Admin{Username: username, PasswordHash: hash}
	if err := s.repo.Create(ctx, &admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.Admin{}, ErrAdminExists
		}
		return model.Admin{}, err
	}

	return admin, nil
}
