package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/alertclinique/alertclinique-go/internal/crypto"
	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/alertclinique/alertclinique-go/internal/repository"
)

const (
	MsgEmailRequired      = "Email is required"
	MsgPasswordRequired   = "Password is required"
	MsgUserTypeRequired   = "User type (admin/patient/medecin) is required"
	MsgInvalidUserType    = "Invalid user type. Must be 'admin', 'patient' or 'medecin'"
	MsgInvalidCredentials = "Invalid email or password"
	MsgAuthenticated      = "Authentication successful"

	adminFallbackName = "Administrateur"
	doctorNamePrefix  = "Dr. "
)

// AccountStore looks up unified accounts by username.
type AccountStore interface {
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
}

// AdminStore looks up administrators by username.
type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
}

// PatientStore looks up patient profiles by email.
type PatientStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Patient, error)
}

// DoctorStore looks up doctor profiles by email.
type DoctorStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
}

// profile is the role-specific record: display attributes plus the legacy
// per-table password hash.
type profile struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
}

// profileLookup returns (nil, nil) when no profile exists for email.
type profileLookup func(ctx context.Context, email string) (*profile, error)

type memberRole struct {
	role       model.Role
	label      string
	namePrefix string
	lookup     profileLookup
}

// AuthService resolves login attempts for patients, doctors and admins.
//
// Patients and doctors are checked against the unified users table first and
// fall back to their profile table, so accounts created before the users
// table existed can still sign in.
type AuthService struct {
	accounts  AccountStore
	admins    AdminStore
	members   map[model.Role]memberRole
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(accounts AccountStore, admins AdminStore, patients PatientStore, doctors DoctorStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		accounts: accounts,
		admins:   admins,
		members: map[model.Role]memberRole{
			model.RolePatient: {
				role:   model.RolePatient,
				label:  "Patient",
				lookup: patientLookup(patients),
			},
			model.RoleDoctor: {
				role:       model.RoleDoctor,
				label:      "Medecin",
				namePrefix: doctorNamePrefix,
				lookup:     doctorLookup(doctors),
			},
		},
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

func patientLookup(store PatientStore) profileLookup {
	return func(ctx context.Context, email string) (*profile, error) {
		p, err := store.GetByEmail(ctx, email)
		if errors.Is(err, repository.ErrPatientNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &profile{ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone, PasswordHash: p.PasswordHash}, nil
	}
}

func doctorLookup(store DoctorStore) profileLookup {
	return func(ctx context.Context, email string) (*profile, error) {
		d, err := store.GetByEmail(ctx, email)
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &profile{ID: d.ID, Name: d.Name, Email: d.Email, Phone: d.Phone, PasswordHash: d.PasswordHash}, nil
	}
}

// Authenticate checks a credential triple. Rejections are reported in the
// outcome; the error is reserved for store failures.
func (s *AuthService) Authenticate(ctx context.Context, req model.LoginRequest) (model.AuthOutcome, error) {
	if strings.TrimSpace(req.Email) == "" {
		return model.AuthFailure(MsgEmailRequired), nil
	}
	if strings.TrimSpace(req.Password) == "" {
		return model.AuthFailure(MsgPasswordRequired), nil
	}
	if strings.TrimSpace(req.UserType) == "" {
		return model.AuthFailure(MsgUserTypeRequired), nil
	}
	role, ok := model.ParseRole(req.UserType)
	if !ok {
		return model.AuthFailure(MsgInvalidUserType), nil
	}

	email := strings.TrimSpace(req.Email)

	var (
		identity *model.Identity
		reason   string
		err      error
	)
	if role == model.RoleAdmin {
		identity, reason, err = s.authenticateAdmin(ctx, email, req.Password)
	} else {
		identity, reason, err = s.authenticateMember(ctx, s.members[role], email, req.Password)
	}
	if err != nil {
		return model.AuthOutcome{}, err
	}
	if identity == nil {
		slog.Info("login rejected", "user_type", role, "reason", reason)
		return model.AuthFailure(reason), nil
	}

	token, err := crypto.GenerateToken(identity.ID, string(identity.Role), identity.Email, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthOutcome{}, fmt.Errorf("signing token: %w", err)
	}

	id := identity.ID
	return model.AuthOutcome{
		Success:  true,
		Message:  MsgAuthenticated,
		UserType: identity.Role,
		UserID:   &id,
		UserName: identity.DisplayName,
		Email:    identity.Email,
		Phone:    identity.Phone,
		Token:    token,
	}, nil
}

func (s *AuthService) authenticateMember(ctx context.Context, m memberRole, email, password string) (*model.Identity, string, error) {
	account, err := s.accounts.GetByUsername(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, "", err
	}

	if err == nil && account.MatchesRole(m.role) {
		if !s.passwordMatches(password, account.PasswordHash) {
			return nil, MsgInvalidCredentials, nil
		}

		p, err := m.lookup(ctx, email)
		if err != nil {
			return nil, "", err
		}
		if p != nil {
			return &model.Identity{ID: p.ID, Role: m.role, DisplayName: p.Name, Email: p.Email, Phone: p.Phone}, "", nil
		}
		return &model.Identity{
			ID:          account.ID,
			Role:        m.role,
			DisplayName: m.namePrefix + displayNameFromEmail(email),
			Email:       email,
		}, "", nil
	}

	p, err := m.lookup(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if p == nil {
		return nil, fmt.Sprintf("%s not found with email: %s", m.label, email), nil
	}
	if !s.passwordMatches(password, p.PasswordHash) {
		return nil, MsgInvalidCredentials, nil
	}
	return &model.Identity{ID: p.ID, Role: m.role, DisplayName: p.Name, Email: p.Email, Phone: p.Phone}, "", nil
}

func (s *AuthService) authenticateAdmin(ctx context.Context, email, password string) (*model.Identity, string, error) {
	admin, err := s.admins.GetByUsername(ctx, email)
	if errors.Is(err, repository.ErrAdminNotFound) {
		return nil, MsgInvalidCredentials, nil
	}
	if err != nil {
		return nil, "", err
	}
	if !s.passwordMatches(password, admin.PasswordHash) {
		return nil, MsgInvalidCredentials, nil
	}

	name := admin.Username
	if strings.TrimSpace(name) == "" {
		name = adminFallbackName
	}
	// The caller's email is echoed back, not the stored username.
	return &model.Identity{ID: admin.ID, Role: model.RoleAdmin, DisplayName: name, Email: email}, "", nil
}

// passwordMatches treats a missing or unreadable stored hash as a mismatch.
func (s *AuthService) passwordMatches(password, hash string) bool {
	ok, err := crypto.VerifyPassword(password, hash)
	if err != nil {
		if !errors.Is(err, crypto.ErrEmptyHash) {
			slog.Warn("stored password hash unreadable", "error", err)
		}
		return false
	}
	return ok
}

// displayNameFromEmail capitalizes the local part of an email address.
func displayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	r, size := utf8.DecodeRuneInString(local)
	if r == utf8.RuneError {
		return local
	}
	return string(unicode.ToUpper(r)) + local[size:]
}
