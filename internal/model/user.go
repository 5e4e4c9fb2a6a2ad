package model

import "strings"

// Role is the user type claimed at login.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "medecin"
	RoleAdmin   Role = "admin"
)

// ParseRole resolves a claimed user type case-insensitively.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RolePatient:
		return RolePatient, true
	case RoleDoctor:
		return RoleDoctor, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// AccountType returns the discriminator stored in the users table for this role.
func (r Role) AccountType() string {
	switch r {
	case RolePatient:
		return "Patient"
	case RoleDoctor:
		return "Medecin"
	case RoleAdmin:
		return "Admin"
	}
	return ""
}

// Account represents a row of the unified users table.
// Username holds the email for patient and doctor accounts.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	UserType     string
}

// MatchesRole reports whether the stored discriminator belongs to role.
func (a *Account) MatchesRole(role Role) bool {
	return strings.EqualFold(a.UserType, role.AccountType())
}

// Admin represents an administrator account.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
}
