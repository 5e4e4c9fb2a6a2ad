package model

// Doctor represents a doctor (medecin) profile.
type Doctor struct {
	ID           int64  `json:"id"`
	Name         string `json:"nom"`
	Specialty    string `json:"specialite"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
}

// DoctorRequest represents a doctor create or update request.
type DoctorRequest struct {
	Name      string `json:"nom"`
	Specialty string `json:"specialite"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// DoctorResponse wraps a created doctor. InitialPassword is set only when
// the server generated the password.
type DoctorResponse struct {
	Doctor
	InitialPassword string `json:"initial_password,omitempty"`
}
