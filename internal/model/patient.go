package model

// Patient represents a patient profile.
type Patient struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Age            *int   `json:"age,omitempty"`
	Gender         string `json:"gender"`
	Condition      string `json:"condition"`
	Status         string `json:"status"`
	LastVisit      string `json:"lastVisit"`
	AssignedDoctor string `json:"assignedDoctor"`
	Address        string `json:"adresse"`
	PasswordHash   string `json:"-"`
}

// PatientRequest represents a patient create or update request.
type PatientRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Age            *int   `json:"age"`
	Gender         string `json:"gender"`
	Condition      string `json:"condition"`
	Status         string `json:"status"`
	LastVisit      string `json:"lastVisit"`
	AssignedDoctor string `json:"assignedDoctor"`
	Address        string `json:"adresse"`
	Password       string `json:"password"`
}

// PatientResponse wraps a created patient. InitialPassword is set only when
// the server generated the password.
type PatientResponse struct {
	Patient
	InitialPassword string `json:"initial_password,omitempty"`
}
