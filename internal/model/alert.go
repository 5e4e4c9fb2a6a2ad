package model

import "time"

// UnknownPatientName is shown for alerts without a linked patient.
const UnknownPatientName = "Patient inconnu"

// Alert represents a clinical alert in the database.
type Alert struct {
	ID          int64
	Type        string
	Message     string
	Timestamp   time.Time
	PatientID   *int64
	PatientName *string
	DoctorID    *int64
}

// AlertRequest represents an alert creation request.
type AlertRequest struct {
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	Timestamp *time.Time `json:"timestamp"`
	PatientID *int64     `json:"patientId"`
	DoctorID  *int64     `json:"medecinId"`
}

// AlertResponse represents an alert in API responses.
type AlertResponse struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	PatientID   *int64    `json:"patientId"`
	PatientName string    `json:"patientName"`
	DoctorID    *int64    `json:"medecinId"`
}
