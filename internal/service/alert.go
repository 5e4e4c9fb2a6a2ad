package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/alertclinique/alertclinique-go/internal/repository"
)

var (
	ErrAlertTypeRequired    = errors.New("type is required")
	ErrAlertMessageRequired = errors.New("message is required")
	ErrAlertNotFound        = errors.New("alert not found")
)

// AlertService handles clinical alert business logic.
type AlertService struct {
	repo *repository.AlertRepository
	now  func() time.Time
}

// NewAlertService creates a new AlertService.
func NewAlertService(repo *repository.AlertRepository) *AlertService {
	return &AlertService{repo: repo, now: time.Now}
}

// Create records an alert. A missing timestamp defaults to now (UTC).
func (s *AlertService) Create(ctx context.Context, req model.AlertRequest) (model.AlertResponse, error) {
	typ := strings.TrimSpace(req.Type)
	msg := strings.TrimSpace(req.Message)
	if typ == "" {
		return model.AlertResponse{}, ErrAlertTypeRequired
	}
	if msg == "" {
		return model.AlertResponse{}, ErrAlertMessageRequired
	}

	ts := s.now().UTC()
	if req.Timestamp != nil {
		ts = req.Timestamp.UTC()
	}

	a := model.Alert{
		Type:      typ,
		Message:   msg,
		Timestamp: ts,
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
	}
	if err := s.repo.Create(ctx, &a); err != nil {
		return model.AlertResponse{}, err
	}

	// Re-read to pick up the patient name from the join.
	created, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return alertToResponse(a), nil
	}
	return alertToResponse(*created), nil
}

// Get returns a single alert.
func (s *AlertService) Get(ctx context.Context, id int64) (model.AlertResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return model.AlertResponse{}, ErrAlertNotFound
		}
		return model.AlertResponse{}, err
	}
	return alertToResponse(*a), nil
}

// List returns all alerts, most recent first.
func (s *AlertService) List(ctx context.Context) ([]model.AlertResponse, error) {
	alerts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return alertsToResponse(alerts), nil
}

// Delete removes an alert.
func (s *AlertService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrAlertNotFound) {
		return ErrAlertNotFound
	}
	return err
}

func alertToResponse(a model.Alert) model.AlertResponse {
	name := model.UnknownPatientName
	if a.PatientName != nil && *a.PatientName != "" {
		name = *a.PatientName
	}
	return model.AlertResponse{
		ID:          a.ID,
		Type:        a.Type,
		Message:     a.Message,
		Timestamp:   a.Timestamp,
		PatientID:   a.PatientID,
		PatientName: name,
		DoctorID:    a.DoctorID,
	}
}

// alertsToResponse converts a slice of Alert to a non-nil slice of AlertResponse.
func alertsToResponse(alerts []model.Alert) []model.AlertResponse {
	result := make([]model.AlertResponse, len(alerts))
	for i, a := range alerts {
		result[i] = alertToResponse(a)
	}
	return result
}
