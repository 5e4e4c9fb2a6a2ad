package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/alertclinique/alertclinique-go/internal/predictor"
	"github.com/alertclinique/alertclinique-go/internal/repository"
)

const (
	defaultAge             = 45
	defaultGender          = "M"
	defaultHRVariability   = 50.0
	defaultSteps           = 5000
	defaultMoodScore       = 5.0
	defaultSleepEfficiency = 85.0
	defaultNumAwakenings   = 1

	msgUnexpectedPrefix = "Erreur lors de la prédiction IA: "
	msgSimplePrefix     = "Erreur lors de la prédiction simplifiée: "
	msgAvailable        = "Service IA disponible"
	msgUnavailable      = "Service IA indisponible"
)

// Predictor sends feature sets to the external anomaly-detection service.
type Predictor interface {
	Predict(ctx context.Context, req model.PredictionRequest) (map[string]any, error)
	Health(ctx context.Context) bool
}

// PatientReader looks up patients by ID.
type PatientReader interface {
	GetByID(ctx context.Context, id int64) (*model.Patient, error)
}

// PredictionService proxies prediction requests and reconciles the responses.
type PredictionService struct {
	predictor Predictor
	patients  PatientReader
	now       func() time.Time
}

// NewPredictionService creates a new PredictionService.
func NewPredictionService(p Predictor, patients PatientReader) *PredictionService {
	return &PredictionService{predictor: p, patients: patients, now: time.Now}
}

// Health probes the predictor.
func (s *PredictionService) Health(ctx context.Context) model.HealthResponse {
	if s.predictor.Health(ctx) {
		return model.HealthResponse{Available: true, Message: msgAvailable}
	}
	return model.HealthResponse{Available: false, Message: msgUnavailable}
}

// Predict forwards a full feature set and normalizes the answer.
func (s *PredictionService) Predict(ctx context.Context, req model.PredictionRequest) model.PredictionResult {
	raw, err := s.predictor.Predict(ctx, req)
	if err != nil {
		var perr *predictor.Error
		if errors.As(err, &perr) {
			return model.PredictionFailed(perr.Kind, perr.Error())
		}
		return model.PredictionFailed(model.FailureUnexpected, msgUnexpectedPrefix+err.Error())
	}

	result := Normalize(raw)
	if f := result.Failure(); f != nil {
		slog.Warn("prediction failed", "kind", f.Kind, "error", f.Message)
	}
	return result
}

// PredictSimple completes a partial request with defaults and predicts.
func (s *PredictionService) PredictSimple(ctx context.Context, partial model.SimplePredictionRequest) model.PredictionResult {
	req, err := s.BuildRequestDefaults(ctx, partial)
	if err != nil {
		slog.Error("building prediction request", "error", err)
		return model.PredictionFailed(model.FailureUnexpected, msgSimplePrefix+err.Error())
	}
	return s.Predict(ctx, req)
}

// BuildRequestDefaults fills a full request from a partial one. Age and gender
// come from the request, then the patient record, then fixed defaults. The
// calendar fields always describe the current date.
func (s *PredictionService) BuildRequestDefaults(ctx context.Context, partial model.SimplePredictionRequest) (model.PredictionRequest, error) {
	age := partial.Age
	gender := partial.Gender

	if (age == nil || gender == nil) && partial.PatientID != nil {
		p, err := s.patients.GetByID(ctx, *partial.PatientID)
		switch {
		case err == nil:
			if age == nil && p.Age != nil {
				age = p.Age
			}
			if gender == nil && p.Gender != "" {
				g := p.Gender
				gender = &g
			}
		case !errors.Is(err, repository.ErrPatientNotFound):
			return model.PredictionRequest{}, err
		}
	}

	req := model.PredictionRequest{
		PatientID:          partial.PatientID,
		HeartRate:          partial.HeartRate,
		HRVariability:      floatOr(partial.HRVariability, defaultHRVariability),
		Steps:              intOr(partial.Steps, defaultSteps),
		MoodScore:          floatOr(partial.MoodScore, defaultMoodScore),
		SleepDurationHours: partial.SleepDurationHours,
		SleepEfficiency:    floatOr(partial.SleepEfficiency, defaultSleepEfficiency),
		NumAwakenings:      intOr(partial.NumAwakenings, defaultNumAwakenings),
		Age:                intOr(age, defaultAge),
		MedicationTaken:    partial.MedicationTaken != nil && *partial.MedicationTaken,
		IsFemale:           strings.EqualFold(stringOr(gender, defaultGender), "F"),
	}

	today := s.now()
	req.DayOfWeek = mondayIndex(today.Weekday())
	req.Weekend = today.Weekday() == time.Saturday || today.Weekday() == time.Sunday
	req.Date = today.Format(time.DateOnly)

	return req, nil
}

// mondayIndex maps time.Weekday (Sunday = 0) to Monday = 0 .. Sunday = 6.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Normalize reconciles a predictor response. An "error" key wins; otherwise
// the verdict is read from the "prediction" object when present and from the
// top level when not, since the predictor has answered in both shapes.
func Normalize(raw map[string]any) model.PredictionResult {
	if v, ok := raw["error"]; ok {
		return model.PredictionFailed(model.FailurePayload, errorText(v))
	}

	payload := raw
	if nested, ok := raw["prediction"]; ok {
		m, isObject := nested.(map[string]any)
		if !isObject {
			return model.PredictionFailed(model.FailureUnexpected, msgUnexpectedPrefix+"prediction is not an object")
		}
		payload = m
	}

	var p model.Prediction
	if b, ok := payload["alert_flag"].(bool); ok {
		p.AlertFlag = b
	}
	if f, ok := toFloat(payload["anomaly_score"]); ok {
		p.AnomalyScore = f
	}
	if f, ok := toFloat(payload["threshold_used"]); ok {
		p.ThresholdUsed = &f
	}
	if f, ok := toFloat(payload["confidence"]); ok {
		p.Confidence = &f
	}

	return model.PredictionOK(p)
}

func errorText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "unknown predictor error"
	}
	return string(b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func floatOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func intOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

func stringOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
