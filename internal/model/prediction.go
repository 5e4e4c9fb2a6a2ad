package model

// PredictionRequest is the full feature set sent to the predictor.
type PredictionRequest struct {
	PatientID          *int64   `json:"patient_id"`
	HeartRate          *float64 `json:"heart_rate"`
	HRVariability      float64  `json:"hr_variability"`
	Steps              int      `json:"steps"`
	MoodScore          float64  `json:"mood_score"`
	SleepDurationHours *float64 `json:"sleep_duration_hours"`
	SleepEfficiency    float64  `json:"sleep_efficiency"`
	NumAwakenings      int      `json:"num_awakenings"`
	Age                int      `json:"age"`
	DayOfWeek          int      `json:"day_of_week"` // 0 = Monday
	Weekend            bool     `json:"weekend"`
	MedicationTaken    bool     `json:"medication_taken"`
	IsFemale           bool     `json:"is_female"`
	Date               string   `json:"date"` // YYYY-MM-DD
}

// SimplePredictionRequest is a partial request completed with defaults.
type SimplePredictionRequest struct {
	PatientID          *int64   `json:"patientId"`
	Age                *int     `json:"age"`
	Gender             *string  `json:"gender"` // "M" or "F"
	HeartRate          *float64 `json:"heartRate"`
	HRVariability      *float64 `json:"hrVariability"`
	Steps              *int     `json:"steps"`
	MoodScore          *float64 `json:"moodScore"`
	SleepDurationHours *float64 `json:"sleepDurationHours"`
	SleepEfficiency    *float64 `json:"sleepEfficiency"`
	NumAwakenings      *int     `json:"numAwakenings"`
	MedicationTaken    *bool    `json:"medicationTaken"`
}

// Prediction is a successful predictor verdict.
type Prediction struct {
	AlertFlag     bool     `json:"alert_flag"`
	AnomalyScore  float64  `json:"anomaly_score"`
	ThresholdUsed *float64 `json:"threshold_used,omitempty"`
	Confidence    *float64 `json:"confidence,omitempty"`
}

// FailureKind classifies why a prediction could not be produced.
type FailureKind string

const (
	FailurePayload        FailureKind = "payload"
	FailureUpstreamClient FailureKind = "upstream_client"
	FailureUpstreamServer FailureKind = "upstream_server"
	FailureTransport      FailureKind = "transport"
	FailureUnexpected     FailureKind = "unexpected"
)

// PredictionFailure describes a failed prediction.
type PredictionFailure struct {
	Kind    FailureKind
	Message string
}

// PredictionResult holds either a Prediction or a PredictionFailure, never both.
type PredictionResult struct {
	prediction *Prediction
	failure    *PredictionFailure
}

// PredictionOK builds a successful result.
func PredictionOK(p Prediction) PredictionResult {
	return PredictionResult{prediction: &p}
}

// PredictionFailed builds a failed result.
func PredictionFailed(kind FailureKind, msg string) PredictionResult {
	return PredictionResult{failure: &PredictionFailure{Kind: kind, Message: msg}}
}

// OK reports whether the result carries a prediction.
func (r PredictionResult) OK() bool { return r.prediction != nil }

// Prediction returns the prediction, if any.
func (r PredictionResult) Prediction() (Prediction, bool) {
	if r.prediction == nil {
		return Prediction{}, false
	}
	return *r.prediction, true
}

// Failure returns the failure, or nil on success.
func (r PredictionResult) Failure() *PredictionFailure { return r.failure }

// Response converts the result to its API envelope.
func (r PredictionResult) Response() PredictionResponse {
	if r.prediction != nil {
		p := *r.prediction
		return PredictionResponse{Success: true, Prediction: &p}
	}
	resp := PredictionResponse{Success: false}
	if r.failure != nil {
		resp.Error = r.failure.Message
	}
	return resp
}

// PredictionResponse is the envelope returned by the prediction endpoints.
type PredictionResponse struct {
	Success    bool        `json:"success"`
	Prediction *Prediction `json:"prediction,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// HealthResponse reports predictor availability.
type HealthResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}
