package handler

import (
	"net/http"

	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/alertclinique/alertclinique-go/internal/service"
)

// PredictionHandler exposes the anomaly-detection proxy.
type PredictionHandler struct {
	service *service.PredictionService
}

// NewPredictionHandler creates a new PredictionHandler.
func NewPredictionHandler(svc *service.PredictionService) *PredictionHandler {
	return &PredictionHandler{service: svc}
}

// HandleHealth handles GET /api/ai/health requests.
func (h *PredictionHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Health(r.Context()))
}

// HandlePredict handles POST /api/ai/predict requests.
func (h *PredictionHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	var req model.PredictionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writePrediction(w, h.service.Predict(r.Context(), req))
}

// HandlePredictSimple handles POST /api/ai/predict/simple requests.
func (h *PredictionHandler) HandlePredictSimple(w http.ResponseWriter, r *http.Request) {
	var req model.SimplePredictionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writePrediction(w, h.service.PredictSimple(r.Context(), req))
}

func writePrediction(w http.ResponseWriter, result model.PredictionResult) {
	status := http.StatusOK
	if !result.OK() {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, result.Response())
}
