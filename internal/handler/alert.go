package handler

import (
	"errors"
	"net/http"

	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/alertclinique/alertclinique-go/internal/service"
)

// AlertHandler handles HTTP requests for clinical alerts.
type AlertHandler struct {
	service *service.AlertService
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(svc *service.AlertService) *AlertHandler {
	return &AlertHandler{service: svc}
}

// HandleList handles GET /api/alertes requests.
func (h *AlertHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

// HandleGet handles GET /api/alertes/{id} requests.
func (h *AlertHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAlertNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleCreate handles POST /api/alertes requests.
func (h *AlertHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.AlertRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlertTypeRequired), errors.Is(err, service.ErrAlertMessageRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// HandleDelete handles DELETE /api/alertes/{id} requests.
func (h *AlertHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrAlertNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
