package handler

import (
	"errors"
	"net/http"

	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/alertclinique/alertclinique-go/internal/service"
)

// PatientHandler handles HTTP requests for patient profiles.
type PatientHandler struct {
	service *service.PatientService
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(svc *service.PatientService) *PatientHandler {
	return &PatientHandler{service: svc}
}

// HandleList handles GET /api/patients requests.
func (h *PatientHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	patients, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

// HandleGet handles GET /api/patients/{id} requests.
func (h *PatientHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleCreate handles POST /api/patients requests.
func (h *PatientHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.PatientRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// HandleUpdate handles PUT /api/patients/{id} requests.
func (h *PatientHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.PatientRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleDelete handles DELETE /api/patients/{id} requests.
func (h *PatientHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeProfileError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeProfileError maps patient and doctor service errors to HTTP statuses.
func writeProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNameRequired), errors.Is(err, service.ErrEmailMissing):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrPatientNotFound), errors.Is(err, service.ErrDoctorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrEmailConflict):
		writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
