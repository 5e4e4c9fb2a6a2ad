package handler

import (
	"net/http"

	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/alertclinique/alertclinique-go/internal/service"
)

// DoctorHandler handles HTTP requests for doctor profiles.
type DoctorHandler struct {
	service *service.DoctorService
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(svc *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: svc}
}

// HandleList handles GET /api/medecins requests.
func (h *DoctorHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	writeJSON(w, http.StatusOK, doctors)
}

// HandleGet handles GET /api/medecins/{id} requests.
func (h *DoctorHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	d, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleCreate handles POST /api/medecins requests.
func (h *DoctorHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.DoctorRequest
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

// HandleUpdate handles PUT /api/medecins/{id} requests.
func (h *DoctorHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.DoctorRequest
	if !decodeBody(w, r, &req) {
		return
	}

	d, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleDelete handles DELETE /api/medecins/{id} requests.
func (h *DoctorHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
