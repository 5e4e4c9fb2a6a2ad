package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/alertclinique/alertclinique-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleLogin handles POST /api/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, model.AuthFailure("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, model.AuthFailure("invalid request body"))
		return
	}

	out, err := h.service.Authenticate(r.Context(), req)
	if err != nil {
		slog.Error("authentication failed", "user_type", req.UserType, "error", err)
		writeJSON(w, http.StatusInternalServerError, model.AuthFailure("internal server error"))
		return
	}

	if !out.Success {
		writeJSON(w, http.StatusUnauthorized, out)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
