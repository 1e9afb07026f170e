package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"marksapi/internal/auth"
	"marksapi/internal/service"
)

type AuthHandler struct {
	staffService *service.StaffService
	tokens       *auth.TokenManager
}

func NewAuthHandler(staffService *service.StaffService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{staffService: staffService, tokens: tokens}
}

// Login exchanges staff email/password for a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password required")
		return
	}

	staff, err := h.staffService.Authenticate(req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := h.tokens.Issue(staff.Email, staff.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
