package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"marksapi/internal/service"
)

type LookupHandler struct {
	studentService *service.StudentService
}

func NewLookupHandler(studentService *service.StudentService) *LookupHandler {
	return &LookupHandler{studentService: studentService}
}

// Lookup lets a student retrieve their own marks with a register-number plus
// date-of-birth challenge. No authentication token is required.
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RegisterNumber string `json:"register_number"`
		DOB            string `json:"dob"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reg := strings.TrimSpace(req.RegisterNumber)
	dob := strings.TrimSpace(req.DOB)
	if reg == "" || dob == "" {
		writeError(w, http.StatusBadRequest, "register_number and dob required")
		return
	}

	result, err := h.studentService.Lookup(reg, dob)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Invalid details")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
