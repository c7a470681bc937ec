package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"account-activation-service/internal/domain"
	"account-activation-service/internal/infra/logging"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type activateRequest struct {
	Code string `json:"code"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	CodeError string `json:"code_error"`
	Detail    string `json:"detail"`
}

var codePattern = regexp.MustCompile(`^\d{4}$`)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if msg := validateRegistration(req.Email, req.Password); msg != "" {
		writeError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}

	acc, err := s.accountUC.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		ID:        acc.ID,
		Email:     acc.Email,
		IsActive:  acc.IsActive,
		CreatedAt: acc.CreatedAt,
	})
}

func (s *Server) handleRequestCode(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		unauthorized(w)
		return
	}

	if err := s.activationUC.RequestCode(r.Context(), email, password); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "activation code sent"})
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		unauthorized(w)
		return
	}

	var req activateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if !codePattern.MatchString(req.Code) {
		writeError(w, http.StatusBadRequest, "validation_error", "code must be exactly 4 digits")
		return
	}

	if err := s.activationUC.Redeem(r.Context(), email, password, req.Code); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "account activated"})
}

func validateRegistration(email, password string) string {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") || strings.Contains(email, " ") {
		return "a valid email is required"
	}
	if len(password) < 8 || len(password) > 100 {
		return "password must be between 8 and 100 characters"
	}
	return ""
}

// writeDomainError maps every expected outcome of the activation lifecycle to
// a distinct, stable code so clients can branch on it.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		unauthorized(w)
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email_taken", "an account with this email already exists")
	case errors.Is(err, domain.ErrAlreadyActive):
		writeError(w, http.StatusConflict, "already_active", "account is already active")
	case errors.Is(err, domain.ErrNoCodeRequested):
		writeError(w, http.StatusBadRequest, "no_code_requested", "no activation code was requested")
	case errors.Is(err, domain.ErrCodeExpired):
		writeError(w, http.StatusBadRequest, "code_expired", "activation code has expired")
	case errors.Is(err, domain.ErrCodeMismatch):
		writeError(w, http.StatusBadRequest, "code_mismatch", "activation code is incorrect")
	case errors.Is(err, domain.ErrDeliveryFailed):
		writeError(w, http.StatusBadGateway, "delivery_failed", "could not deliver the activation code")
	default:
		// Operational fault, not a client outcome.
		logging.With(r.Context(), s.log).Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="activation"`)
	writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, errorResponse{CodeError: code, Detail: detail})
}
