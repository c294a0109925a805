package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"health-advisor/domain"
	"health-advisor/service"
)

type HealthHandler struct {
	service       *service.SubmissionService
	defaultUserID int64
	logger        *zap.Logger
}

func NewHealthHandler(service *service.SubmissionService, defaultUserID int64, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{service: service, defaultUserID: defaultUserID, logger: logger}
}

type submitRequest struct {
	UserID *int64 `json:"user_id"`
	domain.RawInput
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// Advise returns the real-time advisories for a partially filled form.
func (h *HealthHandler) Advise(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.RawInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, service.AdviseReport(input))
}

func (h *HealthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.RawInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	metrics, err := service.Validate(input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, metrics)
}

func (h *HealthHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var input submitRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Debug("error decoding request body", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session := domain.Session{UserID: h.defaultUserID, Token: bearerToken(r)}
	if input.UserID != nil {
		session.UserID = *input.UserID
	}

	result, err := h.service.Submit(r.Context(), session, input.RawInput)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *HealthHandler) Results(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	result, err := h.service.LastResults(r.Context(), domain.Session{UserID: userID, Token: bearerToken(r)})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *HealthHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	records, err := h.service.History(r.Context(), domain.Session{UserID: userID, Token: bearerToken(r)})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, records)
}

func bearerToken(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func statusFor(err error) int {
	var vErr *service.ValidationError
	var tErr *service.TransportError
	var sErr *service.StatusError

	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrSubmissionInFlight):
		return http.StatusConflict
	case errors.Is(err, service.ErrNoResults):
		return http.StatusNotFound
	case errors.Is(err, service.ErrServerRejected),
		errors.Is(err, service.ErrUnexpectedRiskScore),
		errors.As(err, &tErr),
		errors.As(err, &sErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *HealthHandler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	body := errorResponse{Error: service.UserMessage(err)}

	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		body.Field = vErr.Field
		body.Kind = string(vErr.Kind)
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	h.writeJSON(w, status, body)
}

func (h *HealthHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	// Codificar JSON en buffer primero para evitar escribir header si falla
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.logger.Error("error encoding response", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("error writing response", zap.Error(err))
	}
}
