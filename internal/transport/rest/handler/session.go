package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"redflag/internal/cache"
	"redflag/internal/model"
	"redflag/internal/service"
	"redflag/internal/transport/rest/middleware"
)

// SessionHandler handles session lifecycle and navigation endpoints.
type SessionHandler struct {
	sessionSvc *service.SessionService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessionSvc *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// Create handles POST /v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, token, err := h.sessionSvc.Create(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, model.CreateSessionResponse{
		Token:     token,
		SessionID: session.ID,
		Page:      session.Page,
	})
}

// State handles GET /v1/sessions/current
func (h *SessionHandler) State(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	session, err := h.sessionSvc.Get(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stateResponse(session))
}

// SubmitCredential handles POST /v1/sessions/current/credential
func (h *SessionHandler) SubmitCredential(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var req model.CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionSvc.SubmitCredential(r.Context(), sessionID, req.APIKey)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stateResponse(session))
}

// Navigate handles POST /v1/sessions/current/navigate
func (h *SessionHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var req model.NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	page, ok := model.ParsePage(req.Page)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown page")
		return
	}

	session, err := h.sessionSvc.Navigate(r.Context(), sessionID, page)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stateResponse(session))
}

func stateResponse(session *model.Session) model.SessionStateResponse {
	return model.SessionStateResponse{
		SessionID: session.ID,
		Page:      session.Page,
		MaskedKey: session.MaskedKey(),
		Answers:   session.Answers,
		Answered:  session.Answers.AnsweredCount(),
		Required:  model.RequiredFieldCount,
		HasResult: session.Result != nil,
	}
}

// writeServiceError maps service errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	var incomplete *service.IncompleteError
	var advice *service.AdviceError

	switch {
	case errors.Is(err, cache.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found or expired")
	case errors.As(err, &incomplete):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":   incomplete.Error(),
			"missing": incomplete.Missing,
		})
	case errors.Is(err, service.ErrEmptyCredential), errors.Is(err, service.ErrBadPage):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoCredential), errors.Is(err, service.ErrNoResult):
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":  err.Error(),
			"backTo": backToPage(err),
		})
	case errors.As(err, &advice):
		status := http.StatusBadGateway
		if advice.Kind == service.AdviceRateLimited {
			status = http.StatusTooManyRequests
		}
		writeJSON(w, status, map[string]string{
			"error": advice.Message,
			"kind":  string(advice.Kind),
		})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func backToPage(err error) string {
	if errors.Is(err, service.ErrNoResult) {
		return string(model.PageQuestionnaire)
	}
	return string(model.PageIntake)
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
