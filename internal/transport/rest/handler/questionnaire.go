package handler

import (
	"encoding/json"
	"net/http"

	"redflag/internal/model"
	"redflag/internal/service"
	"redflag/internal/transport/rest/middleware"
)

// QuestionnaireHandler handles the questionnaire screen endpoints.
type QuestionnaireHandler struct {
	sessionSvc *service.SessionService
}

// NewQuestionnaireHandler creates a new questionnaire handler.
func NewQuestionnaireHandler(sessionSvc *service.SessionService) *QuestionnaireHandler {
	return &QuestionnaireHandler{sessionSvc: sessionSvc}
}

// SaveDraft handles PUT /v1/sessions/current/answers
func (h *QuestionnaireHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var form model.AnswerForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionSvc.SaveDraft(r.Context(), sessionID, &form)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stateResponse(session))
}

// Submit handles POST /v1/sessions/current/submit
func (h *QuestionnaireHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var form model.AnswerForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionSvc.Submit(r.Context(), sessionID, &form)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stateResponse(session))
}
