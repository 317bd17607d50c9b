package handler

import (
	"net/http"

	"redflag/internal/model"
	"redflag/internal/service"
	"redflag/internal/transport/rest/middleware"
)

// scoringExplanation is the human-readable "how this is scored" blurb
// shown next to the breakdown.
const scoringExplanation = "Points are added for signals of control, jealousy, " +
	"rudeness to staff, pressure (alcohol or isolated places), boundaries not " +
	"respected, inconsistencies and love bombing. Weak communication (didn't " +
	"listen, interrupted, zero curiosity) adds a little. Green flags you marked " +
	"subtract points. The final result is clipped to 0-100 so the drama doesn't explode."

// VerdictHandler handles the verdict screen endpoints.
type VerdictHandler struct {
	sessionSvc *service.SessionService
}

// NewVerdictHandler creates a new verdict handler.
func NewVerdictHandler(sessionSvc *service.SessionService) *VerdictHandler {
	return &VerdictHandler{sessionSvc: sessionSvc}
}

// Get handles GET /v1/sessions/current/verdict
func (h *VerdictHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	session, err := h.sessionSvc.Verdict(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	result := session.Result
	writeJSON(w, http.StatusOK, model.VerdictResponse{
		Score:       result.Score,
		Points:      result.Points,
		Level:       result.Level,
		LevelLabel:  result.Level.Label(),
		Vibe:        result.Level.Vibe(),
		Breakdown:   result.Breakdown,
		Explanation: scoringExplanation,
	})
}

// Advice handles POST /v1/sessions/current/advice. Each call is exactly
// one advisory request; the client retries by calling again.
func (h *VerdictHandler) Advice(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	message, err := h.sessionSvc.Advice(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.AdviceResponse{Message: message})
}
