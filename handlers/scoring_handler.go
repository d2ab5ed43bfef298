package handlers

import (
	"net/http"

	"github.com/wardlight/pickems-engine/models"
	"github.com/wardlight/pickems-engine/services"
)

type ScoringHandler struct {
	scoringService services.ScoringService
}

func NewScoringHandler(ss services.ScoringService) *ScoringHandler {
	return &ScoringHandler{scoringService: ss}
}

// GetRulesHandler handles GET /scoring/rules
func (h *ScoringHandler) GetRulesHandler(w http.ResponseWriter, r *http.Request) {
	rules, err := h.scoringService.Rules(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rules": rules}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PutRulesHandler handles PUT /scoring/rules
func (h *ScoringHandler) PutRulesHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Rules models.ScoringRules `json:"rules"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.scoringService.SaveRules(r.Context(), input.Rules); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rules": input.Rules}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecalculateHandler handles POST /scoring/recalculate
func (h *ScoringHandler) RecalculateHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.scoringService.RecalculateAllScores(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"sweep": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LeaderboardHandler handles GET /leaderboard
func (h *ScoringHandler) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	scores, err := h.scoringService.Leaderboard(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": scores}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
