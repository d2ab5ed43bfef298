package handlers

import (
	"log/slog"
	"net/http"

	"github.com/wardlight/pickems-engine/models"
	"github.com/wardlight/pickems-engine/services"
)

type BracketHandler struct {
	bracketService services.BracketService
	scoringService services.ScoringService
}

func NewBracketHandler(bs services.BracketService, ss services.ScoringService) *BracketHandler {
	return &BracketHandler{bracketService: bs, scoringService: ss}
}

// resweep refreshes user scores after a bracket edit. The edit itself
// has already been persisted, so a sweep failure is logged, not
// surfaced.
func (h *BracketHandler) resweep(r *http.Request) {
	if _, err := h.scoringService.RecalculateAllScores(r.Context()); err != nil {
		slog.Error("scoring sweep after bracket edit failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
}

// InitializeHandler handles POST /tournaments/{tournamentID}/bracket
func (h *BracketHandler) InitializeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	// The pool is optional; an absent body seeds from the roster.
	var input struct {
		Pool services.BracketPool `json:"pool"`
	}
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	matches, err := h.bracketService.Initialize(r.Context(), id, input.Pool)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bracket": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetHandler handles GET /tournaments/{tournamentID}/bracket
func (h *BracketHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.bracketService.Get(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SaveHandler handles PUT /tournaments/{tournamentID}/bracket
func (h *BracketHandler) SaveHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Bracket []models.BracketMatch `json:"bracket"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.bracketService.Save(r.Context(), id, input.Bracket)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.resweep(r)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AssignSlotHandler handles PATCH /tournaments/{tournamentID}/bracket/{matchID}/slot
func (h *BracketHandler) AssignSlotHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := urlParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Slot   int     `json:"slot"`
		TeamID *string `json:"team_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.bracketService.AssignSlot(r.Context(), id, matchID, input.Slot, input.TeamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.resweep(r)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateScoreHandler handles PATCH /tournaments/{tournamentID}/bracket/{matchID}/score
func (h *BracketHandler) UpdateScoreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := urlParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Team1Score int `json:"team1_score"`
		Team2Score int `json:"team2_score"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.bracketService.UpdateScore(r.Context(), id, matchID, input.Team1Score, input.Team2Score)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.resweep(r)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
