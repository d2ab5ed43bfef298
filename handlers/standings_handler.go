package handlers

import (
	"net/http"

	"github.com/wardlight/pickems-engine/models"
	"github.com/wardlight/pickems-engine/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

// GroupStandingsHandler handles GET /tournaments/{tournamentID}/standings
func (h *StandingsHandler) GroupStandingsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tables, err := h.standingsService.GroupStandings(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": tables}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// QualifiersHandler handles GET /tournaments/{tournamentID}/qualifiers
func (h *StandingsHandler) QualifiersHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.standingsService.Qualifiers(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"qualifiers": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListGroupMatchesHandler handles GET /tournaments/{tournamentID}/group-matches
func (h *StandingsHandler) ListGroupMatchesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.standingsService.ListGroupMatches(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateGroupMatchesHandler handles POST /tournaments/{tournamentID}/groups/{group}/matches
func (h *StandingsHandler) GenerateGroupMatchesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	group, err := urlParam(r, "group")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	created, err := h.standingsService.GenerateGroupMatches(r.Context(), id, group)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": created}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateGroupMatchHandler handles PATCH /tournaments/{tournamentID}/group-matches/{matchID}
func (h *StandingsHandler) UpdateGroupMatchHandler(w http.ResponseWriter, r *http.Request) {
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
		Team1Score int                `json:"team1_score"`
		Team2Score int                `json:"team2_score"`
		Status     models.MatchStatus `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.standingsService.UpdateGroupMatch(r.Context(), id, matchID, input.Team1Score, input.Team2Score, input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
