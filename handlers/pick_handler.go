package handlers

import (
	"net/http"

	"github.com/wardlight/pickems-engine/services"
)

type PickHandler struct {
	pickService services.PickService
}

func NewPickHandler(ps services.PickService) *PickHandler {
	return &PickHandler{pickService: ps}
}

// SavePicksHandler handles PUT /users/{userID}/picks/{tournamentID}
func (h *PickHandler) SavePicksHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParam(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournamentID, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Picks map[string]string `json:"picks"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.pickService.SavePicks(r.Context(), userID, tournamentID, input.Picks); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"picks": input.Picks}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
