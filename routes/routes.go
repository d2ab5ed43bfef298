package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/wardlight/pickems-engine/handlers"
)

type Handlers struct {
	Tournament *handlers.TournamentHandler
	Standings  *handlers.StandingsHandler
	Bracket    *handlers.BracketHandler
	Scoring    *handlers.ScoringHandler
	Pick       *handlers.PickHandler
}

func InitRoutes(h Handlers) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.ListHandler)
		r.Post("/", h.Tournament.CreateHandler)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", h.Tournament.GetByIDHandler)
			r.Patch("/status", h.Tournament.UpdateStatusHandler)
			r.Post("/teams", h.Tournament.AddTeamsHandler)

			r.Get("/standings", h.Standings.GroupStandingsHandler)
			r.Get("/qualifiers", h.Standings.QualifiersHandler)
			r.Get("/group-matches", h.Standings.ListGroupMatchesHandler)
			r.Patch("/group-matches/{matchID}", h.Standings.UpdateGroupMatchHandler)
			r.Post("/groups/{group}/matches", h.Standings.GenerateGroupMatchesHandler)

			r.Get("/bracket", h.Bracket.GetHandler)
			r.Post("/bracket", h.Bracket.InitializeHandler)
			r.Put("/bracket", h.Bracket.SaveHandler)
			r.Patch("/bracket/{matchID}/slot", h.Bracket.AssignSlotHandler)
			r.Patch("/bracket/{matchID}/score", h.Bracket.UpdateScoreHandler)
		})
	})

	router.Route("/scoring", func(r chi.Router) {
		r.Get("/rules", h.Scoring.GetRulesHandler)
		r.Put("/rules", h.Scoring.PutRulesHandler)
		r.Post("/recalculate", h.Scoring.RecalculateHandler)
	})

	router.Get("/leaderboard", h.Scoring.LeaderboardHandler)

	router.Put("/users/{userID}/picks/{tournamentID}", h.Pick.SavePicksHandler)

	return router
}
