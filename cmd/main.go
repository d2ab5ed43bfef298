package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wardlight/pickems-engine/config"
	"github.com/wardlight/pickems-engine/db"
	"github.com/wardlight/pickems-engine/handlers"
	"github.com/wardlight/pickems-engine/repositories"
	api "github.com/wardlight/pickems-engine/routes"
	"github.com/wardlight/pickems-engine/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	if err := db.RunMigrations(dbConn); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database schema up to date")

	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	groupMatchRepo := repositories.NewPostgresGroupMatchRepository(dbConn)
	bracketRepo := repositories.NewPostgresBracketRepository(dbConn)
	rulesRepo := repositories.NewPostgresScoringRulesRepository(dbConn)
	pickRepo := repositories.NewPostgresPickRepository(dbConn)
	scoreRepo := repositories.NewPostgresScoreRepository(dbConn)

	standingsService := services.NewStandingsService(tournamentRepo, teamRepo, groupMatchRepo, cfg.QualifiersPerGroup)
	tournamentService := services.NewTournamentService(tournamentRepo, teamRepo, groupMatchRepo, bracketRepo)
	bracketService := services.NewBracketService(tournamentRepo, teamRepo, groupMatchRepo, bracketRepo, standingsService)
	scoringService := services.NewScoringService(rulesRepo, tournamentRepo, bracketRepo, pickRepo, scoreRepo, logger)
	pickService := services.NewPickService(tournamentRepo, pickRepo)
	logger.Info("services initialized")

	router := api.InitRoutes(api.Handlers{
		Tournament: handlers.NewTournamentHandler(tournamentService),
		Standings:  handlers.NewStandingsHandler(standingsService),
		Bracket:    handlers.NewBracketHandler(bracketService, scoringService),
		Scoring:    handlers.NewScoringHandler(scoringService),
		Pick:       handlers.NewPickHandler(pickService),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
