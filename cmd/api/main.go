package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alertclinique/alertclinique-go/internal/config"
	"github.com/alertclinique/alertclinique-go/internal/handler"
	"github.com/alertclinique/alertclinique-go/internal/middleware"
	"github.com/alertclinique/alertclinique-go/internal/model"
	"github.com/alertclinique/alertclinique-go/internal/predictor"
	"github.com/alertclinique/alertclinique-go/internal/repository"
	"github.com/alertclinique/alertclinique-go/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("invalid database configuration", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	accountRepo := repository.NewAccountRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	alertRepo := repository.NewAlertRepository(db)

	authHandler := handler.NewAuthHandler(
		service.NewAuthService(accountRepo, adminRepo, patientRepo, doctorRepo, cfg.JWTSecret, cfg.JWTExpiry),
	)
	patientHandler := handler.NewPatientHandler(service.NewPatientService(patientRepo, accountRepo))
	doctorHandler := handler.NewDoctorHandler(service.NewDoctorService(doctorRepo, accountRepo))
	alertHandler := handler.NewAlertHandler(service.NewAlertService(alertRepo))

	aiClient := predictor.NewClient(cfg.AIServiceURL, cfg.AIServiceTimeout)
	predictionHandler := handler.NewPredictionHandler(service.NewPredictionService(aiClient, patientRepo))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))

			r.Route("/patients", func(r chi.Router) {
				r.Get("/", patientHandler.HandleList)
				r.Get("/{id}", patientHandler.HandleGet)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(model.RoleAdmin))
					r.Post("/", patientHandler.HandleCreate)
					r.Put("/{id}", patientHandler.HandleUpdate)
					r.Delete("/{id}", patientHandler.HandleDelete)
				})
			})

			r.Route("/medecins", func(r chi.Router) {
				r.Get("/", doctorHandler.HandleList)
				r.Get("/{id}", doctorHandler.HandleGet)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(model.RoleAdmin))
					r.Post("/", doctorHandler.HandleCreate)
					r.Put("/{id}", doctorHandler.HandleUpdate)
					r.Delete("/{id}", doctorHandler.HandleDelete)
				})
			})

			r.Route("/alertes", func(r chi.Router) {
				r.Get("/", alertHandler.HandleList)
				r.Get("/{id}", alertHandler.HandleGet)
				r.Post("/", alertHandler.HandleCreate)
				r.Delete("/{id}", alertHandler.HandleDelete)
			})

			r.Route("/ai", func(r chi.Router) {
				r.Get("/health", predictionHandler.HandleHealth)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RateLimit(cfg.AIRateLimitRPS, cfg.AIRateLimitBurst))
					r.Post("/predict", predictionHandler.HandlePredict)
					r.Post("/predict/simple", predictionHandler.HandlePredictSimple)
				})
			})
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "ai_service", aiClient.BaseURL())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
