package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/bcrypt"

	"campusevents/config"
	authadapter "campusevents/internal/adapters/auth"
	emailadapter "campusevents/internal/adapters/email"
	httpdelivery "campusevents/internal/delivery/http"
	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/repository/postgres"
	"campusevents/internal/services"
	"campusevents/migrations"
)

// @title Campus Events API
// @version 1.0
// @description Backend for college event registration, team formation and council applications.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	goose.SetBaseFS(migrations.Embed)
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Error("failed to set migration dialect", "error", err)
		os.Exit(1)
	}
	if err := goose.Up(db, "."); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Adapters
	hasher := authadapter.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := authadapter.NewJWTVerifier(cfg.JWTSecret)
	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	councilRepo := postgres.NewCouncilRepository(db)

	// Services
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())
	authService := services.NewAuthService(userRepo, hasher, tokenIssuer, cfg.JWTExpiry)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo, cfg.ContextTimeout)
	teamService := services.NewTeamService(teamRepo, eventRepo, userRepo, emailService, cfg.ContextTimeout)
	registrationService := services.NewRegistrationService(
		eventRepo, registrationRepo, teamRepo, userRepo, emailService, cfg.ContextTimeout)
	councilService := services.NewCouncilService(councilRepo, userRepo, emailService, cfg.ContextTimeout)

	// Controllers
	authController := controllers.NewAuthController(logger, authService)
	eventController := controllers.NewEventController(logger, eventService, registrationService)
	teamController := controllers.NewTeamController(logger, teamService)
	councilController := controllers.NewCouncilController(logger, councilService)
	userController := controllers.NewUserController(
		logger, userService, registrationService, teamService, councilService)

	mux := httpdelivery.NewRouter(
		tokenVerifier,
		authController,
		eventController,
		teamController,
		councilController,
		userController,
	)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
