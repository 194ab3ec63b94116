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

	"github.com/Dosada05/league-api/brackets"
	"github.com/Dosada05/league-api/config"
	"github.com/Dosada05/league-api/db"
	"github.com/Dosada05/league-api/handlers"
	"github.com/Dosada05/league-api/live"
	"github.com/Dosada05/league-api/repositories"
	"github.com/Dosada05/league-api/routes"
	"github.com/Dosada05/league-api/services"
	"github.com/Dosada05/league-api/storage"
	"github.com/Dosada05/league-api/utils"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("log_level", cfg.LogLevel.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, cfg.DBConnectTimeout)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.Migrate(ctx, dbConn); err != nil {
		logger.Error("failed to apply schema", slog.Any("error", err))
		os.Exit(1)
	}

	// Загрузка файлов (Cloudflare R2) опциональна
	var uploader storage.FileUploader
	if cfg.R2.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2.BucketName))
	} else {
		logger.Warn("R2 storage not configured, media uploads disabled")
	}

	// WebSocket Hub
	wsHub := live.NewHub(logger.With(slog.String("component", "live")))
	go wsHub.Run(ctx)

	// Репозитории
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	statsRepo := repositories.NewPostgresMatchStatsRepository(dbConn)
	courtRepo := repositories.NewPostgresCourtRepository(dbConn)
	visibilityRepo := repositories.NewPostgresVisibilityLogRepository(dbConn)
	productRepo := repositories.NewPostgresProductRepository(dbConn)
	orderRepo := repositories.NewPostgresOrderRepository(dbConn)
	mediaRepo := repositories.NewPostgresMediaRepository(dbConn)
	inquiryRepo := repositories.NewPostgresInquiryRepository(dbConn)
	assetRepo := repositories.NewPostgresBrandAssetRepository(dbConn)
	tx := repositories.NewTransactor(dbConn, logger)

	// Сервисы
	authService := services.NewAuthService(userRepo, services.AuthConfig{
		Secret:     []byte(cfg.JWTSecretKey),
		TTL:        cfg.JWTTTL,
		BcryptCost: utils.BcryptCost,
	}, logger)
	userService := services.NewUserService(userRepo)
	tournamentService := services.NewTournamentService(tournamentRepo, teamRepo, matchRepo, logger)
	teamService := services.NewTeamService(tx, teamRepo, tournamentRepo, playerRepo, matchRepo, logger)
	playerService := services.NewPlayerService(playerRepo, teamRepo, logger)
	bracketService := services.NewBracketService(tx, tournamentRepo, teamRepo, matchRepo,
		brackets.NewFirstRoundGenerator(nil), wsHub, logger)
	matchService := services.NewMatchService(tx, matchRepo, teamRepo, playerRepo, statsRepo, tournamentRepo, wsHub, logger)
	statsService := services.NewStatsService(tx, statsRepo, matchRepo, playerRepo, wsHub, logger)
	courtService := services.NewCourtService(courtRepo, visibilityRepo, logger)
	commerceService := services.NewCommerceService(tx, productRepo, orderRepo, logger)
	mediaService := services.NewMediaService(mediaRepo, uploader, logger)
	sponsorService := services.NewSponsorService(inquiryRepo, assetRepo, logger)

	router := routes.InitRoutes(routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		User:       handlers.NewUserHandler(userService),
		Tournament: handlers.NewTournamentHandler(tournamentService),
		Team:       handlers.NewTeamHandler(teamService),
		Player:     handlers.NewPlayerHandler(playerService),
		Match:      handlers.NewMatchHandler(matchService),
		Bracket:    handlers.NewBracketHandler(bracketService),
		Stats:      handlers.NewStatsHandler(statsService),
		Court:      handlers.NewCourtHandler(courtService),
		Commerce:   handlers.NewCommerceHandler(commerceService),
		Media:      handlers.NewMediaHandler(mediaService),
		Sponsor:    handlers.NewSponsorHandler(sponsorService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, logger),
	}, routes.Options{
		Tokens:      authService,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
