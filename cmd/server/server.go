package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	gormlogger "gorm.io/gorm/logger"

	"taborra-server/whatsapp-bridge/internal/config"
	"taborra-server/whatsapp-bridge/internal/domain/chat"
	"taborra-server/whatsapp-bridge/internal/domain/user"
	"taborra-server/whatsapp-bridge/internal/infrastructure/database"
	"taborra-server/whatsapp-bridge/internal/infrastructure/database/repository/chatrepo"
	"taborra-server/whatsapp-bridge/internal/infrastructure/database/repository/userrepo"
	"taborra-server/whatsapp-bridge/internal/infrastructure/inference"
	"taborra-server/whatsapp-bridge/internal/infrastructure/logger"
	"taborra-server/whatsapp-bridge/internal/infrastructure/observability"
	"taborra-server/whatsapp-bridge/internal/infrastructure/whatsapp"
	"taborra-server/whatsapp-bridge/internal/interfaces/httpserver"
	"taborra-server/whatsapp-bridge/internal/interfaces/httpserver/handlers/webhookhandler"
	"taborra-server/whatsapp-bridge/internal/utils/httpclients"
)

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		WriteDSN:    cfg.WriteDSN(),
		ReadDSN:     cfg.ReadDSN(),
		MaxIdle:     cfg.DBMaxIdleConns,
		MaxOpen:     cfg.DBMaxOpenConns,
		MaxLifetime: cfg.DBConnLifetime,
		LogLevel:    gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()

	if cfg.AutoMigrate {
		if err := database.AutoMigrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("migrate database")
		}
	}

	userService := user.NewService(userrepo.NewUserGormRepository(db))
	sessionService := chat.NewService(chatrepo.NewConversationGormRepository(db))

	chatChain := inference.NewChatChain(
		httpclients.NewClient("chat-completions"),
		cfg.OpenAIBaseURL,
		cfg.OpenAIAPIKey,
		cfg.Model,
	)
	messenger := whatsapp.NewClient(
		httpclients.NewClient("whatsapp"),
		cfg.WhatsAppAPIBaseURL,
		cfg.WhatsAppPhoneID,
		cfg.WhatsAppAccessToken,
		cfg.WhatsAppTimeout,
	)

	webhookHandler := webhookhandler.NewWebhookHandler(
		cfg.VerifyToken,
		userService,
		sessionService,
		chatChain,
		messenger,
	)

	server := httpserver.New(cfg, log, webhookHandler)
	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
