package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/pexkit/pexkit/internal/auth"
	"github.com/pexkit/pexkit/internal/config"
	"github.com/pexkit/pexkit/internal/handlers"
	"github.com/pexkit/pexkit/internal/notify"
	"github.com/pexkit/pexkit/internal/services"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := cfg.EnsureDir(); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.Dir).Msg("failed to create config directory")
	}

	ctx := context.Background()

	store, err := services.NewStore(ctx, cfg.ProjectID, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create Firestore store")
	}
	defer store.Close()

	authenticator := auth.NewGoogle(cfg.OAuthClientID, cfg.OAuthClientSecret, cfg.OAuthRedirectURL, cfg.TokenPath(), logger)
	authenticator.Restore(ctx)

	var notifier *notify.Notifier
	if cfg.NotifierEnabled() {
		notifier, err = notify.New(cfg.LINEChannelToken, cfg.LINEUserID, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create LINE notifier")
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	handlers.Register(e, handlers.Deps{
		Auth:      authenticator,
		Todos:     store.Todos(),
		Birthdays: store.Birthdays(),
		Groups:    store.Groups(),
		Notifier:  notifier,
		Log:       logger,
	})

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server failed to start")
	}
}
