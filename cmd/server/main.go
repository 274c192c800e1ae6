package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "resume-chatbot/internal/adapter/http"
	repo "resume-chatbot/internal/adapter/repository"
	"resume-chatbot/internal/config"
	"resume-chatbot/internal/infrastructure/migration"
	"resume-chatbot/internal/usecase"
	"resume-chatbot/pkg/ai"
	infra "resume-chatbot/pkg/infrastructure"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	infra.SetupLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prompts, err := config.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load prompts")
	}

	aiClient := ai.NewClient(ai.Options{
		Provider:    cfg.AI.Provider,
		BaseURL:     cfg.AI.BaseURL,
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.Model,
		Timeout:     cfg.AI.Timeout,
		MaxAttempts: cfg.AI.MaxAttempts,
	})

	var sessions usecase.SessionStore
	if cfg.RedisURL != "" {
		client, err := infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		sessions = repo.NewRedisSessionStore(client, cfg.SessionTTL)
		log.Info().Msg("using redis session store")
	} else {
		mem := repo.NewMemorySessionStore(cfg.SessionTTL)
		go mem.Run(ctx, time.Minute)
		sessions = mem
		log.Info().Dur("ttl", cfg.SessionTTL).Msg("using in-memory session store")
	}

	var artifacts *repo.ArtifactsRepo
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewArtifactsPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("artifacts DB not available, metadata will not be recorded")
		} else {
			defer pool.Close()
			if err := migration.RunMigrations(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("failed to run migrations")
			}
			artifacts = repo.NewArtifactsRepo(pool)
		}
	}

	processor := usecase.NewProcessor(usecase.Deps{
		Conversation: usecase.NewConversation(prompts, aiClient),
		Sessions:     sessions,
		PDF:          infra.NewChromedpRenderer(cfg.ChromePath),
		Artifacts:    artifacts,
		Summaries:    aiClient,
		OutputDir:    cfg.OutputDir,
	})

	app := httpadapter.NewApp(httpadapter.NewHandler(processor, httpadapter.Options{
		CookieSecure: cfg.CookieSecure,
		SessionTTL:   cfg.SessionTTL,
	}))

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
