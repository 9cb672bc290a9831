package main

import (
	"context"

	"noteshare/cmd/internal/config"
	"noteshare/cmd/internal/domain/sqlite"
	"noteshare/cmd/internal/domain/sqlite/repository"
	"noteshare/cmd/internal/http/handler"
	"noteshare/cmd/internal/http/server"
	"noteshare/cmd/internal/infrastructure/gemini"
	"noteshare/cmd/internal/infrastructure/storage"
	"noteshare/cmd/internal/service"
	"noteshare/cmd/internal/utils"
	"noteshare/cmd/internal/utils/uid"
	"noteshare/cmd/internal/utils/validators"

	"github.com/labstack/gommon/log"
)

func main() {
	ctx := context.Background()

	// Loads env vars depending on environment
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("unable to load configuration: %v", err)
	}
	log.SetLevel(cfg.LogLvl())

	if err = uid.Init(cfg.NodeID); err != nil {
		log.Fatalf("unable to init id node: %v", err)
	}

	// Init SQLite
	db, err := sqlite.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("unable to open database %s: %v", cfg.DatabasePath, err)
	}

	files, err := newFileStore(ctx, cfg)
	if err != nil {
		log.Fatalf("unable to init %s file storage: %v", cfg.StorageDriver, err)
	}

	// A missing key only disables the AI features
	var generator service.QuizGenerator
	if client, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel); err != nil {
		log.Warnf("generative AI disabled: %v", err)
	} else {
		generator = client
	}

	validate := validators.New()
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)

	// Getting repos
	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	socialRepo := repository.NewSocialRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)

	// Getting services
	userService := service.NewUserService(userRepo, noteRepo, tokens, validate)
	noteService := service.NewNoteService(noteRepo, socialRepo, files, validate, cfg.MaxUploadBytes)
	leaderboardService := service.NewLeaderboardService(leaderboardRepo, validate)
	quizService := service.NewQuizService(generator, validate)

	e := server.New(server.Options{BodyLimit: cfg.BodyLimit, Tokens: tokens}, &server.Routes{
		Notes:       handler.NewNoteDefault(noteService),
		Users:       handler.NewUserDefault(userService),
		Leaderboard: handler.NewLeaderboardDefault(leaderboardService),
		Quiz:        handler.NewQuizDefault(quizService),
	})

	log.Infof("storage=%s database=%s listening on %s", cfg.StorageDriver, cfg.DatabasePath, cfg.HTTPAddr)
	if err := e.Start(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}

func newFileStore(ctx context.Context, cfg *config.Config) (storage.FileStore, error) {
	if cfg.StorageDriver == config.StorageS3 {
		return storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}
	return storage.NewLocalStore(cfg.UploadDir)
}
