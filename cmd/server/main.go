package main

import (
	"NoteKeeper/internal/config"
	"NoteKeeper/internal/handlers"
	"NoteKeeper/internal/middleware"
	"NoteKeeper/internal/repo"
	"NoteKeeper/internal/service"
	"NoteKeeper/internal/storage"
	"context"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	photoStore, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize photo storage", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	noteRepo := repo.NewNoteRepository(gormDB)
	categoryRepo := repo.NewCategoryRepository(gormDB)

	userService := service.NewUserService(userRepo)
	noteService := service.NewNoteService(noteRepo, categoryRepo, photoStore, sugar)
	categoryService := service.NewCategoryService(categoryRepo)

	h := handlers.NewHandler(userService, noteService, categoryService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"CORSOrigin", cfg.CORSOrigin,
		"S3Bucket", cfg.S3Bucket,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
