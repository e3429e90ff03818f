package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/playwheel/fortune-backend/internal/config"
	"github.com/playwheel/fortune-backend/internal/corpus"
	"github.com/playwheel/fortune-backend/internal/hint"
	"github.com/playwheel/fortune-backend/internal/repository"
	"github.com/playwheel/fortune-backend/internal/repository/storage"
	"github.com/playwheel/fortune-backend/internal/usecase"
	"github.com/playwheel/fortune-backend/internal/wheel"
	"github.com/playwheel/fortune-backend/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	playerRepo := repository.NewPlayerRepository(redisStorage.Connection)
	gameRepo := repository.NewGameRepository(redisStorage.Connection)
	resultRepo := repository.NewResultRepository(sqliteStorage.Connection)

	gameWheel := wheel.New(nil)
	puzzles := corpus.New(logger, nil, conf.PuzzleCorpusPath)

	var provider hint.Provider
	if conf.Hints.GeminiAPIKey != "" {
		provider = hint.NewGeminiProvider(conf.Hints.GeminiAPIKey, conf.Hints.GeminiModel)
	} else {
		log.Info("no hint provider credential configured, hints use the fallback rules")
	}

	hintService := hint.NewService(logger, provider, conf.Hints.Timeout, conf.Hints.MaxPerRound)

	gameManager := usecase.NewGameManager(logger, playerRepo, gameRepo, resultRepo, puzzles, hintService, gameWheel)
	handlers := rest.NewHandlers(logger, gameManager)

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort, handlers); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
