package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/bingo-backend/internal/bingo"
	"github.com/rocketscienceinc/bingo-backend/internal/config"
	"github.com/rocketscienceinc/bingo-backend/internal/repository"
	"github.com/rocketscienceinc/bingo-backend/internal/repository/storage"
	"github.com/rocketscienceinc/bingo-backend/internal/usecase"
	"github.com/rocketscienceinc/bingo-backend/transport/rest"
	"github.com/rocketscienceinc/bingo-backend/transport/websocket"
)

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrUnknownStorage = errors.New("unknown storage")
)

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

	sessionRepo, closeStorage, err := newSessionRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close session storage", "error", err)
		}
	}()

	log.Info("Session storage ready", "storage", conf.Storage, "ttl", conf.Session.TTL)

	defaults := bingo.Range{MinNumber: conf.Bingo.MinNumber, MaxNumber: conf.Bingo.MaxNumber}
	gameUseCase := usecase.NewGameManager(logger, sessionRepo, defaults)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, gameUseCase, conf.Session.TTL, conf.HTTP.AllowedOrigins)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameUseCase, websocket.Options{
			AutoCallInterval: conf.Bingo.AutoCallInterval,
			SessionTTL:       conf.Session.TTL,
			AllowedOrigins:   conf.HTTP.AllowedOrigins,
		})
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newSessionRepository - picks the session backend named in the config.
func newSessionRepository(ctx context.Context, conf *config.Config) (repository.SessionRepository, func() error, error) {
	switch conf.Storage {
	case config.StorageMemory:
		repo := repository.NewMemorySessionRepository(conf.Session.Capacity, conf.Session.TTL)
		return repo, func() error { return nil }, nil
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewSessionRepository(redisStorage, conf.Session.TTL), redisStorage.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorage, conf.Storage)
	}
}
