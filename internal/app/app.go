package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/myvideo/server/internal/controller"
	"github.com/myvideo/server/internal/repository/connection/inmemory"
	"github.com/myvideo/server/internal/repository/session/redis"
	"github.com/myvideo/server/internal/service/player"
	"github.com/myvideo/server/pkg/ctxlogger"
	"github.com/myvideo/server/pkg/redisclient"
	"github.com/myvideo/server/pkg/ytvideodata"
)

type AppConfig struct {
	Host          string        `json:"host"`
	Port          int           `json:"port"`
	LogLevel      string        `json:"log_level"`
	SeekStep      time.Duration `json:"seek_step"`
	LoadTimeout   time.Duration `json:"load_timeout"`
	SessionExp    time.Duration `json:"session_exp"`
	RedisPort     int           `json:"redis_port"`
	RedisHost     string        `json:"redis_host"`
	RedisPassword string        `json:"-"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if cfg.SeekStep <= 0 {
		return fmt.Errorf("seek step must be greater than 0")
	}
	if cfg.LoadTimeout < 0 {
		return fmt.Errorf("load timeout must not be negative")
	}
	if cfg.SessionExp <= 0 {
		return fmt.Errorf("session expiration must be greater than 0")
	}
	return nil
}

func newLogger(level string) (*slog.Logger, error) {
	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}

	return slog.New(h), nil
}

type connRegistry interface {
	SessionIDs() []string
	CloseAll()
}

type sessionDisconnecter interface {
	Disconnect(ctx context.Context, sessionID string) error
}

// closeSessions detaches every live session before closing its connection,
// so no load watchdog fires into a closed socket.
func closeSessions(ctx context.Context, conns connRegistry, players sessionDisconnecter, logger *slog.Logger) {
	for _, sessionID := range conns.SessionIDs() {
		if err := players.Disconnect(ctx, sessionID); err != nil {
			logger.WarnContext(ctx, "failed to disconnect session", "session_id", sessionID, "error", err)
		}
	}

	conns.CloseAll()
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	rc, err := redisclient.NewRedisClient(ctx, &redisclient.Config{
		Port:     cfg.RedisPort,
		Host:     cfg.RedisHost,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer rc.Close()

	sessionRepo := redis.NewRepo(rc, cfg.SessionExp, logger)
	connRepo := inmemory.NewRepo(logger)
	widget := controller.NewWidget(connRepo)
	playerService := player.NewService(sessionRepo, widget, widget, &player.Config{
		SeekStep:    cfg.SeekStep,
		LoadTimeout: cfg.LoadTimeout,
	}, logger)
	controller := controller.NewController(playerService, connRepo, ytvideodata.New(), logger)
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           controller.GetMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)
	defer serverStopCtx()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sig)

	shutdownErr := make(chan error, 1)
	go func() {
		select {
		case <-sig:
		case <-serverCtx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// hijacked websocket connections are not tracked by Shutdown
		closeSessions(shutdownCtx, connRepo, playerService, logger)
		shutdownErr <- server.Shutdown(shutdownCtx)
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.InfoContext(ctx, "server stopped")

	return nil
}
