package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/mindful/client/internal/config"
	"github.com/zhouzirui/mindful/client/internal/handler"
	"github.com/zhouzirui/mindful/client/internal/model/resource"
	"github.com/zhouzirui/mindful/client/internal/service/assessment"
	"github.com/zhouzirui/mindful/client/internal/service/auth"
	"github.com/zhouzirui/mindful/client/internal/service/chat"
	"github.com/zhouzirui/mindful/client/internal/service/mood"
	"github.com/zhouzirui/mindful/client/internal/storage"
	"github.com/zhouzirui/mindful/client/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Log.Level)
	if envErr != nil {
		log.WithError(envErr).Warn("failed to load .env file, continuing with system environment variables only")
	}

	kv, closeKV, err := storage.Open(ctx, cfg.Storage.Options(), log)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.Storage.Driver).Fatal("failed to open storage")
	}
	defer closeKV()
	store := storage.NewAdapter(kv, log)
	log.WithField("driver", cfg.Storage.Driver).Info("storage ready")

	authSvc := auth.NewService(store, auth.NewClient(cfg.Backend.BaseURL), log)
	channel := chat.NewChannel(cfg.Backend.SocketURL, authSvc, log)
	defer channel.Close()

	router := handler.NewRouter(handler.Services{
		Auth:       authSvc,
		Mood:       mood.NewService(store, log),
		Assessment: assessment.NewService(store, cfg.Assessment.Thresholds, log),
		Chat:       channel,
		Resources:  resource.NewMemoryStore(resource.Seed()),
	}, log)

	startServer(ctx, cfg.Server, router, log)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, log *logrus.Logger) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.WithField("addr", addr).Info("mindful client listening")
	if err := runServer(ctx, srv); err != nil {
		log.WithError(err).Error("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
