package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	apiHttp "github.com/kala-yatra/backend/internal/api/http"
	"github.com/kala-yatra/backend/internal/cache"
	"github.com/kala-yatra/backend/internal/config"
	"github.com/kala-yatra/backend/internal/db"
	"github.com/kala-yatra/backend/internal/metrics"
	"github.com/kala-yatra/backend/internal/oauth"
	"github.com/kala-yatra/backend/internal/oauth/mockprovider"
	"github.com/kala-yatra/backend/internal/queue/asynqserver"
	"github.com/kala-yatra/backend/internal/queue/client"
	"github.com/kala-yatra/backend/internal/realtime"
	"github.com/kala-yatra/backend/internal/repository"
	"github.com/kala-yatra/backend/internal/server"
	"github.com/kala-yatra/backend/internal/service"
	"github.com/kala-yatra/backend/internal/wizard"
	"github.com/kala-yatra/backend/internal/worker"
	"github.com/kala-yatra/backend/pkg/auth"
	"github.com/kala-yatra/backend/pkg/email/smtp"
	"github.com/kala-yatra/backend/pkg/hash"
	"github.com/kala-yatra/backend/pkg/logger"
	"github.com/kala-yatra/backend/pkg/pdf"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// .env is optional, the real environment wins
	_ = godotenv.Load()

	cfg := config.MustLoad()

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting backend api", zap.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		logger.Fatal("mysql connect problem", zap.Error(err))
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			logger.Error("error when closing mysql", zap.Error(err))
		}
	}()
	logger.Info("mysql connection done")

	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		logger.Fatal("redis connect problem", zap.Error(err))
	}
	defer redisClient.Close()

	asynqClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	defer asynqClient.Close()
	restoreClient := client.SetClient(asynqClient)
	defer restoreClient()

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		logger.Fatal("smtp sender creation failed", zap.Error(err))
	}

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		logger.Fatal("auth manager creation failed", zap.Error(err))
	}

	appMetrics := metrics.New(prometheus.DefaultRegisterer)
	repos := repository.NewRepositories(dbMySQL)
	broker := realtime.NewBroker(redisClient)

	receipts := pdf.NewGenerator(cfg.Receipt.FontPath)
	if !receipts.Available() {
		logger.Warn("receipt font not loaded, receipts are disabled", zap.String("path", cfg.Receipt.FontPath))
	}

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(appCtx)

	googleClient := oauth.NewGoogleClient(cfg.Google)
	if cfg.Env != "production" && cfg.Google.MockProviderAddr != "" {
		mockSrv := &http.Server{
			Addr: cfg.Google.MockProviderAddr,
			Handler: mockprovider.New(mockprovider.User{
				ID:            "mock-user",
				Email:         "participant@example.com",
				VerifiedEmail: true,
				Name:          "Mock Participant",
			}).Handler(),
			ReadHeaderTimeout: cfg.HttpServer.Timeout,
		}
		base := "http://" + cfg.Google.MockProviderAddr
		googleClient = oauth.NewGoogleClient(cfg.Google, option.WithEndpoint(base+"/")).
			WithEndpoint(base+mockprovider.AuthPath, base+mockprovider.TokenPath)

		g.Go(func() error {
			if err := mockSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return mockSrv.Close()
		})
		logger.Warn("using mock oauth provider", zap.String("addr", cfg.Google.MockProviderAddr))
	}

	// Services, Repos & API Handlers
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hash.NewSHA256Hasher(cfg.Payment.AdminSecretSalt),
		TokenManager: tokenManager,
		Repos:        repos,
		OAuth:        googleClient,
		OAuthStates:  oauth.NewStateStore(redisClient, cfg.Auth.StateTTL),
		Publisher:    broker,
		Subscriber:   broker,
		Drafts:       wizard.NewRedisStore(redisClient, cfg.Event.DraftTTL),
		Tasks:        client.Enqueuer{},
		Metrics:      appMetrics,
		Receipts:     receipts,
	})
	handlers := apiHttp.NewHandlers(services, cfg, prometheus.DefaultGatherer)

	workers := worker.NewWorkers(worker.Deps{
		Repos:         repos,
		EmailProvider: emailSender,
		Config:        cfg,
		Metrics:       appMetrics,
	})
	asynqSrv, mux := asynqserver.New(cfg.Cache, workers)
	scheduler, err := asynqserver.NewScheduler(cfg)
	if err != nil {
		logger.Fatal("asynq scheduler creation failed", zap.Error(err))
	}

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init())
	g.Go(func() error {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if err := asynqSrv.Start(mux); err != nil {
		logger.Fatal("asynq server start failed", zap.Error(err))
	}
	if err := scheduler.Start(); err != nil {
		logger.Fatal("asynq scheduler start failed", zap.Error(err))
	}
	logger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
	case <-ctx.Done():
		logger.Error("component stopped unexpectedly", zap.Error(context.Cause(ctx)))
	}

	shutdownCtx, shutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdown()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("failed to stop server", zap.Error(err))
	}
	scheduler.Shutdown()
	asynqSrv.Shutdown()
	cancel()

	if err := g.Wait(); err != nil {
		logger.Error("app stopped with error", zap.Error(err))
	}

	logger.Info("app stopped")
}
