// Package app wires configuration, storage, usecases and transport into a
// running service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/auth"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/config"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/storage/mongo"
	transport "github.com/SajeelSafdar99/mockupgenerator-be/internal/transport/http"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/usecase"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/backoff"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/httpserver"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/logger"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/middleware"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/telemetry"
)

func Run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	backoff.SetServiceLabel(cfg.ServiceName)

	// === Telemetry ===
	cfg.Telemetry.ServiceName = cfg.ServiceName
	cfg.Telemetry.ServiceVersion = cfg.ServiceVersion
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry, log)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer shutdownSafe(ctx, "telemetry", shutdownTracer, log)

	// === MongoDB ===
	client, err := mongo.NewClient(cfg.Mongo, log)
	if err != nil {
		return fmt.Errorf("mongo client: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			log.Error("mongo close failed", zap.Error(err))
		}
	}()

	// === Tokens ===
	tm, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		return fmt.Errorf("token manager: %w", err)
	}

	// === Repositories ===
	userRepo := mongo.NewUserRepo(client)
	tokenRepo := mongo.NewTokenRepo(client)
	designRepo := mongo.NewDesignRepo(client)
	imageRepo := mongo.NewImageRepo(client)
	fileRepo := mongo.NewFileRepo(client)

	// === Usecases ===
	signup := usecase.NewSignupHandler(userRepo, tokenRepo, tm, log)
	login := usecase.NewLoginHandler(userRepo, tokenRepo, tm, log)
	refresh := usecase.NewRefreshHandler(tokenRepo, tm, log)
	logout := usecase.NewLogoutHandler(tokenRepo, log)
	profile := usecase.NewProfileHandler(userRepo, log)
	designs := usecase.NewDesignService(designRepo, log)
	images := usecase.NewImageService(imageRepo, log)
	files := usecase.NewFileService(fileRepo, cfg.PublicBaseURL, cfg.MaxUploadBytes, log)

	// === REST surface ===
	router := transport.NewRouter(transport.Deps{
		Signup:         signup,
		Login:          login,
		Refresh:        refresh,
		Logout:         logout,
		Profile:        profile,
		Designs:        designs,
		Images:         images,
		Files:          files,
		TokenManager:   tm,
		Users:          userRepo,
		Log:            log,
		DevMode:        cfg.Logging.DevMode,
		MaxUploadBytes: cfg.MaxUploadBytes,
		FileOrigins:    cfg.FileOrigins,
	})

	readiness := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return client.Ping(pingCtx)
	}

	httpSrv, err := httpserver.New(cfg.HTTP, readiness, log,
		map[string]http.Handler{"/api/": router},
		httpserver.RecoverMiddleware,
		httpserver.CORSMiddleware(),
		middleware.RequestID(),
		middleware.Metrics(),
		middleware.RequestLogger(log),
	)
	if err != nil {
		return fmt.Errorf("httpserver init: %w", err)
	}

	log.WithContext(ctx).Info("service starting")
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpSrv.Run(ctx) })

	if err := g.Wait(); err != nil {
		if ctx.Err() == context.Canceled {
			log.WithContext(ctx).Info("shut down cleanly")
			return nil
		}
		log.WithContext(ctx).Error("exited with error", zap.Error(err))
		return err
	}

	log.WithContext(ctx).Info("shutdown complete")
	return nil
}

func shutdownSafe(ctx context.Context, name string, fn func(context.Context) error, log *logger.Logger) {
	log.WithContext(ctx).Info(name + ": shutting down")
	if err := fn(ctx); err != nil {
		log.WithContext(ctx).Error(name+" shutdown failed", zap.Error(err))
	}
}
