package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"lg/body-progress-go-api/internal/bodyfat"
	"lg/body-progress-go-api/internal/config"
	"lg/body-progress-go-api/internal/kv"
	"lg/body-progress-go-api/internal/logger"
	"lg/body-progress-go-api/internal/photos"
	"lg/body-progress-go-api/internal/profile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server exited", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	store, err := kv.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	defer func() {
		if err := kv.Close(context.Background(), store); err != nil {
			log.Warn("failed to close store", "error", err)
		}
	}()
	log.Info("store ready", "backend", cfg.StoreBackend)

	var objects photos.ObjectStore
	if cfg.PhotosEnabled() {
		s3Store, err := photos.NewS3Store(ctx, cfg.S3Bucket, cfg.AWSRegion, time.Duration(cfg.PresignTTLMinutes)*time.Minute)
		if err != nil {
			return err
		}
		objects = s3Store
		log.Info("photo uploads enabled", "bucket", cfg.S3Bucket)
	}

	profiles := profile.NewStore(store, log.With("component", "profile"))
	profiles.LoadProfile(ctx)

	h := newHandler(cfg, log,
		profiles,
		bodyfat.NewTracker(store, log.With("component", "bodyfat"), nil),
		photos.NewAlbum(store, log.With("component", "photos")),
		objects)

	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.SetTrustedProxies(nil)
	if len(cfg.CORSOrigins) > 0 {
		router.Use(corsMiddleware(cfg.CORSOrigins))
	}
	h.registerRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
