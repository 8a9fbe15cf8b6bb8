package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"billbook/internal/cache"
	"billbook/internal/config"
	"billbook/internal/domain"
	"billbook/internal/handler"
	"billbook/internal/port"
	"billbook/internal/repository/postgres"
	"billbook/internal/router"
	"billbook/internal/service"
	s3storage "billbook/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Log.Debug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	checks := map[string]handler.PingFunc{
		"database": postgres.NewPinger(db).Ping,
	}

	// Reference data cache (optional)
	var refCache port.ReferenceCache
	if cfg.Redis.Enabled() {
		client, err := cache.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer client.Close()
		refCache = cache.NewReferenceCache(client, cfg.Redis.TTL)
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	} else {
		log.Printf("main: redis not configured, reference cache disabled")
	}

	// Export archive (optional)
	var archive port.ExportArchive
	if cfg.S3.Bucket != "" {
		archive, err = s3storage.NewArchiveClient(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		log.Printf("main: s3 bucket not configured, export archiving disabled")
	}

	// Initialize repositories
	catalogRepo := postgres.NewCatalogRepo(db)
	unitRepo := postgres.NewUnitRepo(db)
	taxRateRepo := postgres.NewTaxRateRepo(db)
	hsnRepo := postgres.NewHSNRepo(db)
	docRepo := postgres.NewDocumentRepo(db)

	// Initialize services
	refSvc := service.NewReferenceService(catalogRepo, unitRepo, taxRateRepo, hsnRepo, refCache, cfg.Pricing.DefaultCountry)
	calcSvc := service.NewCalculatorService(refSvc)
	linkTTL := time.Duration(cfg.S3.PresignExpiry) * time.Second
	docSvc := service.NewDocumentService(docRepo, refSvc, archive, linkTTL, service.DocumentDefaults{
		Country:         cfg.Pricing.DefaultCountry,
		Kind:            domain.DocumentKind(cfg.Pricing.DefaultKind),
		TransactionType: domain.TransactionType(cfg.Pricing.DefaultTransactionType),
	})

	// Setup router
	r := router.Setup(router.Handlers{
		Health:    handler.NewHealthHandler(checks),
		Document:  handler.NewDocumentHandler(docSvc),
		Calculate: handler.NewCalculateHandler(calcSvc, docSvc),
		Reference: handler.NewReferenceHandler(refSvc),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (%s)", cfg.Server.Port, cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
