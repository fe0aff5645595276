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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "job-assignment-service/docs"
	"job-assignment-service/internal/auth"
	"job-assignment-service/internal/config"
	"job-assignment-service/internal/integration/attestr"
	"job-assignment-service/internal/metrics"
	"job-assignment-service/internal/phone"
	"job-assignment-service/internal/repository/postgresql"
	"job-assignment-service/internal/service"
	"job-assignment-service/internal/storage"
	httptransport "job-assignment-service/internal/transport/http"
)

var skipMigrations bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		return serve(ctx, cfg)
	},
}

func init() {
	runCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply database migrations on start")
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := zap.S().Named("api")

	pool, err := openPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if !skipMigrations {
		if err := postgresql.Migrate(pool); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	store := postgresql.NewStore(pool)
	jobs := service.NewJobService(store)

	low, normal, high := service.LanesFor(cfg.Redis.QueueKey, cfg.Redis.ProcessingKey)
	queue := service.NewRedisPriorityQueue(rdb, cfg.Redis.MapKey(), low, normal, high)
	outbox := service.NewSMSOutbox(queue, service.NewRedisMessageStore(rdb, cfg.Redis.MessagesKey))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	partners := service.NewPartnerService(
		store.Partners(),
		service.NewRedisOTPStore(rdb, cfg.Redis.OTPPrefix),
		outbox,
		tokens,
		service.OTPConfig{Length: cfg.Auth.OTPLength, TTL: cfg.Auth.OTPTTL},
	)

	attestor := attestr.NewClient(attestr.Config{
		BaseURL: cfg.Attestr.BaseURL,
		APIKey:  cfg.Attestr.APIKey,
		Timeout: cfg.Attestr.Timeout,
	})
	verifier := service.NewVerificationService(store.Partners(), attestor, jobs)

	blobs, err := storage.NewMinioStore(storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		UseSSL:    cfg.Storage.UseSSL,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		return err
	}
	if err := blobs.EnsureBucket(ctx, cfg.Storage.Region); err != nil {
		// uploads fail until the bucket is reachable; the rest of the API works
		log.Warnw("object storage bucket check failed", "bucket", cfg.Storage.Bucket, "error", err)
	}
	uploads := service.NewUploadService(jobs, blobs)

	approvals := service.NewApprovalService(store.Partners())
	adminPhones, err := normalizePhones(cfg.Auth.AdminPhones)
	if err != nil {
		return fmt.Errorf("ADMIN_PHONE_NUMBERS: %w", err)
	}

	httpMetrics := metrics.NewMiddleware("job-assignment-api")
	httpMetrics.MustRegister(prometheus.DefaultRegisterer)

	h := httptransport.NewHandler(jobs, partners, verifier, uploads, approvals,
		httptransport.WithMaxUploadBytes(cfg.Service.MaxUploadBytes))
	router := httptransport.Routes(h, auth.NewAuthenticator(tokens, store.Partners()), httptransport.RouterConfig{
		CORSOrigins:    cfg.Service.CORSOrigins,
		RequestTimeout: cfg.Service.RequestTimeout,
		AdminPhones:    adminPhones,
		Metrics:        httpMetrics,
	})

	srv := &http.Server{
		Addr:              cfg.Service.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("http server listening", "addr", cfg.Service.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Service.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info("api stopped")
	return nil
}

func normalizePhones(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		n, err := phone.Normalize(r)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", r, err)
		}
		out = append(out, n)
	}
	return out, nil
}
