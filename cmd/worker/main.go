// Command worker drains the SMS outbox: it claims queued messages from Redis,
// sends them through the SMS gateway and requeues ids left behind by crashed workers.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"job-assignment-service/internal/config"
	"job-assignment-service/internal/integration/sms"
	"job-assignment-service/internal/logging"
	"job-assignment-service/internal/service"
	"job-assignment-service/internal/worker"
)

const reapBatch = 100

func main() {
	cfg, err := config.New()
	if err != nil {
		zap.S().Fatalw("reading configuration", "error", err)
	}

	logger, err := logging.New(cfg.Service.LogLevel)
	if err != nil {
		zap.S().Fatalw("init logger", "error", err)
	}
	defer func() { _ = logger.Sync() }()
	log := zap.S().Named("worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalw("redis", "addr", cfg.Redis.Addr, "error", err)
	}

	low, normal, high := service.LanesFor(cfg.Redis.QueueKey, cfg.Redis.ProcessingKey)
	queue := service.NewRedisPriorityQueue(rdb, cfg.Redis.MapKey(), low, normal, high)
	messages := service.NewRedisMessageStore(rdb, cfg.Redis.MessagesKey)

	gateway := sms.NewClient(sms.Config{
		BaseURL:    cfg.SMS.BaseURL,
		Username:   cfg.SMS.Username,
		Password:   cfg.SMS.Password,
		SenderID:   cfg.SMS.SenderID,
		EntityID:   cfg.SMS.EntityID,
		TemplateID: cfg.SMS.TemplateID,
		Timeout:    cfg.SMS.Timeout,
	})

	processor := worker.NewProcessor(messages, queue, gateway, cfg.Service.MaxSMSAttempts)
	pool := worker.NewPool(queue, processor, cfg.Service.Workers)

	go pool.Reap(ctx, cfg.Service.ReapInterval, reapBatch)

	log.Infow("worker started",
		"workers", cfg.Service.Workers,
		"redis_addr", cfg.Redis.Addr,
		"queue_key", cfg.Redis.QueueKey,
		"processing_key", cfg.Redis.ProcessingKey,
	)
	pool.Run(ctx)
	log.Info("worker stopped")
}
