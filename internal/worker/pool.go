package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"job-assignment-service/internal/service"
)

type Pool struct {
	queue      service.Queue
	processor  *Processor
	workers    int
	claimDelay time.Duration
	retryDelay time.Duration
	log        *zap.SugaredLogger
}

func NewPool(queue service.Queue, processor *Processor, workers int) *Pool {
	if workers <= 0 {
		workers = 4
	}
	return &Pool{
		queue:      queue,
		processor:  processor,
		workers:    workers,
		claimDelay: 5 * time.Second,
		retryDelay: time.Second,
		log:        zap.S().Named("worker"),
	}
}

// Run claims message ids and fans them out to the workers until ctx is done.
// In-flight messages finish before Run returns.
func (p *Pool) Run(ctx context.Context) {
	p.log.Infow("worker pool started", "workers", p.workers)

	idCh := make(chan string)
	var wg sync.WaitGroup

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for id := range idCh {
				if err := p.processor.Process(ctx, id); err != nil {
					p.log.Warnw("process message", "worker", n, "message_id", id, "error", err)
				}
				// Ack either way: Process has already retried or dropped the message.
				// A crash before this point leaves the id for the reaper.
				if err := p.queue.Ack(ctx, id); err != nil {
					p.log.Errorw("ack message", "worker", n, "message_id", id, "error", err)
				}
			}
		}(i + 1)
	}

	defer func() {
		close(idCh)
		wg.Wait()
		p.log.Info("worker pool stopped")
	}()

	for {
		if ctx.Err() != nil {
			return
		}
		id, err := p.queue.ClaimBlocking(ctx, p.claimDelay)
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			p.log.Warnw("claim message", "error", err, "retry_in", p.retryDelay)
			select {
			case <-time.After(p.retryDelay):
			case <-ctx.Done():
			}
			continue
		}
		select {
		case idCh <- id:
		case <-ctx.Done():
			return
		}
	}
}

// Reap periodically returns ids stuck in processing lists to their queues.
func (p *Pool) Reap(ctx context.Context, every time.Duration, maxPerLane int64) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.queue.RequeueStale(ctx, maxPerLane)
			if err != nil {
				p.log.Warnw("requeue stale", "error", err)
				continue
			}
			if n > 0 {
				p.log.Infow("requeued messages from processing", "count", n)
			}
		}
	}
}
