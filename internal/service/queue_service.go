package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"job-assignment-service/internal/entity"
)

type Queue interface {
	Enqueue(ctx context.Context, id string, priority entity.SMSPriority) error
	ClaimBlocking(ctx context.Context, timeout time.Duration) (string, error)
	Ack(ctx context.Context, id string) error
	RequeueStale(ctx context.Context, maxPerLane int64) (int64, error)
}

type Lane struct {
	QueueKey      string
	ProcessingKey string
}

// LanesFor derives the three lane key pairs from base key names.
func LanesFor(queueKey, processingKey string) (low, normal, high Lane) {
	lane := func(suffix string) Lane {
		return Lane{QueueKey: queueKey + ":" + suffix, ProcessingKey: processingKey + ":" + suffix}
	}
	return lane("low"), lane("normal"), lane("high")
}

// redisPriorityQueue is a reliable queue over Redis lists with three lanes.
// Claim: BRPOPLPUSH lane.queue -> lane.processing
// Ack:   LREM from the processing list recorded in processingMapKey
type redisPriorityQueue struct {
	rdb              *redis.Client
	processingMapKey string
	slot             time.Duration
	poll             time.Duration

	low    Lane
	normal Lane
	high   Lane
}

func NewRedisPriorityQueue(rdb *redis.Client, processingMapKey string, low, normal, high Lane) Queue {
	return &redisPriorityQueue{
		rdb:              rdb,
		processingMapKey: processingMapKey,
		slot:             time.Second,
		poll:             50 * time.Millisecond,
		low:              low,
		normal:           normal,
		high:             high,
	}
}

func (q *redisPriorityQueue) lane(p entity.SMSPriority) Lane {
	switch {
	case p >= entity.SMSPriorityHigh:
		return q.high
	case p == entity.SMSPriorityNormal:
		return q.normal
	default:
		return q.low
	}
}

func (q *redisPriorityQueue) lanes() []Lane {
	return []Lane{q.high, q.normal, q.low}
}

func (q *redisPriorityQueue) Enqueue(ctx context.Context, id string, priority entity.SMSPriority) error {
	return q.rdb.LPush(ctx, q.lane(priority).QueueKey, id).Err()
}

// ClaimBlocking takes the first id from high, normal, low in that order.
// When every lane is empty it blocks on the high lane for at most one slot
// and then looks at all lanes again, so OTP traffic is picked up at once and
// the other lanes within a slot. Waits shorter than one second, the smallest
// BRPOPLPUSH timeout Redis honours, are polled instead. timeout <= 0 waits
// until ctx is done. redis.Nil means nothing arrived in time.
func (q *redisPriorityQueue) ClaimBlocking(ctx context.Context, timeout time.Duration) (string, error) {
	forever := timeout <= 0
	deadline := time.Now().Add(timeout)

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		for _, ln := range q.lanes() {
			id, err := q.rdb.RPopLPush(ctx, ln.QueueKey, ln.ProcessingKey).Result()
			if err == nil {
				return q.claimed(ctx, id, ln)
			}
			if !errors.Is(err, redis.Nil) {
				return "", err
			}
		}

		wait := q.slot
		if !forever {
			remain := time.Until(deadline)
			if remain <= 0 {
				return "", redis.Nil
			}
			if remain < wait {
				wait = remain
			}
		}

		if wait < time.Second {
			if err := sleepCtx(ctx, min(wait, q.poll)); err != nil {
				return "", err
			}
			continue
		}

		high := q.lanes()[0]
		id, err := q.rdb.BRPopLPush(ctx, high.QueueKey, high.ProcessingKey, wait).Result()
		if err == nil {
			return q.claimed(ctx, id, high)
		}
		if !errors.Is(err, redis.Nil) {
			return "", err
		}
	}
}

// claimed records which processing list holds id; Ack needs it.
func (q *redisPriorityQueue) claimed(ctx context.Context, id string, ln Lane) (string, error) {
	if err := q.rdb.HSet(ctx, q.processingMapKey, id, ln.ProcessingKey).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (q *redisPriorityQueue) Ack(ctx context.Context, id string) error {
	processingKey, err := q.rdb.HGet(ctx, q.processingMapKey, id).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return err
		}
		// No mapping (requeued by the reaper meanwhile): sweep every lane.
		pipe := q.rdb.Pipeline()
		for _, ln := range q.lanes() {
			pipe.LRem(ctx, ln.ProcessingKey, 1, id)
		}
		_, err := pipe.Exec(ctx)
		return err
	}

	if err := q.rdb.LRem(ctx, processingKey, 1, id).Err(); err != nil {
		return err
	}
	return q.rdb.HDel(ctx, q.processingMapKey, id).Err()
}

// RequeueStale moves up to maxPerLane ids per lane from processing back to
// the queue. Delivery is at-least-once.
func (q *redisPriorityQueue) RequeueStale(ctx context.Context, maxPerLane int64) (int64, error) {
	var moved int64

	for _, ln := range q.lanes() {
		for i := int64(0); i < maxPerLane; i++ {
			id, err := q.rdb.RPopLPush(ctx, ln.ProcessingKey, ln.QueueKey).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					break
				}
				return moved, err
			}
			moved++
			if err := q.rdb.HDel(ctx, q.processingMapKey, id).Err(); err != nil {
				return moved, err
			}
		}
	}

	return moved, nil
}
