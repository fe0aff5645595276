package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/repository"
)

type MessageStore interface {
	Save(ctx context.Context, msg *entity.SMSMessage) error
	Get(ctx context.Context, id uuid.UUID) (*entity.SMSMessage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// redisMessageStore keeps outbox payloads in one hash keyed by message id.
type redisMessageStore struct {
	rdb *redis.Client
	key string
}

func NewRedisMessageStore(rdb *redis.Client, key string) MessageStore {
	return &redisMessageStore{rdb: rdb, key: key}
}

func (s *redisMessageStore) Save(ctx context.Context, msg *entity.SMSMessage) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.rdb.HSet(ctx, s.key, msg.ID.String(), b).Err()
}

func (s *redisMessageStore) Get(ctx context.Context, id uuid.UUID) (*entity.SMSMessage, error) {
	b, err := s.rdb.HGet(ctx, s.key, id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	var msg entity.SMSMessage
	if err := json.Unmarshal(b, &msg); err != nil {
		return nil, fmt.Errorf("decode sms %s: %w", id, err)
	}
	return &msg, nil
}

func (s *redisMessageStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rdb.HDel(ctx, s.key, id.String()).Err()
}

// SMSOutbox hands texts to the worker through the queue. Send returns once
// the message is durable in Redis, not when it is delivered.
type SMSOutbox struct {
	queue    Queue
	messages MessageStore
	now      func() time.Time
	log      *zap.SugaredLogger
}

func NewSMSOutbox(queue Queue, messages MessageStore) *SMSOutbox {
	return &SMSOutbox{
		queue:    queue,
		messages: messages,
		now:      time.Now,
		log:      zap.S().Named("outbox"),
	}
}

func (o *SMSOutbox) Send(ctx context.Context, phone, text string, priority entity.SMSPriority) (uuid.UUID, error) {
	msg := &entity.SMSMessage{
		ID:        uuid.New(),
		Phone:     phone,
		Text:      text,
		Priority:  priority,
		CreatedAt: o.now().UTC(),
	}
	if err := o.messages.Save(ctx, msg); err != nil {
		return uuid.Nil, fmt.Errorf("save sms: %w", err)
	}
	if err := o.queue.Enqueue(ctx, msg.ID.String(), priority); err != nil {
		_ = o.messages.Delete(ctx, msg.ID)
		return uuid.Nil, fmt.Errorf("enqueue sms: %w", err)
	}

	o.log.Debugw("sms queued", "message_id", msg.ID, "priority", priority)
	return msg.ID, nil
}
