package worker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"job-assignment-service/internal/metrics"
	"job-assignment-service/internal/repository"
	"job-assignment-service/internal/service"
)

// Sender delivers one text message.
type Sender interface {
	Send(ctx context.Context, phone, text string) error
}

type Processor struct {
	messages    service.MessageStore
	queue       service.Queue
	sender      Sender
	maxAttempts int
	log         *zap.SugaredLogger
}

func NewProcessor(messages service.MessageStore, queue service.Queue, sender Sender, maxAttempts int) *Processor {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Processor{
		messages:    messages,
		queue:       queue,
		sender:      sender,
		maxAttempts: maxAttempts,
		log:         zap.S().Named("worker"),
	}
}

// Process sends the message with the given id. A failed send is re-queued
// until maxAttempts is reached, then dropped.
func (p *Processor) Process(ctx context.Context, messageID string) error {
	start := time.Now()

	id, err := uuid.Parse(messageID)
	if err != nil {
		p.log.Warnw("bad message id", "message_id", messageID, "error", err)
		metrics.IncreaseOutboxMessagesMetric("invalid")
		return err
	}

	msg, err := p.messages.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Already delivered by another worker after a requeue.
			p.log.Debugw("message gone", "message_id", id)
			return nil
		}
		return err
	}

	sendErr := p.sender.Send(ctx, msg.Phone, msg.Text)
	if sendErr == nil {
		if err := p.messages.Delete(ctx, id); err != nil {
			return err
		}
		metrics.IncreaseOutboxMessagesMetric("sent")
		p.log.Infow("sms sent", "message_id", id, "attempts", msg.Attempts+1, "duration_ms", time.Since(start).Milliseconds())
		return nil
	}

	msg.Attempts++
	if msg.Attempts >= p.maxAttempts {
		metrics.IncreaseOutboxMessagesMetric("dropped")
		p.log.Errorw("sms dropped", "message_id", id, "attempts", msg.Attempts, "error", sendErr)
		if err := p.messages.Delete(ctx, id); err != nil {
			return err
		}
		return sendErr
	}

	if err := p.messages.Save(ctx, msg); err != nil {
		return err
	}
	if err := p.queue.Enqueue(ctx, msg.ID.String(), msg.Priority); err != nil {
		return err
	}
	metrics.IncreaseOutboxMessagesMetric("retried")
	p.log.Warnw("sms retry", "message_id", id, "attempts", msg.Attempts, "error", sendErr)
	return sendErr
}
