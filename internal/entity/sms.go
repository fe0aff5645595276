package entity

import (
	"time"

	"github.com/google/uuid"
)

type SMSPriority int

const (
	SMSPriorityLow SMSPriority = iota
	SMSPriorityNormal
	SMSPriorityHigh
)

// SMSMessage is one outbound text waiting in the outbox.
type SMSMessage struct {
	ID        uuid.UUID   `json:"id"`
	Phone     string      `json:"phone"`
	Text      string      `json:"text"`
	Priority  SMSPriority `json:"priority"`
	Attempts  int         `json:"attempts"`
	CreatedAt time.Time   `json:"created_at"`
}
