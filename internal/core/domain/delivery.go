package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus represents the delivery state of an observer notification.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusFailed    DeliveryStatus = "FAILED"
)

// EventDeliveryLog records each attempt to push an event to the observer webhook.
type EventDeliveryLog struct {
	ID          uuid.UUID      `json:"id"`
	EventSeq    int64          `json:"event_seq"`
	URL         string         `json:"url"`
	Payload     string         `json:"payload"` // JSON string
	HTTPStatus  *int           `json:"http_status"`
	Attempt     int            `json:"attempt"`
	Status      DeliveryStatus `json:"status"`
	NextRetryAt *time.Time     `json:"next_retry_at"`
	LastError   *string        `json:"last_error"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
