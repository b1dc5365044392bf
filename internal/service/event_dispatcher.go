package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultRetryIntervals is the wait before each redelivery of an event.
var DefaultRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// EventNotification is the JSON body delivered to the observer.
type EventNotification struct {
	Seq       int64     `json:"seq"`
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Payee     string    `json:"payee,omitempty"`
	Value     string    `json:"value,omitempty"`
	Caller    string    `json:"caller"`
	PrevHash  string    `json:"prev_hash"`
	Hash      string    `json:"hash"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEventNotification renders ev for delivery.
func NewEventNotification(ev *domain.Event) EventNotification {
	n := EventNotification{
		Seq:       ev.Seq,
		ID:        ev.ID.String(),
		Type:      string(ev.Type),
		Caller:    ev.Caller.Hex(),
		PrevHash:  ev.PrevHash,
		Hash:      ev.Hash,
		CreatedAt: ev.CreatedAt,
	}
	if ev.Payee != nil {
		n.Payee = ev.Payee.Hex()
	}
	if ev.Value != nil {
		n.Value = ev.Value.Dec()
	}
	return n
}

// EventDispatcher implements ports.EventPublisher by pushing committed
// events to an observer webhook. A single worker drains a FIFO queue, so
// events reach the observer in the order they were published. Each is
// retried on the DefaultRetryIntervals schedule and every attempt is recorded
// in the delivery log. GET /api/v1/events remains the authoritative feed; an
// observer that missed a push resumes from its last seen seq.
type EventDispatcher struct {
	url            string
	secret         string
	sigSvc         ports.SignatureService
	deliveryRepo   ports.DeliveryRepository
	httpClient     HTTPClient
	retryIntervals []time.Duration
	log            zerolog.Logger

	queue  chan *domain.EventDeliveryLog
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

const (
	dispatchQueueSize = 1024
	resumeBatchSize   = 500
)

// NewEventDispatcher creates a dispatcher and starts its worker. An empty url
// disables delivery; a nil deliveryRepo skips the delivery log.
func NewEventDispatcher(
	url, secret string,
	sigSvc ports.SignatureService,
	deliveryRepo ports.DeliveryRepository,
	httpClient HTTPClient,
	log zerolog.Logger,
) *EventDispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	d := &EventDispatcher{
		url:            url,
		secret:         secret,
		sigSvc:         sigSvc,
		deliveryRepo:   deliveryRepo,
		httpClient:     httpClient,
		retryIntervals: DefaultRetryIntervals,
		log:            log,
		queue:          make(chan *domain.EventDeliveryLog, dispatchQueueSize),
		ctx:            ctx,
		cancel:         cancel,
		done:           make(chan struct{}),
	}
	go d.run()
	return d
}

// WithRetryIntervals overrides the redelivery schedule. Call it before the
// first Publish.
func (d *EventDispatcher) WithRetryIntervals(intervals []time.Duration) *EventDispatcher {
	d.retryIntervals = intervals
	return d
}

// Publish queues events for delivery and returns at once. Events are dropped
// with an error log when the queue is full or the dispatcher is closed.
func (d *EventDispatcher) Publish(_ context.Context, events []domain.Event) {
	if d.url == "" || len(events) == 0 {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn().Int64("seq", events[0].Seq).Int("events", len(events)).Msg("event dispatch: publish after close, events not pushed")
		return
	}

	for i := range events {
		entry, err := d.newEntry(NewEventNotification(&events[i]))
		if err != nil {
			d.log.Error().Err(err).Int64("seq", events[i].Seq).Msg("event dispatch: failed to marshal payload")
			continue
		}
		select {
		case d.queue <- entry:
		default:
			d.log.Error().Int64("seq", entry.EventSeq).Msg("event dispatch: queue full, event not pushed")
		}
	}
}

// Resume queues the delivery attempts a previous process left pending. Call
// it once at startup, before the server accepts calls, so that old events
// are pushed ahead of new ones.
func (d *EventDispatcher) Resume(ctx context.Context) (int, error) {
	if d.url == "" || d.deliveryRepo == nil {
		return 0, nil
	}
	pending, err := d.deliveryRepo.ListPending(ctx, resumeBatchSize)
	if err != nil {
		return 0, fmt.Errorf("list pending deliveries: %w", err)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return 0, errDispatcherClosed
	}

	queued := 0
	for i := range pending {
		entry := pending[i]
		select {
		case d.queue <- &entry:
			queued++
		default:
			d.log.Error().Int64("seq", entry.EventSeq).Msg("event dispatch: queue full, pending delivery left for next start")
		}
	}
	if queued > 0 {
		d.log.Info().Int("deliveries", queued).Msg("event dispatch: resumed pending deliveries")
	}
	return queued, nil
}

var errDispatcherClosed = errors.New("event dispatcher closed")

// Close stops accepting events and waits for the queue to drain. When ctx
// ends first, in-flight retries are abandoned and their delivery log entries
// stay pending for Resume.
func (d *EventDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-d.done
		return ctx.Err()
	}
}

func (d *EventDispatcher) run() {
	defer close(d.done)
	for entry := range d.queue {
		if d.ctx.Err() != nil {
			if entry.CreatedAt.IsZero() {
				d.record(context.WithoutCancel(d.ctx), entry, true)
			}
			d.log.Warn().Int64("seq", entry.EventSeq).Msg("event dispatch: shutting down, delivery left pending")
			continue
		}
		d.deliverWithRetries(d.ctx, entry)
	}
}

func (d *EventDispatcher) newEntry(n EventNotification) (*domain.EventDeliveryLog, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return &domain.EventDeliveryLog{
		ID:       uuid.New(),
		EventSeq: n.Seq,
		URL:      d.url,
		Payload:  string(payload),
		Status:   domain.DeliveryStatusPending,
	}, nil
}

// deliverWithRetries attempts to deliver one event until it succeeds, the
// retry schedule is exhausted or ctx ends. An entry that already has a
// delivery log row continues from its recorded attempt count and is tried at
// once.
func (d *EventDispatcher) deliverWithRetries(ctx context.Context, entry *domain.EventDeliveryLog) bool {
	// Delivery log writes outlive a cancelled worker.
	rctx := context.WithoutCancel(ctx)
	resumed := !entry.CreatedAt.IsZero()
	if !resumed {
		d.record(rctx, entry, true)
	}
	signature := d.sigSvc.Sign(d.secret, entry.Payload)

	for attempt := entry.Attempt; attempt <= len(d.retryIntervals); attempt++ {
		if attempt > 0 && !resumed {
			select {
			case <-time.After(d.retryIntervals[attempt-1]):
			case <-ctx.Done():
				d.log.Warn().Int64("seq", entry.EventSeq).Int("attempt", attempt).Msg("event dispatch: retry abandoned, delivery left pending")
				return false
			}
		}
		resumed = false
		entry.Attempt = attempt + 1

		status, err := d.post(ctx, []byte(entry.Payload), signature, entry.EventSeq)
		if err == nil && status >= 200 && status < 300 {
			entry.Status = domain.DeliveryStatusDelivered
			entry.HTTPStatus = &status
			entry.LastError = nil
			entry.NextRetryAt = nil
			d.record(rctx, entry, false)
			d.log.Info().Int64("seq", entry.EventSeq).Int("attempt", entry.Attempt).Int("status", status).Msg("event dispatch: delivered")
			return true
		}

		msg := "non-2xx response: " + strconv.Itoa(status)
		if err != nil {
			msg = err.Error()
			entry.HTTPStatus = nil
		} else {
			entry.HTTPStatus = &status
		}
		entry.LastError = &msg
		if attempt < len(d.retryIntervals) {
			next := time.Now().UTC().Add(d.retryIntervals[attempt])
			entry.NextRetryAt = &next
		} else {
			entry.NextRetryAt = nil
			entry.Status = domain.DeliveryStatusFailed
		}
		d.record(rctx, entry, false)
		d.log.Warn().Int64("seq", entry.EventSeq).Int("attempt", entry.Attempt).Str("error", msg).Msg("event dispatch: delivery failed")
	}

	if entry.Status != domain.DeliveryStatusFailed {
		// resumed past the end of the current schedule
		entry.Status = domain.DeliveryStatusFailed
		d.record(rctx, entry, false)
	}
	d.log.Error().Int64("seq", entry.EventSeq).Msg("event dispatch: all retry attempts exhausted")
	return false
}

func (d *EventDispatcher) post(ctx context.Context, payload []byte, signature string, seq int64) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", signature)
	req.Header.Set("X-Event-Seq", strconv.FormatInt(seq, 10))

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func (d *EventDispatcher) record(ctx context.Context, entry *domain.EventDeliveryLog, create bool) {
	if d.deliveryRepo == nil {
		return
	}
	entry.UpdatedAt = time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = entry.UpdatedAt
	}

	var err error
	if create {
		err = d.deliveryRepo.Create(ctx, entry)
	} else {
		err = d.deliveryRepo.Update(ctx, entry)
	}
	if err != nil {
		d.log.Warn().Err(err).Int64("seq", entry.EventSeq).Msg("event dispatch: failed to record delivery attempt")
	}
}
