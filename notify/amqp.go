package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/krisalay/expiring-registry/types"
)

// Event is the message body published for every lifecycle change.
type Event struct {
	ID     string       `json:"id"`
	Type   EventType    `json:"type"`
	Domain types.Record `json:"domain"`
	At     time.Time    `json:"at"`
}

// RoutingKey is registry.domain.<type>, e.g. registry.domain.expired.
func (e Event) RoutingKey() string {
	return fmt.Sprintf("registry.domain.%s", e.Type)
}

// Publisher is the subset of *amqp.Channel the hook needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

/*
AMQPHook publishes lifecycle events to a topic exchange.

Events are queued on a buffered channel and published by one worker, so
OnInsert and OnExpire never wait for the broker. When the queue is full the
event is dropped and logged.
*/
type AMQPHook struct {
	pub     Publisher
	timeout time.Duration
	logger  *log.Logger

	ch     chan Event
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewAMQPHook starts the publishing worker.
func NewAMQPHook(pub Publisher, buffer int) *AMQPHook {
	if buffer <= 0 {
		buffer = 1
	}
	h := &AMQPHook{
		pub:     pub,
		timeout: 5 * time.Second,
		logger:  log.New(os.Stderr, "notify: ", log.LstdFlags),
		ch:      make(chan Event, buffer),
	}

	h.wg.Add(1)
	go h.worker()

	return h
}

func (h *AMQPHook) OnInsert(rec types.Record) { h.enqueue(Inserted, rec) }
func (h *AMQPHook) OnExpire(rec types.Record) { h.enqueue(Expired, rec) }

func (h *AMQPHook) enqueue(typ EventType, rec types.Record) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	ev := Event{
		ID:     uuid.New().String(),
		Type:   typ,
		Domain: rec,
		At:     time.Now().UTC(),
	}

	select {
	case h.ch <- ev:
	default:
		h.logger.Printf("event queue full, dropping %s event for domain ID %d", typ, rec.ID)
	}
}

func (h *AMQPHook) worker() {
	defer h.wg.Done()

	for ev := range h.ch {
		if err := h.publish(ev); err != nil {
			h.logger.Printf("publish %s: %v", ev.RoutingKey(), err)
		}
	}
}

func (h *AMQPHook) publish(ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	return h.pub.PublishWithContext(ctx,
		ExchangeName,    // exchange
		ev.RoutingKey(), // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   ev.ID,
			Timestamp:   ev.At,
			Body:        body,
		},
	)
}

// Close stops accepting events and waits for queued ones to be published.
func (h *AMQPHook) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	close(h.ch)
	h.mu.Unlock()

	h.wg.Wait()
}
