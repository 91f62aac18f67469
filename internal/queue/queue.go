package queue

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Publisher is the producer half used by services.
type Publisher interface {
	Publish(topic string, payload any) error
}

// Queue adds in-process subscription on top of publishing.
type Queue interface {
	Publisher
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue dispatches published payloads to in-process handlers
// with bounded retries. Used in development and tests; production runs
// the AMQP publisher and a separate worker.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
	log      *zap.Logger

	// Backoff base between retries. Tests shrink it.
	RetryDelay time.Duration
	MaxRetries int
}

func NewInMemoryQueue(log *zap.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		log:        log,
		RetryDelay: 500 * time.Millisecond,
		MaxRetries: 3,
	}
}

func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		go q.processJob(topic, handler, payload)
	}
	return nil
}

func (q *InMemoryQueue) processJob(topic string, handler func(payload any) error, payload any) {
	for attempt := 0; ; attempt++ {
		err := handler(payload)
		if err == nil {
			return
		}

		if attempt >= q.MaxRetries {
			q.log.Error("job permanently failed",
				zap.String("topic", topic),
				zap.Int("attempts", attempt+1),
				zap.Error(err))
			return
		}

		q.log.Warn("job failed, retrying",
			zap.String("topic", topic),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
		time.Sleep(time.Duration(attempt+1) * q.RetryDelay)
	}
}

func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}
