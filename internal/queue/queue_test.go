package queue

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishWithoutSubscribers(t *testing.T) {
	q := NewInMemoryQueue(zap.NewNop())

	err := q.Publish("campaign_sends", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no subscribers")
}

func TestPublishDispatchesToHandler(t *testing.T) {
	q := NewInMemoryQueue(zap.NewNop())

	got := make(chan any, 1)
	require.NoError(t, q.Subscribe("campaign_sends", func(payload any) error {
		got <- payload
		return nil
	}))

	require.NoError(t, q.Publish("campaign_sends", 42))

	select {
	case payload := <-got:
		assert.Equal(t, 42, payload)
	case <-time.After(time.Second):
		t.Fatal("handler never received the payload")
	}
}

func TestRetriesUntilSuccess(t *testing.T) {
	q := NewInMemoryQueue(zap.NewNop())
	q.RetryDelay = time.Millisecond

	var mu sync.Mutex
	attempts := 0
	done := make(chan struct{})
	require.NoError(t, q.Subscribe("campaign_sends", func(payload any) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts < 3 {
			return errors.New("provider unavailable")
		}
		close(done)
		return nil
	}))

	require.NoError(t, q.Publish("campaign_sends", 7))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not eventually succeed")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, attempts)
}

func TestGivesUpAfterMaxRetries(t *testing.T) {
	q := NewInMemoryQueue(zap.NewNop())
	q.RetryDelay = time.Millisecond
	q.MaxRetries = 2

	var mu sync.Mutex
	attempts := 0
	require.NoError(t, q.Subscribe("campaign_sends", func(payload any) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		return errors.New("provider unavailable")
	}))

	require.NoError(t, q.Publish("campaign_sends", 7))

	// First attempt plus MaxRetries retries, then the job is dropped.
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return attempts == 3
	}, time.Second, 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, attempts)
}
