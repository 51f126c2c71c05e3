package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

type fakeAcknowledger struct {
	mu      sync.Mutex
	acks    int
	nacks   int
	requeue []bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acks++
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nacks++
	f.requeue = append(f.requeue, requeue)
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func TestRunWorkersDrainsAndReturnsOnClose(t *testing.T) {
	ack := &fakeAcknowledger{}
	msgs := make(chan amqp.Delivery, 3)
	msgs <- amqp.Delivery{Acknowledger: ack, Body: []byte("ok")}
	msgs <- amqp.Delivery{Acknowledger: ack, Body: []byte("fail")}
	msgs <- amqp.Delivery{Acknowledger: ack, Body: []byte("fail"), Redelivered: true}
	close(msgs)

	handler := func(ctx context.Context, body []byte) error {
		if string(body) == "fail" {
			return errors.New("boom")
		}
		return nil
	}

	done := make(chan struct{})
	go func() {
		runWorkers(context.Background(), QueueJobIngest, 2, msgs, handler, slog.Default())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not drain after the deliveries channel closed")
	}

	ack.mu.Lock()
	defer ack.mu.Unlock()
	assert.Equal(t, 1, ack.acks)
	assert.Equal(t, 2, ack.nacks)
	// First failure requeues, redelivered failure drops.
	assert.ElementsMatch(t, []bool{true, false}, ack.requeue)
}
