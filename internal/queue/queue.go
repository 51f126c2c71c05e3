// Package queue wraps the message broker behind typed task envelopes.
// Both queues are durable; tasks are JSON.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Queue names.
const (
	QueueResumeParse = "resume.parse"
	QueueJobIngest   = "job.ingest"
)

// ResumeParseTask asks the worker to parse one uploaded resume.
type ResumeParseTask struct {
	ResumeID uint `json:"resume_id"`
}

// JobIngestTask asks the worker to extract and index one raw posting.
type JobIngestTask struct {
	SourceURL      string `json:"source_url"`
	SourcePlatform string `json:"source_platform"`
	RawContent     string `json:"raw_content"`
}

// Client holds one connection and channel to the broker.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// Dial connects and declares both task queues.
func Dial(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("queue: connect: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("queue: open channel: %w", err)
	}

	for _, name := range []string{QueueResumeParse, QueueJobIngest} {
		_, err := ch.QueueDeclare(
			name,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // args
		)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("queue: declare %s: %w", name, err)
		}
	}

	return &Client{
		conn:    conn,
		channel: ch,
		logger:  slog.Default().With("component", "queue"),
	}, nil
}

// Publish sends one JSON task to the named queue.
func (c *Client) Publish(ctx context.Context, queueName string, task any) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("queue: marshal task: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(ctx,
		"",        // exchange
		queueName, // routing key
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("queue: publish to %s: %w", queueName, err)
	}
	c.logger.Debug("published task", "queue", queueName, "bytes", len(body))
	return nil
}

// Handler processes one raw task body. A returned error requeues the
// delivery once; redelivered failures are dropped.
type Handler func(ctx context.Context, body []byte) error

// Consume runs a pool of workers against the named queue and blocks until
// the deliveries channel closes or ctx is cancelled. Cancelling ctx cancels
// the consumer, which closes the deliveries channel and drains the workers.
func (c *Client) Consume(ctx context.Context, queueName string, workers int, handler Handler) error {
	if workers <= 0 {
		workers = 1
	}
	if err := c.channel.Qos(workers, 0, false); err != nil {
		return fmt.Errorf("queue: set qos: %w", err)
	}

	tag := queueName + ".consumer"
	msgs, err := c.channel.Consume(
		queueName,
		tag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("queue: consume %s: %w", queueName, err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			// Cancelling the consumer closes msgs, ending the pool.
			_ = c.channel.Cancel(tag, false)
		case <-done:
		}
	}()

	runWorkers(ctx, queueName, workers, msgs, handler, c.logger)
	return nil
}

// runWorkers drains deliveries with a fixed pool until msgs closes.
// Acks are manual; a failed task is requeued once, then dropped.
func runWorkers(ctx context.Context, queueName string, workers int, msgs <-chan amqp.Delivery, handler Handler, logger *slog.Logger) {
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(id int) {
			defer wg.Done()
			for msg := range msgs {
				logger.Info("processing task", "queue", queueName, "worker", id+1)
				if err := handler(ctx, msg.Body); err != nil {
					logger.Error("task failed", "queue", queueName, "worker", id+1, "err", err)
					_ = msg.Nack(false, !msg.Redelivered)
					continue
				}
				_ = msg.Ack(false)
			}
		}(i)
	}
	wg.Wait()
}

// Close tears down the channel and connection.
func (c *Client) Close() error {
	if err := c.channel.Close(); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}
