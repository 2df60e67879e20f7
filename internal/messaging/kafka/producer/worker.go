package producer

import (
	"context"
	"time"

	"school-hris/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const defaultBatchSize = 50

// Drainer polls the outbox table and pushes due events into Kafka. Failed
// publishes stay in the table; MarkFailed schedules the next attempt.
type Drainer struct {
	repo      kafka.OutboxRepository
	writer    *kafkago.Writer
	interval  time.Duration
	batchSize int
	logger    *zap.Logger
}

func NewDrainer(
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	interval time.Duration,
	logger *zap.Logger,
) *Drainer {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Drainer{
		repo:      repo,
		writer:    writer,
		interval:  interval,
		batchSize: defaultBatchSize,
		logger:    logger.Named("kafka.producer.drainer"),
	}
}

// Run blocks until the context is cancelled.
func (d *Drainer) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("outbox drainer started", zap.Duration("poll_interval", d.interval))

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("outbox drainer stopped")
			return
		case <-ticker.C:
			if err := d.drainOnce(ctx); err != nil {
				d.logger.Error("drain outbox batch failed", zap.Error(err))
			}
		}
	}
}

func (d *Drainer) drainOnce(ctx context.Context) error {
	due, err := d.repo.ListPending(ctx, d.batchSize)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	d.logger.Info("draining outbox events", zap.Int("count", len(due)))

	for _, event := range due {
		if err := d.publish(ctx, event); err != nil {
			d.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			_ = d.repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := d.repo.MarkSent(ctx, event.ID); err != nil {
			// the event will be re-published on the next pass; consumers
			// must tolerate duplicates
			d.logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		d.logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}
	return nil
}

// publish keys messages by aggregate id so one entity's events stay ordered
// within a partition.
func (d *Drainer) publish(ctx context.Context, event kafka.OutboxEvent) error {
	return d.writer.WriteMessages(ctx, kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
		},
	})
}
