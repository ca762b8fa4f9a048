package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/md-rashed-zaman/slothold/libs/kafkax"
	otelx "github.com/md-rashed-zaman/slothold/libs/otel"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/metrics"
)

// Store is the outbox side of a booking store. FetchUnpublished and
// MarkPublished run inside the transaction carried by ctx.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	FetchUnpublished(ctx context.Context, limit int) ([]Record, error)
	MarkPublished(ctx context.Context, seqs []int64) error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Publisher struct {
	store     Store
	writer    MessageWriter
	logger    *slog.Logger
	pollEvery time.Duration
	batchSize int
}

type PublisherConfig struct {
	PollEvery time.Duration
	BatchSize int
}

func NewPublisher(store Store, writer MessageWriter, logger *slog.Logger, cfg PublisherConfig) *Publisher {
	if cfg.PollEvery <= 0 {
		cfg.PollEvery = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Publisher{
		store:     store,
		writer:    writer,
		logger:    logger,
		pollEvery: cfg.PollEvery,
		batchSize: cfg.BatchSize,
	}
}

func (p *Publisher) Run(ctx context.Context) {
	ticker := time.NewTicker(p.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PublishBatch(ctx)
			if err != nil {
				metrics.AddOutbox("error", 1)
				p.logger.Error("outbox publish failed", "err", err)
				continue
			}
			if n > 0 {
				p.logger.Debug("outbox published", "count", n)
			}
		}
	}
}

// PublishBatch sends up to one batch of unpublished events and marks them
// published. Delivery is at least once: a failed commit resends the batch.
func (p *Publisher) PublishBatch(ctx context.Context) (int, error) {
	var sent int
	err := p.store.WithTx(ctx, func(ctx context.Context) error {
		records, err := p.store.FetchUnpublished(ctx, p.batchSize)
		if err != nil || len(records) == 0 {
			return err
		}

		ctx, span := otel.Tracer("booking-service/outbox").Start(ctx, "outbox.publish")
		span.SetAttributes(attribute.Int("outbox.batch_size", len(records)))
		defer span.End()

		msgs := make([]kafka.Message, 0, len(records))
		seqs := make([]int64, 0, len(records))
		for _, r := range records {
			msgCtx := otelx.ContextWithTraceContext(ctx, r.Traceparent, r.Tracestate)
			msgs = append(msgs, kafka.Message{
				Key:     []byte(r.AggregateID),
				Value:   r.Payload,
				Time:    r.OccurredAt,
				Headers: kafkax.EventHeaders(msgCtx, kafkax.EventMeta{EventID: r.ID, EventType: r.EventType}),
			})
			seqs = append(seqs, r.Seq)
		}
		if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
			span.RecordError(err)
			return err
		}
		if err := p.store.MarkPublished(ctx, seqs); err != nil {
			return err
		}
		sent = len(records)
		return nil
	})
	if err != nil {
		return 0, err
	}
	metrics.AddOutbox("ok", sent)
	return sent, nil
}
