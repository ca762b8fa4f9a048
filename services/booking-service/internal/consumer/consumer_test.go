package consumer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakePurger struct {
	mu     sync.Mutex
	purged []string
	all    int
}

func (p *fakePurger) Purge(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.purged = append(p.purged, id)
	return true
}

func (p *fakePurger) PurgeAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.all++
}

type fakeReader struct {
	msgs   chan kafka.Message
	errs   int
	closed bool
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if r.errs > 0 {
		r.errs--
		return kafka.Message{}, errors.New("broker down")
	}
	select {
	case m := <-r.msgs:
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func TestCatalogInvalidation(t *testing.T) {
	p := &fakePurger{}
	h := CatalogInvalidation(p, logger)
	ctx := context.Background()

	require.NoError(t, h(ctx, kafka.Message{Value: []byte(`{"service_id":"cut"}`)}))
	require.NoError(t, h(ctx, kafka.Message{Value: []byte(`{}`)}))
	require.NoError(t, h(ctx, kafka.Message{}))
	assert.Error(t, h(ctx, kafka.Message{Value: []byte(`not json`)}))

	assert.Equal(t, []string{"cut"}, p.purged)
	assert.Equal(t, 2, p.all)
}

func TestConsumerRun(t *testing.T) {
	reader := &fakeReader{msgs: make(chan kafka.Message, 2), errs: 1}
	p := &fakePurger{}
	c := New(reader, logger, CatalogInvalidation(p, logger))
	c.backoff = time.Millisecond

	reader.msgs <- kafka.Message{Value: []byte(`garbage`)}
	reader.msgs <- kafka.Message{Value: []byte(`{"service_id":"cut"}`)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return len(p.purged) == 1
	}, time.Second, time.Millisecond)
	cancel()
	<-done
	assert.True(t, reader.closed)
}
