package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestSendMessage(t *testing.T) {
	w := &recordingWriter{}
	p := NewProducerWithWriter(w)

	err := p.SendMessage(context.Background(), "storefront.cart.item.added", "u1",
		map[string]any{"product_id": "p1", "quantity": 2},
		map[string]string{"event_type": "CartItemAdded"})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "storefront.cart.item.added", msg.Topic)
	assert.Equal(t, "u1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "p1", body["product_id"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestSendMessageErrors(t *testing.T) {
	p := NewProducerWithWriter(&recordingWriter{err: errors.New("broker down")})
	err := p.SendMessage(context.Background(), "t", "k", 1, nil)
	assert.ErrorContains(t, err, "broker down")

	err = p.SendMessage(context.Background(), "t", "k", make(chan int), nil)
	assert.ErrorContains(t, err, "marshal")
}

func TestNewProducer_BatchTimeout(t *testing.T) {
	tests := []struct {
		name string
		ms   int
		want time.Duration
	}{
		{"default", 0, DefaultBatchTimeout},
		{"configured", 50, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProducer(KafkaConfig{Brokers: []string{"localhost:9092"}, MaxRetries: 3, RetryBackoff: 100, BatchTimeout: tt.ms})
			defer p.Close()

			w, ok := p.writer.(*kafka.Writer)
			require.True(t, ok)
			assert.Equal(t, tt.want, w.BatchTimeout)
			assert.Less(t, w.BatchTimeout, time.Second)
		})
	}
}
