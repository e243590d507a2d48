package mq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicPublisher(t *testing.T) {
	w := &recordingWriter{}
	p := NewTopicPublisher(NewProducerWithWriter(w), "storefront.", "cart")

	err := p.Publish(context.Background(), "cart.cleared", "u1", map[string]string{"user_id": "u1"})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "storefront.cart.cleared", w.msgs[0].Topic)
	assert.Equal(t, "u1", string(w.msgs[0].Key))

	headers := map[string]string{}
	for _, h := range w.msgs[0].Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, map[string]string{"event_type": "cart.cleared", "source": "cart"}, headers)
}

func TestLogPublisher(t *testing.T) {
	var p Publisher = NewLogPublisher()
	assert.NoError(t, p.Publish(context.Background(), "cart.cleared", "u1", struct{}{}))
	assert.Error(t, p.Publish(context.Background(), "bad", "k", make(chan int)))
}
