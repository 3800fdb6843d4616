package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisherWithWriter(w)

	err := p.Publish(context.Background(), TopicOrders, "order-1", map[string]any{
		"type":   "order_placed",
		"status": "NEW",
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	m := w.msgs[0]
	assert.Equal(t, TopicOrders, m.Topic)
	assert.Equal(t, "order-1", string(m.Key))

	var body map[string]any
	require.NoError(t, json.Unmarshal(m.Value, &body))
	assert.Equal(t, "order_placed", body["type"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_Errors(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := NewPublisherWithWriter(w)

	err := p.Publish(context.Background(), TopicCatalog, "k", map[string]any{"type": "x"})
	require.ErrorContains(t, err, "broker down")

	err = p.Publish(context.Background(), TopicCatalog, "k", make(chan int))
	require.ErrorContains(t, err, "json.Marshal")

	require.NoError(t, Noop{}.Publish(context.Background(), TopicCatalog, "k", nil))
}
