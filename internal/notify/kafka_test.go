package notify

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

func TestKafkaNotifier_SendLead(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	k := NewKafkaNotifier(w)

	lead := testLead(true)
	require.NoError(t, k.SendLead(context.Background(), lead))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, lead.ID, string(msg.Key))
	assert.Equal(t, lead.SubmittedAt, msg.Time)

	var event map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, lead.ID, event["id"])
	assert.Equal(t, "camille.martin@example.fr", event["lead"].(map[string]any)["email"])
	assert.InDelta(t, 186000, event["estimate"].(map[string]any)["estimated_price"], 1e-9)
	assert.NotContains(t, event, "reason")
}

func TestKafkaNotifier_WriteError(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{err: errors.New("leader not available")}
	k := NewKafkaNotifier(w)

	err := k.SendLead(context.Background(), testLead(false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publishing lead event")
	assert.Contains(t, err.Error(), "leader not available")
}

func TestKafkaNotifier_Close(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	require.NoError(t, NewKafkaNotifier(w).Close())
	assert.True(t, w.closed)
}

func TestNewKafkaWriter(t *testing.T) {
	t.Parallel()

	w := NewKafkaWriter([]string{"kafka-1:9092"}, "dvf.leads")
	assert.Equal(t, "dvf.leads", w.Topic)
	assert.Equal(t, kafka.RequireOne, w.RequiredAcks)
	assert.False(t, w.Async)
	assert.Equal(t, "kafka-1:9092", w.Addr.String())
}
