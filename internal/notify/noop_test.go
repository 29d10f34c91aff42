package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOpNotifier_SendLead(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	require.NoError(t, n.SendLead(context.Background(), testLead(true)))

	out := buf.String()
	assert.Contains(t, out, "lead discarded")
	assert.Contains(t, out, "postal_code=72000")
	assert.NotContains(t, out, "camille.martin@example.fr")
}

func TestNoOpNotifier_SendLead_NoQuery(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, n.SendLead(context.Background(), &LeadPayload{ID: "x"}))
}

type stubNotifier struct {
	err   error
	calls int
}

func (s *stubNotifier) SendLead(context.Context, *LeadPayload) error {
	s.calls++
	return s.err
}

func TestMultiNotifier_SendLead(t *testing.T) {
	t.Parallel()

	ok := &stubNotifier{}
	failing := &stubNotifier{err: errors.New("webhook down")}
	last := &stubNotifier{}

	m := NewMultiNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.Add("discord", failing)
	m.Add("kafka", ok)
	m.Add("noop", last)
	assert.Equal(t, 3, m.Len())

	err := m.SendLead(context.Background(), testLead(true))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discord: webhook down")

	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, ok.calls, "failure does not stop fan-out")
	assert.Equal(t, 1, last.calls)
}

func TestMultiNotifier_Empty(t *testing.T) {
	t.Parallel()

	m := NewMultiNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Zero(t, m.Len())
	require.NoError(t, m.SendLead(context.Background(), testLead(false)))
}
