package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded leads. It is used
// when no notification backend is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards leads with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendLead logs and discards a lead. Contact details are not logged.
func (n *NoOpNotifier) SendLead(_ context.Context, lead *LeadPayload) error {
	attrs := []any{"lead_id", lead.ID, "estimated", lead.Estimate != nil}
	if lead.Query != nil {
		attrs = append(attrs, "postal_code", lead.Query.PostalCode)
	}
	n.log.Debug("lead discarded (no backend configured)", attrs...)
	return nil
}
